package mapper_test

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"notion-config-tool/internal/domain/entity"
	"notion-config-tool/internal/domain/mapper"
	"notion-config-tool/internal/domain/property"
)

func page(t *testing.T, raw string) property.Page {
	t.Helper()

	var p property.Page

	require.NoError(t, jsoniter.Unmarshal([]byte(raw), &p))

	return p
}

func TestLotteryRow(t *testing.T) {
	rq := require.New(t)

	p := page(t, `{
		"id": "row-1",
		"properties": {
			"exchange_id": {"type": "rollup", "rollup": {"type": "array", "array": [
				{"type": "rich_text", "rich_text": [{"plain_text": "box.gold"}]}
			]}},
			"需要钥匙？": {"type": "rollup", "rollup": {"type": "array", "array": [
				{"type": "checkbox", "checkbox": true}
			]}},
			"whenCallFallback": {"type": "rollup", "rollup": {"type": "array", "array": [
				{"type": "number", "number": 50}
			]}},
			"权重": {"type": "number", "number": 30},
			"数量": {"type": "number", "number": null},
			"商品全称": {"type": "rollup", "rollup": {"type": "array", "array": [
				{"type": "formula", "formula": {"type": "string", "string": "pet.cat"}}
			]}},
			"保底？": {"type": "checkbox", "checkbox": false},
			"所在抽奖箱": {"type": "relation", "relation": [{"id": "b1"}, {"id": "b2"}]}
		}
	}`)

	row, err := mapper.LotteryRow(p)
	rq.NoError(err)
	rq.Equal(entity.LotteryRow{
		PageID:            "row-1",
		ExchangeID:        "box.gold",
		NeedsKey:          true,
		FallbackThreshold: 50,
		Weight:            30,
		FullItemID:        "pet.cat",
		BoxIDs:            []string{"b1", "b2"},
	}, row)
}

func TestLotteryRowErrors(t *testing.T) {
	testCases := []struct {
		name  string
		raw   string
		field string
	}{
		{
			name:  "rollup given as text",
			raw:   `{"id": "r", "properties": {"exchange_id": {"type": "rich_text", "rich_text": []}}}`,
			field: "exchange_id",
		},
		{
			name:  "checkbox given as select",
			raw:   `{"id": "r", "properties": {"保底？": {"type": "select", "select": {"name": "yes"}}}}`,
			field: "保底？",
		},
		{
			name:  "box given as number",
			raw:   `{"id": "r", "properties": {"所在抽奖箱": {"type": "number", "number": 1}}}`,
			field: "所在抽奖箱",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			_, err := mapper.LotteryRow(page(t, tc.raw))
			rq.Error(err)
			rq.ErrorContains(err, tc.field)

			var parseErr *property.ParseError
			rq.ErrorAs(err, &parseErr)
			rq.NotEmpty(parseErr.Raw)
		})
	}
}

func TestLotteryRowMissingFields(t *testing.T) {
	rq := require.New(t)

	row, err := mapper.LotteryRow(page(t, `{"id": "draft", "properties": {}}`))
	rq.NoError(err)
	rq.Equal(entity.LotteryRow{PageID: "draft"}, row)
}

func TestLotteryRowTextBox(t *testing.T) {
	rq := require.New(t)

	row, err := mapper.LotteryRow(page(t, `{"id": "r", "properties": {
		"所在抽奖箱": {"type": "title", "title": [{"plain_text": "黄金"}, {"plain_text": "宝箱"}]}
	}}`))
	rq.NoError(err)
	rq.Equal("黄金宝箱", row.BoxName)
	rq.Empty(row.BoxIDs)
}

func TestBoxConfigRow(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want entity.BoxConfigRow
	}{
		{
			name: "text name",
			raw: `{"id": "p1", "properties": {
				"抽奖箱id": {"type": "rich_text", "rich_text": [{"plain_text": "box.gold"}]},
				"抽奖箱名称": {"type": "title", "title": [{"plain_text": "黄金宝箱"}]},
				"抽奖箱开启方式/次": {"type": "number", "number": 10},
				"禁用": {"type": "checkbox", "checkbox": false}
			}}`,
			want: entity.BoxConfigRow{PageID: "p1", ID: "box.gold", Name: "黄金宝箱", OpenMethod: "10"},
		},
		{
			name: "relation name",
			raw: `{"id": "p2", "properties": {
				"抽奖箱id": {"type": "rich_text", "rich_text": [{"plain_text": "box.silver"}]},
				"抽奖箱名称": {"type": "relation", "relation": [{"id": "n1"}]},
				"禁用": {"type": "checkbox", "checkbox": true}
			}}`,
			want: entity.BoxConfigRow{PageID: "p2", ID: "box.silver", Name: "n1", Disabled: true},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			row, err := mapper.BoxConfigRow(page(t, tc.raw))
			rq.NoError(err)
			rq.Equal(tc.want, row)
		})
	}
}

func TestCommodityRow(t *testing.T) {
	rq := require.New(t)

	row, err := mapper.CommodityRow(page(t, `{"id": "c", "properties": {
		"typeId": {"type": "title", "title": [{"plain_text": "pet"}]},
		"translateKey": {"type": "rich_text", "rich_text": [{"plain_text": "commodity.type.pet"}]},
		"fallback完整商品ID": {"type": "rich_text", "rich_text": [{"plain_text": "coin"}]},
		"fallback商品数量": {"type": "number", "number": 100}
	}}`))
	rq.NoError(err)
	rq.Equal(entity.CommodityRow{
		TypeID:         "pet",
		TranslateKey:   "commodity.type.pet",
		FallbackItemID: "coin",
		FallbackCount:  "100",
	}, row)
}

func TestWorkshopRow(t *testing.T) {
	rq := require.New(t)

	row, err := mapper.WorkshopRow(page(t, `{"id": "w", "properties": {
		"category": {"type": "rollup", "rollup": {"type": "array", "array": [
			{"type": "rich_text", "rich_text": [{"plain_text": "pet"}]}
		]}},
		"idItem": {"type": "rich_text", "rich_text": [{"plain_text": "cat"}]},
		"imageSize-x": {"type": "rich_text", "rich_text": [{"plain_text": "64"}]},
		"价格": {"type": "number", "number": 300},
		"价格单位": {"type": "select", "select": {"name": "钻石"}},
		"名称": {"type": "title", "title": []},
		"商品完整ID": {"type": "formula", "formula": {"type": "string", "string": "pet.cat"}},
		"上线状态": {"type": "select", "select": null}
	}}`))
	rq.NoError(err)
	rq.Equal("pet", row.Category)
	rq.Equal("cat", row.IDItem)
	rq.Equal("pet.cat", row.FullID)
	rq.Equal("钻石", row.PriceUnit)
	rq.Empty(row.OnlineState)
	rq.Empty(row.Name)
	rq.NotNil(row.ImageSizeX)
	rq.InDelta(64.0, *row.ImageSizeX, 1e-9)
	rq.Nil(row.ImageSizeY)
	rq.InDelta(300.0, *row.Price, 1e-9)
}

func TestSplitRelation(t *testing.T) {
	rq := require.New(t)

	rq.Equal([]string{"a", "b"}, mapper.SplitRelation("a, b"))
	rq.Nil(mapper.SplitRelation(""))
}
