package commodity_test

import (
	"context"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"notion-config-tool/internal/domain/entity"
	"notion-config-tool/internal/domain/property"
	"notion-config-tool/internal/domain/service/commodity"
	st "notion-config-tool/internal/domain/service/servicetest"
	"notion-config-tool/internal/domain/value"
)

const databaseID = "commodity-db"

func TestFormat(t *testing.T) {
	testCases := []struct {
		name string
		row  entity.CommodityRow
		want entity.CommodityType
	}{
		{
			name: "without fallback",
			row:  entity.CommodityRow{TypeID: "pet", TranslateKey: "commodity.pet"},
			want: entity.CommodityType{TypeID: "pet", Generic: entity.CommodityGeneric{TranslateKey: "commodity.pet"}},
		},
		{
			name: "with fallback",
			row:  entity.CommodityRow{TypeID: "pet", TranslateKey: "commodity.pet", FallbackItemID: "coin", FallbackCount: "100"},
			want: entity.CommodityType{
				TypeID:  "pet",
				Generic: entity.CommodityGeneric{TranslateKey: "commodity.pet"},
				Exchange: &entity.CommodityExchange{FallbackExchange: &entity.FallbackExchange{
					Key:  "workshop_fallback_type_pet",
					Gain: "coin:100",
				}},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			catalog := commodity.Format([]entity.CommodityRow{tc.row})
			rq.Equal(entity.CommodityCatalogComment, catalog.Comment)
			rq.Equal([]entity.CommodityType{tc.want}, catalog.Types)
		})
	}
}

func TestFormatJSON(t *testing.T) {
	rq := require.New(t)

	data, err := jsoniter.Marshal(commodity.Format([]entity.CommodityRow{{TypeID: "a", TranslateKey: "k"}}))
	rq.NoError(err)
	rq.JSONEq(`{"_comment":"Commodity total categories, auto-generated.","types":[{"typeId":"a","generic":{"translateKey":"k"}}]}`, string(data))
}

func TestNameMap(t *testing.T) {
	rq := require.New(t)

	names := commodity.NameMap([]entity.CommodityRow{
		{TypeID: "a", TranslateKey: "key.a", WikiDisplayName: "甲"},
		{TypeID: "b", TranslateKey: "key.b"},
		{TypeID: "", WikiDisplayName: "orphan"},
		{TypeID: "c"},
	})
	rq.Equal(map[string]string{"a": "甲", "b": "key.b"}, names)
}

func pages(t *testing.T) []property.Page {
	t.Helper()

	return []property.Page{
		st.Page(t, "p1", map[string]string{
			"typeId":          st.Title("pet"),
			"translateKey":    st.Text("commodity.pet"),
			"wikiDisplayName": st.Text("宠物"),
		}),
		st.Page(t, "p2", map[string]string{
			"typeId":         st.Title("prefix"),
			"translateKey":   st.Text("commodity.prefix"),
			"fallback完整商品ID": st.Text("coin"),
			"fallback商品数量":   st.Number(50),
		}),
	}
}

func newService(t *testing.T) (*commodity.Service, *st.Source, *st.Store, *st.Reporter) {
	t.Helper()

	source := st.NewSource()
	source.Pages[databaseID] = pages(t)
	store := st.NewStore()
	reporter := &st.Reporter{}

	return commodity.NewService(source, store, databaseID).WithReporter(reporter), source, store, reporter
}

func TestServiceNameMapCached(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	svc, source, _, _ := newService(t)

	names, err := svc.NameMap(ctx)
	rq.NoError(err)
	rq.Equal(map[string]string{"pet": "宠物", "prefix": "commodity.prefix"}, names)

	_, err = svc.NameMap(ctx)
	rq.NoError(err)
	rq.Equal(1, source.Calls())

	_, err = svc.RefreshNames(ctx)
	rq.NoError(err)
	rq.Equal(2, source.Calls())
}

func TestServiceDiffWithoutLocalFile(t *testing.T) {
	rq := require.New(t)

	svc, _, _, _ := newService(t)

	d, err := svc.Diff(context.Background())
	rq.NoError(err)
	rq.Len(d.Added, 2)
	rq.Empty(d.Deleted)
	rq.False(d.Equal())
}

func TestServiceSync(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	svc, _, store, reporter := newService(t)
	store.Put(value.CommodityCatalogPath(), `{"_comment":"old","types":[
		{"typeId":"pet","generic":{"translateKey":"commodity.pet"}},
		{"typeId":"gone","generic":{"translateKey":"x"}}
	]}`)

	record, err := svc.Sync(ctx)
	rq.NoError(err)
	rq.Equal(entity.SyncCommodity, record.Kind)
	rq.Equal([]int{1, 0, 1}, []int{record.Added, record.Changed, record.Removed})
	rq.Len(reporter.Records, 1)

	local, err := svc.Local(ctx)
	rq.NoError(err)
	rq.Equal(entity.CommodityCatalogComment, local.Comment)
	rq.Len(local.Types, 2)

	d, err := svc.Diff(ctx)
	rq.NoError(err)
	rq.True(d.Equal())
}
