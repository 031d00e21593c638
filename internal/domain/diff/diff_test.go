package diff_test

import (
	"fmt"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"notion-config-tool/internal/domain/diff"
	"notion-config-tool/internal/domain/entity"
	"notion-config-tool/pkg/tests"
)

func commodityType(id, key string) entity.CommodityType {
	return entity.CommodityType{TypeID: id, Generic: entity.CommodityGeneric{TranslateKey: key}}
}

func withFallback(t entity.CommodityType, key, gain string) entity.CommodityType {
	t.Exchange = &entity.CommodityExchange{FallbackExchange: &entity.FallbackExchange{Key: key, Gain: gain}}

	return t
}

func TestCommodity(t *testing.T) {
	rq := require.New(t)

	local := []entity.CommodityType{commodityType("a", "1"), commodityType("b", "2")}
	remote := []entity.CommodityType{commodityType("b", "2"), commodityType("c", "3")}

	d := diff.Commodity(local, remote)
	rq.Equal([]entity.CommodityType{commodityType("c", "3")}, d.Added)
	rq.Equal([]entity.CommodityType{commodityType("a", "1")}, d.Deleted)
	rq.Empty(d.Modified)
	rq.Equal([]entity.CommodityType{commodityType("b", "2")}, d.Common)
	rq.False(d.Equal())
}

func TestCommodityModifiedTakesRemote(t *testing.T) {
	rq := require.New(t)

	local := []entity.CommodityType{withFallback(commodityType("pet", "k"), "workshop_fallback_type_pet", "coin:10")}
	remote := []entity.CommodityType{withFallback(commodityType("pet", "k"), "workshop_fallback_type_pet", "coin:20")}

	d := diff.Commodity(local, remote)
	rq.Equal(remote, d.Modified)
	rq.Empty(d.Common)
}

func TestCommodityTypesEqual(t *testing.T) {
	testCases := []struct {
		name string
		a, b entity.CommodityType
		want bool
	}{
		{name: "same", a: commodityType("a", "k"), b: commodityType("a", "k"), want: true},
		{name: "different key", a: commodityType("a", "k"), b: commodityType("a", "j"), want: false},
		{
			name: "absent and empty fallback",
			a:    commodityType("a", "k"),
			b: func() entity.CommodityType {
				c := commodityType("a", "k")
				c.Exchange = &entity.CommodityExchange{}

				return c
			}(),
			want: true,
		},
		{
			name: "fallback added",
			a:    commodityType("a", "k"),
			b:    withFallback(commodityType("a", "k"), "x", "y:1"),
			want: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, diff.CommodityTypesEqual(tc.a, tc.b))
		})
	}
}

func TestCommodityPartition(t *testing.T) {
	random := tests.NewRandomizer()

	for range 50 {
		var local, remote []entity.CommodityType

		for i := range 20 {
			id := fmt.Sprintf("t%d", i)
			key := fmt.Sprintf("k%d", int(random.Float64()*2))

			if random.Bool() {
				local = append(local, commodityType(id, key))
			}

			if random.Bool() {
				remote = append(remote, commodityType(id, "k0"))
			}
		}

		d := diff.Commodity(local, remote)

		ids := func(items []entity.CommodityType) []string {
			return lo.Map(items, func(c entity.CommodityType, _ int) string { return c.TypeID })
		}

		all := append(append(append(ids(d.Added), ids(d.Deleted)...), ids(d.Modified)...), ids(d.Common)...)
		union := lo.Uniq(append(ids(local), ids(remote)...))

		require.ElementsMatch(t, union, all)
		require.Empty(t, lo.Intersect(ids(d.Added), ids(d.Deleted)))
	}
}

func gainRef(weight float64, ref string) entity.LotteryGainItem {
	return entity.LotteryGainItem{Weight: weight, SubExchanges: ref}
}

func gainItem(weight float64, merch string) entity.LotteryGainItem {
	return entity.LotteryGainItem{Weight: weight, Merchandises: []string{merch}}
}

func TestLottery(t *testing.T) {
	rq := require.New(t)

	local := entity.LotteryConfig{Gain: []entity.LotteryGainItem{
		gainItem(10, "pet.cat:1"),
		gainItem(10, "pet.cat:1"),
		gainRef(5, "exc_lottery_box_a"),
	}}
	remote := entity.LotteryConfig{Gain: []entity.LotteryGainItem{
		gainRef(5, "exc_lottery_box_b"),
		gainItem(10, "pet.cat:1"),
	}}

	d := diff.Lottery(local, remote)
	rq.False(d.Equal)
	rq.Equal([]entity.LotteryGainItem{gainItem(10, "pet.cat:1")}, d.Common)
	rq.Equal([]entity.LotteryGainItem{gainItem(10, "pet.cat:1"), gainRef(5, "exc_lottery_box_a")}, d.Deleted)
	rq.Equal([]entity.LotteryGainItem{gainRef(5, "exc_lottery_box_b")}, d.Added)
	rq.Len(d.Common, len(local.Gain)-len(d.Deleted))
	rq.Len(d.Common, len(remote.Gain)-len(d.Added))
}

func TestLotteryIgnoresOrder(t *testing.T) {
	rq := require.New(t)

	a := gainItem(1, "x:1")
	b := gainRef(2, "exc_lottery_y")

	d := diff.Lottery(
		entity.LotteryConfig{Gain: []entity.LotteryGainItem{a, b}},
		entity.LotteryConfig{Gain: []entity.LotteryGainItem{b, a}},
	)
	rq.True(d.Equal)
	rq.Len(d.Common, 2)
}

func TestGainItemsEqual(t *testing.T) {
	callback := &entity.Callback{Type: "merchandise.add", Merchandise: "lottery.times.box:1"}

	testCases := []struct {
		name string
		a, b entity.LotteryGainItem
		want bool
	}{
		{name: "blank condition equals absent", a: entity.LotteryGainItem{Weight: 1, Condition: "  "}, b: entity.LotteryGainItem{Weight: 1}, want: true},
		{name: "weight differs", a: gainItem(1, "x:1"), b: gainItem(2, "x:1"), want: false},
		{name: "merchandise differs", a: gainItem(1, "x:1"), b: gainItem(1, "x:2"), want: false},
		{
			name: "callback on one side",
			a:    entity.LotteryGainItem{Weight: 1, SubExchanges: "r", Callback: callback},
			b:    entity.LotteryGainItem{Weight: 1, SubExchanges: "r"},
			want: false,
		},
		{
			name: "same callback",
			a:    entity.LotteryGainItem{Weight: 1, SubExchanges: "r", Callback: callback},
			b:    entity.LotteryGainItem{Weight: 1, SubExchanges: "r", Callback: &entity.Callback{Type: "merchandise.add", Merchandise: "lottery.times.box:1"}},
			want: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, diff.GainItemsEqual(tc.a, tc.b))
		})
	}
}

func workshopFile(items map[string]any) entity.WorkshopFile {
	return entity.WorkshopFile{Comment: "c", TypeID: "pet", Items: items}
}

func TestWorkshop(t *testing.T) {
	rq := require.New(t)

	local := workshopFile(map[string]any{
		"pet.a": map[string]any{"id": "pet.a", "discount": 1.0},
		"pet.b": map[string]any{"id": "pet.b"},
		"pet.z": map[string]any{"id": "pet.z"},
	})
	remote := workshopFile(map[string]any{
		"pet.a": map[string]any{"discount": 1.0, "id": "pet.a"},
		"pet.b": map[string]any{"id": "pet.b", "hide": true},
		"pet.c": map[string]any{"id": "pet.c"},
	})

	changes := diff.Workshop(local, remote)
	rq.Equal([]diff.WorkshopChange{
		{Key: "pet.b", Mode: diff.ChangeChanged, From: local.Items["pet.b"], To: remote.Items["pet.b"]},
		{Key: "pet.c", Mode: diff.ChangeAdd, To: remote.Items["pet.c"]},
		{Key: "pet.z", Mode: diff.ChangeRemove, From: local.Items["pet.z"]},
	}, changes)

	added, changed, removed := diff.Count(changes)
	rq.Equal([]int{1, 1, 1}, []int{added, changed, removed})
}

func TestMergeWorkshop(t *testing.T) {
	rq := require.New(t)

	local := workshopFile(map[string]any{"a": "local-a", "only": "local-only"})
	remote := workshopFile(map[string]any{"a": "remote-a", "b": "remote-b"})

	merged := diff.MergeWorkshop(local, remote)
	rq.Equal(map[string]any{"a": "remote-a", "b": "remote-b", "only": "local-only"}, merged.Items)
}

func TestApplyWorkshop(t *testing.T) {
	local := workshopFile(map[string]any{"a": "local-a", "gone": "x"})
	remote := workshopFile(map[string]any{"a": "remote-a", "new": "n"})

	testCases := []struct {
		name    string
		keys    []string
		want    map[string]any
		applied int
	}{
		{name: "all", keys: nil, want: map[string]any{"a": "remote-a", "new": "n"}, applied: 3},
		{name: "only add", keys: []string{"new"}, want: map[string]any{"a": "local-a", "gone": "x", "new": "n"}, applied: 1},
		{name: "only remove", keys: []string{"gone"}, want: map[string]any{"a": "local-a"}, applied: 1},
		{name: "unknown key", keys: []string{"missing"}, want: map[string]any{"a": "local-a", "gone": "x"}, applied: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			out, applied := diff.ApplyWorkshop(local, remote, tc.keys)
			rq.Equal(tc.want, out.Items)
			rq.Len(applied, tc.applied)
			rq.Equal("pet", out.TypeID)
		})
	}

	require.Equal(t, map[string]any{"a": "local-a", "gone": "x"}, local.Items)
}
