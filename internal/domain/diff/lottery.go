package diff

import (
	"slices"

	"notion-config-tool/internal/domain/entity"
)

// LotteryDiff matches gain items by structural equality. Every local item
// lands in Common or Deleted, every remote item in Common or Added.
type LotteryDiff struct {
	Equal   bool                     `json:"isEqual"`
	Added   []entity.LotteryGainItem `json:"addedItems"`
	Deleted []entity.LotteryGainItem `json:"deletedItems"`
	Common  []entity.LotteryGainItem `json:"commonItems"`
}

// Lottery pairs each local item with the first equal remote item not yet
// consumed. Leftover local items are deleted, leftover remote items added.
func Lottery(local, remote entity.LotteryConfig) LotteryDiff {
	d := LotteryDiff{
		Added:   []entity.LotteryGainItem{},
		Deleted: []entity.LotteryGainItem{},
		Common:  []entity.LotteryGainItem{},
	}

	remaining := slices.Clone(remote.Gain)

	for _, l := range local.Gain {
		i := indexOf(remaining, func(r entity.LotteryGainItem) bool { return GainItemsEqual(l, r) })
		if i < 0 {
			d.Deleted = append(d.Deleted, l)

			continue
		}

		d.Common = append(d.Common, l)
		remaining = slices.Delete(remaining, i, i+1)
	}

	d.Added = append(d.Added, remaining...)
	d.Equal = len(d.Added) == 0 && len(d.Deleted) == 0

	return d
}

// GainItemsEqual compares weight, merchandises, reference, condition and
// callback. Blank references and conditions equal absent ones.
func GainItemsEqual(a, b entity.LotteryGainItem) bool {
	if a.Weight != b.Weight {
		return false
	}

	if !slices.Equal(a.Merchandises, b.Merchandises) {
		return false
	}

	if blank(a.SubExchanges) != blank(b.SubExchanges) || blank(a.Condition) != blank(b.Condition) {
		return false
	}

	switch {
	case a.Callback == nil && b.Callback == nil:
		return true
	case a.Callback == nil || b.Callback == nil:
		return false
	default:
		return *a.Callback == *b.Callback
	}
}
