// Package diff compares two versions of a configuration tree.
package diff

import (
	"strings"

	"notion-config-tool/internal/domain/entity"
)

// CommodityDiff buckets commodity types by typeId. Modified holds the remote
// version of changed types.
type CommodityDiff struct {
	Added    []entity.CommodityType `json:"addedItems"`
	Deleted  []entity.CommodityType `json:"deletedItems"`
	Modified []entity.CommodityType `json:"modifiedItems"`
	Common   []entity.CommodityType `json:"commonItems"`
}

func (d CommodityDiff) Equal() bool {
	return len(d.Added) == 0 && len(d.Deleted) == 0 && len(d.Modified) == 0
}

// Commodity classifies local types against remote ones. Types present only
// locally are deleted, types present only remotely are added.
func Commodity(local, remote []entity.CommodityType) CommodityDiff {
	d := CommodityDiff{
		Added:    []entity.CommodityType{},
		Deleted:  []entity.CommodityType{},
		Modified: []entity.CommodityType{},
		Common:   []entity.CommodityType{},
	}

	remaining := append([]entity.CommodityType(nil), remote...)

	for _, l := range local {
		i := indexOf(remaining, func(r entity.CommodityType) bool { return r.TypeID == l.TypeID })
		if i < 0 {
			d.Deleted = append(d.Deleted, l)

			continue
		}

		r := remaining[i]
		remaining = append(remaining[:i], remaining[i+1:]...)

		if CommodityTypesEqual(l, r) {
			d.Common = append(d.Common, l)
		} else {
			d.Modified = append(d.Modified, r)
		}
	}

	d.Added = append(d.Added, remaining...)

	return d
}

// CommodityTypesEqual compares the fields written to commodity.json. An
// absent fallback and an empty one are equal.
func CommodityTypesEqual(a, b entity.CommodityType) bool {
	if a.TypeID != b.TypeID || a.Generic.TranslateKey != b.Generic.TranslateKey {
		return false
	}

	af, bf := a.Fallback(), b.Fallback()

	return fallbackKey(af) == fallbackKey(bf) && fallbackGain(af) == fallbackGain(bf)
}

func fallbackKey(f *entity.FallbackExchange) string {
	if f == nil {
		return ""
	}

	return f.Key
}

func fallbackGain(f *entity.FallbackExchange) string {
	if f == nil {
		return ""
	}

	return f.Gain
}

func indexOf[T any](items []T, match func(T) bool) int {
	for i, item := range items {
		if match(item) {
			return i
		}
	}

	return -1
}

// blank maps whitespace-only text to the empty string.
func blank(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}

	return s
}
