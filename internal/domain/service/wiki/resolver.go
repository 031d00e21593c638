// Package wiki flattens lottery gain tables into probability reports and
// renders them as wiki markup, Markdown and CSV.
package wiki

import (
	"fmt"
	"slices"

	"notion-config-tool/internal/domain/entity"
)

// LenientReferences documents the resolver policy: a reference to a key
// missing from the table contributes no items and is not an error.
const LenientReferences = true

// Accumulator sums flat items by their name:data/fallback identity. It is
// immutable: Add returns a new accumulator. Items keep first-seen order.
type Accumulator struct {
	order []string
	items map[string]entity.FlatItem
}

func identity(item entity.FlatItem) string {
	return fmt.Sprintf("%s:%v/%t", item.Name, item.Data, item.Fallback)
}

// Add returns an accumulator that also holds item.
func (a Accumulator) Add(item entity.FlatItem) Accumulator {
	key := identity(item)

	items := make(map[string]entity.FlatItem, len(a.items)+1)
	for k, v := range a.items {
		items[k] = v
	}

	order := a.order

	if existing, ok := items[key]; ok {
		existing.Weight += item.Weight
		items[key] = existing
	} else {
		items[key] = item
		order = append(slices.Clip(order), key)
	}

	return Accumulator{order: order, items: items}
}

// Merge folds every item of other into a.
func (a Accumulator) Merge(other Accumulator) Accumulator {
	for _, item := range other.Items() {
		a = a.Add(item)
	}

	return a
}

func (a Accumulator) Len() int {
	return len(a.order)
}

func (a Accumulator) Items() []entity.FlatItem {
	out := make([]entity.FlatItem, len(a.order))
	for i, key := range a.order {
		out[i] = a.items[key]
	}

	return out
}

// Resolve flattens the table under key into terminal rewards. Top level
// weights are used as is. A nested table is scaled so its items share
// exactly the weight its reference was allocated. Keys already on the
// resolution path contribute nothing.
func Resolve(table entity.WikiTable, key string) []entity.FlatItem {
	return resolve(table, key, false, 0, map[string]bool{}).Items()
}

func resolve(table entity.WikiTable, key string, fallback bool, allocated float64, path map[string]bool) Accumulator {
	wiki, ok := table[key]
	if !ok || path[key] {
		return Accumulator{}
	}

	path[key] = true
	defer delete(path, key)

	scale := func(w float64) float64 { return w }

	if allocated != 0 {
		total := 0.0
		for _, item := range wiki.Gain {
			total += item.Weight
		}

		if total != 0 {
			scale = func(w float64) float64 { return w / total * allocated }
		}
	}

	acc := Accumulator{}

	for _, item := range wiki.Gain {
		itemFallback := fallback || item.Fallback

		switch {
		case item.IsReference():
			acc = acc.Merge(resolve(table, item.Exc, itemFallback, scale(item.Weight), path))
		case item.Name != "":
			acc = acc.Add(entity.FlatItem{
				Weight:   scale(item.Weight),
				Name:     item.Name,
				Data:     item.Data,
				Fallback: itemFallback,
			})
		}
	}

	return acc
}
