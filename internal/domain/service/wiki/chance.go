package wiki

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"notion-config-tool/internal/domain/entity"
)

const (
	PityLabel = "保底"

	minChance = 0.001
	tolerance = 1.0
)

// Chances converts weights into percentages. Pity and zero weight items are
// guaranteed rewards: they show PityLabel and stay out of the denominator.
func Chances(items []entity.FlatItem) []entity.ChanceItem {
	total := 0.0

	for _, item := range items {
		if !isPity(item) {
			total += item.Weight
		}
	}

	out := make([]entity.ChanceItem, len(items))

	for i, item := range items {
		out[i] = entity.ChanceItem{Name: item.Name, Data: item.Data, Chance: chance(item, total)}
	}

	return out
}

func isPity(item entity.FlatItem) bool {
	return item.Fallback || item.Weight == 0
}

func chance(item entity.FlatItem, total float64) string {
	if isPity(item) || total == 0 {
		return PityLabel
	}

	pct := item.Weight / total * 100 //nolint:mnd // percent
	if pct < minChance {
		pct = minChance
	}

	return fmt.Sprintf("%.3f%%", pct)
}

// SumChances adds the displayed percentages, skipping pity labels.
func SumChances(items []entity.ChanceItem) float64 {
	sum := 0.0

	for _, item := range items {
		if item.Chance == PityLabel {
			continue
		}

		n, err := strconv.ParseFloat(strings.TrimSuffix(item.Chance, "%"), 64)
		if err == nil {
			sum += n
		}
	}

	return sum
}

// WithinTolerance reports whether a box's percentages add up to 100 ± 1.
func WithinTolerance(sum float64) bool {
	return math.Abs(sum-100) <= tolerance //nolint:mnd // percent
}
