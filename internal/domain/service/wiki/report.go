package wiki

import (
	"slices"

	"github.com/samber/lo"

	"notion-config-tool/internal/domain/entity"
)

// BuildReports resolves every displayed box of the table into a report.
// Reports are sorted by key.
func BuildReports(table entity.WikiTable, names, boxNames, lang map[string]string) []Report {
	keys := lo.Filter(lo.Keys(table), func(key string, _ int) bool {
		return table[key].Display
	})
	slices.Sort(keys)

	reports := make([]Report, 0, len(keys))

	for _, key := range keys {
		reports = append(reports, BuildReport(table, key, names, boxNames, lang))
	}

	return reports
}

// BuildReport resolves a single box. Item names are translated and
// quantities formatted for display.
func BuildReport(table entity.WikiTable, key string, names, boxNames, lang map[string]string) Report {
	result := table[key]
	chances := Chances(Resolve(table, key))

	rows := lo.Map(chances, func(item entity.ChanceItem, _ int) Row {
		return Row{
			Name:     Translate(names, item.Name),
			Quantity: FormatQuantity(item.Name, item.Data),
			Chance:   item.Chance,
		}
	})

	sum := SumChances(chances)
	allPity := lo.EveryBy(chances, func(item entity.ChanceItem) bool { return item.Chance == PityLabel })

	return Report{
		Key:           key,
		Name:          BoxName(key, result.Name, boxNames, lang),
		FallbackTimes: result.FallbackTimes,
		Rows:          rows,
		Sum:           sum,
		Valid:         allPity || WithinTolerance(sum),
	}
}
