package lottery

import (
	"notion-config-tool/internal/domain/entity"
)

// Group is the rows of one box in source order.
type Group struct {
	BoxID string
	Rows  []entity.LotteryRow
}

// GroupRows groups enabled rows by box. A row related to several boxes is
// added to each of them. Rows without exchange id or box are skipped.
// Groups keep the order in which their box was first seen.
func GroupRows(rows []entity.LotteryRow) []Group {
	index := make(map[string]int)
	groups := make([]Group, 0)

	for _, row := range rows {
		if row.Disabled || row.ExchangeID == "" {
			continue
		}

		boxes := row.BoxIDs
		if len(boxes) == 0 && row.BoxName != "" {
			boxes = []string{row.BoxName}
		}

		for _, box := range boxes {
			i, ok := index[box]
			if !ok {
				i = len(groups)
				index[box] = i
				groups = append(groups, Group{BoxID: box})
			}

			groups[i].Rows = append(groups[i].Rows, row)
		}
	}

	return groups
}

// BoxNames maps exchange ids to box display names. Names come from the box
// config table through the row's relation, or from the row's own text
// column.
func BoxNames(boxes []entity.BoxConfigRow, rows []entity.LotteryRow) map[string]string {
	byPage := make(map[string]string, len(boxes))
	byID := make(map[string]string, len(boxes))

	for _, box := range boxes {
		if box.Disabled || box.ID == "" || box.Name == "" {
			continue
		}

		byPage[box.PageID] = box.Name
		byID[box.ID] = box.Name
	}

	names := make(map[string]string)

	for _, row := range rows {
		if row.Disabled || row.ExchangeID == "" {
			continue
		}

		name := row.BoxName

		for _, id := range row.BoxIDs {
			if name != "" {
				break
			}

			if n, ok := byPage[id]; ok {
				name = n
			} else if n, ok := byID[id]; ok {
				name = n
			}
		}

		if name != "" {
			names[row.ExchangeID] = name
		}
	}

	return names
}
