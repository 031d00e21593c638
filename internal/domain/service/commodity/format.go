// Package commodity builds the commodity catalog and the commodity name map
// from the commodity database.
package commodity

import (
	"notion-config-tool/internal/domain/entity"
)

const fallbackKeyPrefix = "workshop_fallback_type_"

// Format builds commodity.json. A fallback exchange is added only when the
// row names a fallback item.
func Format(rows []entity.CommodityRow) entity.CommodityCatalog {
	catalog := entity.CommodityCatalog{
		Comment: entity.CommodityCatalogComment,
		Types:   make([]entity.CommodityType, 0, len(rows)),
	}

	for _, row := range rows {
		t := entity.CommodityType{
			TypeID:  row.TypeID,
			Generic: entity.CommodityGeneric{TranslateKey: row.TranslateKey},
		}

		if row.FallbackItemID != "" {
			t.Exchange = &entity.CommodityExchange{FallbackExchange: &entity.FallbackExchange{
				Key:  fallbackKeyPrefix + row.TypeID,
				Gain: row.FallbackItemID + ":" + row.FallbackCount,
			}}
		}

		catalog.Types = append(catalog.Types, t)
	}

	return catalog
}

// NameMap maps type ids to their wiki display name, falling back to the
// translate key. Rows without id or name are skipped.
func NameMap(rows []entity.CommodityRow) map[string]string {
	names := make(map[string]string, len(rows))

	for _, row := range rows {
		name := row.WikiDisplayName
		if name == "" {
			name = row.TranslateKey
		}

		if row.TypeID != "" && name != "" {
			names[row.TypeID] = name
		}
	}

	return names
}
