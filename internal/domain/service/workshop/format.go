// Package workshop builds workshop type files from the workshop database
// and syncs them into the project.
package workshop

import (
	"notion-config-tool/internal/domain"
	"notion-config-tool/internal/domain/entity"
)

const (
	stateLive = "正式服"
	stateTest = "测试服"
)

func errItemIDRequired(id string) error {
	return domain.ErrItemIDRequired.Wrapf("item %q", id)
}

// Format builds the workshop file of one type. Category and ornament part of
// the first row apply to the whole type. Only rows live on the production or
// test server are emitted. Rows of a suit share one item whose preview lists
// every ornament of the suit.
func Format(typeID string, rows []entity.WorkshopRow) (entity.WorkshopConfig, error) {
	if len(rows) == 0 {
		return entity.WorkshopConfig{
			Comment: entity.WorkshopEmptyComment + typeID,
			TypeID:  typeID,
			Items:   map[string]entity.WorkshopItem{},
		}, nil
	}

	category := rows[0].Category
	part := rows[0].OrnamentPart

	config := entity.WorkshopConfig{
		Comment: entity.WorkshopComment,
		TypeID:  typeID,
		Items:   make(map[string]entity.WorkshopItem),
	}

	for _, row := range rows {
		if row.OnlineState != stateLive && row.OnlineState != stateTest {
			continue
		}

		id := row.FullID
		if part == partSuit {
			id = suitIDPrefix + row.SuitIDItem
		}

		if existing, ok := config.Items[id]; ok && part == partSuit {
			if ornaments, isOrnament := existing.Workshop.Preview.(*entity.OrnamentPreview); isOrnament {
				ornaments.Ornaments = append(ornaments.Ornaments, row.IDItem)
			}

			continue
		}

		item, err := formatItem(row, id, category, part)
		if err != nil {
			return entity.WorkshopConfig{}, err
		}

		config.Items[id] = item
	}

	return config, nil
}

func formatItem(row entity.WorkshopRow, id, category, part string) (entity.WorkshopItem, error) {
	image := imageURL(row, category, part)

	pv, err := preview(row, id, image)
	if err != nil {
		return entity.WorkshopItem{}, err
	}

	name := "shop." + id
	if category == "prefix" && row.Name != "" {
		name = row.Name
	}

	item := entity.WorkshopItem{
		ID: id,
		Workshop: entity.WorkshopInfo{
			Name:          name,
			Introduce:     row.ConfirmIntroduce,
			Rarity:        rarity(row.Rarity),
			Discount:      discount(row),
			Image:         image,
			ImageSize:     [2]float64{orDefault(row.ImageSizeX, defaultSize), orDefault(row.ImageSizeY, defaultSize)},
			Preview:       pv,
			Hide:          row.HideToNotOwned,
			HowMsg:        row.Access,
			HowAction:     row.AccessAction,
			GainAnimation: gainAnimation(row, category, part),
		},
		Exchange: exchange(row, id, category),
	}

	if category == "weaponskin" {
		item.WeaponSkin = &entity.WeaponSkin{ItemFullName: row.WeaponSkinItemID}
	}

	return item, nil
}
