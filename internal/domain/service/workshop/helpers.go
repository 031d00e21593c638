package workshop

import (
	"strings"

	"notion-config-tool/internal/domain/entity"
	"notion-config-tool/internal/domain/value"
)

const (
	ossBase = "http://oss.easecation.net/"

	partSuit       = "套装"
	aimPrefix      = "resourcepack.aim."
	haloPrefix     = "halo."
	suitIDPrefix   = "ornament.suit."
	defaultScale   = 0.4
	defaultSize    = 30
	fullSize       = 100
	aimSize        = 40
	defaultRarity  = "普通"
	exchangePrefix = "workshop_"
)

//nolint:gochecknoglobals
var rarities = map[string]entity.Rarity{
	"神话": entity.RarityMythic,
	"传说": entity.RarityLegendary,
	"史诗": entity.RarityEpic,
	"稀有": entity.RarityRare,
	"普通": entity.RarityCommon,
}

func rarity(text string) entity.Rarity {
	if text == "" {
		text = defaultRarity
	}

	if r, ok := rarities[text]; ok {
		return r
	}

	return entity.RarityCommon
}

// imageURL picks the shop image. category and part come from the first row
// of the type.
func imageURL(row entity.WorkshopRow, category, part string) string {
	if row.ShopImage != "" {
		return row.ShopImage
	}

	switch category {
	case "prefix":
		return "textures/items/name_tag"
	case "music":
		return "textures/blocks/jukebox_side"
	case "resourcepack":
		if strings.HasPrefix(row.FullID, aimPrefix) {
			parts := strings.Split(row.FullID, ".")

			return ossBase + category + "/aim/" + parts[len(parts)-1] + ".png"
		}

		return ossBase + category + "/" + row.IDItem + ".jpg"
	case "ornament":
		if part == partSuit {
			return ossBase + category + "/suit." + row.SuitIDItem + ".png"
		}
	}

	return ossBase + category + "/" + row.IDItem + ".png"
}

// discount prefers the explicit rate, then discounted price over price.
func discount(row entity.WorkshopRow) float64 {
	if row.DiscountRate != nil && *row.DiscountRate != 0 {
		return *row.DiscountRate
	}

	if row.DiscountPrice != nil && row.Price != nil && *row.Price > 0 && *row.DiscountPrice > 0 {
		return *row.DiscountPrice / *row.Price
	}

	return 1
}

// exchange builds the buy exchange. Free items and unknown units have none.
func exchange(row entity.WorkshopRow, id, category string) *entity.WorkshopExchange {
	price := 0.0
	if row.Price != nil {
		price = *row.Price
	}

	if price <= 0 {
		return nil
	}

	buy := &entity.ExchangeConfig{
		Key:  exchangePrefix + category + "_" + row.IDItem,
		Gain: value.Merchandise(id, 1),
	}

	switch row.PriceUnit {
	case "点券":
		buy.Price = &entity.ExchangePrice{Type: "wallet_balance", Currency: "credits", Amount: price}
	case "钻石":
		buy.Spend = &entity.ExchangeSpend{Diamond: price}
	case "EC币":
		buy.Spend = &entity.ExchangeSpend{Coin: price}
	default:
		return nil
	}

	return &entity.WorkshopExchange{BuyExchange: buy}
}

func gainAnimation(row entity.WorkshopRow, category, part string) *entity.GainAnimation {
	if !row.ImageMask {
		return nil
	}

	base := ossBase + category + "/" + row.IDItem
	if part == partSuit {
		base = ossBase + category + "/suit." + row.SuitIDItem
	}

	return &entity.GainAnimation{Image: base + ".full.png", ImageMask: base + ".mask.png"}
}

func orZero(f *float64) float64 {
	if f == nil {
		return 0
	}

	return *f
}

func orDefault(f *float64, def float64) float64 {
	if f == nil {
		return def
	}

	return *f
}

// preview selects the preview variant from the row's own category and
// ornament part.
func preview(row entity.WorkshopRow, id, image string) (entity.Preview, error) {
	if row.IDItem == "" {
		return nil, errItemIDRequired(id)
	}

	full := entity.ImagePreview{Type: entity.PreviewImage, Image: image, Size: [2]float64{fullSize, fullSize}}

	if row.UseFullPreview {
		return full, nil
	}

	switch row.Category {
	case "pet":
		return entity.PetPreview{
			Type:   entity.PreviewPet,
			Pet:    row.IDItem,
			Offset: [2]float64{orZero(row.OffsetX), orZero(row.OffsetY)},
			Scale:  orDefault(row.Scale, defaultScale),
		}, nil
	case "ornament":
		if row.OrnamentPart != partSuit && strings.HasPrefix(row.IDItem, haloPrefix) {
			return full, nil
		}

		return &entity.OrnamentPreview{Type: entity.PreviewOrnament, Ornaments: []string{row.IDItem}}, nil
	case "prefix":
		prefix := row.Name
		if prefix == "" {
			prefix = "shop." + id
		}

		return entity.SelfPrefixPreview{Type: entity.PreviewSelfPrefix, Prefix: prefix}, nil
	case "music":
		return entity.MusicPreview{Type: entity.PreviewMusic, Music: row.IDItem}, nil
	case "weaponskin":
		return entity.SelfPreview{Type: entity.PreviewSelf}, nil
	case "attack-eff":
		return entity.AttackEffPreview{
			Type:      entity.PreviewAttackEff,
			Image:     image,
			Size:      [2]float64{fullSize, fullSize},
			AttackEff: row.IDItem,
		}, nil
	case "deathshow":
		return entity.DeathshowPreview{Type: entity.PreviewDeathshow, Deathshow: row.IDItem}, nil
	}

	if strings.HasPrefix(id, aimPrefix) {
		return entity.ImagePreview{Type: entity.PreviewImage, Image: image, Size: [2]float64{aimSize, aimSize}}, nil
	}

	return full, nil
}
