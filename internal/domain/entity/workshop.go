package entity

const (
	WorkshopComment      = "This file is generated by notion-config-tool. Do NOT edit manually!"
	WorkshopEmptyComment = "No data for typeId = "
)

type Rarity string

const (
	RarityMythic    Rarity = "MYTHIC"
	RarityLegendary Rarity = "LEGENDARY"
	RarityEpic      Rarity = "EPIC"
	RarityRare      Rarity = "RARE"
	RarityCommon    Rarity = "COMMON"
)

// WorkshopConfig is one generated <typeId>.json document.
type WorkshopConfig struct {
	Comment string                  `json:"_comment"`
	TypeID  string                  `json:"typeId"`
	Items   map[string]WorkshopItem `json:"items"`
}

type WorkshopItem struct {
	ID         string            `json:"id"`
	Workshop   WorkshopInfo      `json:"workshop"`
	Exchange   *WorkshopExchange `json:"exchange,omitempty"`
	WeaponSkin *WeaponSkin       `json:"weapon_skin,omitempty"`
}

type WorkshopInfo struct {
	Name          string         `json:"name"`
	Introduce     string         `json:"introduce"`
	Rarity        Rarity         `json:"rarity"`
	Discount      float64        `json:"discount"`
	Image         string         `json:"image"`
	ImageSize     [2]float64     `json:"imageSize"`
	Preview       Preview        `json:"preview"`
	Hide          bool           `json:"hide,omitempty"`
	HowMsg        string         `json:"howMsg,omitempty"`
	HowAction     string         `json:"howAction,omitempty"`
	GainAnimation *GainAnimation `json:"gainAnimation,omitempty"`
}

type GainAnimation struct {
	Image     string `json:"image"`
	ImageMask string `json:"imageMask"`
}

type WeaponSkin struct {
	ItemFullName string `json:"itemFullName"`
}

type WorkshopExchange struct {
	BuyExchange *ExchangeConfig `json:"buyExchange,omitempty"`
}

type ExchangeConfig struct {
	Key   string         `json:"key"`
	Spend *ExchangeSpend `json:"spend,omitempty"`
	Price *ExchangePrice `json:"price,omitempty"`
	Gain  string         `json:"gain"`
}

type ExchangeSpend struct {
	Diamond float64 `json:"diamond,omitempty"`
	Coin    float64 `json:"coin,omitempty"`
}

type ExchangePrice struct {
	Type     string  `json:"type"`
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
}

type PreviewType string

const (
	PreviewImage      PreviewType = "image"
	PreviewPet        PreviewType = "pet"
	PreviewOrnament   PreviewType = "ornament"
	PreviewSelfPrefix PreviewType = "self_prefix"
	PreviewMusic      PreviewType = "music"
	PreviewSelf       PreviewType = "self"
	PreviewAttackEff  PreviewType = "attack_eff"
	PreviewDeathshow  PreviewType = "deathshow"
)

// Preview is the shop preview block. Every variant encodes its own type tag.
type Preview interface {
	PreviewType() PreviewType
}

type ImagePreview struct {
	Type  PreviewType `json:"type"`
	Image string      `json:"image"`
	Size  [2]float64  `json:"size"`
}

type PetPreview struct {
	Type   PreviewType `json:"type"`
	Pet    string      `json:"pet"`
	Offset [2]float64  `json:"offset"`
	Scale  float64     `json:"scale"`
}

// OrnamentPreview lists every ornament of a suit, or a single one.
type OrnamentPreview struct {
	Type      PreviewType `json:"type"`
	Ornaments []string    `json:"ornaments"`
}

type SelfPrefixPreview struct {
	Type   PreviewType `json:"type"`
	Prefix string      `json:"prefix"`
}

type MusicPreview struct {
	Type  PreviewType `json:"type"`
	Music string      `json:"music"`
}

type SelfPreview struct {
	Type PreviewType `json:"type"`
}

type AttackEffPreview struct {
	Type      PreviewType `json:"type"`
	Image     string      `json:"image"`
	Size      [2]float64  `json:"size"`
	AttackEff string      `json:"attack_eff"`
}

type DeathshowPreview struct {
	Type      PreviewType `json:"type"`
	Deathshow string      `json:"deathshow"`
}

func (p ImagePreview) PreviewType() PreviewType      { return p.Type }
func (p PetPreview) PreviewType() PreviewType        { return p.Type }
func (p *OrnamentPreview) PreviewType() PreviewType  { return p.Type }
func (p SelfPrefixPreview) PreviewType() PreviewType { return p.Type }
func (p MusicPreview) PreviewType() PreviewType      { return p.Type }
func (p SelfPreview) PreviewType() PreviewType       { return p.Type }
func (p AttackEffPreview) PreviewType() PreviewType  { return p.Type }
func (p DeathshowPreview) PreviewType() PreviewType  { return p.Type }

// WorkshopFile is a workshop document in its generic JSON form. Diffs and
// merges work on it so that fields unknown to the generator survive a sync.
type WorkshopFile struct {
	Comment string         `json:"_comment"`
	TypeID  string         `json:"typeId"`
	Items   map[string]any `json:"items"`
}

// WorkshopType is a workshop type with its local state.
type WorkshopType struct {
	TypeID string `json:"typeId"`
	Exists bool   `json:"exists"`
}
