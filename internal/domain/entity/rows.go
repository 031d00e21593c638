package entity

// LotteryRow is one row of the lottery database. Box level fields are
// repeated on every row of the box.
type LotteryRow struct {
	PageID            string
	ExchangeID        string
	NeedsKey          bool
	FallbackThreshold int
	ShowInWiki        bool
	WikiDisplayName   string
	GainExchangeID    string
	Weight            float64
	Quantity          float64
	FullItemID        string
	IsPity            bool
	WikiItemName      string
	Disabled          bool
	// BoxIDs holds the related box config page ids.
	BoxIDs []string
	// BoxName is set when the box column is plain text instead of a relation.
	BoxName string
}

// BoxConfigRow is one row of the box config database.
type BoxConfigRow struct {
	PageID     string
	ID         string
	Name       string
	OpenMethod string
	Fallback   string
	Disabled   bool
}

type CommodityRow struct {
	TypeID          string
	TranslateKey    string
	WikiDisplayName string
	FallbackItemID  string
	FallbackCount   string
}

// WorkshopRow is one row of the workshop database. Pointer fields are nil
// when the cell is empty.
type WorkshopRow struct {
	Category         string
	IDItem           string
	OrnamentPart     string
	ImageSizeX       *float64
	ImageSizeY       *float64
	OffsetX          *float64
	OffsetY          *float64
	SuitIDItem       string
	DiscountRate     *float64
	Rarity           string
	ImageMask        bool
	Scale            *float64
	OnlineState      string
	Price            *float64
	PriceUnit        string
	UseFullPreview   bool
	Name             string
	FullID           string
	ShopImage        string
	HideToNotOwned   bool
	DiscountPrice    *float64
	WeaponSkinItemID string
	Access           string
	AccessAction     string
	ConfirmIntroduce string
	FallbackExchange string
}
