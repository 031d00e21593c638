package entity

const CommodityCatalogComment = "Commodity total categories, auto-generated."

type CommodityGeneric struct {
	TranslateKey string `json:"translateKey"`
}

type FallbackExchange struct {
	Key  string `json:"key"`
	Gain string `json:"gain"`
}

type CommodityExchange struct {
	FallbackExchange *FallbackExchange `json:"fallbackExchange,omitempty"`
}

// CommodityType is one entry of commodity.json, identified by TypeID.
type CommodityType struct {
	TypeID   string             `json:"typeId"`
	Generic  CommodityGeneric   `json:"generic"`
	Exchange *CommodityExchange `json:"exchange,omitempty"`
}

// Fallback returns the fallback exchange or nil.
func (c CommodityType) Fallback() *FallbackExchange {
	if c.Exchange == nil {
		return nil
	}

	return c.Exchange.FallbackExchange
}

type CommodityCatalog struct {
	Comment string          `json:"_comment"`
	Types   []CommodityType `json:"types"`
}
