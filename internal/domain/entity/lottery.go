package entity

// Callback is applied by the game after a gain item was drawn.
type Callback struct {
	Type        string `json:"type"`
	Merchandise string `json:"merchandise"`
}

// LotteryGainItem is one weighted row of a gain table. Exactly one of
// Merchandises and SubExchanges is set.
type LotteryGainItem struct {
	Weight       float64   `json:"weight"`
	Merchandises []string  `json:"merchandises,omitempty"`
	SubExchanges string    `json:"subExchanges,omitempty"`
	Condition    string    `json:"condition,omitempty"`
	Callback     *Callback `json:"callback,omitempty"`
}

func (i LotteryGainItem) IsReference() bool {
	return i.SubExchanges != ""
}

// LotteryConfig is the machine gain table of one box. Nested references are
// kept as is and resolved by the game at runtime.
type LotteryConfig struct {
	Spend string            `json:"spend,omitempty"`
	Gain  []LotteryGainItem `json:"gain"`
}

// LotteryFile is the content of one lottery config file keyed by the
// canonical exchange key.
type LotteryFile map[string]LotteryConfig
