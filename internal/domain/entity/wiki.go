package entity

// WikiGainItem is a reference when Exc is set, a terminal reward otherwise.
type WikiGainItem struct {
	Weight   float64 `json:"weight"`
	Exc      string  `json:"exc,omitempty"`
	Fallback bool    `json:"fallback,omitempty"`
	Name     string  `json:"name,omitempty"`
	Data     float64 `json:"data,omitempty"`
}

func (g WikiGainItem) IsReference() bool {
	return g.Exc != ""
}

// WikiResult is the human readable projection of one box. Exc holds the
// canonical exchange key.
type WikiResult struct {
	Name          string         `json:"name"`
	Exc           string         `json:"exc"`
	Display       bool           `json:"display"`
	FallbackTimes int            `json:"fallbackTimes"`
	Gain          []WikiGainItem `json:"gain"`
}

// WikiTable maps canonical exchange keys to their wiki projection.
type WikiTable map[string]WikiResult

// FlatItem is a terminal reward after full resolution of nested tables.
type FlatItem struct {
	Weight   float64 `json:"weight"`
	Name     string  `json:"name"`
	Data     float64 `json:"data"`
	Fallback bool    `json:"fallback"`
}

type ChanceItem struct {
	Name   string  `json:"name"`
	Data   float64 `json:"data"`
	Chance string  `json:"chance"`
}
