package entity

type SortDirection string

const (
	Ascending  SortDirection = "ascending"
	Descending SortDirection = "descending"
)

type Sort struct {
	Property  string        `json:"property" yaml:"property"`
	Direction SortDirection `json:"direction" yaml:"direction"`
}

// Query is the body of a Notion database query without pagination fields.
// Filter is passed through verbatim.
type Query struct {
	Filter map[string]any `json:"filter,omitempty" yaml:"filter"`
	Sorts  []Sort         `json:"sorts,omitempty" yaml:"sorts"`
}
