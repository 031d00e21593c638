package property

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

type named struct {
	Name string `json:"name"`
}

type idRef struct {
	ID string `json:"id"`
}

type textRun struct {
	PlainText string `json:"plain_text"`
}

type dateRange struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}

type rawFormula struct {
	Type    string     `json:"type"`
	String  *string    `json:"string"`
	Number  *float64   `json:"number"`
	Boolean bool       `json:"boolean"`
	Date    *dateRange `json:"date"`
}

type rawRollup struct {
	Type   string                `json:"type"`
	Array  []jsoniter.RawMessage `json:"array"`
	Number *float64              `json:"number"`
	Date   *dateRange            `json:"date"`
}

type rawProperty struct {
	Type           string      `json:"type"`
	Checkbox       bool        `json:"checkbox"`
	Number         *float64    `json:"number"`
	Select         *named      `json:"select"`
	Status         *named      `json:"status"`
	MultiSelect    []named     `json:"multi_select"`
	Relation       []idRef     `json:"relation"`
	People         []idRef     `json:"people"`
	Files          []named     `json:"files"`
	RichText       []textRun   `json:"rich_text"`
	Title          []textRun   `json:"title"`
	URL            *string     `json:"url"`
	Email          *string     `json:"email"`
	PhoneNumber    *string     `json:"phone_number"`
	Date           *dateRange  `json:"date"`
	CreatedTime    string      `json:"created_time"`
	LastEditedTime string      `json:"last_edited_time"`
	LastEditedBy   *idRef      `json:"last_edited_by"`
	Formula        *rawFormula `json:"formula"`
	Rollup         *rawRollup  `json:"rollup"`
}

// Decode builds a property from its Notion JSON form. The "type" field is
// trusted over the shape of the payload.
func Decode(data []byte) (Property, error) {
	var raw rawProperty
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	base := payload{raw: append([]byte(nil), data...)}

	switch Kind(raw.Type) {
	case KindCheckbox:
		return Checkbox{payload: base, Value: raw.Checkbox}, nil
	case KindNumber:
		return Number{payload: base, Value: raw.Number}, nil
	case KindSelect:
		return Select{payload: base, Name: namePtr(raw.Select)}, nil
	case KindStatus:
		return Status{payload: base, Name: namePtr(raw.Status)}, nil
	case KindMultiSelect:
		return MultiSelect{payload: base, Names: names(raw.MultiSelect)}, nil
	case KindRelation:
		return Relation{payload: base, IDs: ids(raw.Relation)}, nil
	case KindPeople:
		return People{payload: base, IDs: ids(raw.People)}, nil
	case KindFiles:
		return Files{payload: base, Names: names(raw.Files)}, nil
	case KindRichText:
		return RichText{payload: base, Runs: runs(raw.RichText)}, nil
	case KindTitle:
		return Title{payload: base, Runs: runs(raw.Title)}, nil
	case KindURL:
		return URL{payload: base, Value: raw.URL}, nil
	case KindEmail:
		return Email{payload: base, Value: deref(raw.Email)}, nil
	case KindPhoneNumber:
		return PhoneNumber{payload: base, Value: deref(raw.PhoneNumber)}, nil
	case KindDate:
		d := Date{payload: base}
		if raw.Date != nil {
			d.Start, d.End = raw.Date.Start, raw.Date.End
		}

		return d, nil
	case KindCreatedTime:
		return CreatedTime{payload: base, Value: raw.CreatedTime}, nil
	case KindLastEditedTime:
		return LastEditedTime{payload: base, Value: raw.LastEditedTime}, nil
	case KindLastEditedBy:
		var id string
		if raw.LastEditedBy != nil {
			id = raw.LastEditedBy.ID
		}

		return LastEditedBy{payload: base, ID: id}, nil
	case KindFormula:
		return decodeFormula(base, raw.Formula), nil
	case KindRollup:
		return decodeRollup(base, raw.Rollup)
	default:
		return Unknown{payload: base, Tag: raw.Type}, nil
	}
}

func decodeFormula(base payload, f *rawFormula) Formula {
	if f == nil {
		return Formula{payload: base}
	}

	out := Formula{
		payload: base,
		Type:    FormulaType(f.Type),
		String:  f.String,
		Number:  f.Number,
		Boolean: f.Boolean,
	}

	if f.Date != nil {
		out.Date = f.Date.Start
	}

	return out
}

func decodeRollup(base payload, r *rawRollup) (Property, error) {
	if r == nil {
		return Rollup{payload: base}, nil
	}

	out := Rollup{
		payload: base,
		Type:    RollupType(r.Type),
		Number:  r.Number,
	}

	if r.Date != nil {
		out.Date = r.Date.Start
	}

	for i, item := range r.Array {
		member, err := Decode(item)
		if err != nil {
			return nil, fmt.Errorf("rollup member %d: %w", i, err)
		}

		out.Array = append(out.Array, member)
	}

	return out, nil
}

func namePtr(n *named) *string {
	if n == nil {
		return nil
	}

	return &n.Name
}

func names(list []named) []string {
	out := make([]string, len(list))
	for i, n := range list {
		out[i] = n.Name
	}

	return out
}

func ids(list []idRef) []string {
	out := make([]string, len(list))
	for i, r := range list {
		out[i] = r.ID
	}

	return out
}

func runs(list []textRun) []string {
	out := make([]string, len(list))
	for i, r := range list {
		out[i] = r.PlainText
	}

	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

type rawPage struct {
	ID         string                         `json:"id"`
	Properties map[string]jsoniter.RawMessage `json:"properties"`
}

// UnmarshalJSON decodes a Notion page object.
func (p *Page) UnmarshalJSON(data []byte) error {
	var raw rawPage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("json.Unmarshal: %w", err)
	}

	props := make(map[string]Property, len(raw.Properties))

	for name, item := range raw.Properties {
		prop, err := Decode(item)
		if err != nil {
			return fmt.Errorf("property %q: %w", name, err)
		}

		props[name] = prop
	}

	p.ID = raw.ID
	p.Properties = props

	return nil
}

// MarshalJSON re-encodes the page from the raw property payloads.
func (p Page) MarshalJSON() ([]byte, error) {
	raw := rawPage{ID: p.ID, Properties: make(map[string]jsoniter.RawMessage, len(p.Properties))}

	for name, prop := range p.Properties {
		raw.Properties[name] = prop.Raw()
	}

	return json.Marshal(raw)
}
