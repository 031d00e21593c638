// Package property models Notion database properties as a closed sum type
// and normalizes them into flat scalar values.
package property

type Kind string

const (
	KindCheckbox       Kind = "checkbox"
	KindCreatedTime    Kind = "created_time"
	KindDate           Kind = "date"
	KindEmail          Kind = "email"
	KindFiles          Kind = "files"
	KindFormula        Kind = "formula"
	KindLastEditedBy   Kind = "last_edited_by"
	KindLastEditedTime Kind = "last_edited_time"
	KindMultiSelect    Kind = "multi_select"
	KindNumber         Kind = "number"
	KindPeople         Kind = "people"
	KindPhoneNumber    Kind = "phone_number"
	KindRelation       Kind = "relation"
	KindRichText       Kind = "rich_text"
	KindRollup         Kind = "rollup"
	KindSelect         Kind = "select"
	KindStatus         Kind = "status"
	KindTitle          Kind = "title"
	KindURL            Kind = "url"
)

// Property is one Notion property value. The set of implementations is
// closed: every variant lives in this package.
type Property interface {
	Kind() Kind
	// Raw returns the JSON payload the value was decoded from, if any.
	Raw() []byte

	sealed()
}

type payload struct {
	raw []byte
}

func (p payload) Raw() []byte { return p.raw }

func (payload) sealed() {}

type Checkbox struct {
	payload
	Value bool
}

type Number struct {
	payload
	Value *float64
}

type Select struct {
	payload
	Name *string
}

type Status struct {
	payload
	Name *string
}

type MultiSelect struct {
	payload
	Names []string
}

type Relation struct {
	payload
	IDs []string
}

type People struct {
	payload
	IDs []string
}

type Files struct {
	payload
	Names []string
}

// RichText holds the plain text of every run in source order.
type RichText struct {
	payload
	Runs []string
}

type Title struct {
	payload
	Runs []string
}

type URL struct {
	payload
	Value *string
}

type Email struct {
	payload
	Value string
}

type PhoneNumber struct {
	payload
	Value string
}

// Date is empty when Start is nil.
type Date struct {
	payload
	Start *string
	End   *string
}

type CreatedTime struct {
	payload
	Value string
}

type LastEditedTime struct {
	payload
	Value string
}

type LastEditedBy struct {
	payload
	ID string
}

type FormulaType string

const (
	FormulaString  FormulaType = "string"
	FormulaNumber  FormulaType = "number"
	FormulaBoolean FormulaType = "boolean"
	FormulaDate    FormulaType = "date"
)

type Formula struct {
	payload
	Type    FormulaType
	String  *string
	Number  *float64
	Boolean bool
	Date    *string
}

type RollupType string

const (
	RollupArray  RollupType = "array"
	RollupNumber RollupType = "number"
	RollupDate   RollupType = "date"
)

// Rollup members are full properties carrying their own tag.
type Rollup struct {
	payload
	Type   RollupType
	Array  []Property
	Number *float64
	Date   *string
}

// Unknown keeps a property whose tag this package does not know.
type Unknown struct {
	payload
	Tag string
}

func (Checkbox) Kind() Kind       { return KindCheckbox }
func (Number) Kind() Kind         { return KindNumber }
func (Select) Kind() Kind         { return KindSelect }
func (Status) Kind() Kind         { return KindStatus }
func (MultiSelect) Kind() Kind    { return KindMultiSelect }
func (Relation) Kind() Kind       { return KindRelation }
func (People) Kind() Kind         { return KindPeople }
func (Files) Kind() Kind          { return KindFiles }
func (RichText) Kind() Kind       { return KindRichText }
func (Title) Kind() Kind          { return KindTitle }
func (URL) Kind() Kind            { return KindURL }
func (Email) Kind() Kind          { return KindEmail }
func (PhoneNumber) Kind() Kind    { return KindPhoneNumber }
func (Date) Kind() Kind           { return KindDate }
func (CreatedTime) Kind() Kind    { return KindCreatedTime }
func (LastEditedTime) Kind() Kind { return KindLastEditedTime }
func (LastEditedBy) Kind() Kind   { return KindLastEditedBy }
func (Formula) Kind() Kind        { return KindFormula }
func (Rollup) Kind() Kind         { return KindRollup }
func (u Unknown) Kind() Kind      { return Kind(u.Tag) }

// Page is one database row as returned by the Notion query endpoint.
type Page struct {
	ID         string
	Properties map[string]Property
}

// Get returns the named property or nil.
func (p Page) Get(name string) Property {
	return p.Properties[name]
}
