package property

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports a property whose tag does not match what the caller
// expected. It means the remote schema drifted.
type ParseError struct {
	Op   string
	Want Kind
	Got  Kind
	Raw  []byte
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: not a %s property (got %s)", e.Op, e.Want, e.Got)
}

func mismatch(op string, want Kind, p Property) *ParseError {
	if p == nil {
		return &ParseError{Op: op, Want: want, Got: "missing"}
	}

	return &ParseError{Op: op, Want: want, Got: p.Kind(), Raw: p.Raw()}
}

func AsCheckbox(p Property) (bool, error) {
	v, ok := p.(Checkbox)
	if !ok {
		return false, mismatch("parseCheckbox", KindCheckbox, p)
	}

	return v.Value, nil
}

// AsNumber also accepts rich text holding a number. Empty text is nil.
func AsNumber(p Property) (*float64, error) {
	switch v := p.(type) {
	case Number:
		return v.Value, nil
	case RichText:
		text := strings.TrimSpace(strings.Join(v.Runs, ""))
		if text == "" {
			return nil, nil
		}

		n, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, &ParseError{Op: "parseNumber", Want: KindNumber, Got: KindRichText, Raw: v.Raw()}
		}

		return &n, nil
	default:
		return nil, mismatch("parseNumber", KindNumber, p)
	}
}

// AsRichText returns nil for an empty run list.
func AsRichText(p Property) (*string, error) {
	v, ok := p.(RichText)
	if !ok {
		return nil, mismatch("parseRichText", KindRichText, p)
	}

	if len(v.Runs) == 0 {
		return nil, nil
	}

	s := strings.Join(v.Runs, "")

	return &s, nil
}

// AsTitle returns "" for an empty run list.
func AsTitle(p Property) (string, error) {
	v, ok := p.(Title)
	if !ok {
		return "", mismatch("parseTitle", KindTitle, p)
	}

	return strings.Join(v.Runs, ""), nil
}

func AsSelect(p Property) (*string, error) {
	v, ok := p.(Select)
	if !ok {
		return nil, mismatch("parseSelect", KindSelect, p)
	}

	return v.Name, nil
}

func AsRelation(p Property) (string, error) {
	v, ok := p.(Relation)
	if !ok {
		return "", mismatch("parseRelation", KindRelation, p)
	}

	return strings.Join(v.IDs, listSeparator), nil
}

func AsFormula(p Property) (Value, error) {
	v, ok := p.(Formula)
	if !ok {
		return Null(), mismatch("parseFormula", KindFormula, p)
	}

	switch v.Type {
	case FormulaString, FormulaNumber, FormulaBoolean, FormulaDate:
		return formulaValue(v), nil
	default:
		return Null(), &ParseError{Op: "parseFormula", Want: KindFormula, Got: Kind("formula." + string(v.Type)), Raw: v.Raw()}
	}
}

func rollupArray(op string, p Property) (Rollup, error) {
	v, ok := p.(Rollup)
	if !ok || v.Type != RollupArray {
		return Rollup{}, mismatch(op, KindRollup, p)
	}

	return v, nil
}

// AsRollup joins the members of an array rollup.
func AsRollup(p Property) (string, error) {
	v, err := rollupArray("parseRollup", p)
	if err != nil {
		return "", err
	}

	return joinRollup(context.Background(), v.Array), nil
}

// AsRollupBool reads a rollup that wraps a single checkbox. When the first
// member is not a checkbox the joined text is parsed instead.
func AsRollupBool(p Property) (bool, error) {
	v, err := rollupArray("parseRollupBoolean", p)
	if err != nil {
		return false, err
	}

	if len(v.Array) == 0 {
		return false, nil
	}

	if first, ok := v.Array[0].(Checkbox); ok {
		return first.Value, nil
	}

	text, _, _ := strings.Cut(joinRollup(context.Background(), v.Array), ",")
	text = strings.ToLower(strings.TrimSpace(text))

	switch text {
	case "true", "1":
		return true, nil
	case "false", "0", "":
		return false, nil
	default:
		return true, nil
	}
}
