package property

import (
	"context"
	"log/slog"
	"strings"

	"notion-config-tool/pkg/contextx"
	"notion-config-tool/pkg/metrics"
)

const listSeparator = ", "

// UnknownTypeSentinel prefixes the value Normalize returns for a tag this
// package cannot decode. Normalize never fails on such a property.
const UnknownTypeSentinel = "Unknown Type "

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Normalize flattens a property into a scalar value.
func Normalize(p Property) Value {
	return NormalizeContext(context.Background(), p)
}

// NormalizeContext is Normalize with a request scoped logger for unknown tags.
func NormalizeContext(ctx context.Context, p Property) Value {
	switch v := p.(type) {
	case nil:
		return Null()
	case Checkbox:
		return BoolValue(v.Value)
	case Number:
		return numberPtrValue(v.Value)
	case Select:
		return stringPtrValue(v.Name)
	case Status:
		return stringPtrValue(v.Name)
	case MultiSelect:
		return StringValue(strings.Join(v.Names, listSeparator))
	case Relation:
		return StringValue(strings.Join(v.IDs, listSeparator))
	case People:
		return StringValue(strings.Join(v.IDs, listSeparator))
	case Files:
		return StringValue(strings.Join(v.Names, listSeparator))
	case RichText:
		if len(v.Runs) == 0 {
			return Null()
		}

		return StringValue(strings.Join(v.Runs, ""))
	case Title:
		return StringValue(strings.Join(v.Runs, ""))
	case URL:
		return stringPtrValue(v.Value)
	case Email:
		return StringValue(v.Value)
	case PhoneNumber:
		return StringValue(v.Value)
	case Date:
		return StringValue(dateText(v.Start, v.End))
	case CreatedTime:
		return StringValue(v.Value)
	case LastEditedTime:
		return StringValue(v.Value)
	case LastEditedBy:
		return StringValue(v.ID)
	case Formula:
		return formulaValue(v)
	case Rollup:
		return rollupValue(ctx, v)
	case Unknown:
		return unknownValue(ctx, v.Tag)
	default:
		return unknownValue(ctx, string(p.Kind()))
	}
}

func unknownValue(ctx context.Context, tag string) Value {
	logger(ctx).Warn("unknown property type", slog.String("type", tag))
	metrics.UnknownPropertyTypes.WithLabelValues(tag).Inc()

	return StringValue(UnknownTypeSentinel + tag)
}

func dateText(start, end *string) string {
	if start == nil {
		return ""
	}

	if end != nil && *end != "" {
		return *start + " - " + *end
	}

	return *start
}

func formulaValue(f Formula) Value {
	switch f.Type {
	case FormulaString:
		return stringPtrValue(f.String)
	case FormulaNumber:
		return numberPtrValue(f.Number)
	case FormulaBoolean:
		return BoolValue(f.Boolean)
	case FormulaDate:
		return stringPtrValue(f.Date)
	default:
		return Null()
	}
}

func rollupValue(ctx context.Context, r Rollup) Value {
	switch r.Type {
	case RollupNumber:
		return numberPtrValue(r.Number)
	case RollupDate:
		return stringPtrValue(r.Date)
	case RollupArray:
		return StringValue(joinRollup(ctx, r.Array))
	default:
		return Null()
	}
}

func joinRollup(ctx context.Context, items []Property) string {
	parts := make([]string, len(items))

	for i, item := range items {
		parts[i] = NormalizeContext(ctx, item).Text()
	}

	return strings.Join(parts, listSeparator)
}
