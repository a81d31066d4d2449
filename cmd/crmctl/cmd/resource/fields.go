package resource

import (
	"fmt"
	"strings"

	"github.com/Rahul675/indyanet-crm/pkg/sdk"
)

const cellPreviewLimit = 32

// parseFieldArgs turns repeated key=value flags into a record used to build
// an equality filter. Later values win over earlier ones for the same key.
func parseFieldArgs(args []string) (sdk.Record, []string, error) {
	fields := sdk.Record{}
	warnings := []string{}

	for _, raw := range args {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		parts := strings.SplitN(raw, "=", 2)
		if len(parts) != 2 {
			return nil, nil, fmt.Errorf("invalid field format %q (expected key=value)", raw)
		}

		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])
		if key == "" {
			return nil, nil, fmt.Errorf("field key cannot be empty (%q)", raw)
		}

		if _, exists := fields[key]; exists {
			warnings = append(warnings, fmt.Sprintf("duplicate field %q detected, last value wins", key))
		}

		fields[key] = inferFieldValue(val)
	}

	return fields, warnings, nil
}

// inferFieldValue keeps the raw text unless it is exactly true or false.
// bexpr coerces a quoted value to the kind of the record field, so "1"
// still matches a numeric 1 while "0123" and "+91..." match string fields.
func inferFieldValue(raw string) any {
	switch strings.ToLower(raw) {
	case "true":
		return true
	case "false":
		return false
	}
	return raw
}

// combineFilters joins a free-form expression and a field expression with AND.
func combineFilters(expr string, fields sdk.Record) string {
	expr = strings.TrimSpace(expr)
	fieldExpr := sdk.BuildBexprFilter(fields)
	switch {
	case fieldExpr == "":
		return expr
	case expr == "":
		return fieldExpr
	default:
		return fmt.Sprintf("(%s) and (%s)", expr, fieldExpr)
	}
}

func formatCell(value any) string {
	s := sdk.FormatValue(value)
	if s == "" {
		return "-"
	}
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= cellPreviewLimit {
		return s
	}
	return string(runes[:cellPreviewLimit]) + "..."
}
