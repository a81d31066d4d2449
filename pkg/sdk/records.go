package sdk

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/hashicorp/go-bexpr"
)

// Record is one row returned by a list endpoint, decoded as generic JSON.
type Record map[string]any

// Field is a single key/value pair after sorting.
type Field struct {
	Key   string
	Value any
}

// titleKeys are tried in order to produce a display title for a record.
var titleKeys = []string{"name", "title", "clusterName", "customerName", "fullName", "email", "id", "_id"}

// ID returns the record identifier (id or _id), formatted as a string.
func (r Record) ID() string {
	for _, key := range []string{"id", "_id"} {
		if v, ok := r[key]; ok && v != nil {
			return FormatValue(v)
		}
	}
	return ""
}

// Title returns a short human-readable label for the record.
func (r Record) Title() string {
	for _, key := range titleKeys {
		if v, ok := r[key]; ok && v != nil {
			if s := FormatValue(v); s != "" {
				return s
			}
		}
	}
	return "(untitled)"
}

// String returns the formatted value stored under key, or "".
func (r Record) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	return FormatValue(v)
}

// Contains reports whether any scalar field contains needle, case-insensitively.
func (r Record) Contains(needle string) bool {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return true
	}
	for _, v := range r {
		switch v.(type) {
		case map[string]any, []any:
			continue
		}
		if strings.Contains(strings.ToLower(FormatValue(v)), needle) {
			return true
		}
	}
	return false
}

// SortFields returns the record fields sorted lexicographically by key.
// Nil input results in an empty slice.
func SortFields(r Record) []Field {
	if len(r) == 0 {
		return []Field{}
	}
	keys := make([]string, 0, len(r))
	for key := range r {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	sorted := make([]Field, 0, len(keys))
	for _, key := range keys {
		sorted = append(sorted, Field{Key: key, Value: r[key]})
	}
	return sorted
}

// Columns returns up to limit scalar field names shared by records, with the
// identifier and title keys first.
func Columns(records []Record, limit int) []string {
	seen := make(map[string]bool)
	var cols []string
	add := func(key string) {
		if seen[key] || (limit > 0 && len(cols) >= limit) {
			return
		}
		seen[key] = true
		cols = append(cols, key)
	}
	for _, key := range titleKeys {
		for _, r := range records {
			if _, ok := r[key]; ok {
				add(key)
				break
			}
		}
	}
	for _, r := range records {
		for _, f := range SortFields(r) {
			switch f.Value.(type) {
			case map[string]any, []any:
				continue
			}
			add(f.Key)
		}
	}
	return cols
}

// BuildBexprFilter builds a bexpr filter joining one equality clause per
// field with "and". Strings are quoted, booleans and numbers are emitted
// verbatim.
// When fields is empty an empty string is returned.
func BuildBexprFilter(fields Record) string {
	if len(fields) == 0 {
		return ""
	}
	expressions := make([]string, 0, len(fields))
	for _, f := range SortFields(fields) {
		expressions = append(expressions, fmt.Sprintf("%s == %s", f.Key, formatBexprValue(f.Value)))
	}
	return strings.Join(expressions, " and ")
}

// FilterRecords keeps the records matching a bexpr expression.
// An empty expression keeps everything. Records that cannot be evaluated
// (for example a missing field) are dropped.
func FilterRecords(records []Record, expr string) ([]Record, error) {
	if strings.TrimSpace(expr) == "" {
		return records, nil
	}
	evaluator, err := bexpr.CreateEvaluator(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", expr, err)
	}
	out := make([]Record, 0, len(records))
	for _, r := range records {
		ok, err := evaluator.Evaluate(map[string]any(r))
		if err != nil || !ok {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// FormatValue renders a JSON value for display.
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		if _, frac := math.Modf(v); frac == 0 && math.Abs(v) < 1e15 {
			return strconv.FormatFloat(v, 'f', 0, 64)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case map[string]any:
		if name, ok := v["name"].(string); ok {
			return name
		}
		return fmt.Sprintf("{%d fields}", len(v))
	case []any:
		return fmt.Sprintf("[%d items]", len(v))
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatBexprValue(value any) string {
	switch v := value.(type) {
	case string:
		return strconv.Quote(v)
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		if _, frac := math.Modf(v); frac == 0 {
			return strconv.FormatFloat(v, 'f', 0, 64)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return formatBexprValue(float64(v))
	case int, int8, int16, int32, int64:
		return fmt.Sprintf("%d", v)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	default:
		return strconv.Quote(fmt.Sprintf("%v", value))
	}
}
