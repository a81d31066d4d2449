package resource

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/Rahul675/indyanet-crm/pkg/sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldArgs_Duplicates(t *testing.T) {
	t.Run("last value wins for duplicate keys", func(t *testing.T) {
		fields, warnings, err := parseFieldArgs([]string{"status=open", "zone=north", "status=closed"})
		assert.NoError(t, err)

		assert.Equal(t, "closed", fields["status"], "Last status value should win")
		assert.Equal(t, "north", fields["zone"])

		require.NotEmpty(t, warnings, "Should have warning about duplicate")
		assert.Contains(t, warnings[0], "status")
		assert.Contains(t, warnings[0], "duplicate")
	})

	t.Run("no warnings for unique keys", func(t *testing.T) {
		fields, warnings, err := parseFieldArgs([]string{"status=open", "zone=north", " ", "plan=gold"})
		assert.NoError(t, err)
		assert.Len(t, fields, 3)
		assert.Empty(t, warnings)
	})

	t.Run("invalid input", func(t *testing.T) {
		_, _, err := parseFieldArgs([]string{"status"})
		assert.Error(t, err)

		_, _, err = parseFieldArgs([]string{"=open"})
		assert.Error(t, err)
	})
}

func TestInferFieldValue(t *testing.T) {
	assert.Equal(t, true, inferFieldValue("TRUE"))
	assert.Equal(t, false, inferFieldValue("false"))
	assert.Equal(t, "1", inferFieldValue("1"))
	assert.Equal(t, "0", inferFieldValue("0"))
	assert.Equal(t, "0123", inferFieldValue("0123"))
	assert.Equal(t, "+919800000000", inferFieldValue("+919800000000"))
	assert.Equal(t, "north", inferFieldValue("north"))
}

func TestFieldFiltersMatchRecords(t *testing.T) {
	records := []sdk.Record{
		{"id": "c-1", "vlan": float64(1), "phone": "+919800000000", "code": "0123", "paid": true, "status": "active"},
		{"id": "c-2", "vlan": float64(0), "phone": "+919811111111", "code": "0456", "paid": false, "status": "active"},
		{"id": "c-3", "vlan": float64(1), "phone": "+919822222222", "code": "0789", "paid": true, "status": "closed"},
	}

	tests := []struct {
		name string
		args []string
		expr string
		want []string
	}{
		{name: "numeric one", args: []string{"vlan=1"}, want: []string{"c-1", "c-3"}},
		{name: "numeric zero", args: []string{"vlan=0"}, want: []string{"c-2"}},
		{name: "plus-prefixed string", args: []string{"phone=+919800000000"}, want: []string{"c-1"}},
		{name: "zero-padded string", args: []string{"code=0456"}, want: []string{"c-2"}},
		{name: "boolean", args: []string{"paid=false"}, want: []string{"c-2"}},
		{name: "several fields", args: []string{"status=active", "vlan=1"}, want: []string{"c-1"}},
		{name: "fields with expression", args: []string{"paid=true"}, expr: `status != "closed"`, want: []string{"c-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, _, err := parseFieldArgs(tt.args)
			require.NoError(t, err)

			out, err := sdk.FilterRecords(records, combineFilters(tt.expr, fields))
			require.NoError(t, err)

			ids := make([]string, 0, len(out))
			for _, r := range out {
				ids = append(ids, r.ID())
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestCombineFilters(t *testing.T) {
	fields := sdk.Record{"status": "open", "paid": false}

	assert.Equal(t, "", combineFilters("  ", nil))
	assert.Equal(t, `name matches "Net"`, combineFilters(`name matches "Net"`, nil))
	assert.Equal(t, `paid == false and status == "open"`, combineFilters("", fields))
	assert.Equal(t, `(name matches "Net") and (paid == false and status == "open")`, combineFilters(`name matches "Net"`, fields))
}

func TestFormatCell(t *testing.T) {
	assert.Equal(t, "-", formatCell(nil))
	assert.Equal(t, "a b", formatCell("a\n  b"))
	long := formatCell("0123456789012345678901234567890123456789")
	assert.Len(t, long, cellPreviewLimit+3)

	name := strings.Repeat("a", cellPreviewLimit-1) + "é-tail"
	cut := formatCell(name)
	assert.True(t, utf8.ValidString(cut))
	assert.Equal(t, strings.Repeat("a", cellPreviewLimit-1)+"é...", cut)
}
