package declare

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/picket"
)

const invoiceDoc = `
schemas:
  - name: invoice
    fields:
      - name: index
      - name: cost
        cast: decimal
      - name: due_on
        cast: date
  - name: guest
    sparse: true
    fields:
      - name: nick
      - name: score
        expr: int(value)
`

func TestParse(t *testing.T) {
	decls, err := Parse([]byte(invoiceDoc))
	require.NoError(t, err)
	require.Len(t, decls, 2)

	invoice := decls[0]
	assert.Equal(t, "invoice", invoice.Name)
	assert.False(t, invoice.Sparse)
	assert.Equal(t, []string{"index", "cost", "due_on"}, invoice.Schema.Fields())

	guest := decls[1]
	assert.Equal(t, "guest", guest.Name)
	assert.True(t, guest.Sparse)
}

func TestParse_CompiledCasters(t *testing.T) {
	decls, err := Parse([]byte(invoiceDoc))
	require.NoError(t, err)

	tp, err := decls[0].Schema.BuildTupleCast([]any{"134", "25014.99", "2017-06-20"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "134", tp.At(0))
	cost, ok := tp.At(1).(decimal.Decimal)
	require.True(t, ok, "got %T", tp.At(1))
	assert.True(t, cost.Equal(decimal.RequireFromString("25014.99")))
	assert.Equal(t, time.Date(2017, 6, 20, 0, 0, 0, 0, time.UTC), tp.At(2))
}

func TestParse_ExprCaster(t *testing.T) {
	decls, err := Parse([]byte(invoiceDoc))
	require.NoError(t, err)

	m, err := decls[1].Schema.SparseMappingCast(nil, map[string]any{"score": "17"})
	require.NoError(t, err)

	score, _ := m.Get("score")
	assert.Equal(t, 17, score)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", `{}`},
		{"unnamed schema", "schemas:\n  - fields:\n      - name: a"},
		{"duplicate schema", "schemas:\n  - name: s\n    fields: [{name: a}]\n  - name: s\n    fields: [{name: a}]"},
		{"unnamed field", "schemas:\n  - name: s\n    fields:\n      - cast: int"},
		{"unknown caster", "schemas:\n  - name: s\n    fields:\n      - name: a\n        cast: quaternion"},
		{"cast and expr", "schemas:\n  - name: s\n    fields:\n      - name: a\n        cast: int\n        expr: value"},
		{"bad expr", "schemas:\n  - name: s\n    fields:\n      - name: a\n        expr: 'int(value'"},
		{"not yaml", `: : :`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestParse_DuplicateFieldSurfacesCoreError(t *testing.T) {
	doc := "schemas:\n  - name: s\n    fields: [{name: a}, {name: a}]"
	_, err := Parse([]byte(doc))
	require.Error(t, err)

	var dup *picket.DuplicateFieldError
	assert.True(t, errors.As(err, &dup))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("testdata/definitely-not-there.yaml")
	require.Error(t, err)
}
