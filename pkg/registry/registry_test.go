package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/picket"
	"github.com/aretw0/picket/pkg/declare"
)

func declared(t *testing.T, name string, fields ...string) declare.Declared {
	t.Helper()
	sch, err := picket.Define(fields)
	require.NoError(t, err)
	return declare.Declared{Name: name, Schema: sch}
}

func TestRegistry_AddGet(t *testing.T) {
	r := New()

	require.NoError(t, r.Add(declared(t, "invoice", "index", "cost")))

	d, ok := r.Get("invoice")
	require.True(t, ok)
	assert.Equal(t, []string{"index", "cost"}, d.Schema.Fields())

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestRegistry_DuplicateName(t *testing.T) {
	r := New()

	require.NoError(t, r.Add(declared(t, "invoice", "a")))
	err := r.Add(declared(t, "invoice", "b"))
	assert.Error(t, err)
}

func TestRegistry_RejectsIncomplete(t *testing.T) {
	r := New()

	assert.Error(t, r.Add(declare.Declared{Name: "", Schema: nil}))
	assert.Error(t, r.Add(declare.Declared{Name: "x", Schema: nil}))
}

func TestRegistry_Names(t *testing.T) {
	r := New()
	require.NoError(t, r.Add(declared(t, "zeta", "a")))
	require.NoError(t, r.Add(declared(t, "alpha", "a")))

	assert.Equal(t, []string{"alpha", "zeta"}, r.Names())
}

func TestRegistry_LoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schemas.yaml")
	doc := "schemas:\n  - name: invoice\n    fields:\n      - name: index\n      - name: cost\n        cast: decimal\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	r := New()
	require.NoError(t, r.LoadFile(path))

	d, ok := r.Get("invoice")
	require.True(t, ok)
	assert.Equal(t, []string{"index", "cost"}, d.Schema.Fields())

	// Loading the same file again collides on names.
	assert.Error(t, r.LoadFile(path))
}
