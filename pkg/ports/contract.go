package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/picket/pkg/record"
)

// RunRecordStoreContract verifies that a RecordStore implementation adheres
// to the interface contract. Adapter test suites call it against their own
// backend.
func RunRecordStoreContract(t *testing.T, store RecordStore) {
	ctx := context.Background()
	id := "contract-record-" + time.Now().Format("20060102150405")

	fields := []string{"rhubarb", "cherry", "mud"}
	rec := record.NewMapping(fields, map[string]any{
		"rhubarb": "10",
		"cherry":  "23",
		"mud":     "1",
	})

	t.Run("Save and Load", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, id, rec))

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, fields, loaded.Fields(), "field order must survive persistence")
		for _, f := range fields {
			want, _ := rec.Get(f)
			got, _ := loaded.Get(f)
			assert.Equal(t, want, got, "field %s", f)
		}
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+id)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, id, rec))
		require.NoError(t, store.Delete(ctx, id))

		_, err := store.Load(ctx, id)
		assert.ErrorIs(t, err, ErrRecordNotFound)

		// Idempotent on unknown IDs.
		assert.NoError(t, store.Delete(ctx, id))
	})

	t.Run("List", func(t *testing.T) {
		id1 := id + "-1"
		id2 := id + "-2"
		require.NoError(t, store.Save(ctx, id1, rec))
		require.NoError(t, store.Save(ctx, id2, rec))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
