// Package ports defines the driven-side interfaces the adapters implement,
// plus reusable contract tests for them.
package ports

import (
	"context"
	"errors"

	"github.com/aretw0/picket/pkg/record"
)

// ErrRecordNotFound is returned by RecordStore.Load for unknown record IDs.
var ErrRecordNotFound = errors.New("record not found")

// RecordStore persists built records by ID. It lets the HTTP adapter hand
// out record handles instead of re-building on every read.
type RecordStore interface {
	// Save persists the record under the given ID.
	Save(ctx context.Context, id string, rec *record.Mapping) error

	// Load retrieves a record by ID.
	// Returns ErrRecordNotFound if the ID is unknown.
	Load(ctx context.Context, id string) (*record.Mapping, error)

	// Delete removes a record by ID. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored records.
	List(ctx context.Context) ([]string, error)
}
