// Package sources defines the interface the pipeline uses to look up app
// metadata from a store. Each implementation maps the store's loosely-typed
// response into a fixed apps.SourceRecord at the boundary; a lookup either
// fully succeeds or returns a typed error, never a partial record.
package sources

import (
	"context"
	"slices"

	"github.com/appshelf/appshelf/pkg/apps"
)

// ID represents the identifier of a store source.
type ID string

// String returns the string representation of a source ID.
func (id ID) String() string {
	return string(id)
}

// Known store sources.
const (
	GooglePlayID ID = "google_play"
	AppStoreID   ID = "app_store"
)

// IDs returns all known source IDs.
func IDs() []ID {
	return []ID{GooglePlayID, AppStoreID}
}

// IsValid returns true if the ID is one of the defined constants.
func (id ID) IsValid() bool {
	return slices.Contains(IDs(), id)
}

// Source looks up one app in one store.
type Source interface {
	// ID returns the identifier of this source.
	ID() ID

	// Lookup fetches the store record for the given store-native
	// identifier. Failures are typed: errors.ValidationError for an
	// unusable identifier, errors.NotFoundError when the store has no
	// record, errors.APIError for transport failures.
	Lookup(ctx context.Context, id string) (*apps.SourceRecord, error)
}
