package roll

import (
	"context"
)

// Store is the single shared mutable resource of the service. All mutation is
// whole-record replacement: a concurrent reader observes either the old record
// or the fully updated one, never a partial write. Update calls are serialized
// per store so two commits against the same record cannot silently overwrite
// each other; the second mutation observes the first's result.
type Store interface {
	// Get returns the record for the given EPIC id, sentinel.ErrNotFound otherwise.
	Get(ctx context.Context, id string) (Voter, error)

	// List returns all records in stable insertion order.
	List(ctx context.Context) ([]Voter, error)

	// Insert adds a new record, sentinel.ErrConflict when the id is taken.
	Insert(ctx context.Context, v Voter) error

	// Update applies mutate to a copy of the current record and replaces it with
	// the result, leaving all other records untouched. A mutation error aborts
	// the replacement and propagates unchanged.
	Update(ctx context.Context, id string, mutate func(Voter) (Voter, error)) (Voter, error)
}
