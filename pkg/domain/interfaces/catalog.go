package interfaces

import (
	"iter"

	"github.com/civic-lab/sevadesk/pkg/domain/model"
	"github.com/civic-lab/sevadesk/pkg/domain/types"
)

// Catalog is the read-only view of the loaded service records.
// The catalog is populated once at startup and never mutated for the
// process lifetime, so implementations need no synchronization and
// concurrent readers are safe.
type Catalog interface {
	// Get returns the record for the given ID, or false if absent
	Get(id types.ServiceID) (*model.ServiceRecord, bool)

	// All iterates records in load order. The sequence is restartable.
	All() iter.Seq[*model.ServiceRecord]

	// Len returns the number of records in the catalog
	Len() int
}
