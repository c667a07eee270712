package catalog

import (
	"iter"

	"github.com/civic-lab/sevadesk/pkg/domain/interfaces"
	"github.com/civic-lab/sevadesk/pkg/domain/model"
	"github.com/civic-lab/sevadesk/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Catalog holds the full set of service records in memory for the
// process lifetime. It is populated once at construction and exposes
// no write path, so concurrent readers need no locking.
type Catalog struct {
	records []*model.ServiceRecord
	byID    map[types.ServiceID]*model.ServiceRecord
}

var _ interfaces.Catalog = (*Catalog)(nil)

// New builds a catalog from the given records. It fails with a
// data-load error on invalid records or duplicate IDs.
func New(records []*model.ServiceRecord) (*Catalog, error) {
	c := &Catalog{
		records: make([]*model.ServiceRecord, 0, len(records)),
		byID:    make(map[types.ServiceID]*model.ServiceRecord, len(records)),
	}

	for _, record := range records {
		if err := record.Validate(); err != nil {
			return nil, goerr.Wrap(types.ErrDataLoad, "invalid service record",
				goerr.V("id", record.ID),
				goerr.V("cause", err.Error()),
			)
		}
		if _, exists := c.byID[record.ID]; exists {
			return nil, goerr.Wrap(types.ErrDataLoad, "duplicate service ID", goerr.V("id", record.ID))
		}
		c.records = append(c.records, record)
		c.byID[record.ID] = record
	}

	return c, nil
}

// Get returns the record for the given ID, or false if absent
func (c *Catalog) Get(id types.ServiceID) (*model.ServiceRecord, bool) {
	record, ok := c.byID[id]
	return record, ok
}

// All iterates records in load order
func (c *Catalog) All() iter.Seq[*model.ServiceRecord] {
	return func(yield func(*model.ServiceRecord) bool) {
		for _, record := range c.records {
			if !yield(record) {
				return
			}
		}
	}
}

// Len returns the number of records in the catalog
func (c *Catalog) Len() int {
	return len(c.records)
}
