package catalog

import (
	"encoding/json"
	"os"

	"github.com/civic-lab/sevadesk/pkg/domain/model"
	"github.com/civic-lab/sevadesk/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// departmentEntry is the on-disk shape of one department and its
// services. The schema is strict: unknown fields are rejected so shape
// drift in the dataset fails at startup instead of leaking
// loosely-typed data into the matcher.
type departmentEntry struct {
	Department string         `json:"department"`
	Services   []serviceEntry `json:"services"`
}

type serviceEntry struct {
	ID                   string   `json:"id"`
	Title                string   `json:"title"`
	Description          string   `json:"description"`
	RequiredDocuments    []string `json:"required_documents"`
	Process              string   `json:"process"`
	ApplicationLink      string   `json:"application_link,omitempty"`
	PhysicalVerification bool     `json:"physical_verification"`
}

// Load reads the service dataset from a JSON file and builds the
// catalog. Any failure (missing file, malformed JSON, schema
// violation, duplicate IDs) wraps types.ErrDataLoad; the process must
// not serve traffic without a loaded catalog.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, goerr.Wrap(types.ErrDataLoad, "failed to open dataset file",
			goerr.V("path", path),
			goerr.V("cause", err.Error()),
		)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()

	var departments []departmentEntry
	if err := dec.Decode(&departments); err != nil {
		return nil, goerr.Wrap(types.ErrDataLoad, "failed to decode dataset",
			goerr.V("path", path),
			goerr.V("cause", err.Error()),
		)
	}

	var records []*model.ServiceRecord
	for _, dept := range departments {
		if dept.Department == "" {
			return nil, goerr.Wrap(types.ErrDataLoad, "department name is required", goerr.V("path", path))
		}
		for _, svc := range dept.Services {
			records = append(records, &model.ServiceRecord{
				ID:                           types.ServiceID(svc.ID),
				Title:                        svc.Title,
				Description:                  svc.Description,
				Department:                   dept.Department,
				RequiredDocuments:            svc.RequiredDocuments,
				Process:                      svc.Process,
				ApplicationLink:              svc.ApplicationLink,
				PhysicalVerificationRequired: svc.PhysicalVerification,
			})
		}
	}

	c, err := New(records)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid dataset", goerr.V("path", path))
	}

	return c, nil
}
