package model

import (
	"net/url"

	"github.com/civic-lab/sevadesk/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// ServiceRecord represents one civic service entry in the catalog
// (license, permit, certificate, etc.). Records are immutable after
// load; every consumer holds read-only references into the catalog.
type ServiceRecord struct {
	ID                           types.ServiceID
	Title                        string
	Description                  string
	Department                   string
	RequiredDocuments            []string
	Process                      string
	ApplicationLink              string // optional
	PhysicalVerificationRequired bool
}

// Validate checks the record against the strict loader schema
func (s *ServiceRecord) Validate() error {
	if err := s.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid service ID")
	}
	if s.Title == "" {
		return goerr.New("service title is required", goerr.V("id", s.ID))
	}
	if s.Description == "" {
		return goerr.New("service description is required", goerr.V("id", s.ID))
	}
	if s.ApplicationLink != "" {
		u, err := url.Parse(s.ApplicationLink)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return goerr.New("application link must be an absolute URL",
				goerr.V("id", s.ID),
				goerr.V("link", s.ApplicationLink),
			)
		}
	}
	return nil
}
