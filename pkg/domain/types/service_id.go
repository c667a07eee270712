package types

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

// ServiceID represents a unique identifier for a civic service record
type ServiceID string

var idPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Validate checks if the ServiceID is valid
func (s ServiceID) Validate() error {
	if s == "" {
		return goerr.New("service ID cannot be empty")
	}
	if !idPattern.MatchString(string(s)) {
		return goerr.New("service ID must be lowercase alphanumeric with hyphens", goerr.V("id", s))
	}
	return nil
}

// String returns the string representation of ServiceID
func (s ServiceID) String() string {
	return string(s)
}
