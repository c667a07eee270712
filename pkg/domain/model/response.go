package model

import (
	"time"

	"github.com/civic-lab/sevadesk/pkg/domain/types"
)

// ResponseEnvelope is the final answer returned to the caller.
// ServiceReferences holds only the shortlisted record IDs that the
// completion provider actually cited in its answer text.
type ResponseEnvelope struct {
	RequestID         string
	Response          string
	Timestamp         time.Time
	ServiceReferences []types.ServiceID
}

// References reports whether the answer cited the given record
func (r *ResponseEnvelope) References(id types.ServiceID) bool {
	for _, ref := range r.ServiceReferences {
		if ref == id {
			return true
		}
	}
	return false
}
