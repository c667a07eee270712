package model

import "github.com/civic-lab/sevadesk/pkg/domain/types"

// Match pairs a service record with its relevance score against a question
type Match struct {
	Record *ServiceRecord
	Score  int
}

// MatchResult is an ordered shortlist of matches, descending by score.
// Ties keep catalog load order so results are deterministic.
type MatchResult []Match

// Empty reports whether no record scored above zero. This is a valid
// outcome, not an error: downstream stages must answer "no matching
// service found" rather than fail.
func (m MatchResult) Empty() bool {
	return len(m) == 0
}

// IDs returns the shortlisted record IDs in rank order
func (m MatchResult) IDs() []types.ServiceID {
	ids := make([]types.ServiceID, 0, len(m))
	for _, match := range m {
		ids = append(ids, match.Record.ID)
	}
	return ids
}
