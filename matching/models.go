package matching

import (
	"context"
	"errors"
)

// FilterMode selects which part of the pool a seeker is matched against.
type FilterMode string

const (
	FilterAll         FilterMode = "all"
	FilterDestination FilterMode = "destination"
	FilterDates       FilterMode = "dates"
)

// SeekerProfile is the immutable input of one match request.
type SeekerProfile struct {
	Destination string
	TravelStyle string
	Hobbies     string
	Mode        FilterMode
	TravelDate  string // optional, empty when not supplied
}

// CandidateRecord is a single pool entry. Records are read-only during scoring.
type CandidateRecord struct {
	Destination        string
	Nationality        string
	AccommodationType  string
	TransportationType string
	TravelStyle        string
	TravelerName       string
	TravelerAge        *int
	StartDate          string
	EndDate            string
	Interests          []string
}

// Match pairs a candidate with its compatibility score for one request.
type Match struct {
	Candidate     CandidateRecord
	Compatibility int
	scored        bool
}

// Reason explains an empty but successful result.
type Reason string

const (
	ReasonNone         Reason = ""
	ReasonNoCandidates Reason = "no_candidates"
)

// Result is the outcome of a match request that did not fail.
type Result struct {
	Matches []Match
	Reason  Reason
}

// ErrInternalFailure marks a broken pipeline, as opposed to "nothing matched".
var ErrInternalFailure = errors.New("matching pipeline failure")

// PoolSource supplies the candidate pool for one request.
type PoolSource interface {
	Candidates(ctx context.Context) ([]CandidateRecord, error)
}

// PoolFunc adapts a plain function to PoolSource.
type PoolFunc func(ctx context.Context) ([]CandidateRecord, error)

func (f PoolFunc) Candidates(ctx context.Context) ([]CandidateRecord, error) { return f(ctx) }
