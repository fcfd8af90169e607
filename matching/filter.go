package matching

import (
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"1/2/2006",
	"01/02/2006",
}

// parseDate accepts the date shapes found in the datasets and in requests.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Filter narrows the pool according to the seeker's filter mode. An empty
// result is a normal outcome, never an error.
func Filter(pool []CandidateRecord, seeker SeekerProfile) []CandidateRecord {
	switch seeker.Mode {
	case FilterDestination:
		return byDestination(pool, NormalizeDestination(seeker.Destination))
	case FilterDates:
		// No date supplied: the whole pool is returned on purpose.
		if strings.TrimSpace(seeker.TravelDate) == "" {
			return pool
		}
		return byStartDate(byDestination(pool, NormalizeDestination(seeker.Destination)), seeker.TravelDate)
	default:
		return pool
	}
}

// byDestination keeps exact normalized matches, falling back to substring
// containment when nothing matches exactly.
func byDestination(pool []CandidateRecord, dest string) []CandidateRecord {
	exact := make([]CandidateRecord, 0)
	for _, c := range pool {
		if NormalizeDestination(c.Destination) == dest {
			exact = append(exact, c)
		}
	}
	if len(exact) > 0 {
		return exact
	}

	partial := make([]CandidateRecord, 0)
	for _, c := range pool {
		if strings.Contains(NormalizeDestination(c.Destination), dest) {
			partial = append(partial, c)
		}
	}
	return partial
}

func byStartDate(pool []CandidateRecord, travelDate string) []CandidateRecord {
	out := make([]CandidateRecord, 0)
	want, ok := parseDate(travelDate)
	if !ok {
		return out
	}
	for _, c := range pool {
		start, ok := parseDate(c.StartDate)
		if !ok {
			continue
		}
		if sameDay(start, want) {
			out = append(out, c)
		}
	}
	return out
}
