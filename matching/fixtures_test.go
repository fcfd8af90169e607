package matching

import "fmt"

func candidate(dest, start string) CandidateRecord {
	return CandidateRecord{
		Destination:        dest,
		Nationality:        "Indian",
		AccommodationType:  "Hotel",
		TransportationType: "Train",
		TravelStyle:        "Cultural",
		TravelerName:       "Test Traveler",
		StartDate:          start,
	}
}

func namedPool(n int, dest string) []CandidateRecord {
	pool := make([]CandidateRecord, n)
	for i := range pool {
		pool[i] = candidate(dest, "2025-03-10")
		pool[i].TravelerName = fmt.Sprintf("traveler-%02d", i)
	}
	return pool
}

func names(records []CandidateRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.TravelerName
	}
	return out
}
