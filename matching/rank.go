package matching

import (
	"fmt"
	"math"
	"sort"
)

const (
	destinationBoost = 30
	maxScore         = 100
	capAll           = 20
	capFiltered      = 10
)

// Rank converts similarities to 0-100 scores, boosts exact destination
// matches, and returns the top candidates in descending order. Equal scores
// keep their pool order.
func Rank(candidates []CandidateRecord, scores []float64, seeker SeekerProfile) []Match {
	if len(candidates) != len(scores) {
		panic(fmt.Sprintf("rank: %d candidates but %d scores", len(candidates), len(scores)))
	}

	dest := NormalizeDestination(seeker.Destination)
	matches := make([]Match, len(candidates))
	for i, c := range candidates {
		score := int(math.RoundToEven(scores[i] * 100))
		if NormalizeDestination(c.Destination) == dest {
			score += destinationBoost
		}
		matches[i] = Match{Candidate: c, Compatibility: clip(score), scored: true}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Compatibility > matches[j].Compatibility
	})

	limit := capFiltered
	if seeker.Mode == FilterAll || seeker.Mode == "" {
		limit = capAll
	}
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func clip(score int) int {
	if score < 0 {
		return 0
	}
	if score > maxScore {
		return maxScore
	}
	return score
}
