package matching

// MatchView is the serialized shape of one match.
type MatchView struct {
	TravelerName       string   `json:"Traveler name"`
	Destination        string   `json:"Destination"`
	Nationality        string   `json:"Traveler nationality"`
	AccommodationType  string   `json:"Accommodation type"`
	TransportationType string   `json:"Transportation type"`
	TravelStyle        string   `json:"Travel style"`
	TravelerAge        int      `json:"Traveler age"`
	StartDate          string   `json:"Start date"`
	EndDate            string   `json:"End date"`
	Interests          []string `json:"Interests"`
	Compatibility      int      `json:"compatibility"`
}

// Defaults fills attributes a record does not carry. It is applied only when
// serializing, never while scoring.
var Defaults = struct {
	TravelerName  string
	TravelerAge   int
	Compatibility int
}{
	TravelerName:  "Unknown",
	TravelerAge:   25,
	Compatibility: 50,
}

// Present converts a match into its response view.
func Present(m Match) MatchView {
	c := m.Candidate
	v := MatchView{
		TravelerName:       c.TravelerName,
		Destination:        c.Destination,
		Nationality:        c.Nationality,
		AccommodationType:  c.AccommodationType,
		TransportationType: c.TransportationType,
		TravelStyle:        c.TravelStyle,
		TravelerAge:        Defaults.TravelerAge,
		StartDate:          c.StartDate,
		EndDate:            c.EndDate,
		Interests:          c.Interests,
		Compatibility:      Defaults.Compatibility,
	}
	if v.TravelerName == "" {
		v.TravelerName = Defaults.TravelerName
	}
	if c.TravelerAge != nil {
		v.TravelerAge = *c.TravelerAge
	}
	if v.Interests == nil {
		v.Interests = []string{}
	}
	if m.scored {
		v.Compatibility = m.Compatibility
	}
	return v
}

// PresentAll always returns a non-nil slice so empty results encode as [].
func PresentAll(matches []Match) []MatchView {
	out := make([]MatchView, 0, len(matches))
	for _, m := range matches {
		out = append(out, Present(m))
	}
	return out
}
