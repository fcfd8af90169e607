package pool

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"gitea.kood.tech/petrkubec/travel-buddy/matching"
)

var (
	indianDestinations = []string{"Dehradun", "Bageshwar", "Goa", "Kerala", "Rajasthan", "Himachal Pradesh", "Shimla", "Nanital", "Mussoorie", "Lucknow", "Delhi", "Mumbai", "Bangalore"}
	indianNames        = []string{"Aarav Tyagi", "Priya Patel", "Rohan Singh", "Ananya Gupta", "Neha Kumar", "Arjun Mehta"}
	indianStyles       = []string{"Adventurer", "Cultural", "Relaxed", "Foodie", "Spiritual", "Backpacker", "Beach Lover"}
	indianInterests    = [][]string{{"Beaches", "Photography"}, {"Temples", "Culture"}, {"Food", "Shopping"}}

	intlDestinations = []string{"Paris, France", "Tokyo, Japan", "Bali, Indonesia", "London, UK", "New York, USA", "Sydney, Australia", "Bangkok, Thailand", "Dubai, UAE", "Singapore", "Rome, Italy"}
	intlNames        = []string{"Michael Brown", "Sophie Turner", "David Lee", "Emma Wilson", "James Smith", "Maria Garcia"}
	intlNationality  = []string{"American", "British", "Canadian", "Australian", "German", "French", "Japanese", "Korean"}
	intlStyles       = []string{"Adventurer", "Cultural", "Luxury", "Explorer"}
	intlInterests    = [][]string{{"Museums", "Art"}, {"Hiking", "Nature"}, {"Food", "Wine"}, {"Shopping", "Nightlife"}}
)

const dateLayout = "2006-01-02"

// Generator produces synthetic domestic and international travelers. The same
// seed and clock always give the same pool.
type Generator struct {
	Seed          int64
	Domestic      int
	International int
	Now           func() time.Time
}

func NewGenerator(seed int64) *Generator {
	return &Generator{Seed: seed, Domestic: 50, International: 50, Now: time.Now}
}

func (g *Generator) Name() string { return fmt.Sprintf("generated:%d", g.Seed) }

func (g *Generator) Load(ctx context.Context) ([]matching.CandidateRecord, error) {
	return g.Generate(), nil
}

// Generate reseeds on every call.
func (g *Generator) Generate() []matching.CandidateRecord {
	r := rand.New(rand.NewSource(g.Seed))
	now := time.Now()
	if g.Now != nil {
		now = g.Now()
	}

	records := make([]matching.CandidateRecord, 0, g.Domestic+g.International)
	for i := 0; i < g.Domestic; i++ {
		start, end := tripDates(r, now)
		age := 22 + r.Intn(14)
		records = append(records, matching.CandidateRecord{
			Destination:        pick(r, indianDestinations) + ", India",
			StartDate:          start,
			EndDate:            end,
			TravelerName:       pick(r, indianNames),
			TravelerAge:        &age,
			Nationality:        "Indian",
			AccommodationType:  pick(r, []string{"Hotel", "Hostel", "Resort", "Airbnb"}),
			TransportationType: pick(r, []string{"Flight", "Train", "Bus"}),
			TravelStyle:        pick(r, indianStyles),
			Interests:          indianInterests[r.Intn(len(indianInterests))],
		})
	}
	for i := 0; i < g.International; i++ {
		start, end := tripDates(r, now)
		age := 25 + r.Intn(21)
		records = append(records, matching.CandidateRecord{
			Destination:        pick(r, intlDestinations),
			StartDate:          start,
			EndDate:            end,
			TravelerName:       pick(r, intlNames),
			TravelerAge:        &age,
			Nationality:        pick(r, intlNationality),
			AccommodationType:  pick(r, []string{"Hotel", "Resort", "Airbnb", "Guesthouse"}),
			TransportationType: pick(r, []string{"Flight", "Train", "Car"}),
			TravelStyle:        pick(r, intlStyles),
			Interests:          intlInterests[r.Intn(len(intlInterests))],
		})
	}
	return records
}

// tripDates starts 1-60 days out and lasts 5-14 days.
func tripDates(r *rand.Rand, now time.Time) (string, string) {
	startDays := 1 + r.Intn(60)
	endDays := startDays + 5 + r.Intn(10)
	return now.AddDate(0, 0, startDays).Format(dateLayout), now.AddDate(0, 0, endDays).Format(dateLayout)
}

func pick(r *rand.Rand, options []string) string {
	return options[r.Intn(len(options))]
}
