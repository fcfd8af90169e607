package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	goa := candidate("Goa, India", "2025-03-10")
	goa.TravelerName = "goa-0310"
	goaLater := candidate("Goa, India", "2025-04-01")
	goaLater.TravelerName = "goa-0401"
	goaNoDate := candidate("Goa, India", "")
	goaNoDate.TravelerName = "goa-nodate"
	goaBadDate := candidate("goa", "someday")
	goaBadDate.TravelerName = "goa-baddate"
	paris := candidate("Paris, France", "2025-03-10")
	paris.TravelerName = "paris"
	newYork := candidate("New York, USA", "3/10/2025")
	newYork.TravelerName = "new-york"

	pool := []CandidateRecord{goa, goaLater, goaNoDate, goaBadDate, paris, newYork}

	t.Run("All returns the pool unchanged", func(t *testing.T) {
		got := Filter(pool, SeekerProfile{Destination: "Goa", Mode: FilterAll})
		assert.Equal(t, pool, got)
	})

	t.Run("Destination exact match", func(t *testing.T) {
		got := Filter(pool, SeekerProfile{Destination: "Goa", Mode: FilterDestination})
		assert.Equal(t, []string{"goa-0310", "goa-0401", "goa-nodate", "goa-baddate"}, names(got))
	})

	t.Run("Destination substring fallback", func(t *testing.T) {
		got := Filter(pool, SeekerProfile{Destination: "York", Mode: FilterDestination})
		assert.Equal(t, []string{"new-york"}, names(got))
	})

	t.Run("Destination without matches is empty", func(t *testing.T) {
		got := Filter(pool, SeekerProfile{Destination: "Reykjavik", Mode: FilterDestination})
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("Dates narrows by destination and start day", func(t *testing.T) {
		got := Filter(pool, SeekerProfile{Destination: "Goa, India", Mode: FilterDates, TravelDate: "2025-03-10"})
		assert.Equal(t, []string{"goa-0310"}, names(got))
	})

	t.Run("Dates ignores time of day", func(t *testing.T) {
		got := Filter(pool, SeekerProfile{Destination: "Goa", Mode: FilterDates, TravelDate: "2025-04-01T18:30:00Z"})
		assert.Equal(t, []string{"goa-0401"}, names(got))
	})

	t.Run("Dates accepts month-first candidate dates", func(t *testing.T) {
		got := Filter(pool, SeekerProfile{Destination: "New York", Mode: FilterDates, TravelDate: "2025-03-10"})
		assert.Equal(t, []string{"new-york"}, names(got))
	})

	t.Run("Dates outside every start date is empty", func(t *testing.T) {
		got := Filter(pool, SeekerProfile{Destination: "Goa", Mode: FilterDates, TravelDate: "2030-01-01"})
		assert.Empty(t, got)
	})

	t.Run("Dates with unparsable seeker date is empty", func(t *testing.T) {
		got := Filter(pool, SeekerProfile{Destination: "Goa", Mode: FilterDates, TravelDate: "next week"})
		assert.Empty(t, got)
	})

	t.Run("Dates without a travel date behaves like all", func(t *testing.T) {
		got := Filter(pool, SeekerProfile{Destination: "Goa", Mode: FilterDates})
		assert.Equal(t, Filter(pool, SeekerProfile{Destination: "Goa", Mode: FilterAll}), got)
	})
}
