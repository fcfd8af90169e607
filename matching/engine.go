package matching

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Engine runs one stateless match pass per request. It is safe for
// concurrent use as long as Pool is.
type Engine struct {
	Pool PoolSource
	Log  logrus.FieldLogger
}

func NewEngine(pool PoolSource, log logrus.FieldLogger) *Engine {
	return &Engine{Pool: pool, Log: log}
}

// Match assembles the pool, filters, scores and ranks it. An empty result
// carries ReasonNoCandidates; a broken pipeline returns ErrInternalFailure.
func (e *Engine) Match(ctx context.Context, seeker SeekerProfile) (res Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			res = Result{}
			err = fmt.Errorf("%w: %v", ErrInternalFailure, p)
		}
	}()

	pool, err := e.Pool.Candidates(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("%w: load pool: %v", ErrInternalFailure, err)
	}

	log := e.logger().WithFields(logrus.Fields{
		"filter":      seeker.Mode,
		"destination": seeker.Destination,
		"travel_date": seeker.TravelDate,
	})

	filtered := Filter(pool, seeker)
	log.WithField("candidates", len(filtered)).Debug("filtered pool")
	if len(filtered) == 0 {
		return Result{Matches: []Match{}, Reason: ReasonNoCandidates}, nil
	}

	matches := Rank(filtered, Score(seeker, filtered), seeker)
	log.WithField("matches", len(matches)).Info("match request served")
	return Result{Matches: matches}, nil
}

func (e *Engine) logger() logrus.FieldLogger {
	if e.Log == nil {
		return logrus.StandardLogger()
	}
	return e.Log
}
