// Package pool assembles the candidate pool a match request is scored against.
package pool

import (
	"context"
	"fmt"

	"gitea.kood.tech/petrkubec/travel-buddy/matching"
)

// Source yields part of the candidate pool.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]matching.CandidateRecord, error)
}

// Assembler concatenates its sources in order. That order is the pool order
// used to break ranking ties.
type Assembler struct {
	Sources []Source
}

func NewAssembler(sources ...Source) *Assembler {
	return &Assembler{Sources: sources}
}

// Candidates implements matching.PoolSource.
func (a *Assembler) Candidates(ctx context.Context) ([]matching.CandidateRecord, error) {
	var out []matching.CandidateRecord
	for _, s := range a.Sources {
		records, err := s.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("pool source %s: %w", s.Name(), err)
		}
		out = append(out, records...)
	}
	return out, nil
}
