package stats

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Counter reports the number of documents in one collection.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

type Service struct {
	counters map[string]Counter
}

// NewService counts every collection in counters, keyed by the name it
// is reported under.
func NewService(counters map[string]Counter) *Service {
	return &Service{counters: counters}
}

// Counts runs every count in parallel. The first failure cancels the rest.
func (s *Service) Counts(ctx context.Context) (map[string]int64, error) {
	g, ctx := errgroup.WithContext(ctx)
	var mu sync.Mutex
	out := make(map[string]int64, len(s.counters))
	for name, c := range s.counters {
		g.Go(func() error {
			n, err := c.Count(ctx)
			if err != nil {
				return err
			}
			mu.Lock()
			out[name] = n
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
