package client

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hcms-backend-go/internal/client/store"
)

// Searcher feeds debounced list searches into the store. Only the last query of a
// burst reaches the server, and a superseded response is dropped by the reducer.
type Searcher struct {
	client *Client
	store  *store.Store
	shifts *Debouncer
	groups *Debouncer
}

func NewSearcher(c *Client, st *store.Store, delay time.Duration) *Searcher {
	return &Searcher{
		client: c,
		store:  st,
		shifts: NewDebouncer(delay),
		groups: NewDebouncer(delay),
	}
}

// Shifts schedules a shift search and returns its generation.
func (s *Searcher) Shifts(ctx context.Context, query string) uint64 {
	return s.shifts.Trigger(ctx, func(ctx context.Context, gen uint64) {
		s.store.Dispatch(store.ShiftsRequested{Search: query, Generation: gen})
		p, err := s.client.ListShifts(ctx, ListParams{Search: query})
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			s.store.Dispatch(store.ShiftsFailed{Err: err, Generation: gen})
			return
		}
		s.store.Dispatch(store.ShiftsLoaded{Page: p, Generation: gen})
	})
}

// Groups schedules an attendance-group search and returns its generation.
func (s *Searcher) Groups(ctx context.Context, query string) uint64 {
	return s.groups.Trigger(ctx, func(ctx context.Context, gen uint64) {
		s.store.Dispatch(store.GroupsRequested{Search: query, Generation: gen})
		p, err := s.client.ListGroups(ctx, ListParams{Search: query})
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			s.store.Dispatch(store.GroupsFailed{Err: err, Generation: gen})
			return
		}
		s.store.Dispatch(store.GroupsLoaded{Page: p, Generation: gen})
	})
}

func (s *Searcher) Stop() {
	s.shifts.Stop()
	s.groups.Stop()
}
