package fetch

import (
	"sync"

	"github.com/google/uuid"

	"github.com/tosteiner/thoth/internal/graphql"
)

// State is the reduced view of one query's lifecycle.
type State[D any] struct {
	// Loading is true between a StatusFetching action and its terminal action.
	Loading bool
	// Data is the latest successful (or partial) result, starting at the
	// query's placeholder.
	Data D
	// Err is the error of the latest failed call, cleared by a new call or a
	// success.
	Err *graphql.Error
	// CallID is the latest call seen by the store.
	CallID uuid.UUID
}

// Store is a reducer holding the State of one query. It implements Sink, so
// it can be passed directly to Run and Start. Actions from a call started
// before the latest applied one are ignored so that a slow, stale response
// never overwrites newer state. Calls are ordered by Action.Seq; for
// actions without a Seq, a call is stale once a Fetching action of another
// call replaced it.
//
// Subscribers see every applied state in the order it was applied. A
// subscriber must not call Dispatch on the same Store.
type Store[D any] struct {
	// notifyMu serializes Dispatch so notifications follow apply order.
	notifyMu sync.Mutex

	mu    sync.Mutex
	state State[D]
	// latest is the largest Seq applied so far.
	latest uint64
	// superseded holds calls replaced by a newer Fetching action before
	// they completed.
	superseded map[uuid.UUID]struct{}
	subs       map[int]func(State[D])
	next       int
}

// Compile-time interface check.
var _ Sink[struct{}] = (*Store[struct{}])(nil)

// NewStore returns a Store whose initial Data is placeholder.
func NewStore[D any](placeholder D) *Store[D] {
	return &Store[D]{
		state:      State[D]{Data: placeholder},
		superseded: make(map[uuid.UUID]struct{}),
		subs:       make(map[int]func(State[D])),
	}
}

// State returns a snapshot of the current state.
func (s *Store[D]) State() State[D] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to be called with the new state after every action
// that changes it. The returned function removes the subscription.
func (s *Store[D]) Subscribe(fn func(State[D])) (unsubscribe func()) {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Dispatch applies a to the state and notifies subscribers. It returns
// after every subscriber has seen the new state.
func (s *Store[D]) Dispatch(a Action[D]) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	next, changed := s.reduce(a)
	if !changed {
		s.mu.Unlock()
		return
	}
	s.state = next
	subs := make([]func(State[D]), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}

// reduce returns the state after applying a, and whether a was applied.
// The caller holds s.mu.
func (s *Store[D]) reduce(a Action[D]) (State[D], bool) {
	st := s.state
	if a.Seq != 0 && a.Seq < s.latest {
		if a.Status.Terminal() {
			delete(s.superseded, a.CallID)
		}
		return st, false
	}
	switch a.Status {
	case StatusFetching:
		if st.Loading && st.CallID != a.CallID {
			s.superseded[st.CallID] = struct{}{}
		}
		s.advance(a.Seq)
		st.CallID = a.CallID
		st.Loading = true
		st.Err = nil
		return st, true
	case StatusSuccess, StatusFailure:
		if _, stale := s.superseded[a.CallID]; stale {
			delete(s.superseded, a.CallID)
			return st, false
		}
		s.advance(a.Seq)
		st.CallID = a.CallID
		st.Loading = false
		if a.Status == StatusSuccess {
			st.Data = a.Data
			st.Err = nil
			return st, true
		}
		st.Err = a.Err
		if a.Err != nil && a.Err.Partial {
			st.Data = a.Data
		}
		return st, true
	default:
		return st, false
	}
}

func (s *Store[D]) advance(seq uint64) {
	if seq > s.latest {
		s.latest = seq
	}
}
