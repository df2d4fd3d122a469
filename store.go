package main

import "sync"

// store merges per-line deltas produced by the workers and yields the final
// aggregate once all producers have finished. Both strategies satisfy the
// same contract, so the orchestrator can swap them freely.
type store interface {
	Sink
	// Result finalizes the store and returns the aggregate. Call it exactly
	// once, after every producer has stopped calling Accept.
	Result() map[string]LogStats
}

// ---- Direct strategy: shared concurrent map ----

// mapStore is a concurrently shared aggregate with per-type synchronization:
// merges on different types never contend on a common lock, merges on the
// same type serialize on that entry's mutex.
type mapStore struct {
	entries sync.Map // string -> *statsEntry
}

type statsEntry struct {
	mu    sync.Mutex
	stats LogStats
}

func newMapStore() *mapStore {
	return &mapStore{}
}

// Accept performs the atomic get-or-insert-zero, then merges under the
// entry's own lock.
func (s *mapStore) Accept(numOfBytes uint64, logType string) {
	v, _ := s.entries.LoadOrStore(logType, &statsEntry{})
	e := v.(*statsEntry)
	e.mu.Lock()
	e.stats.Add(lineDelta(numOfBytes))
	e.mu.Unlock()
}

func (s *mapStore) Result() map[string]LogStats {
	out := make(map[string]LogStats)
	s.entries.Range(func(k, v any) bool {
		e := v.(*statsEntry)
		e.mu.Lock()
		out[k.(string)] = e.stats
		e.mu.Unlock()
		return true
	})
	return out
}

// ---- Channel strategy: fan-in to a single reducer ----

// typeDelta is one line's contribution in flight between a worker and the
// reducer.
type typeDelta struct {
	logType    string
	numOfBytes uint64
}

// chanStore funnels deltas from all workers into a single reducer goroutine
// that owns a private, unsynchronized map. Message order is irrelevant
// because Add is commutative and associative.
type chanStore struct {
	deltas chan typeDelta
	done   chan struct{}
	agg    map[string]LogStats
}

func newChanStore() *chanStore {
	s := &chanStore{
		deltas: make(chan typeDelta, 1024),
		done:   make(chan struct{}),
		agg:    make(map[string]LogStats),
	}
	go s.reduce()
	return s
}

func (s *chanStore) reduce() {
	defer close(s.done)
	for d := range s.deltas {
		e := s.agg[d.logType]
		e.Add(lineDelta(d.numOfBytes))
		s.agg[d.logType] = e
	}
}

func (s *chanStore) Accept(numOfBytes uint64, logType string) {
	s.deltas <- typeDelta{logType: logType, numOfBytes: numOfBytes}
}

// Result closes the delta channel, waits for the reducer to drain it, and
// returns the reducer's map. The map is safe to hand out: the reducer has
// exited and nothing else references it.
func (s *chanStore) Result() map[string]LogStats {
	close(s.deltas)
	<-s.done
	return s.agg
}
