package store

import "sync"

// Unsubscribe releases a change subscription. Safe to call more than once.
type Unsubscribe = func()

type notifier struct {
	mu   sync.Mutex
	next int
	subs map[int]func()
}

// Subscribe registers fn to run after every successful insert. Delivery
// is at-least-once from the subscriber's point of view: a recompute
// triggered while another insert lands simply runs again.
func (s *Store) Subscribe(fn func()) Unsubscribe {
	s.notifier.mu.Lock()
	defer s.notifier.mu.Unlock()
	if s.notifier.subs == nil {
		s.notifier.subs = map[int]func(){}
	}
	id := s.notifier.next
	s.notifier.next++
	s.notifier.subs[id] = fn
	return func() {
		s.notifier.mu.Lock()
		defer s.notifier.mu.Unlock()
		delete(s.notifier.subs, id)
	}
}

func (n *notifier) notify() {
	n.mu.Lock()
	fns := make([]func(), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
