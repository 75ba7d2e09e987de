package security

import "sync"

// subscriberList fans session changes out to registered listeners without
// blocking on slow consumers.
type subscriberList struct {
	mu   sync.Mutex
	next int
	subs map[int]chan SessionChange
}

func newSubscriberList() *subscriberList {
	return &subscriberList{subs: make(map[int]chan SessionChange)}
}

func (l *subscriberList) add() (<-chan SessionChange, func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.next
	l.next++
	ch := make(chan SessionChange, 8)
	l.subs[id] = ch

	cancel := func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if sub, ok := l.subs[id]; ok {
			delete(l.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

func (l *subscriberList) notify(change SessionChange) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, ch := range l.subs {
		select {
		case ch <- change:
		default:
			// drop rather than block the auth path
		}
	}
}
