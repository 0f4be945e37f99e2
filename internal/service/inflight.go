package service

import "sync"

// Operation is a kind of long running AI request
type Operation string

const (
	OpScan      Operation = "scan"
	OpTranslate Operation = "translate"
)

type inflightKey struct {
	userID int64
	op     Operation
}

// InFlight allows one running operation per user and kind
type InFlight struct {
	mu      sync.Mutex
	running map[inflightKey]struct{}
}

// NewInFlight creates an empty guard
func NewInFlight() *InFlight {
	return &InFlight{running: make(map[inflightKey]struct{})}
}

// Acquire marks op as running. It returns false if it already is.
func (g *InFlight) Acquire(userID int64, op Operation) (release func(), ok bool) {
	key := inflightKey{userID: userID, op: op}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.running[key]; busy {
		return nil, false
	}
	g.running[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.running, key)
			g.mu.Unlock()
		})
	}, true
}

// Busy reports whether op is running for the user
func (g *InFlight) Busy(userID int64, op Operation) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.running[inflightKey{userID: userID, op: op}]
	return busy
}
