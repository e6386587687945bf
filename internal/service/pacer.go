package service

import (
	"sync"
	"time"
)

// Pacer keeps at most one pending timer per key. Scheduling again replaces
// the pending timer; a replaced or cancelled timer never runs its function.
type Pacer struct {
	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
}

func NewPacer() *Pacer {
	return &Pacer{timers: map[string]*time.Timer{}}
}

// Schedule runs fn after d on its own goroutine.
func (p *Pacer) Schedule(key string, d time.Duration, fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}
	if old, ok := p.timers[key]; ok {
		old.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(d, func() {
		p.mu.Lock()
		current := p.timers[key] == t
		if current {
			delete(p.timers, key)
		}
		p.mu.Unlock()
		if current {
			fn()
		}
	})
	p.timers[key] = t
}

// Cancel drops the pending timer for key and reports whether one existed.
func (p *Pacer) Cancel(key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	t, ok := p.timers[key]
	if ok {
		t.Stop()
		delete(p.timers, key)
	}
	return ok
}

func (p *Pacer) Pending(key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.timers[key]
	return ok
}

// Stop cancels everything and refuses new timers.
func (p *Pacer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for k, t := range p.timers {
		t.Stop()
		delete(p.timers, k)
	}
	p.stopped = true
}
