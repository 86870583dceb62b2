package utils

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// PendingAction is a confirmation waiting for a button press. Data carries whatever the
// prompt needs once resolved.
type PendingAction struct {
	Token   string
	OwnerID string
	Data    map[string]string
	timer   *time.Timer
}

// Pending tracks confirmation prompts that expire after a fixed window. Exactly one of
// Resolve or the expiry callback wins for a given token.
type Pending struct {
	mu      sync.Mutex
	items   map[string]*PendingAction
	timeout time.Duration
}

func NewPending(timeout time.Duration) *Pending {
	return &Pending{items: make(map[string]*PendingAction), timeout: timeout}
}

// Register stores a new action and arms its expiry. onExpire runs in its own goroutine only
// if the action was not resolved in time.
func (p *Pending) Register(ownerID string, data map[string]string, onExpire func(*PendingAction)) *PendingAction {
	a := &PendingAction{Token: uuid.NewString()[:8], OwnerID: ownerID, Data: data}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.items[a.Token] = a
	a.timer = time.AfterFunc(p.timeout, func() {
		if p.take(a.Token) != nil && onExpire != nil {
			onExpire(a)
		}
	})
	return a
}

// Resolve removes the action and stops its timer. It returns nil when the token is unknown
// or already expired.
func (p *Pending) Resolve(token string) *PendingAction {
	a := p.take(token)
	if a != nil {
		a.timer.Stop()
	}
	return a
}

// Peek returns the action without resolving it.
func (p *Pending) Peek(token string) *PendingAction {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.items[token]
}

func (p *Pending) take(token string) *PendingAction {
	p.mu.Lock()
	defer p.mu.Unlock()
	a, ok := p.items[token]
	if !ok {
		return nil
	}
	delete(p.items, token)
	return a
}

// Len reports how many actions are waiting.
func (p *Pending) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}
