// Package notify keeps the transient notices shown to a client: toasts and
// the session expiry warning. Every notice dismisses itself after its TTL.
package notify

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind is the visual category of a notice.
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// Default lifetimes.
const (
	ToastTTL      = 3 * time.Second
	AdminToastTTL = 5 * time.Second
)

// Notice is a message waiting to be shown.
type Notice struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	Action    string    `json:"action,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type entry struct {
	notice Notice
	timer  *time.Timer
}

// Board holds the live notices of one client.
type Board struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{entries: make(map[string]*entry), now: time.Now}
}

// Show publishes a notice that is removed after ttl. onExpire runs only when
// the timer removes the notice, never on manual dismissal.
func (b *Board) Show(kind Kind, message, action string, ttl time.Duration, onExpire func()) Notice {
	now := b.now()
	n := Notice{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		Action:    action,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	e := &entry{notice: n}

	b.mu.Lock()
	b.entries[n.ID] = e
	e.timer = time.AfterFunc(ttl, func() {
		if b.remove(n.ID) && onExpire != nil {
			onExpire()
		}
	})
	b.mu.Unlock()
	return n
}

// Toast shows a short-lived message.
func (b *Board) Toast(kind Kind, message string) Notice {
	return b.Show(kind, message, "", ToastTTL, nil)
}

// Dismiss removes a notice and stops its timer. Dismissing twice is a no-op.
func (b *Board) Dismiss(id string) bool {
	b.mu.Lock()
	e, ok := b.entries[id]
	if ok {
		delete(b.entries, id)
		e.timer.Stop()
	}
	b.mu.Unlock()
	return ok
}

// Has reports whether the notice is still live.
func (b *Board) Has(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.entries[id]
	return ok
}

// List returns the live notices, oldest first.
func (b *Board) List() []Notice {
	b.mu.Lock()
	out := make([]Notice, 0, len(b.entries))
	for _, e := range b.entries {
		out = append(out, e.notice)
	}
	b.mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Close stops every pending timer and clears the board.
func (b *Board) Close() {
	b.mu.Lock()
	for id, e := range b.entries {
		e.timer.Stop()
		delete(b.entries, id)
	}
	b.mu.Unlock()
}

func (b *Board) remove(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.entries[id]; !ok {
		return false
	}
	delete(b.entries, id)
	return true
}
