package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	apperrors "quickcare/internal/errors"
	"quickcare/internal/model"
	"quickcare/internal/storage"
)

// Entity is satisfied by pointers to record types that embed model.Meta.
type Entity[T any] interface {
	*T
	Record() *model.Meta
}

// Collection is an insertion-ordered list of records persisted as one JSON
// array under a single store key. It is loaded once at construction and
// written back after every successful mutation.
type Collection[T any, P Entity[T]] struct {
	store storage.Store
	key   string
	items []T
	now   func() time.Time
	log   *logrus.Entry
}

// NewCollection hydrates the collection stored under key.
func NewCollection[T any, P Entity[T]](ctx context.Context, store storage.Store, key string, now func() time.Time) *Collection[T, P] {
	if now == nil {
		now = time.Now
	}
	c := &Collection[T, P]{
		store: store,
		key:   key,
		now:   now,
		log:   logrus.WithField("collection", key),
	}
	c.items = loadList[T](ctx, store, key, c.log)
	return c
}

// loadList reads and decodes a JSON array. A missing or unreadable array
// yields nil; unreadable items are skipped.
func loadList[T any](ctx context.Context, store storage.Store, key string, log *logrus.Entry) []T {
	raw, err := store.Get(ctx, key)
	if err != nil || len(raw) == 0 {
		return nil
	}
	items, skipped, err := decodeList[T](raw)
	if err != nil {
		log.WithError(fmt.Errorf("%w: %v", apperrors.ErrStoreCorrupt, err)).Warn("discarding stored collection")
		return nil
	}
	if skipped > 0 {
		log.WithField("skipped", skipped).Warn("ignored unreadable records")
	}
	return items
}

func decodeList[T any](raw []byte) ([]T, int, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, 0, err
	}
	items := make([]T, 0, len(elems))
	skipped := 0
	for _, elem := range elems {
		var item T
		if err := json.Unmarshal(normalizeID(elem), &item); err != nil {
			skipped++
			continue
		}
		items = append(items, item)
	}
	return items, skipped, nil
}

// normalizeID rewrites a numeric "id" as a string so older records still decode.
func normalizeID(elem json.RawMessage) json.RawMessage {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(elem, &fields); err != nil {
		return elem
	}
	id, ok := fields["id"]
	if !ok || len(id) == 0 || bytes.HasPrefix(id, []byte(`"`)) || bytes.Equal(id, []byte("null")) {
		return elem
	}
	fields["id"] = json.RawMessage(strconv.Quote(string(id)))
	out, err := json.Marshal(fields)
	if err != nil {
		return elem
	}
	return out
}

// List returns a copy of all records in insertion order.
func (c *Collection[T, P]) List() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of records.
func (c *Collection[T, P]) Len() int {
	return len(c.items)
}

// Find returns the record with id.
func (c *Collection[T, P]) Find(id string) (T, bool) {
	if i := c.index(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Filter returns the records pred accepts, in insertion order.
func (c *Collection[T, P]) Filter(pred func(T) bool) []T {
	out := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// Any reports whether some record satisfies pred.
func (c *Collection[T, P]) Any(pred func(T) bool) bool {
	for _, item := range c.items {
		if pred(item) {
			return true
		}
	}
	return false
}

// Insert assigns a fresh id and creation time, appends item and persists.
func (c *Collection[T, P]) Insert(ctx context.Context, item T) (T, error) {
	meta := P(&item).Record()
	meta.ID = c.nextID()
	meta.CreatedAt = c.now().UTC()
	meta.UpdatedAt = nil

	c.items = append(c.items, item)
	if err := c.persist(ctx); err != nil {
		c.items = c.items[:len(c.items)-1]
		var zero T
		return zero, err
	}
	return item, nil
}

// Update applies mutate to a copy of the record with id. The copy replaces
// the stored record only when mutate succeeds and the write goes through.
// The id and creation time cannot be changed.
func (c *Collection[T, P]) Update(ctx context.Context, id string, mutate func(*T) error) (T, error) {
	var zero T
	i := c.index(id)
	if i < 0 {
		return zero, apperrors.ErrNotFound
	}
	prev := c.items[i]
	next := prev
	if err := mutate(&next); err != nil {
		return zero, err
	}
	meta := P(&next).Record()
	orig := P(&prev).Record()
	meta.ID = orig.ID
	meta.CreatedAt = orig.CreatedAt
	now := c.now().UTC()
	meta.UpdatedAt = &now

	c.items[i] = next
	if err := c.persist(ctx); err != nil {
		c.items[i] = prev
		return zero, err
	}
	return next, nil
}

// Remove deletes the record with id. It reports whether a record was removed.
func (c *Collection[T, P]) Remove(ctx context.Context, id string) (bool, error) {
	i := c.index(id)
	if i < 0 {
		return false, nil
	}
	prev := c.items
	next := make([]T, 0, len(c.items)-1)
	next = append(next, c.items[:i]...)
	next = append(next, c.items[i+1:]...)
	c.items = next
	if err := c.persist(ctx); err != nil {
		c.items = prev
		return false, err
	}
	return true, nil
}

// Reset replaces the whole collection. Records without an id get one and
// records without a creation time are stamped now.
func (c *Collection[T, P]) Reset(ctx context.Context, items []T) error {
	prev := c.items
	c.items = make([]T, 0, len(items))
	for _, item := range items {
		meta := P(&item).Record()
		if meta.ID == "" || c.index(meta.ID) >= 0 {
			meta.ID = c.nextID()
		}
		if meta.CreatedAt.IsZero() {
			meta.CreatedAt = c.now().UTC()
		}
		c.items = append(c.items, item)
	}
	if err := c.persist(ctx); err != nil {
		c.items = prev
		return err
	}
	return nil
}

func (c *Collection[T, P]) index(id string) int {
	for i := range c.items {
		if P(&c.items[i]).Record().ID == id {
			return i
		}
	}
	return -1
}

// nextID returns a time-ordered id not yet used in the collection.
func (c *Collection[T, P]) nextID() string {
	for {
		id, err := uuid.NewV7()
		if err != nil {
			id = uuid.New()
		}
		if c.index(id.String()) < 0 {
			return id.String()
		}
	}
}

func (c *Collection[T, P]) persist(ctx context.Context) error {
	items := c.items
	if items == nil {
		items = []T{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", c.key, err)
	}
	if err := c.store.Set(ctx, c.key, payload); err != nil {
		return fmt.Errorf("persist %s: %w", c.key, err)
	}
	return nil
}
