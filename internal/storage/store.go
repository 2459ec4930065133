// Package storage keeps the per-user key/value blobs the app used to hold on
// the device ("reservations" and "savedReservations"). Blobs are JSON arrays
// read and written wholesale.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

const (
	KeyReservations      = "reservations"
	KeySavedReservations = "savedReservations"
)

// ErrNotFound is returned by Store.Get when the key holds no value.
var ErrNotFound = errors.New("storage: key not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Key namespaces a blob name by its owner.
func Key(owner, name string) string {
	return owner + ":" + name
}

// Blobs serializes read-modify-write cycles over a Store.
type Blobs struct {
	store Store
	mu    sync.Mutex
}

func NewBlobs(store Store) *Blobs {
	return &Blobs{store: store}
}

// Load decodes the blob into out. A missing key leaves out untouched.
func (b *Blobs) Load(ctx context.Context, owner, name string, out interface{}) error {
	return b.LoadThen(ctx, owner, name, out, nil)
}

// LoadThen is Load followed by then, still under the blob lock. then only
// runs when the load succeeded.
func (b *Blobs) LoadThen(ctx context.Context, owner, name string, out interface{}, then func()) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.load(ctx, Key(owner, name), out); err != nil {
		return err
	}
	if then != nil {
		then()
	}
	return nil
}

func (b *Blobs) Save(ctx context.Context, owner, name string, value interface{}) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.save(ctx, Key(owner, name), value)
}

// Update loads the blob into ptr, calls fn, and writes ptr back when fn reports a change.
func (b *Blobs) Update(ctx context.Context, owner, name string, ptr interface{}, fn func() (bool, error)) error {
	return b.UpdateThen(ctx, owner, name, ptr, fn, nil)
}

// UpdateThen is Update followed by then, still under the blob lock. then
// runs once ptr matches what is stored, whether or not fn changed it.
func (b *Blobs) UpdateThen(ctx context.Context, owner, name string, ptr interface{}, fn func() (bool, error), then func()) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := Key(owner, name)
	if err := b.load(ctx, key, ptr); err != nil {
		return err
	}
	changed, err := fn()
	if err != nil {
		return err
	}
	if changed {
		if err := b.save(ctx, key, ptr); err != nil {
			return err
		}
	}
	if then != nil {
		then()
	}
	return nil
}

func (b *Blobs) load(ctx context.Context, key string, out interface{}) error {
	raw, err := b.store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error reading %s: %w", key, err)
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("error parsing %s: %w", key, err)
	}
	return nil
}

func (b *Blobs) save(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error encoding %s: %w", key, err)
	}
	if err := b.store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("error writing %s: %w", key, err)
	}
	return nil
}
