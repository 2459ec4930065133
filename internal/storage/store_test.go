package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	ID string `json:"id"`
}

func TestRedisStore_GetMissingKey(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client)

	mock.ExpectGet("ana@example.com:reservations").RedisNil()

	_, err := store.Get(context.Background(), Key("ana@example.com", KeyReservations))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_SetAndGet(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client)
	ctx := context.Background()

	mock.ExpectSet("k", `[{"id":"a"}]`, 0).SetVal("OK")
	mock.ExpectGet("k").SetVal(`[{"id":"a"}]`)

	require.NoError(t, store.Set(ctx, "k", []byte(`[{"id":"a"}]`)))
	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, string(got))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_GetError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client)

	mock.ExpectGet("k").SetErr(errors.New("connection refused"))

	_, err := store.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestBlobs_LoadMissingLeavesEmpty(t *testing.T) {
	blobs := NewBlobs(NewMemoryStore())
	var entries []entry
	require.NoError(t, blobs.Load(context.Background(), "ana", KeyReservations, &entries))
	assert.Empty(t, entries)
}

func TestBlobs_UpdateWritesOnlyOnChange(t *testing.T) {
	store := NewMemoryStore()
	blobs := NewBlobs(store)
	ctx := context.Background()

	var entries []entry
	err := blobs.Update(ctx, "ana", KeyReservations, &entries, func() (bool, error) {
		entries = append(entries, entry{ID: "s1"})
		return true, nil
	})
	require.NoError(t, err)

	raw, err := store.Get(ctx, "ana:reservations")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"s1"}]`, string(raw))

	var again []entry
	err = blobs.Update(ctx, "bob", KeyReservations, &again, func() (bool, error) {
		return false, nil
	})
	require.NoError(t, err)
	_, err = store.Get(ctx, "bob:reservations")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBlobs_OwnersAreIsolated(t *testing.T) {
	blobs := NewBlobs(NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, blobs.Save(ctx, "ana", KeySavedReservations, []entry{{ID: "x"}}))

	var bob []entry
	require.NoError(t, blobs.Load(ctx, "bob", KeySavedReservations, &bob))
	assert.Empty(t, bob)

	var ana []entry
	require.NoError(t, blobs.Load(ctx, "ana", KeySavedReservations, &ana))
	assert.Equal(t, []entry{{ID: "x"}}, ana)
}

func TestBlobs_CorruptBlob(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), "ana:reservations", []byte("{not json")))

	var entries []entry
	err := NewBlobs(store).Load(context.Background(), "ana", KeyReservations, &entries)
	assert.Error(t, err)
}

type failingSetStore struct {
	*MemoryStore
}

func (s *failingSetStore) Set(context.Context, string, []byte) error {
	return errors.New("read only")
}

func TestBlobs_UpdateThenRunsUnderLock(t *testing.T) {
	blobs := NewBlobs(NewMemoryStore())
	var entries []entry
	var ran, lockFree bool

	err := blobs.UpdateThen(context.Background(), "ana", KeySavedReservations, &entries, func() (bool, error) {
		entries = append(entries, entry{ID: "a"})
		return true, nil
	}, func() {
		ran = true
		lockFree = blobs.mu.TryLock()
	})
	require.NoError(t, err)
	assert.True(t, ran)
	assert.False(t, lockFree)

	ran = false
	require.NoError(t, blobs.LoadThen(context.Background(), "ana", KeySavedReservations, &entries, func() {
		ran = true
		lockFree = blobs.mu.TryLock()
	}))
	assert.True(t, ran)
	assert.False(t, lockFree)
	assert.Equal(t, []entry{{ID: "a"}}, entries)
}

func TestBlobs_UpdateThenSkippedWhenWriteFails(t *testing.T) {
	blobs := NewBlobs(&failingSetStore{MemoryStore: NewMemoryStore()})
	var entries []entry
	ran := false

	err := blobs.UpdateThen(context.Background(), "ana", KeySavedReservations, &entries, func() (bool, error) {
		entries = append(entries, entry{ID: "a"})
		return true, nil
	}, func() { ran = true })
	assert.ErrorContains(t, err, "read only")
	assert.False(t, ran)
}
