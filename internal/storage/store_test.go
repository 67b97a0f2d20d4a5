package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickcare/internal/config"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	v, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, v)

	value := []byte("hello")
	require.NoError(t, s.Set(ctx, "k", value))
	value[0] = 'j'

	v, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(v), "stored value must not alias the caller's slice")

	require.NoError(t, s.Delete(ctx, "k", "never-set"))
	v, _ = s.Get(ctx, "k")
	assert.Nil(t, v)
}

func TestScopedStoreIsolatesClients(t *testing.T) {
	ctx := context.Background()
	base := NewMemoryStore()
	a := Scoped(base, "a")
	b := Scoped(base, "b")

	require.NoError(t, a.Set(ctx, "currentUser", []byte("alice")))
	require.NoError(t, b.Set(ctx, "currentUser", []byte("bob")))

	va, _ := a.Get(ctx, "currentUser")
	vb, _ := b.Get(ctx, "currentUser")
	assert.Equal(t, "alice", string(va))
	assert.Equal(t, "bob", string(vb))
	assert.ElementsMatch(t, []string{"client:a:currentUser", "client:b:currentUser"}, base.Keys())

	require.NoError(t, a.Delete(ctx, "currentUser", ""))
	va, _ = a.Get(ctx, "currentUser")
	vb, _ = b.Get(ctx, "currentUser")
	assert.Nil(t, va)
	assert.Equal(t, "bob", string(vb))
}

func TestOpen(t *testing.T) {
	store, closer, err := Open(context.Background(), &config.Config{StoreBackend: config.BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)
	assert.NoError(t, closer.Close())

	_, _, err = Open(context.Background(), &config.Config{StoreBackend: "etcd"})
	assert.Error(t, err)
}
