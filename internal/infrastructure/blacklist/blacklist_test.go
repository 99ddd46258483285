package blacklist

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─── Memory ───────────────────────────────────────────────────────────────────

func TestMemory_RegistraYConsulta(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Blacklist(ctx, "tok-a", time.Now().Add(time.Hour)))

	ok, err := m.IsBlacklisted(ctx, "tok-a")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.IsBlacklisted(ctx, "tok-a ")
	require.NoError(t, err)
	assert.False(t, ok, "la coincidencia es exacta")
}

func TestMemory_EntradaVencidaSeDescarta(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Blacklist(ctx, "tok", now.Add(time.Minute)))
	now = now.Add(2 * time.Minute)

	ok, err := m.IsBlacklisted(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestMemory_IgnoraTokenYaVencido(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Blacklist(context.Background(), "tok", time.Now().Add(-time.Second)))
	assert.Equal(t, 0, m.Len())
}

func TestMemory_Prune(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	m := NewMemory()
	require.NoError(t, m.Blacklist(ctx, "corto", now.Add(time.Minute)))
	require.NoError(t, m.Blacklist(ctx, "largo", now.Add(time.Hour)))

	assert.Equal(t, 1, m.Prune(now.Add(10*time.Minute)))
	assert.Equal(t, 1, m.Len())
	ok, _ := m.IsBlacklisted(ctx, "largo")
	assert.True(t, ok)
}

func TestMemory_Concurrente(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	exp := time.Now().Add(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		tok := fmt.Sprintf("tok-%d", i)
		go func() {
			defer wg.Done()
			_ = m.Blacklist(ctx, tok, exp)
		}()
		go func() {
			defer wg.Done()
			_, _ = m.IsBlacklisted(ctx, tok)
		}()
	}
	wg.Wait()
	m.Prune(time.Now())

	for i := 0; i < 100; i++ {
		ok, err := m.IsBlacklisted(ctx, fmt.Sprintf("tok-%d", i))
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

// ─── Redis ────────────────────────────────────────────────────────────────────

func newRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedis(client), mr
}

func TestRedis_RegistraConTTL(t *testing.T) {
	ctx := context.Background()
	r, mr := newRedis(t)

	require.NoError(t, r.Blacklist(ctx, "tok-a", time.Now().Add(30*time.Minute)))

	key := tokenKey("tok-a")
	assert.True(t, mr.Exists(key))
	assert.NotContains(t, key, "tok-a", "el token no se guarda en claro")
	ttl := mr.TTL(key)
	assert.True(t, ttl > 29*time.Minute && ttl <= 30*time.Minute, ttl.String())

	ok, err := r.IsBlacklisted(ctx, "tok-a")
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(31 * time.Minute)
	ok, err = r.IsBlacklisted(ctx, "tok-a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedis_IgnoraTokenVencido(t *testing.T) {
	r, mr := newRedis(t)
	require.NoError(t, r.Blacklist(context.Background(), "tok", time.Now().Add(-time.Minute)))
	assert.Empty(t, mr.Keys())
}

func TestRedis_ErrorDeConexion(t *testing.T) {
	r, mr := newRedis(t)
	mr.Close()

	_, err := r.IsBlacklisted(context.Background(), "tok")
	assert.Error(t, err)
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr()+"/0", "", 0)
	require.NoError(t, err)
	_ = client.Close()

	_, err = NewRedisClient(context.Background(), "://malformada", "", 0)
	assert.Error(t, err)
}
