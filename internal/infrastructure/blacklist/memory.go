// Package blacklist implementa el registro de tokens revocados en memoria y en Redis.
package blacklist

import (
	"context"
	"sync"
	"time"
)

// Memory blacklist en proceso: token → expiración. Coincidencia exacta.
// Las entradas vencidas se descartan al consultarlas y en Prune.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewMemory crea una blacklist vacía.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]time.Time), now: time.Now}
}

// IsBlacklisted informa si el token fue revocado y sigue vigente.
func (m *Memory) IsBlacklisted(_ context.Context, token string) (bool, error) {
	m.mu.RLock()
	exp, ok := m.entries[token]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if m.now().Before(exp) {
		return true, nil
	}
	m.mu.Lock()
	if cur, ok := m.entries[token]; ok && !m.now().Before(cur) {
		delete(m.entries, token)
	}
	m.mu.Unlock()
	return false, nil
}

// Blacklist registra el token hasta expiresAt. Un token ya vencido se ignora.
func (m *Memory) Blacklist(_ context.Context, token string, expiresAt time.Time) error {
	if token == "" || !m.now().Before(expiresAt) {
		return nil
	}
	m.mu.Lock()
	m.entries[token] = expiresAt
	m.mu.Unlock()
	return nil
}

// Prune elimina las entradas vencidas a now y devuelve cuántas borró.
func (m *Memory) Prune(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for token, exp := range m.entries {
		if !now.Before(exp) {
			delete(m.entries, token)
			removed++
		}
	}
	return removed
}

// Len número de entradas registradas (incluye vencidas aún no podadas).
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
