package memory

import (
	"context"
	"sync"
)

type RevocationRepository struct {
	mu     sync.RWMutex
	tokens map[string]int
}

func NewRevocationRepository() *RevocationRepository {
	return &RevocationRepository{tokens: make(map[string]int)}
}

// Add records the token. Repeated adds are counted, not rejected.
func (r *RevocationRepository) Add(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token]++
	return nil
}

func (r *RevocationRepository) Exists(_ context.Context, token string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tokens[token] > 0, nil
}

// Count returns how many times token was revoked.
func (r *RevocationRepository) Count(token string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tokens[token]
}
