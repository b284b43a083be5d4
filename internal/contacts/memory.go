package contacts

import (
	"context"
	"sync"
)

// InMemoryRepository is a map-backed Repository used when no database is configured.
type InMemoryRepository struct {
	mu       sync.RWMutex
	contacts map[string]Contact
}

// NewInMemoryRepository returns a repository holding the given contacts.
// Invalid entries are skipped.
func NewInMemoryRepository(seed ...Contact) *InMemoryRepository {
	repo := &InMemoryRepository{contacts: make(map[string]Contact, len(seed))}
	for _, c := range seed {
		if c.validate() != nil {
			continue
		}
		if _, exists := repo.contacts[c.Phone]; exists {
			continue
		}
		repo.contacts[c.Phone] = c
	}
	return repo
}

// FindByPhone returns the contact stored under phone, or nil.
func (r *InMemoryRepository) FindByPhone(_ context.Context, phone string) (*Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.contacts[phone]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// Len returns the number of stored contacts.
func (r *InMemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.contacts)
}
