package store

import (
	"slices"
	"sync"

	"github.com/google/uuid"
)

// inMemory implements ProductStore using an ordered in-memory slice.
type inMemory struct {
	mu       sync.RWMutex
	products []Product
	newID    func() string
}

// NewInMemoryStore creates a new instance of ProductStore holding the given products.
func NewInMemoryStore(initial ...Product) ProductStore {
	return &inMemory{
		products: slices.Clone(initial),
		newID:    uuid.NewString,
	}
}

// List returns a snapshot of all products.
func (s *inMemory) List() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Product, len(s.products))
	copy(list, s.products)
	return list
}

// FindByID retrieves a product by its ID.
func (s *inMemory) FindByID(id string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return Product{}, false
	}
	return s.products[i], true
}

// FindIndexByID returns the position of a product by its ID.
func (s *inMemory) FindIndexByID(id string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	return i, i >= 0
}

// Insert creates a new product and returns it.
func (s *inMemory) Insert(fields Fields) Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := fields.withID(s.newID())
	s.products = append(s.products, product)
	return product
}

// Replace overwrites a product by its ID, keeping the ID.
func (s *inMemory) Replace(id string, fields Fields) (Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Product{}, false
	}
	s.products[i] = fields.withID(id)
	return s.products[i], true
}

// Remove deletes a product by its ID.
func (s *inMemory) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.products = slices.Delete(s.products, i, i+1)
	return true
}

// Len returns the number of products.
func (s *inMemory) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// indexOf must be called with s.mu held.
func (s *inMemory) indexOf(id string) int {
	return slices.IndexFunc(s.products, func(p Product) bool {
		return p.ID == id
	})
}
