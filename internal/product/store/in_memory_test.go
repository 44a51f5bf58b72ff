package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// ProductStoreSuite is a test suite for the in-memory ProductStore implementation.
type ProductStoreSuite struct {
	suite.Suite
	store ProductStore
}

// SetupTest gives every test its own store seeded with the sample catalog.
func (s *ProductStoreSuite) SetupTest() {
	s.store = NewInMemoryStore(SampleProducts()...)
}

func TestProductStoreSuite(t *testing.T) {
	suite.Run(t, new(ProductStoreSuite))
}

func laptopFields() Fields {
	return Fields{
		Name:        "Gaming Laptop",
		Description: "32GB RAM",
		Price:       2500,
		Category:    "electronics",
	}
}

func (s *ProductStoreSuite) TestList_KeepsInsertionOrder() {
	// given
	created := s.store.Insert(laptopFields())
	// when
	list := s.store.List()
	// then
	require.Len(s.T(), list, 4)
	ids := []string{list[0].ID, list[1].ID, list[2].ID, list[3].ID}
	assert.Equal(s.T(), []string{"1", "2", "3", created.ID}, ids)
}

func (s *ProductStoreSuite) TestList_ReturnsSnapshot() {
	// given
	list := s.store.List()
	// when
	list[0].Name = "Changed"
	list = append(list[:1], list[2:]...)
	// then
	found, ok := s.store.FindByID("1")
	require.True(s.T(), ok)
	assert.Equal(s.T(), "Laptop", found.Name)
	assert.Equal(s.T(), 3, s.store.Len())
}

func (s *ProductStoreSuite) TestFindByID() {
	testCases := []struct {
		name     string
		id       string
		found    bool
		wantName string
	}{
		{name: "Success - first product", id: "1", found: true, wantName: "Laptop"},
		{name: "Success - last product", id: "3", found: true, wantName: "Coffee Maker"},
		{name: "Absent - unknown ID", id: "999", found: false},
		{name: "Absent - empty ID", id: "", found: false},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			product, ok := s.store.FindByID(tc.id)
			assert.Equal(s.T(), tc.found, ok)
			assert.Equal(s.T(), tc.wantName, product.Name)
		})
	}
}

func (s *ProductStoreSuite) TestFindIndexByID() {
	i, ok := s.store.FindIndexByID("2")
	assert.True(s.T(), ok)
	assert.Equal(s.T(), 1, i)

	_, ok = s.store.FindIndexByID("999")
	assert.False(s.T(), ok)
}

func (s *ProductStoreSuite) TestInsert_GeneratesUniqueIDs() {
	// given
	seen := make(map[string]struct{})
	// when
	for range 100 {
		p := s.store.Insert(laptopFields())
		// then
		require.NotEmpty(s.T(), p.ID)
		_, dup := seen[p.ID]
		require.False(s.T(), dup, "ID %s generated twice", p.ID)
		seen[p.ID] = struct{}{}
	}
	assert.Equal(s.T(), 103, s.store.Len())
}

func (s *ProductStoreSuite) TestInsert_StoresFields() {
	// when
	created := s.store.Insert(laptopFields())
	// then
	found, ok := s.store.FindByID(created.ID)
	require.True(s.T(), ok)
	assert.Equal(s.T(), created, found)
	assert.False(s.T(), found.InStock, "inStock should default to false")
}

func (s *ProductStoreSuite) TestReplace_PreservesID() {
	// given
	fields := laptopFields()
	// when
	updated, ok := s.store.Replace("1", fields)
	// then
	require.True(s.T(), ok)
	assert.Equal(s.T(), "1", updated.ID)
	assert.Equal(s.T(), fields.Name, updated.Name)
	assert.False(s.T(), updated.InStock, "omitted inStock replaces true with false")

	found, _ := s.store.FindByID("1")
	assert.Equal(s.T(), updated, found)
	i, _ := s.store.FindIndexByID("1")
	assert.Equal(s.T(), 0, i, "replace keeps the position")
}

func (s *ProductStoreSuite) TestReplace_Absent() {
	_, ok := s.store.Replace("999", laptopFields())
	assert.False(s.T(), ok)
	assert.Equal(s.T(), 3, s.store.Len())
}

func (s *ProductStoreSuite) TestRemove() {
	// when
	removed := s.store.Remove("1")
	// then
	assert.True(s.T(), removed)
	_, ok := s.store.FindByID("1")
	assert.False(s.T(), ok)
	assert.Equal(s.T(), 2, s.store.Len())

	assert.False(s.T(), s.store.Remove("1"), "second removal should report nothing removed")
}

func (s *ProductStoreSuite) TestConcurrentMutations() {
	// given
	var wg sync.WaitGroup
	// when
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.store.Insert(laptopFields())
		}()
		go func() {
			defer wg.Done()
			_ = s.store.List()
		}()
	}
	wg.Wait()
	// then
	assert.Equal(s.T(), 53, s.store.Len())
}

func TestNewInMemoryStore_CopiesInitialProducts(t *testing.T) {
	// given
	initial := SampleProducts()
	store := NewInMemoryStore(initial...)
	// when
	initial[0].Name = "Changed"
	// then
	found, ok := store.FindByID("1")
	require.True(t, ok)
	assert.Equal(t, "Laptop", found.Name)
}
