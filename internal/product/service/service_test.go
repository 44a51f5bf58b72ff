package service

import (
	"context"
	"fmt"
	"testing"

	producterrors "github.com/abgdnv/productapi/internal/product/errors"
	"github.com/abgdnv/productapi/internal/product/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProductStore is a mock implementation of the ProductStore interface
type mockProductStore struct {
	products []store.Product
	product  store.Product
	found    bool
	inserted []store.Fields
}

func (m *mockProductStore) List() []store.Product { return m.products }

func (m *mockProductStore) FindByID(_ string) (store.Product, bool) { return m.product, m.found }

func (m *mockProductStore) FindIndexByID(_ string) (int, bool) { return 0, m.found }

// Simulate inserting a product, remembering what was inserted
func (m *mockProductStore) Insert(fields store.Fields) store.Product {
	m.inserted = append(m.inserted, fields)
	return m.product
}

func (m *mockProductStore) Replace(_ string, _ store.Fields) (store.Product, bool) {
	return m.product, m.found
}

func (m *mockProductStore) Remove(_ string) bool { return m.found }

func (m *mockProductStore) Len() int { return len(m.products) }

func price(v float64) *float64 { return &v }

func seededService() *Service {
	return NewService(store.NewInMemoryStore(store.SampleProducts()...))
}

func Test_ProductService_FindByID(t *testing.T) {
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		productID   string
		expected    *ProductDto
		expectError error
	}{
		{
			name: "Success - product found",
			mockStore: &mockProductStore{
				product: store.Product{ID: "1", Name: "Toy", Price: 10, Category: "toys"},
				found:   true,
			},
			productID: "1",
			expected:  &ProductDto{ID: "1", Name: "Toy", Price: 10, Category: "toys"},
		},
		{
			name:        "Error - product not found",
			mockStore:   &mockProductStore{found: false},
			productID:   "2",
			expectError: producterrors.ErrProductNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			// when
			found, err := service.FindByID(context.Background(), tc.productID)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.EqualError(t, err, fmt.Sprintf("Product with ID %s not found", tc.productID))
				assert.Nil(t, found)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, found)
		})
	}
}

func Test_ProductService_FindAll(t *testing.T) {
	testCases := []struct {
		name        string
		query       ListQuery
		expectedIDs []string
		total       int
		expectError error
	}{
		{
			name:        "Success - first page with defaults",
			query:       ListQuery{Page: 1, Limit: 10},
			expectedIDs: []string{"1", "2", "3"},
			total:       3,
		},
		{
			name:        "Success - category filter before paging",
			query:       ListQuery{Category: "electronics", Page: 1, Limit: 10},
			expectedIDs: []string{"1", "2"},
			total:       2,
		},
		{
			name:        "Success - second page",
			query:       ListQuery{Page: 2, Limit: 2},
			expectedIDs: []string{"3"},
			total:       3,
		},
		{
			name:        "Success - page past the end",
			query:       ListQuery{Page: 5, Limit: 2},
			expectedIDs: []string{},
			total:       3,
		},
		{
			name:        "Success - unknown category",
			query:       ListQuery{Category: "garden", Page: 1, Limit: 10},
			expectedIDs: []string{},
			total:       0,
		},
		{
			name:        "Error - page below 1",
			query:       ListQuery{Page: 0, Limit: 10},
			expectError: producterrors.ErrValidation,
		},
		{
			name:        "Error - limit below 1",
			query:       ListQuery{Page: 1, Limit: -1},
			expectError: producterrors.ErrValidation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := seededService()
			// when
			page, err := service.FindAll(context.Background(), tc.query)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, page)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.total, page.Total)
			assert.Equal(t, tc.query.Page, page.Page)
			assert.Equal(t, tc.query.Limit, page.Limit)
			ids := make([]string, len(page.Data))
			for i, p := range page.Data {
				ids[i] = p.ID
			}
			assert.Equal(t, tc.expectedIDs, ids)
		})
	}
}

func Test_ProductService_FindAll_PageLength(t *testing.T) {
	// given
	products := make([]store.Product, 23)
	for i := range products {
		products[i] = store.Product{ID: fmt.Sprint(i), Name: "p", Category: "c"}
	}
	service := NewService(&mockProductStore{products: products})

	for limit := int32(1); limit <= 25; limit++ {
		for page := int32(1); page <= 25; page++ {
			// when
			result, err := service.FindAll(context.Background(), ListQuery{Page: page, Limit: limit})
			// then
			require.NoError(t, err)
			expected := max(0, min(int(limit), len(products)-int(page-1)*int(limit)))
			assert.Len(t, result.Data, expected, "page=%d limit=%d", page, limit)
		}
	}
}

func Test_ProductService_FindAll_LargePageDoesNotOverflow(t *testing.T) {
	// given
	service := seededService()
	// when
	page, err := service.FindAll(context.Background(), ListQuery{Page: 1<<31 - 1, Limit: 1<<31 - 1})
	// then
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.Equal(t, 3, page.Total)
}

func Test_ProductService_Stats(t *testing.T) {
	// given
	service := seededService()
	// when
	stats, err := service.Stats(context.Background())
	// then
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"electronics": 2, "kitchen": 1}, stats)

	sum := 0
	for _, n := range stats {
		sum += n
	}
	assert.Equal(t, 3, sum)
}

func Test_ProductService_Search(t *testing.T) {
	testCases := []struct {
		name        string
		query       string
		expectedIDs []string
	}{
		{name: "Lower case substring", query: "lap", expectedIDs: []string{"1"}},
		{name: "Upper case substring", query: "LAPTOP", expectedIDs: []string{"1"}},
		{name: "Matches inside a word", query: "maker", expectedIDs: []string{"3"}},
		{name: "Matches several", query: "o", expectedIDs: []string{"1", "2", "3"}},
		{name: "Empty query matches all", query: "", expectedIDs: []string{"1", "2", "3"}},
		{name: "No match", query: "tablet", expectedIDs: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := seededService()
			// when
			found, err := service.Search(context.Background(), tc.query)
			// then
			require.NoError(t, err)
			ids := make([]string, len(found))
			for i, p := range found {
				ids[i] = p.ID
			}
			assert.Equal(t, tc.expectedIDs, ids)
		})
	}
}

func Test_ProductService_Create(t *testing.T) {
	// given
	mock := &mockProductStore{
		product: store.Product{ID: "abc", Name: "Toy", Description: "Wooden", Price: 15, Category: "toys"},
	}
	service := NewService(mock)
	input := ProductInput{Name: "Toy", Description: "Wooden", Price: price(15), Category: "toys"}
	// when
	created, err := service.Create(context.Background(), input)
	// then
	require.NoError(t, err)
	assert.Equal(t, &ProductDto{ID: "abc", Name: "Toy", Description: "Wooden", Price: 15, Category: "toys"}, created)
	require.Len(t, mock.inserted, 1)
	assert.Equal(t, store.Fields{Name: "Toy", Description: "Wooden", Price: 15, Category: "toys"}, mock.inserted[0])
}

func Test_ProductService_Update(t *testing.T) {
	testCases := []struct {
		name        string
		productID   string
		input       ProductInput
		expected    *ProductDto
		expectError error
	}{
		{
			name:      "Success - id preserved and inStock reset",
			productID: "1",
			input:     ProductInput{Name: "Laptop Pro", Description: "32GB", Price: price(1500), Category: "electronics"},
			expected:  &ProductDto{ID: "1", Name: "Laptop Pro", Description: "32GB", Price: 1500, Category: "electronics", InStock: false},
		},
		{
			name:        "Error - product not found",
			productID:   "999",
			input:       ProductInput{Name: "X", Description: "Y", Price: price(1), Category: "Z"},
			expectError: producterrors.ErrProductNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := seededService()
			// when
			updated, err := service.Update(context.Background(), tc.productID, tc.input)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, updated)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, updated)
		})
	}
}

func Test_ProductService_DeleteByID(t *testing.T) {
	testCases := []struct {
		name        string
		productID   string
		expectError error
	}{
		{name: "Success - product deleted", productID: "1"},
		{name: "Error - product not found", productID: "999", expectError: producterrors.ErrProductNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := seededService()
			// when
			err := service.DeleteByID(context.Background(), tc.productID)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				return
			}
			require.NoError(t, err)
			_, err = service.FindByID(context.Background(), tc.productID)
			assert.ErrorIs(t, err, producterrors.ErrProductNotFound)
		})
	}
}
