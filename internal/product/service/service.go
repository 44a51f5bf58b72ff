// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"fmt"
	"strings"

	producterrors "github.com/abgdnv/productapi/internal/product/errors"
	"github.com/abgdnv/productapi/internal/product/store"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/text/cases"
)

// ProductService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns a NotFoundError if no product exists with the given ID.
	FindByID(ctx context.Context, id string) (*ProductDto, error)

	// FindAll returns one page of products, optionally filtered by category.
	// Returns a ValidationError if page or limit is below 1.
	FindAll(ctx context.Context, query ListQuery) (*ProductPage, error)

	// Stats counts products per category over the whole catalog.
	Stats(ctx context.Context) (map[string]int, error)

	// Search returns products whose name contains the given text, ignoring case.
	// Returns an empty slice if nothing matches.
	Search(ctx context.Context, name string) ([]ProductDto, error)

	// Create adds a new product to the system.
	Create(ctx context.Context, product ProductInput) (*ProductDto, error)

	// Update replaces every field of an existing product except its ID.
	// Returns a NotFoundError if no product exists with the given ID.
	Update(ctx context.Context, id string, product ProductInput) (*ProductDto, error)

	// DeleteByID removes a product by its ID.
	// Returns a NotFoundError if no product exists with the given ID.
	DeleteByID(ctx context.Context, id string) error
}

// Service implements ProductService and provides methods to manage products.
type Service struct {
	repository store.ProductStore

	createdCounter metric.Int64Counter
	updatedCounter metric.Int64Counter
	deletedCounter metric.Int64Counter
}

// NewService creates a new instance of ProductService with the provided repository.
func NewService(repo store.ProductStore) *Service {
	meter := otel.Meter("product-api")
	return &Service{
		repository:     repo,
		createdCounter: mustCounter(meter, "products_created", "Total number of created products"),
		updatedCounter: mustCounter(meter, "products_updated", "Total number of replaced products"),
		deletedCounter: mustCounter(meter, "products_deleted", "Total number of deleted products"),
	}
}

func mustCounter(meter metric.Meter, name, description string) metric.Int64Counter {
	counter, err := meter.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		panic(fmt.Sprintf("failed to create %s counter: %v", name, err))
	}
	return counter
}

// ProductInput represents the data transfer object for creating or replacing a product.
// Price is a pointer so that a missing price can be told apart from a zero one.
type ProductInput struct {
	Name        string   `json:"name"        validate:"required"`
	Description string   `json:"description" validate:"required"`
	Price       *float64 `json:"price"       validate:"required,ne=0"`
	Category    string   `json:"category"    validate:"required"`
	InStock     bool     `json:"inStock"`
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	InStock     bool    `json:"inStock"`
}

// ListQuery selects a page of the catalog. An empty Category matches every product.
type ListQuery struct {
	Category string
	Page     int32
	Limit    int32
}

// ProductPage is a single page of the (filtered) catalog. Total counts the filtered products before paging.
type ProductPage struct {
	Page  int32        `json:"page"`
	Limit int32        `json:"limit"`
	Total int          `json:"total"`
	Data  []ProductDto `json:"data"`
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
func (s *Service) FindByID(_ context.Context, id string) (*ProductDto, error) {
	product, ok := s.repository.FindByID(id)
	if !ok {
		return nil, &producterrors.NotFoundError{ID: id}
	}
	return toDto(product), nil
}

// FindAll filters the catalog by category and returns the requested page.
func (s *Service) FindAll(_ context.Context, query ListQuery) (*ProductPage, error) {
	if query.Page < 1 {
		return nil, producterrors.NewValidationError("page", fmt.Sprintf("Invalid page number: %d", query.Page))
	}
	if query.Limit < 1 {
		return nil, producterrors.NewValidationError("limit", fmt.Sprintf("Invalid limit number: %d", query.Limit))
	}

	filtered := s.repository.List()
	if query.Category != "" {
		filtered = filterProducts(filtered, func(p store.Product) bool {
			return p.Category == query.Category
		})
	}

	start, end := pageBounds(len(filtered), query.Page, query.Limit)
	return &ProductPage{
		Page:  query.Page,
		Limit: query.Limit,
		Total: len(filtered),
		Data:  toDtos(filtered[start:end]),
	}, nil
}

// Stats counts products per category.
func (s *Service) Stats(_ context.Context) (map[string]int, error) {
	stats := make(map[string]int)
	for _, p := range s.repository.List() {
		stats[p.Category]++
	}
	return stats, nil
}

// Search matches product names against the given text using Unicode case folding.
func (s *Service) Search(_ context.Context, name string) ([]ProductDto, error) {
	// A Caser keeps state between calls and must not be shared across goroutines.
	folder := cases.Fold()
	needle := folder.String(name)
	found := filterProducts(s.repository.List(), func(p store.Product) bool {
		return strings.Contains(folder.String(p.Name), needle)
	})
	return toDtos(found), nil
}

// Create creates a new product and returns it as a ProductDto.
func (s *Service) Create(ctx context.Context, product ProductInput) (*ProductDto, error) {
	created := s.repository.Insert(product.fields())
	s.createdCounter.Add(ctx, 1)
	return toDto(created), nil
}

// Update replaces a product and returns the stored result as a ProductDto.
func (s *Service) Update(ctx context.Context, id string, product ProductInput) (*ProductDto, error) {
	updated, ok := s.repository.Replace(id, product.fields())
	if !ok {
		return nil, &producterrors.NotFoundError{ID: id}
	}
	s.updatedCounter.Add(ctx, 1)
	return toDto(updated), nil
}

// DeleteByID deletes a product by its ID.
func (s *Service) DeleteByID(ctx context.Context, id string) error {
	if !s.repository.Remove(id) {
		return &producterrors.NotFoundError{ID: id}
	}
	s.deletedCounter.Add(ctx, 1)
	return nil
}

// pageBounds returns the slice bounds of a 1-based page, clamped to total.
func pageBounds(total int, page, limit int32) (start, end int) {
	from := int64(page-1) * int64(limit)
	to := int64(page) * int64(limit)
	return int(min(from, int64(total))), int(min(to, int64(total)))
}

func filterProducts(products []store.Product, keep func(store.Product) bool) []store.Product {
	out := make([]store.Product, 0, len(products))
	for _, p := range products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func (in ProductInput) fields() store.Fields {
	var price float64
	if in.Price != nil {
		price = *in.Price
	}
	return store.Fields{
		Name:        in.Name,
		Description: in.Description,
		Price:       price,
		Category:    in.Category,
		InStock:     in.InStock,
	}
}

// toDto converts a store.Product to a ProductDto.
func toDto(product store.Product) *ProductDto {
	return &ProductDto{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Category:    product.Category,
		InStock:     product.InStock,
	}
}

func toDtos(products []store.Product) []ProductDto {
	dtos := make([]ProductDto, len(products))
	for i, p := range products {
		dtos[i] = *toDto(p)
	}
	return dtos
}
