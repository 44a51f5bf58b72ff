// Package store provides an interface for product storage operations.
package store

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations.
// Lookups report absence with a boolean instead of an error: the store has no failure modes of its own.
type ProductStore interface {
	// List returns a copy of all products in insertion order.
	// Returns an empty slice if no products exist.
	List() []Product

	// FindByID retrieves a single product by its unique identifier.
	FindByID(id string) (Product, bool)

	// FindIndexByID returns the position of the product in the listing order.
	FindIndexByID(id string) (int, bool)

	// Insert adds a new product with a freshly generated ID and returns the stored record.
	Insert(fields Fields) Product

	// Replace overwrites every field of an existing product except its ID.
	// Returns false if no product exists with the given ID.
	Replace(id string, fields Fields) (Product, bool)

	// Remove deletes a product by its ID and reports whether a product was removed.
	Remove(id string) bool

	// Len returns the number of stored products.
	Len() int
}

// Product represents a product entity in the store.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Category    string
	InStock     bool
}

// Fields holds every product attribute a client may set, that is all of them but the ID.
type Fields struct {
	Name        string
	Description string
	Price       float64
	Category    string
	InStock     bool
}

func (f Fields) withID(id string) Product {
	return Product{
		ID:          id,
		Name:        f.Name,
		Description: f.Description,
		Price:       f.Price,
		Category:    f.Category,
		InStock:     f.InStock,
	}
}
