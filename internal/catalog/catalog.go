// Package catalog holds the immutable product catalog and the query engine
// that derives filtered views of it.
package catalog

import (
	"sort"

	"havenwood/internal/domain"
)

// Catalog is the read-only product list, loaded once at startup. It is safe
// for concurrent readers because nothing mutates it after construction.
type Catalog struct {
	products []domain.Product
	byID     map[int64]domain.Product
}

// New builds a catalog from the given products, ordered by id ascending.
func New(products []domain.Product) *Catalog {
	sorted := make([]domain.Product, len(products))
	copy(sorted, products)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	byID := make(map[int64]domain.Product, len(sorted))
	for _, p := range sorted {
		byID[p.ID] = p
	}

	return &Catalog{products: sorted, byID: byID}
}

// Products returns the full catalog in id order. Callers must not mutate the
// returned slice.
func (c *Catalog) Products() []domain.Product {
	return c.products
}

// Get returns the product with the given id.
func (c *Catalog) Get(id int64) (domain.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Query derives a view of this catalog. See Query for the pipeline contract.
func (c *Catalog) Query(cfg QueryConfig) []domain.Product {
	return Query(c.products, cfg)
}
