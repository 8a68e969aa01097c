package domain

// Category is the fixed set of furniture categories in the catalog.
type Category string

const (
	CategoryChair   Category = "chair"
	CategoryCabinet Category = "cabinet"
	CategorySofa    Category = "sofa"
	CategoryBed     Category = "bed"
)

// Categories lists every valid category in display order.
func Categories() []Category {
	return []Category{CategoryChair, CategoryCabinet, CategorySofa, CategoryBed}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryChair, CategoryCabinet, CategorySofa, CategoryBed:
		return true
	}
	return false
}

// Product represents a product in the catalog. Products are loaded once at
// startup and never mutated afterwards.
type Product struct {
	ID             int64             `json:"id" db:"id"`
	Name           string            `json:"name" db:"name"`
	Description    string            `json:"description" db:"description"`
	Category       Category          `json:"category" db:"category"`
	Price          float64           `json:"price" db:"price"`
	Rating         float64           `json:"rating" db:"rating"`
	Stock          int               `json:"stock" db:"stock"`
	Image          string            `json:"image" db:"image"`
	Images         []string          `json:"images,omitempty" db:"images"`
	Tags           []string          `json:"tags,omitempty" db:"tags"`
	Specifications map[string]string `json:"specifications,omitempty" db:"specifications"`
}
