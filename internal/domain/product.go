package domain

import "time"

type Product struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	// Category is a soft reference by name, not a foreign key. Renaming
	// or deleting a category does not cascade-rename existing products;
	// deleting a category resets this field to the empty string.
	Category     string             `json:"category"`
	IsPublished  bool               `json:"is_published"`
	Labels       []string           `json:"labels,omitempty"`
	Images       []ProductImage     `json:"images,omitempty"`
	Descriptions []DescriptionBlock `json:"descriptions,omitempty"`
	Variants     []Variant          `json:"variants,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

type ProductImage struct {
	ID        int    `json:"id"`
	ProductID int    `json:"productId"`
	URL       string `json:"url"`
	Position  int    `json:"position"`
}

type DescriptionBlock struct {
	ID        int    `json:"id"`
	ProductID int    `json:"productId"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Position  int    `json:"position"`
}

type Variant struct {
	ID        int             `json:"id"`
	ProductID int             `json:"productId"`
	Name      string          `json:"name"`
	Options   []VariantOption `json:"options,omitempty"`
}

type VariantOption struct {
	ID          int     `json:"id"`
	VariantID   int     `json:"variantId"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	IsPublished bool    `json:"is_published"`
	OutOfStock  bool    `json:"out_of_stock"`
	IsDefault   bool    `json:"is_default"`
}
