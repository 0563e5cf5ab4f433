// internal/models/product.go
package models

type Product struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	Brand      string   `json:"brand"`
	Price      float64  `json:"price"`
	ImageURL   string   `json:"imageUrl"`
	ARModelURL string   `json:"arModelUrl,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}
