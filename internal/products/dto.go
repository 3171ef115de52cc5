package products

import (
	"strings"

	"github.com/teetribe/teetribe-backend/pkg/db/models"
	"github.com/teetribe/teetribe-backend/pkg/pagination"
)

// ListFilters describe the supported filter knobs for the catalog listing.
type ListFilters struct {
	Categories []string `json:"categories,omitempty"`
	MinPrice   *float64 `json:"min_price,omitempty"`
	MaxPrice   *float64 `json:"max_price,omitempty"`
	Query      string   `json:"q,omitempty"`
}

// Normalized drops blank categories and trims the search term.
func (f ListFilters) Normalized() ListFilters {
	out := ListFilters{MinPrice: f.MinPrice, MaxPrice: f.MaxPrice, Query: strings.TrimSpace(f.Query)}
	for _, category := range f.Categories {
		for _, part := range strings.Split(category, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out.Categories = append(out.Categories, part)
			}
		}
	}
	return out
}

// ProductPage is one page of catalog results.
type ProductPage = pagination.Page[models.Product]

// Category summarizes one shop filter entry. Categories are derived from the
// catalog, so every listed category has at least one product.
type Category struct {
	Name         string `json:"name"`
	Status       string `json:"status"`
	ProductCount int64  `json:"product_count"`
}

// CategoryStatusActive is the status of every derived category.
const CategoryStatusActive = "Active"
