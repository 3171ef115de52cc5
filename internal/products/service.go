package products

import (
	"context"
	"strings"

	"github.com/teetribe/teetribe-backend/pkg/db/models"
	pkgerrors "github.com/teetribe/teetribe-backend/pkg/errors"
	"github.com/teetribe/teetribe-backend/pkg/pagination"
)

type repository interface {
	List(ctx context.Context, filters ListFilters, params pagination.Params) ([]models.Product, int64, error)
	FindBySlug(ctx context.Context, slug string) (*models.Product, error)
	Categories(ctx context.Context) ([]Category, error)
}

// Service exposes the read-only catalog.
type Service interface {
	List(ctx context.Context, filters ListFilters, params pagination.Params) (ProductPage, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	Categories(ctx context.Context) ([]Category, error)
}

type service struct {
	repo repository
}

// NewService builds a catalog service with the required dependencies.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	return &service{repo: repo}, nil
}

// List returns one filtered page of products.
func (s *service) List(ctx context.Context, filters ListFilters, params pagination.Params) (ProductPage, error) {
	filters = filters.Normalized()
	if filters.MinPrice != nil && filters.MaxPrice != nil && *filters.MinPrice > *filters.MaxPrice {
		return ProductPage{}, pkgerrors.New(pkgerrors.CodeValidation, "min_price must not exceed max_price")
	}
	params = params.Normalize()
	items, total, err := s.repo.List(ctx, filters, params)
	if err != nil {
		return ProductPage{}, err
	}
	return ProductPage{Items: items, Total: total, Page: params.Page, Limit: params.Limit}, nil
}

// GetBySlug resolves a product for the detail page.
func (s *service) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}
	return s.repo.FindBySlug(ctx, slug)
}

// Categories lists the shop filter entries.
func (s *service) Categories(ctx context.Context) ([]Category, error) {
	return s.repo.Categories(ctx)
}
