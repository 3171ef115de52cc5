package products

import (
	"context"
	"testing"

	"github.com/teetribe/teetribe-backend/pkg/db/models"
	pkgerrors "github.com/teetribe/teetribe-backend/pkg/errors"
	"github.com/teetribe/teetribe-backend/pkg/pagination"
)

type stubRepo struct {
	gotFilters ListFilters
	gotParams  pagination.Params
	items      []models.Product
}

func (s *stubRepo) List(_ context.Context, filters ListFilters, params pagination.Params) ([]models.Product, int64, error) {
	s.gotFilters = filters
	s.gotParams = params
	return s.items, int64(len(s.items)), nil
}

func (s *stubRepo) FindBySlug(_ context.Context, slug string) (*models.Product, error) {
	return &models.Product{Slug: slug}, nil
}

func (s *stubRepo) Categories(context.Context) ([]Category, error) {
	return []Category{{Name: "Graphic", Status: CategoryStatusActive, ProductCount: 2}}, nil
}

func TestServiceListNormalizes(t *testing.T) {
	repo := &stubRepo{items: []models.Product{{ID: "1"}}}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	page, err := svc.List(context.Background(), ListFilters{Categories: []string{"Graphic, Tech", " "}, Query: "  neon "}, pagination.Params{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Page != 1 || page.Limit != pagination.DefaultLimit || page.Total != 1 {
		t.Fatalf("unexpected page meta %+v", page)
	}
	if got := repo.gotFilters.Categories; len(got) != 2 || got[0] != "Graphic" || got[1] != "Tech" {
		t.Fatalf("unexpected categories %v", got)
	}
	if repo.gotFilters.Query != "neon" {
		t.Fatalf("expected trimmed query, got %q", repo.gotFilters.Query)
	}
}

func TestServiceListRejectsInvertedRange(t *testing.T) {
	svc, _ := NewService(&stubRepo{})
	lo, hi := 30.0, 10.0
	_, err := svc.List(context.Background(), ListFilters{MinPrice: &lo, MaxPrice: &hi}, pagination.Params{})
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceGetBySlugRequiresSlug(t *testing.T) {
	svc, _ := NewService(&stubRepo{})
	if _, err := svc.GetBySlug(context.Background(), " "); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceCategories(t *testing.T) {
	svc, _ := NewService(&stubRepo{})
	categories, err := svc.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if len(categories) != 1 || categories[0].Name != "Graphic" {
		t.Fatalf("unexpected categories %+v", categories)
	}
}
