package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/teetribe/teetribe-backend/internal/products"
	"github.com/teetribe/teetribe-backend/pkg/db/models"
	pkgerrors "github.com/teetribe/teetribe-backend/pkg/errors"
	"github.com/teetribe/teetribe-backend/pkg/pagination"
)

type stubProductService struct {
	filters products.ListFilters
	params  pagination.Params
	bySlug  map[string]models.Product
}

func (s *stubProductService) List(ctx context.Context, filters products.ListFilters, params pagination.Params) (products.ProductPage, error) {
	s.filters = filters
	s.params = params
	return products.ProductPage{Items: []models.Product{{ID: "1", Name: "Geo Bandana"}}, Total: 1, Page: params.Page, Limit: params.Limit}, nil
}

func (s *stubProductService) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	if p, ok := s.bySlug[slug]; ok {
		return &p, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
}

func (s *stubProductService) Categories(ctx context.Context) ([]products.Category, error) {
	return []products.Category{{Name: "Graphic", Status: products.CategoryStatusActive, ProductCount: 2}}, nil
}

func TestProductListParsesFilters(t *testing.T) {
	svc := &stubProductService{}
	req := httptest.NewRequest(http.MethodGet, "/products?categories=Anime,Gaming&min_price=1000&max_price=3000&q=geo&page=2&limit=10", nil)
	resp := httptest.NewRecorder()
	ProductList(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if len(svc.filters.Categories) != 2 || svc.filters.Query != "geo" {
		t.Fatalf("unexpected filters %+v", svc.filters)
	}
	if svc.filters.MinPrice == nil || *svc.filters.MinPrice != 1000 || svc.filters.MaxPrice == nil || *svc.filters.MaxPrice != 3000 {
		t.Fatalf("unexpected price range %+v", svc.filters)
	}
	if svc.params.Page != 2 || svc.params.Limit != 10 {
		t.Fatalf("unexpected params %+v", svc.params)
	}
	var envelope struct {
		Data products.ProductPage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Total != 1 || len(envelope.Data.Items) != 1 {
		t.Fatalf("unexpected page %+v", envelope.Data)
	}
}

func TestProductListDefaults(t *testing.T) {
	svc := &stubProductService{}
	resp := httptest.NewRecorder()
	ProductList(svc, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/products", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.params.Page != 1 || svc.params.Limit != pagination.DefaultLimit {
		t.Fatalf("unexpected default params %+v", svc.params)
	}
	if svc.filters.MinPrice != nil || svc.filters.MaxPrice != nil {
		t.Fatalf("expected open price range, got %+v", svc.filters)
	}
}

func TestProductListRejectsBadPrice(t *testing.T) {
	resp := httptest.NewRecorder()
	ProductList(&stubProductService{}, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/products?min_price=cheap", nil))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestProductBySlug(t *testing.T) {
	svc := &stubProductService{bySlug: map[string]models.Product{"geo-bandana": {ID: "1", Slug: "geo-bandana"}}}
	r := chi.NewRouter()
	r.Get("/products/slug/{slug}", ProductBySlug(svc, nil))

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/products/slug/geo-bandana", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	missing := httptest.NewRecorder()
	r.ServeHTTP(missing, httptest.NewRequest(http.MethodGet, "/products/slug/nope", nil))
	if missing.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", missing.Code)
	}
}

func TestCategoryList(t *testing.T) {
	resp := httptest.NewRecorder()
	CategoryList(&stubProductService{}, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/categories", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data struct {
			Categories []products.Category `json:"categories"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Categories) != 1 || envelope.Data.Categories[0].ProductCount != 2 {
		t.Fatalf("unexpected categories %+v", envelope.Data.Categories)
	}
}
