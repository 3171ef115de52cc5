package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teetribe/teetribe-backend/pkg/cartapi"
	"github.com/teetribe/teetribe-backend/pkg/db/models"
	pkgerrors "github.com/teetribe/teetribe-backend/pkg/errors"
)

type stubReviews struct {
	listedFor string
	added     cartapi.AddReviewRequest
	deleted   string
}

func (s *stubReviews) ListReviews(_ context.Context, productID string) (*cartapi.ReviewList, error) {
	s.listedFor = productID
	return &cartapi.ReviewList{
		Reviews:       []models.Review{{ProductID: productID, UserName: "ana", Rating: 5, Comment: "Lovely print"}},
		Count:         1,
		AverageRating: 5,
	}, nil
}

func (s *stubReviews) AddReview(_ context.Context, req cartapi.AddReviewRequest) (*cartapi.AddReviewResult, error) {
	s.added = req
	return &cartapi.AddReviewResult{Message: "Review added successfully!", Review: models.Review{ProductID: req.ProductID, Rating: req.Rating}}, nil
}

func (s *stubReviews) DeleteReview(_ context.Context, reviewID string) error {
	if reviewID == "gone" {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Review not found")
	}
	s.deleted = reviewID
	return nil
}

func (s *stubReviews) ListCategories(context.Context) ([]cartapi.Category, error) {
	return []cartapi.Category{{Name: "Graphic", Status: "Active", ProductCount: 2}}, nil
}

func newReviewRouter(t *testing.T, reviews Reviews) http.Handler {
	t.Helper()
	catalog := &stubCatalog{products: map[string]models.Product{
		"geo-bandana": {ID: "17", Name: "Geo Bandana", Slug: "geo-bandana"},
	}}
	r := chi.NewRouter()
	r.Get("/storefront/products/{slug}/reviews", ProductReviews(catalog, reviews, nil))
	r.Post("/storefront/products/{slug}/reviews", ProductReviewAdd(catalog, reviews, nil))
	r.Delete("/storefront/reviews/{reviewId}", ReviewDelete(reviews, nil))
	r.Get("/storefront/categories", CategoryList(reviews, nil))
	return r
}

func TestProductReviewsResolveSlug(t *testing.T) {
	reviews := &stubReviews{}
	h := newReviewRouter(t, reviews)

	rec := do(t, h, http.MethodGet, "/storefront/products/geo-bandana/reviews", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "17", reviews.listedFor)

	var env struct {
		Data cartapi.ReviewList `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, 1, env.Data.Count)
	assert.Equal(t, 5.0, env.Data.AverageRating)

	rec = do(t, h, http.MethodGet, "/storefront/products/missing/reviews", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductReviewAdd(t *testing.T) {
	reviews := &stubReviews{}
	h := newReviewRouter(t, reviews)

	rec := do(t, h, http.MethodPost, "/storefront/products/geo-bandana/reviews", `{"user_name":" ana ","rating":4,"comment":"Soft fabric, sharp print"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, cartapi.AddReviewRequest{ProductID: "17", UserName: "ana", Rating: 4, Comment: "Soft fabric, sharp print"}, reviews.added)

	rec = do(t, h, http.MethodPost, "/storefront/products/geo-bandana/reviews", `{"rating":6,"comment":"Soft fabric, sharp print"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/storefront/products/geo-bandana/reviews", `{"rating":3,"comment":"short"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReviewDeleteAndCategories(t *testing.T) {
	reviews := &stubReviews{}
	h := newReviewRouter(t, reviews)

	rec := do(t, h, http.MethodDelete, "/storefront/reviews/r-9", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "r-9", reviews.deleted)

	rec = do(t, h, http.MethodDelete, "/storefront/reviews/gone", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/storefront/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Graphic"`)
}
