package storefront

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/teetribe/teetribe-backend/api/responses"
	"github.com/teetribe/teetribe-backend/api/validators"
	"github.com/teetribe/teetribe-backend/pkg/cartapi"
	pkgerrors "github.com/teetribe/teetribe-backend/pkg/errors"
	"github.com/teetribe/teetribe-backend/pkg/logger"
)

// Reviews reads and writes product reviews and the category filter.
type Reviews interface {
	ListReviews(ctx context.Context, productID string) (*cartapi.ReviewList, error)
	AddReview(ctx context.Context, req cartapi.AddReviewRequest) (*cartapi.AddReviewResult, error)
	DeleteReview(ctx context.Context, reviewID string) error
	ListCategories(ctx context.Context) ([]cartapi.Category, error)
}

type reviewRequest struct {
	UserName string `json:"user_name" validate:"omitempty,max=120"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Comment  string `json:"comment" validate:"required,min=10,max=500"`
}

// ProductReviews lists the reviews shown on a product page.
func ProductReviews(catalog Catalog, reviews Reviews, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if catalog == nil || reviews == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reviews unavailable"))
			return
		}

		product, err := catalog.GetProductBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := reviews.ListReviews(r.Context(), product.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// ProductReviewAdd submits the product page's review form.
func ProductReviewAdd(catalog Catalog, reviews Reviews, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if catalog == nil || reviews == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reviews unavailable"))
			return
		}

		var payload reviewRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := catalog.GetProductBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := reviews.AddReview(r.Context(), cartapi.AddReviewRequest{
			ProductID: product.ID,
			UserName:  validators.SanitizeString(payload.UserName, 120),
			Rating:    payload.Rating,
			Comment:   validators.SanitizeString(payload.Comment, 500),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// ReviewDelete removes a review.
func ReviewDelete(reviews Reviews, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if reviews == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reviews unavailable"))
			return
		}

		if err := reviews.DeleteReview(r.Context(), chi.URLParam(r, "reviewId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"message": "Review deleted"})
	}
}

// CategoryList feeds the shop's category filter.
func CategoryList(reviews Reviews, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if reviews == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		categories, err := reviews.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"categories": categories})
	}
}
