package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/teetribe/teetribe-backend/api/responses"
	"github.com/teetribe/teetribe-backend/api/validators"
	"github.com/teetribe/teetribe-backend/internal/products"
	pkgerrors "github.com/teetribe/teetribe-backend/pkg/errors"
	"github.com/teetribe/teetribe-backend/pkg/logger"
	"github.com/teetribe/teetribe-backend/pkg/pagination"
)

// ProductList serves the filtered, paginated catalog.
func ProductList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		filters, params, err := parseProductQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), filters, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// ProductBySlug looks a product up by its slug, ignoring case.
func ProductBySlug(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		slug := validators.SanitizeString(chi.URLParam(r, "slug"), 200)
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "slug is required"))
			return
		}

		product, err := svc.GetBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func parseProductQuery(r *http.Request) (products.ListFilters, pagination.Params, error) {
	page, err := validators.ParseQueryInt(r, "page", 1, 1, 100000)
	if err != nil {
		return products.ListFilters{}, pagination.Params{}, err
	}
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return products.ListFilters{}, pagination.Params{}, err
	}
	minPrice, err := validators.ParseQueryFloat(r, "min_price")
	if err != nil {
		return products.ListFilters{}, pagination.Params{}, err
	}
	maxPrice, err := validators.ParseQueryFloat(r, "max_price")
	if err != nil {
		return products.ListFilters{}, pagination.Params{}, err
	}

	filters := products.ListFilters{
		Categories: validators.ParseQueryList(r, "categories"),
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
		Query:      validators.SanitizeString(r.URL.Query().Get("q"), 200),
	}
	return filters, pagination.Params{Page: page, Limit: limit}, nil
}

// CategoryList serves the shop's category filter.
func CategoryList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		categories, err := svc.Categories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"categories": categories})
	}
}
