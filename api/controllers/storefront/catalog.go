package storefront

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/teetribe/teetribe-backend/api/responses"
	"github.com/teetribe/teetribe-backend/api/validators"
	"github.com/teetribe/teetribe-backend/internal/cart"
	"github.com/teetribe/teetribe-backend/pkg/cartapi"
	"github.com/teetribe/teetribe-backend/pkg/db/models"
	pkgerrors "github.com/teetribe/teetribe-backend/pkg/errors"
	"github.com/teetribe/teetribe-backend/pkg/logger"
	"github.com/teetribe/teetribe-backend/pkg/pagination"
)

// preferredSize is preselected on the product page.
const preferredSize = "M"

// Catalog reads products from the API.
type Catalog interface {
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	ListProducts(ctx context.Context, q cartapi.ProductQuery) (*cartapi.ProductPage, error)
}

// ProductList passes the listing filters through to the API.
func ProductList(catalog Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if catalog == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		query, err := parseProductQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := catalog.ListProducts(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

type addBySlugRequest struct {
	Size string `json:"size"`
}

// ProductAdd is the product page's add to cart: it resolves the product by
// slug and adds one unit in the chosen size.
func ProductAdd(catalog Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if catalog == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}
		store, ok := storeFor(w, r, logg)
		if !ok {
			return
		}

		var payload addBySlugRequest
		if r.ContentLength != 0 {
			if err := validators.DecodeLooseJSON(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		product, err := catalog.GetProductBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		size, err := pickSize(product.Sizes, payload.Size)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		notice, err := store.AddItem(r.Context(), cart.Record{
			"id":    product.ID,
			"name":  product.Name,
			"price": product.Price,
			"image": product.Image,
			"size":  size,
			"slug":  product.Slug,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeMutation(w, store, notice)
	}
}

// pickSize validates the requested size against the product's sizes. With no
// request it falls back to the preselected size, or the first one offered.
func pickSize(offered []string, requested string) (string, error) {
	requested = strings.TrimSpace(requested)
	if len(offered) == 0 {
		if requested == "" {
			return cart.DefaultSize, nil
		}
		return requested, nil
	}
	if requested == "" {
		for _, size := range offered {
			if size == preferredSize {
				return size, nil
			}
		}
		return offered[0], nil
	}
	for _, size := range offered {
		if strings.EqualFold(size, requested) {
			return size, nil
		}
	}
	return "", pkgerrors.New(pkgerrors.CodeValidation, "size not available").
		WithDetails(map[string]any{"size": requested, "available": offered})
}

func parseProductQuery(r *http.Request) (cartapi.ProductQuery, error) {
	page, err := validators.ParseQueryInt(r, "page", 1, 1, 100000)
	if err != nil {
		return cartapi.ProductQuery{}, err
	}
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return cartapi.ProductQuery{}, err
	}
	minPrice, err := validators.ParseQueryFloat(r, "min_price")
	if err != nil {
		return cartapi.ProductQuery{}, err
	}
	maxPrice, err := validators.ParseQueryFloat(r, "max_price")
	if err != nil {
		return cartapi.ProductQuery{}, err
	}
	return cartapi.ProductQuery{
		Categories: validators.ParseQueryList(r, "categories"),
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
		Q:          validators.SanitizeString(r.URL.Query().Get("q"), 200),
		Page:       page,
		Limit:      limit,
	}, nil
}
