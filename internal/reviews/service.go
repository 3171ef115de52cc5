package reviews

import (
	"context"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/teetribe/teetribe-backend/pkg/db/models"
	pkgerrors "github.com/teetribe/teetribe-backend/pkg/errors"
	"github.com/teetribe/teetribe-backend/pkg/logger"
)

// ProductLookup confirms a reviewed product exists.
type ProductLookup interface {
	FindByIDs(ctx context.Context, ids []string) (map[string]models.Product, error)
}

// ServiceParams groups dependencies for the reviews service.
type ServiceParams struct {
	Repo     Repository
	Products ProductLookup
	Logger   *logger.Logger
}

// Service lists, adds and deletes product reviews.
type Service interface {
	List(ctx context.Context, productID string) (ReviewList, error)
	Create(ctx context.Context, input CreateReviewInput) (CreateResult, error)
	Delete(ctx context.Context, reviewID string) error
}

type service struct {
	repo     Repository
	products ProductLookup
	validate *validator.Validate
	logg     *logger.Logger
}

// NewService builds a reviews service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reviews repo is required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		repo:     params.Repo,
		products: params.Products,
		validate: validator.New(),
		logg:     logg,
	}, nil
}

func (s *service) List(ctx context.Context, productID string) (ReviewList, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return ReviewList{}, pkgerrors.New(pkgerrors.CodeValidation, "product_id is required")
	}
	rows, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return ReviewList{}, err
	}
	return ReviewList{Reviews: rows, Count: len(rows), AverageRating: averageRating(rows)}, nil
}

func (s *service) Create(ctx context.Context, input CreateReviewInput) (CreateResult, error) {
	input = input.Normalized()
	if err := s.validate.Struct(input); err != nil {
		return CreateResult{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid review")
	}
	if s.products != nil {
		found, err := s.products.FindByIDs(ctx, []string{input.ProductID})
		if err != nil {
			return CreateResult{}, err
		}
		if _, ok := found[input.ProductID]; !ok {
			return CreateResult{}, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
		}
	}

	review := models.Review{
		ProductID: input.ProductID,
		UserName:  input.UserName,
		Rating:    input.Rating,
		Comment:   input.Comment,
	}
	if err := s.repo.Create(ctx, &review); err != nil {
		return CreateResult{}, err
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"product_id": review.ProductID,
		"review_id":  review.ID.String(),
		"rating":     review.Rating,
	}), "review.created")
	return CreateResult{Message: "Review added successfully!", Review: review}, nil
}

// Delete treats a malformed id like an unknown one.
func (s *service) Delete(ctx context.Context, reviewID string) error {
	id, err := uuid.Parse(strings.TrimSpace(reviewID))
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Review not found")
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Review not found")
	}
	return nil
}

func averageRating(rows []models.Review) float64 {
	if len(rows) == 0 {
		return 0
	}
	sum := 0
	for _, row := range rows {
		sum += row.Rating
	}
	return math.Round(float64(sum)/float64(len(rows))*10) / 10
}
