package reviews

import (
	"strings"

	"github.com/teetribe/teetribe-backend/pkg/db/models"
)

// CreateReviewInput is the body of POST /reviews.
type CreateReviewInput struct {
	ProductID string `json:"product_id" validate:"required,max=64"`
	UserName  string `json:"user_name" validate:"omitempty,max=120"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"required,min=10,max=500"`
}

// AnonymousUser names reviews submitted without a user name.
const AnonymousUser = "Anonymous"

// Normalized trims every text field and fills in the anonymous author.
func (in CreateReviewInput) Normalized() CreateReviewInput {
	out := CreateReviewInput{
		ProductID: strings.TrimSpace(in.ProductID),
		UserName:  strings.TrimSpace(in.UserName),
		Rating:    in.Rating,
		Comment:   strings.TrimSpace(in.Comment),
	}
	if out.UserName == "" {
		out.UserName = AnonymousUser
	}
	return out
}

// ReviewList is a product's reviews with their average rating.
type ReviewList struct {
	Reviews       []models.Review `json:"reviews"`
	Count         int             `json:"count"`
	AverageRating float64         `json:"average_rating"`
}

// CreateResult acknowledges a stored review.
type CreateResult struct {
	Message string        `json:"message"`
	Review  models.Review `json:"review"`
}
