package carts

import (
	"context"
	"strings"

	"github.com/teetribe/teetribe-backend/internal/cart"
	pkgerrors "github.com/teetribe/teetribe-backend/pkg/errors"
)

// CartDTO is the remote cart as returned to clients.
type CartDTO struct {
	UserID string      `json:"user_id"`
	Items  []cart.Line `json:"items"`
}

// SaveResult acknowledges a full-cart replacement.
type SaveResult struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// Service exposes the remote cart operations.
type Service interface {
	Get(ctx context.Context, userID string) (CartDTO, error)
	Save(ctx context.Context, userID string, items []cart.Record) (SaveResult, error)
	Clear(ctx context.Context, userID string) error
}

type service struct {
	repo *Repository
}

// NewService builds a cart service with the required dependencies.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repo is required")
	}
	return &service{repo: repo}, nil
}

// Get returns the user's cart, empty when none is stored.
func (s *service) Get(ctx context.Context, userID string) (CartDTO, error) {
	userID, err := normalizeUserID(userID)
	if err != nil {
		return CartDTO{}, err
	}
	lines, _, err := s.repo.Get(ctx, userID)
	if err != nil {
		return CartDTO{}, err
	}
	// stored data may predate the current rules
	lines = cart.Sanitize(cart.Records(lines))
	return CartDTO{UserID: userID, Items: lines}, nil
}

// Save sanitizes and stores the full cart sent by the client. Count is the
// number of lines kept after sanitizing.
func (s *service) Save(ctx context.Context, userID string, items []cart.Record) (SaveResult, error) {
	userID, err := normalizeUserID(userID)
	if err != nil {
		return SaveResult{}, err
	}
	lines := cart.Sanitize(items)
	if err := s.repo.Save(ctx, userID, lines); err != nil {
		return SaveResult{}, err
	}
	return SaveResult{Message: "Cart saved", Count: len(lines)}, nil
}

// Clear deletes the user's cart; a missing cart is NotFound.
func (s *service) Clear(ctx context.Context, userID string) error {
	userID, err := normalizeUserID(userID)
	if err != nil {
		return err
	}
	removed, err := s.repo.Delete(ctx, userID)
	if err != nil {
		return err
	}
	if !removed {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Cart not found")
	}
	return nil
}

func normalizeUserID(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	return userID, nil
}
