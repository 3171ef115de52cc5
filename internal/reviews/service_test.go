package reviews

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/teetribe/teetribe-backend/pkg/db/models"
	pkgerrors "github.com/teetribe/teetribe-backend/pkg/errors"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := conn.AutoMigrate(&models.Review{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return conn
}

type stubProducts map[string]models.Product

func (s stubProducts) FindByIDs(_ context.Context, ids []string) (map[string]models.Product, error) {
	out := map[string]models.Product{}
	for _, id := range ids {
		if p, ok := s[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := openTestDB(t)
	svc, err := NewService(ServiceParams{
		Repo:     NewRepository(conn),
		Products: stubProducts{"7": {ID: "7", Name: "Geo Bandana"}},
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, conn
}

func TestCreateAndListReviews(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	older := models.Review{ProductID: "7", UserName: "ana@example.com", Rating: 4, Comment: "Great colours on the bandana", CreatedAt: time.Now().Add(-time.Hour)}
	if err := conn.Create(&older).Error; err != nil {
		t.Fatalf("seed review: %v", err)
	}

	res, err := svc.Create(ctx, CreateReviewInput{ProductID: " 7 ", Rating: 5, Comment: "  Fits perfectly, love it  "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.Message != "Review added successfully!" || res.Review.ID == uuid.Nil {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.Review.UserName != AnonymousUser || res.Review.Comment != "Fits perfectly, love it" {
		t.Fatalf("expected normalized review, got %+v", res.Review)
	}

	list, err := svc.List(ctx, "7")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if list.Count != 2 || list.Reviews[0].ID != res.Review.ID {
		t.Fatalf("expected newest first, got %+v", list.Reviews)
	}
	if list.AverageRating != 4.5 {
		t.Fatalf("expected average 4.5, got %v", list.AverageRating)
	}

	empty, err := svc.List(ctx, "1")
	if err != nil {
		t.Fatalf("List empty: %v", err)
	}
	if empty.Count != 0 || empty.Reviews == nil || empty.AverageRating != 0 {
		t.Fatalf("expected empty non-nil list, got %+v", empty)
	}
}

func TestCreateReviewValidation(t *testing.T) {
	svc, _ := newTestService(t)
	cases := map[string]CreateReviewInput{
		"rating too high": {ProductID: "7", Rating: 6, Comment: "Long enough comment"},
		"rating missing":  {ProductID: "7", Comment: "Long enough comment"},
		"short comment":   {ProductID: "7", Rating: 3, Comment: "  meh      "},
		"long comment":    {ProductID: "7", Rating: 3, Comment: strings.Repeat("a", 501)},
		"no product":      {Rating: 3, Comment: "Long enough comment"},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), input); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreateReviewUnknownProduct(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Create(context.Background(), CreateReviewInput{ProductID: "999", Rating: 3, Comment: "Long enough comment"})
	if !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteReview(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.Create(ctx, CreateReviewInput{ProductID: "7", UserName: "ana", Rating: 2, Comment: "Faded after one wash"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, res.Review.ID.String()); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, res.Review.ID.String()); !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected second delete to be not found, got %v", err)
	}
	if err := svc.Delete(ctx, "not-a-uuid"); !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected malformed id to be not found, got %v", err)
	}
}

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(ServiceParams{}); err == nil {
		t.Fatal("expected error without repo")
	}
}
