package products

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/teetribe/teetribe-backend/pkg/db"
	"github.com/teetribe/teetribe-backend/pkg/db/models"
	pkgerrors "github.com/teetribe/teetribe-backend/pkg/errors"
	"github.com/teetribe/teetribe-backend/pkg/pagination"
)

// Repository reads catalog listings.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{db: conn}
}

// List returns one filtered page of products ordered by name, plus the total
// number of matches.
func (r *Repository) List(ctx context.Context, filters ListFilters, params pagination.Params) ([]models.Product, int64, error) {
	params = params.Normalize()
	query := applyFilters(r.db.WithContext(ctx).Model(&models.Product{}), filters)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count products")
	}

	items := []models.Product{}
	err := query.Session(&gorm.Session{}).
		Order("name ASC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return items, total, nil
}

// FindBySlug matches the slug case-insensitively.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("LOWER(slug) = ?", strings.ToLower(strings.TrimSpace(slug))).
		Take(&product).Error
	if db.IsNotFound(err) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find product")
	}
	return &product, nil
}

// FindByIDs loads the products referenced by a cart, keyed by id.
func (r *Repository) FindByIDs(ctx context.Context, ids []string) (map[string]models.Product, error) {
	out := make(map[string]models.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []models.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find products")
	}
	for _, row := range rows {
		out[row.ID] = row
	}
	return out, nil
}

// Categories counts products per category, ordered by name.
func (r *Repository) Categories(ctx context.Context) ([]Category, error) {
	var rows []struct {
		Name         string
		ProductCount int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("category AS name, COUNT(*) AS product_count").
		Where("category <> ''").
		Group("category").
		Order("category ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	out := make([]Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, Category{Name: row.Name, Status: CategoryStatusActive, ProductCount: row.ProductCount})
	}
	return out, nil
}

func applyFilters(query *gorm.DB, filters ListFilters) *gorm.DB {
	if len(filters.Categories) > 0 {
		query = query.Where("category IN ?", filters.Categories)
	}
	if filters.MinPrice != nil {
		query = query.Where("price >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		query = query.Where("price <= ?", *filters.MaxPrice)
	}
	if q := strings.ToLower(strings.TrimSpace(filters.Query)); q != "" {
		like := "%" + escapeLike(q) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\' OR LOWER(category) LIKE ? ESCAPE '\\' OR LOWER(CAST(meta_keywords AS TEXT)) LIKE ? ESCAPE '\\'",
			like, like, like, like,
		)
	}
	return query
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
