package localcart

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/teetribe/teetribe-backend/internal/cart"
	"github.com/teetribe/teetribe-backend/pkg/config"
	"github.com/teetribe/teetribe-backend/pkg/db"
	"github.com/teetribe/teetribe-backend/pkg/db/models"
	pkgerrors "github.com/teetribe/teetribe-backend/pkg/errors"
	"github.com/teetribe/teetribe-backend/pkg/logger"
)

// DefaultKey is the row the storefront's cart lives under.
const DefaultKey = "tee-tribe-cart"

// Repository persists the storefront cart in an embedded SQLite database.
type Repository struct {
	db   *gorm.DB
	key  string
	logg *logger.Logger
}

// Open creates (or reuses) the SQLite file at path and prepares the table.
func Open(ctx context.Context, path, key string, logg *logger.Logger) (*Repository, *db.Client, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "local cart path is required")
	}
	client, err := db.New(ctx, config.DBConfig{Driver: config.DriverSQLite, DSN: path}, logg)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "open local cart db")
	}
	repo, err := NewRepository(client.DB(), key, logg)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	if err := repo.Migrate(ctx); err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	return repo, client, nil
}

// NewRepository binds a repository to an open connection.
func NewRepository(conn *gorm.DB, key string, logg *logger.Logger) (*Repository, error) {
	if conn == nil {
		return nil, errors.New("db connection required")
	}
	if strings.TrimSpace(key) == "" {
		key = DefaultKey
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Repository{db: conn, key: key, logg: logg}, nil
}

// Migrate creates the backing table when it does not exist.
func (r *Repository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&models.LocalCartEntry{}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "migrate local cart table")
	}
	return nil
}

// Save overwrites the stored cart with lines.
func (r *Repository) Save(ctx context.Context, lines []cart.Line) error {
	if lines == nil {
		lines = []cart.Line{}
	}
	payload, err := json.Marshal(lines)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode local cart")
	}
	entry := models.LocalCartEntry{Key: r.key, Payload: string(payload)}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "save local cart")
	}
	return nil
}

// Load returns the stored records. An absent row is an empty cart; an
// unparseable payload is logged and also treated as empty.
func (r *Repository) Load(ctx context.Context) ([]cart.Record, error) {
	var entry models.LocalCartEntry
	err := r.db.WithContext(ctx).Where(&models.LocalCartEntry{Key: r.key}).Take(&entry).Error
	if db.IsNotFound(err) {
		return []cart.Record{}, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "load local cart")
	}

	var records []cart.Record
	if err := json.Unmarshal([]byte(entry.Payload), &records); err != nil {
		r.logg.WarnErr(r.logg.WithField(ctx, "key", r.key), "localcart.load.unparseable", err)
		return []cart.Record{}, nil
	}
	if records == nil {
		records = []cart.Record{}
	}
	return records, nil
}

// Clear removes the stored row.
func (r *Repository) Clear(ctx context.Context) error {
	err := r.db.WithContext(ctx).Where(&models.LocalCartEntry{Key: r.key}).Delete(&models.LocalCartEntry{}).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "clear local cart")
	}
	return nil
}
