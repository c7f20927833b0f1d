// Package gormstore persists activities through gorm, backed by MySQL in production.
package gormstore

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/erikadonato/to-do-list/internal/domain"
	"github.com/erikadonato/to-do-list/internal/persistence/sqlbuild"
)

// activityRow is the gorm mapping of the activities table.
type activityRow struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	Title    string `gorm:"type:varchar(255);not null"`
	Subtitle string `gorm:"type:varchar(255);not null"`
	Pending  bool   `gorm:"not null"`
}

func (activityRow) TableName() string {
	return sqlbuild.Table
}

func (r activityRow) toDomain() *domain.Activity {
	return &domain.Activity{ID: r.ID, Title: r.Title, Subtitle: r.Subtitle, Pending: r.Pending}
}

// PoolConfig sizes the underlying sql.DB pool.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
}

// Store implements domain.ActivityRepository on top of a *gorm.DB.
type Store struct {
	db *gorm.DB
}

// NewStore wraps an existing gorm handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// OpenMySQL connects to MySQL using dsn and applies the pool settings.
func OpenMySQL(dsn string, pool PoolConfig) (*Store, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open mysql connection")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get mysql connection pool")
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(pool.ConnMaxIdleTime)
	}
	return NewStore(db), nil
}

// Migrate creates or alters the activities table to match activityRow.
func (s *Store) Migrate(ctx context.Context) error {
	return errors.Wrap(s.db.WithContext(ctx).AutoMigrate(&activityRow{}), "auto-migrate activities")
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// FindByID implements domain.ActivityRepository.
func (s *Store) FindByID(ctx context.Context, id int64) (*domain.Activity, error) {
	var row activityRow
	err := s.db.WithContext(ctx).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "select activity %d", id)
	}
	return row.toDomain(), nil
}

// Create implements domain.ActivityRepository.
func (s *Store) Create(ctx context.Context, fields domain.NewActivity) (*domain.Activity, error) {
	row := activityRow{Title: fields.Title, Subtitle: fields.Subtitle, Pending: fields.Pending}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, errors.Wrap(err, "insert activity")
	}
	return row.toDomain(), nil
}

// Update implements domain.ActivityRepository. A map is used so zero values such as
// false and "" are written.
func (s *Store) Update(ctx context.Context, id int64, patch domain.ActivityPatch) error {
	set := sqlbuild.SetClauses(patch)
	if len(set) == 0 {
		return sqlbuild.ErrEmptyPatch
	}
	err := s.db.WithContext(ctx).Model(&activityRow{}).Where("id = ?", id).Updates(set).Error
	return errors.Wrapf(err, "update activity %d", id)
}

// Remove implements domain.ActivityRepository.
func (s *Store) Remove(ctx context.Context, activity domain.Activity) error {
	err := s.db.WithContext(ctx).Delete(&activityRow{}, activity.ID).Error
	return errors.Wrapf(err, "delete activity %d", activity.ID)
}
