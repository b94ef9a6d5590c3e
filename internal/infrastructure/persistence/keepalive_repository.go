package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/alquileres/backend/internal/domain/rental"
	"github.com/alquileres/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const keepAliveRowID = 1

// GormKeepAliveRepository implements KeepAliveRepository using GORM
type GormKeepAliveRepository struct {
	db *gorm.DB
}

// NewGormKeepAliveRepository creates a new GormKeepAliveRepository
func NewGormKeepAliveRepository(db *gorm.DB) *GormKeepAliveRepository {
	return &GormKeepAliveRepository{db: db}
}

// Ping upserts the singleton liveness row with the given timestamp
func (r *GormKeepAliveRepository) Ping(ctx context.Context, at time.Time) error {
	row := models.KeepAliveModel{ID: keepAliveRowID, LastPing: at}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_ping"}),
		}).
		Create(&row).Error
}

// LastPing returns the most recent ping timestamp, or nil if none exists
func (r *GormKeepAliveRepository) LastPing(ctx context.Context) (*time.Time, error) {
	var row models.KeepAliveModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", keepAliveRowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row.LastPing, nil
}

// Ensure GormKeepAliveRepository implements KeepAliveRepository
var _ rental.KeepAliveRepository = (*GormKeepAliveRepository)(nil)
