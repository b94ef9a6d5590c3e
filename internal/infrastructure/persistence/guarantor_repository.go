package persistence

import (
	"context"
	"errors"

	"github.com/alquileres/backend/internal/domain/rental"
	"github.com/alquileres/backend/internal/domain/shared"
	"github.com/alquileres/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormGuarantorRepository implements GuarantorRepository using GORM
type GormGuarantorRepository struct {
	db *gorm.DB
}

// NewGormGuarantorRepository creates a new GormGuarantorRepository
func NewGormGuarantorRepository(db *gorm.DB) *GormGuarantorRepository {
	return &GormGuarantorRepository{db: db}
}

// FindByID finds a guarantor by its ID
func (r *GormGuarantorRepository) FindByID(ctx context.Context, id uuid.UUID) (*rental.Guarantor, error) {
	var model models.GuarantorModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProperty finds the guarantor bound to a property
func (r *GormGuarantorRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) (*rental.Guarantor, error) {
	var model models.GuarantorModel
	if err := r.db.WithContext(ctx).First(&model, "property_id = ?", propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all guarantors
func (r *GormGuarantorRepository) FindAll(ctx context.Context) ([]rental.Guarantor, error) {
	var guarantorModels []models.GuarantorModel
	if err := r.db.WithContext(ctx).Find(&guarantorModels).Error; err != nil {
		return nil, err
	}

	guarantors := make([]rental.Guarantor, len(guarantorModels))
	for i, model := range guarantorModels {
		guarantors[i] = *model.ToDomain()
	}
	return guarantors, nil
}

// Save creates or updates a guarantor
func (r *GormGuarantorRepository) Save(ctx context.Context, guarantor *rental.Guarantor) error {
	model := models.GuarantorModelFromDomain(guarantor)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteByProperty removes the guarantor bound to a property
func (r *GormGuarantorRepository) DeleteByProperty(ctx context.Context, propertyID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.GuarantorModel{}, "property_id = ?", propertyID).Error
}

// Ensure GormGuarantorRepository implements GuarantorRepository
var _ rental.GuarantorRepository = (*GormGuarantorRepository)(nil)
