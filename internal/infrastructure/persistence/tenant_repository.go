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

// GormTenantRepository implements TenantRepository using GORM
type GormTenantRepository struct {
	db *gorm.DB
}

// NewGormTenantRepository creates a new GormTenantRepository
func NewGormTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

// FindByID finds a tenant by its ID
func (r *GormTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*rental.Tenant, error) {
	var model models.TenantModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProperty finds the tenant occupying a property
func (r *GormTenantRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) (*rental.Tenant, error) {
	var model models.TenantModel
	if err := r.db.WithContext(ctx).First(&model, "property_id = ?", propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all tenants
func (r *GormTenantRepository) FindAll(ctx context.Context) ([]rental.Tenant, error) {
	var tenantModels []models.TenantModel
	if err := r.db.WithContext(ctx).Find(&tenantModels).Error; err != nil {
		return nil, err
	}

	tenants := make([]rental.Tenant, len(tenantModels))
	for i, model := range tenantModels {
		tenants[i] = *model.ToDomain()
	}
	return tenants, nil
}

// Save creates or updates a tenant
func (r *GormTenantRepository) Save(ctx context.Context, tenant *rental.Tenant) error {
	model := models.TenantModelFromDomain(tenant)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteByProperty removes the tenant bound to a property
func (r *GormTenantRepository) DeleteByProperty(ctx context.Context, propertyID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.TenantModel{}, "property_id = ?", propertyID).Error
}

// Ensure GormTenantRepository implements TenantRepository
var _ rental.TenantRepository = (*GormTenantRepository)(nil)
