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

// GormDocumentRepository implements DocumentRepository using GORM
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// FindByID finds a document by its ID
func (r *GormDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*rental.Document, error) {
	var model models.DocumentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProperty finds all documents attached to a property
func (r *GormDocumentRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]rental.Document, error) {
	var documentModels []models.DocumentModel
	if err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("created_at ASC").
		Find(&documentModels).Error; err != nil {
		return nil, err
	}

	documents := make([]rental.Document, len(documentModels))
	for i, model := range documentModels {
		documents[i] = *model.ToDomain()
	}
	return documents, nil
}

// FindByPropertyTypeOwner finds the document occupying a (property, type, owner) slot
func (r *GormDocumentRepository) FindByPropertyTypeOwner(ctx context.Context, propertyID uuid.UUID, docType rental.DocumentType, owner rental.DocumentOwner) (*rental.Document, error) {
	var model models.DocumentModel
	if err := r.db.WithContext(ctx).
		Where("property_id = ? AND type = ? AND document_owner = ?", propertyID, docType, owner).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all documents
func (r *GormDocumentRepository) FindAll(ctx context.Context) ([]rental.Document, error) {
	var documentModels []models.DocumentModel
	if err := r.db.WithContext(ctx).Find(&documentModels).Error; err != nil {
		return nil, err
	}

	documents := make([]rental.Document, len(documentModels))
	for i, model := range documentModels {
		documents[i] = *model.ToDomain()
	}
	return documents, nil
}

// Save creates or updates a document
func (r *GormDocumentRepository) Save(ctx context.Context, document *rental.Document) error {
	model := models.DocumentModelFromDomain(document)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a document
func (r *GormDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.DocumentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByProperty removes all documents attached to a property
func (r *GormDocumentRepository) DeleteByProperty(ctx context.Context, propertyID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.DocumentModel{}, "property_id = ?", propertyID).Error
}

// Ensure GormDocumentRepository implements DocumentRepository
var _ rental.DocumentRepository = (*GormDocumentRepository)(nil)
