package rental

import (
	"context"

	"github.com/alquileres/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DocumentType enumerates the kinds of files attached to a tenancy
type DocumentType string

const (
	DocumentTypeCedula         DocumentType = "CEDULA"
	DocumentTypeWorkLetter     DocumentType = "CARTA_TRABAJO"
	DocumentTypeCreditReport   DocumentType = "DATA_CREDITO"
	DocumentTypeBankStatements DocumentType = "MOVIMIENTOS_BANCARIOS"
	DocumentTypeContract       DocumentType = "CONTRATO"
	DocumentTypeOther          DocumentType = "OTROS"
)

// DocumentTypeLabels maps document types to their display labels
var DocumentTypeLabels = map[DocumentType]string{
	DocumentTypeCedula:         "Cédula",
	DocumentTypeWorkLetter:     "Carta de Trabajo",
	DocumentTypeCreditReport:   "Data Crédito",
	DocumentTypeBankStatements: "Movimientos Bancarios",
	DocumentTypeContract:       "Contrato",
	DocumentTypeOther:          "Otros",
}

// DocumentOwner identifies whose document this is
type DocumentOwner string

const (
	DocumentOwnerTenant    DocumentOwner = "tenant"
	DocumentOwnerGuarantor DocumentOwner = "guarantor"
)

// Document is an uploaded file attached to a property's tenancy. At most
// one document exists per (property, type, owner); re-uploading replaces
// the previous one.
type Document struct {
	shared.BaseEntity
	PropertyID *uuid.UUID    `gorm:"type:uuid;index"`
	Type       DocumentType  `gorm:"type:varchar(40);not null"`
	FileURL    string        `gorm:"type:text;not null"`
	FileName   string        `gorm:"type:varchar(255)"`
	Owner      DocumentOwner `gorm:"type:varchar(20);not null;default:'tenant'"`
}

// TableName returns the table name for GORM
func (Document) TableName() string {
	return "documents"
}

// NewDocument records an uploaded file for a property
func NewDocument(propertyID uuid.UUID, docType DocumentType, owner DocumentOwner, fileURL, fileName string) (*Document, error) {
	if err := ValidateDocumentType(docType); err != nil {
		return nil, err
	}
	if err := ValidateDocumentOwner(owner); err != nil {
		return nil, err
	}
	if fileURL == "" {
		return nil, shared.NewDomainError("INVALID_FILE_URL", "File URL cannot be empty")
	}

	return &Document{
		BaseEntity: shared.NewBaseEntity(),
		PropertyID: &propertyID,
		Type:       docType,
		FileURL:    fileURL,
		FileName:   fileName,
		Owner:      owner,
	}, nil
}

// Replace points the document at a newly uploaded file
func (d *Document) Replace(fileURL, fileName string) error {
	if fileURL == "" {
		return shared.NewDomainError("INVALID_FILE_URL", "File URL cannot be empty")
	}
	d.FileURL = fileURL
	d.FileName = fileName
	d.Touch()
	return nil
}

// Label returns the display label for the document's type
func (d *Document) Label() string {
	if label, ok := DocumentTypeLabels[d.Type]; ok {
		return label
	}
	return string(d.Type)
}

// ValidateDocumentType checks that the type is one of the known kinds
func ValidateDocumentType(t DocumentType) error {
	if _, ok := DocumentTypeLabels[t]; !ok {
		return shared.NewDomainError("INVALID_DOCUMENT_TYPE", "Unknown document type")
	}
	return nil
}

// ValidateDocumentOwner checks that the owner is tenant or guarantor
func ValidateDocumentOwner(o DocumentOwner) error {
	switch o {
	case DocumentOwnerTenant, DocumentOwnerGuarantor:
		return nil
	default:
		return shared.NewDomainError("INVALID_DOCUMENT_OWNER", "Document owner must be 'tenant' or 'guarantor'")
	}
}

// DocumentRepository defines persistence operations for documents
type DocumentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Document, error)
	FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]Document, error)
	FindByPropertyTypeOwner(ctx context.Context, propertyID uuid.UUID, docType DocumentType, owner DocumentOwner) (*Document, error)
	FindAll(ctx context.Context) ([]Document, error)
	Save(ctx context.Context, document *Document) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByProperty(ctx context.Context, propertyID uuid.UUID) error
}
