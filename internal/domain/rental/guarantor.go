package rental

import (
	"context"

	"github.com/alquileres/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Guarantor is an optional co-signer for a tenancy. Same shape as Tenant
// minus the contract dates; at most one per property.
type Guarantor struct {
	shared.BaseEntity
	PropertyID *uuid.UUID `gorm:"type:uuid;index"`
	Name       string     `gorm:"type:varchar(200);not null"`
	Phone      string     `gorm:"type:varchar(50)"`
	Email      string     `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (Guarantor) TableName() string {
	return "guarantors"
}

// NewGuarantor creates a guarantor bound to a property
func NewGuarantor(propertyID uuid.UUID, name, phone, email string) (*Guarantor, error) {
	if err := validatePersonName(name); err != nil {
		return nil, err
	}
	if err := validateContact(phone, email); err != nil {
		return nil, err
	}

	return &Guarantor{
		BaseEntity: shared.NewBaseEntity(),
		PropertyID: &propertyID,
		Name:       name,
		Phone:      phone,
		Email:      email,
	}, nil
}

// Update replaces the guarantor's personal details
func (g *Guarantor) Update(name, phone, email string) error {
	if err := validatePersonName(name); err != nil {
		return err
	}
	if err := validateContact(phone, email); err != nil {
		return err
	}

	g.Name = name
	g.Phone = phone
	g.Email = email
	g.Touch()

	return nil
}

// GuarantorRepository defines persistence operations for guarantors
type GuarantorRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Guarantor, error)
	FindByProperty(ctx context.Context, propertyID uuid.UUID) (*Guarantor, error)
	FindAll(ctx context.Context) ([]Guarantor, error)
	Save(ctx context.Context, guarantor *Guarantor) error
	DeleteByProperty(ctx context.Context, propertyID uuid.UUID) error
}
