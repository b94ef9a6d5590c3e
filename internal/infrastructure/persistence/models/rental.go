package models

import (
	"time"

	"github.com/alquileres/backend/internal/domain/rental"
	"github.com/alquileres/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PropertyModel is the persistence model for the Property aggregate.
type PropertyModel struct {
	AggregateModel
	Name            string                `gorm:"type:varchar(200);not null"`
	Address         string                `gorm:"type:text;not null"`
	Rooms           int                   `gorm:"not null;default:1"`
	MonthlyRent     decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	Currency        rental.Currency       `gorm:"type:varchar(10);not null;default:'RD$'"`
	Status          rental.PropertyStatus `gorm:"type:varchar(20);not null;default:'Disponible';index"`
	PaymentDay      *int                  `gorm:"type:smallint"`
	NextPaymentDate *time.Time            `gorm:"type:date"`
	PaymentStatus   *rental.PaymentStatus `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (PropertyModel) TableName() string {
	return "properties"
}

// ToDomain converts the persistence model to a domain Property aggregate.
func (m *PropertyModel) ToDomain() *rental.Property {
	return &rental.Property{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		Name:            m.Name,
		Address:         m.Address,
		Rooms:           m.Rooms,
		MonthlyRent:     m.MonthlyRent,
		Currency:        m.Currency,
		Status:          m.Status,
		PaymentDay:      m.PaymentDay,
		NextPaymentDate: m.NextPaymentDate,
		PaymentStatus:   m.PaymentStatus,
	}
}

// FromDomain populates the persistence model from a domain Property aggregate.
func (m *PropertyModel) FromDomain(p *rental.Property) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.Address = p.Address
	m.Rooms = p.Rooms
	m.MonthlyRent = p.MonthlyRent
	m.Currency = p.Currency
	m.Status = p.Status
	m.PaymentDay = p.PaymentDay
	m.NextPaymentDate = p.NextPaymentDate
	m.PaymentStatus = p.PaymentStatus
}

// PropertyModelFromDomain creates a new persistence model from a domain Property aggregate.
func PropertyModelFromDomain(p *rental.Property) *PropertyModel {
	m := &PropertyModel{}
	m.FromDomain(p)
	return m
}

// TenantModel is the persistence model for the Tenant entity.
type TenantModel struct {
	BaseModel
	PropertyID    *uuid.UUID `gorm:"type:uuid;index"`
	Name          string     `gorm:"type:varchar(200);not null"`
	Phone         string     `gorm:"type:varchar(50)"`
	Email         string     `gorm:"type:varchar(200)"`
	ContractStart *time.Time `gorm:"type:date"`
	ContractEnd   *time.Time `gorm:"type:date"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant entity.
func (m *TenantModel) ToDomain() *rental.Tenant {
	return &rental.Tenant{
		BaseEntity:    m.BaseModel.ToDomain(),
		PropertyID:    m.PropertyID,
		Name:          m.Name,
		Phone:         m.Phone,
		Email:         m.Email,
		ContractStart: m.ContractStart,
		ContractEnd:   m.ContractEnd,
	}
}

// FromDomain populates the persistence model from a domain Tenant entity.
func (m *TenantModel) FromDomain(t *rental.Tenant) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.PropertyID = t.PropertyID
	m.Name = t.Name
	m.Phone = t.Phone
	m.Email = t.Email
	m.ContractStart = t.ContractStart
	m.ContractEnd = t.ContractEnd
}

// TenantModelFromDomain creates a new persistence model from a domain Tenant entity.
func TenantModelFromDomain(t *rental.Tenant) *TenantModel {
	m := &TenantModel{}
	m.FromDomain(t)
	return m
}

// GuarantorModel is the persistence model for the Guarantor entity.
type GuarantorModel struct {
	BaseModel
	PropertyID *uuid.UUID `gorm:"type:uuid;index"`
	Name       string     `gorm:"type:varchar(200);not null"`
	Phone      string     `gorm:"type:varchar(50)"`
	Email      string     `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (GuarantorModel) TableName() string {
	return "guarantors"
}

// ToDomain converts the persistence model to a domain Guarantor entity.
func (m *GuarantorModel) ToDomain() *rental.Guarantor {
	return &rental.Guarantor{
		BaseEntity: m.BaseModel.ToDomain(),
		PropertyID: m.PropertyID,
		Name:       m.Name,
		Phone:      m.Phone,
		Email:      m.Email,
	}
}

// FromDomain populates the persistence model from a domain Guarantor entity.
func (m *GuarantorModel) FromDomain(g *rental.Guarantor) {
	m.FromDomainBaseEntity(g.BaseEntity)
	m.PropertyID = g.PropertyID
	m.Name = g.Name
	m.Phone = g.Phone
	m.Email = g.Email
}

// GuarantorModelFromDomain creates a new persistence model from a domain Guarantor entity.
func GuarantorModelFromDomain(g *rental.Guarantor) *GuarantorModel {
	m := &GuarantorModel{}
	m.FromDomain(g)
	return m
}

// DocumentModel is the persistence model for the Document entity. The
// composite unique index enforces at most one document per
// (property, type, owner); uploads for an existing slot replace the row.
type DocumentModel struct {
	BaseModel
	PropertyID *uuid.UUID           `gorm:"type:uuid;index;uniqueIndex:idx_documents_property_type_owner,priority:1"`
	Type       rental.DocumentType  `gorm:"type:varchar(40);not null;uniqueIndex:idx_documents_property_type_owner,priority:2"`
	FileURL    string               `gorm:"type:text;not null"`
	FileName   string               `gorm:"type:varchar(255)"`
	Owner      rental.DocumentOwner `gorm:"column:document_owner;type:varchar(20);not null;default:'tenant';uniqueIndex:idx_documents_property_type_owner,priority:3"`
}

// TableName returns the table name for GORM
func (DocumentModel) TableName() string {
	return "documents"
}

// ToDomain converts the persistence model to a domain Document entity.
func (m *DocumentModel) ToDomain() *rental.Document {
	return &rental.Document{
		BaseEntity: m.BaseModel.ToDomain(),
		PropertyID: m.PropertyID,
		Type:       m.Type,
		FileURL:    m.FileURL,
		FileName:   m.FileName,
		Owner:      m.Owner,
	}
}

// FromDomain populates the persistence model from a domain Document entity.
func (m *DocumentModel) FromDomain(d *rental.Document) {
	m.FromDomainBaseEntity(d.BaseEntity)
	m.PropertyID = d.PropertyID
	m.Type = d.Type
	m.FileURL = d.FileURL
	m.FileName = d.FileName
	m.Owner = d.Owner
}

// DocumentModelFromDomain creates a new persistence model from a domain Document entity.
func DocumentModelFromDomain(d *rental.Document) *DocumentModel {
	m := &DocumentModel{}
	m.FromDomain(d)
	return m
}

// KeepAliveModel is the singleton liveness row updated by the keep-alive
// scheduler and the manual trigger endpoint.
type KeepAliveModel struct {
	ID       int       `gorm:"primary_key"`
	LastPing time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (KeepAliveModel) TableName() string {
	return "keep_alive"
}
