package rental

import (
	"context"
	"regexp"
	"time"

	"github.com/alquileres/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Tenant is the current occupant of an occupied property. A property has
// at most one tenant; the tenant row is removed when the property is
// deleted or becomes available again.
type Tenant struct {
	shared.BaseEntity
	PropertyID    *uuid.UUID `gorm:"type:uuid;index"`
	Name          string     `gorm:"type:varchar(200);not null"`
	Phone         string     `gorm:"type:varchar(50)"`
	Email         string     `gorm:"type:varchar(200)"`
	ContractStart *time.Time `gorm:"type:date"`
	ContractEnd   *time.Time `gorm:"type:date"`
}

// TableName returns the table name for GORM
func (Tenant) TableName() string {
	return "tenants"
}

// NewTenant creates a tenant bound to a property
func NewTenant(propertyID uuid.UUID, name, phone, email string) (*Tenant, error) {
	if err := validatePersonName(name); err != nil {
		return nil, err
	}
	if err := validateContact(phone, email); err != nil {
		return nil, err
	}

	return &Tenant{
		BaseEntity: shared.NewBaseEntity(),
		PropertyID: &propertyID,
		Name:       name,
		Phone:      phone,
		Email:      email,
	}, nil
}

// Update replaces the tenant's personal details
func (t *Tenant) Update(name, phone, email string) error {
	if err := validatePersonName(name); err != nil {
		return err
	}
	if err := validateContact(phone, email); err != nil {
		return err
	}

	t.Name = name
	t.Phone = phone
	t.Email = email
	t.Touch()

	return nil
}

// SetContractPeriod records the tenancy contract dates. Either bound may
// be nil; when both are set the end must not precede the start.
func (t *Tenant) SetContractPeriod(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return shared.NewDomainError("INVALID_CONTRACT_PERIOD", "Contract end cannot precede contract start")
	}

	if start != nil {
		d := DateOf(*start)
		t.ContractStart = &d
	} else {
		t.ContractStart = nil
	}
	if end != nil {
		d := DateOf(*end)
		t.ContractEnd = &d
	} else {
		t.ContractEnd = nil
	}
	t.Touch()

	return nil
}

// TenantRepository defines persistence operations for tenants
type TenantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	FindByProperty(ctx context.Context, propertyID uuid.UUID) (*Tenant, error)
	FindAll(ctx context.Context) ([]Tenant, error)
	Save(ctx context.Context, tenant *Tenant) error
	DeleteByProperty(ctx context.Context, propertyID uuid.UUID) error
}

// Validation functions shared by tenants and guarantors

var (
	phonePattern = regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

func validatePersonName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}
	return nil
}

func validateContact(phone, email string) error {
	if phone != "" {
		if len(phone) > 50 {
			return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 50 characters")
		}
		if !phonePattern.MatchString(phone) {
			return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
		}
	}
	if email != "" {
		if len(email) > 200 {
			return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
		}
		if !emailPattern.MatchString(email) {
			return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
		}
	}
	return nil
}
