package rental

import (
	"time"

	"github.com/alquileres/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PropertyStatus represents the occupancy status of a property
type PropertyStatus string

const (
	PropertyStatusAvailable PropertyStatus = "Disponible"
	PropertyStatusOccupied  PropertyStatus = "Ocupado"
)

// PaymentStatus represents the explicit payment status of an occupied property
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "Pagado"
	PaymentStatusPending PaymentStatus = "Pendiente"
	PaymentStatusOverdue PaymentStatus = "Atrasado"
)

// Currency tags the monthly rent amount
type Currency string

const (
	CurrencyDOP Currency = "RD$"
	CurrencyUSD Currency = "USD"
)

// Property represents a rental unit. It is the aggregate root for the
// rental context: tenants, guarantors and documents reference it by ID.
type Property struct {
	shared.BaseAggregateRoot
	Name        string          `gorm:"type:varchar(200);not null"`
	Address     string          `gorm:"type:text;not null"`
	Rooms       int             `gorm:"not null;default:1"`
	MonthlyRent decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Currency    Currency        `gorm:"type:varchar(10);not null;default:'RD$'"`
	Status      PropertyStatus  `gorm:"type:varchar(20);not null;default:'Disponible'"`

	// Payment tracking. Meaningful only while Status is Ocupado; all three
	// are nil for an available property.
	PaymentDay      *int           `gorm:"type:smallint"`
	NextPaymentDate *time.Time     `gorm:"type:date"`
	PaymentStatus   *PaymentStatus `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (Property) TableName() string {
	return "properties"
}

// NewProperty creates a new available property with required fields
func NewProperty(name, address string, rooms int, rent decimal.Decimal, currency Currency) (*Property, error) {
	if err := validatePropertyName(name); err != nil {
		return nil, err
	}
	if err := validateAddress(address); err != nil {
		return nil, err
	}
	if rooms <= 0 {
		return nil, shared.NewDomainError("INVALID_ROOMS", "Room count must be positive")
	}
	if rent.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RENT", "Monthly rent cannot be negative")
	}
	if err := validateCurrency(currency); err != nil {
		return nil, err
	}

	return &Property{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Address:           address,
		Rooms:             rooms,
		MonthlyRent:       rent,
		Currency:          currency,
		Status:            PropertyStatusAvailable,
	}, nil
}

// Update updates the property's basic information
func (p *Property) Update(name, address string, rooms int, rent decimal.Decimal, currency Currency) error {
	if err := validatePropertyName(name); err != nil {
		return err
	}
	if err := validateAddress(address); err != nil {
		return err
	}
	if rooms <= 0 {
		return shared.NewDomainError("INVALID_ROOMS", "Room count must be positive")
	}
	if rent.IsNegative() {
		return shared.NewDomainError("INVALID_RENT", "Monthly rent cannot be negative")
	}
	if err := validateCurrency(currency); err != nil {
		return err
	}

	p.Name = name
	p.Address = address
	p.Rooms = rooms
	p.MonthlyRent = rent
	p.Currency = currency
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// MarkOccupied transitions the property to Ocupado and starts a payment
// cycle anchored at paymentDay. The first due date is the next occurrence
// of paymentDay strictly after today, and the payment starts out Pendiente.
func (p *Property) MarkOccupied(paymentDay int, today time.Time) error {
	if err := validatePaymentDay(paymentDay); err != nil {
		return err
	}

	due := NextDueDate(paymentDay, today)
	pending := PaymentStatusPending

	p.Status = PropertyStatusOccupied
	p.PaymentDay = &paymentDay
	p.NextPaymentDate = &due
	p.PaymentStatus = &pending
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// MarkAvailable transitions the property to Disponible. Payment tracking
// fields are only meaningful for an occupied property, so all three are
// cleared on this transition.
func (p *Property) MarkAvailable() {
	p.Status = PropertyStatusAvailable
	p.PaymentDay = nil
	p.NextPaymentDate = nil
	p.PaymentStatus = nil
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// MarkPaid records a rent payment and advances the due date to next
// month's occurrence of the payment day, relative to today. The previous
// stored due date does not participate in the computation.
func (p *Property) MarkPaid(today time.Time) error {
	if p.Status != PropertyStatusOccupied {
		return shared.NewDomainError("INVALID_STATE", "Only occupied properties can record payments")
	}
	if p.PaymentDay == nil {
		return shared.NewDomainError("NO_PAYMENT_DAY", "Property has no payment day configured")
	}

	due := DueDateAfterPayment(*p.PaymentDay, today)
	paid := PaymentStatusPaid

	p.NextPaymentDate = &due
	p.PaymentStatus = &paid
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// CancelPayment reverts a recorded payment back to Pendiente while keeping
// the previously computed due date.
func (p *Property) CancelPayment() error {
	if p.Status != PropertyStatusOccupied {
		return shared.NewDomainError("INVALID_STATE", "Only occupied properties have payments to cancel")
	}

	pending := PaymentStatusPending
	p.PaymentStatus = &pending
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetPaymentStatus applies a direct payment status patch. nextDate is
// optional; when nil the stored due date is preserved.
func (p *Property) SetPaymentStatus(status PaymentStatus, nextDate *time.Time) error {
	if err := validatePaymentStatus(status); err != nil {
		return err
	}
	if p.Status != PropertyStatusOccupied {
		return shared.NewDomainError("INVALID_STATE", "Payment status applies only to occupied properties")
	}

	p.PaymentStatus = &status
	if nextDate != nil {
		d := DateOf(*nextDate)
		p.NextPaymentDate = &d
	}
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// IsOccupied returns true if the property currently has a tenancy
func (p *Property) IsOccupied() bool {
	return p.Status == PropertyStatusOccupied
}

// IsAvailable returns true if the property has no tenancy
func (p *Property) IsAvailable() bool {
	return p.Status == PropertyStatusAvailable
}

// Validation functions

func validatePropertyName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Property name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Property name cannot exceed 200 characters")
	}
	return nil
}

func validateAddress(address string) error {
	if address == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot be empty")
	}
	if len(address) > 500 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 500 characters")
	}
	return nil
}

func validateCurrency(c Currency) error {
	switch c {
	case CurrencyDOP, CurrencyUSD:
		return nil
	default:
		return shared.NewDomainError("INVALID_CURRENCY", "Currency must be 'RD$' or 'USD'")
	}
}

func validatePaymentDay(day int) error {
	if day < 1 || day > 31 {
		return shared.NewDomainError("INVALID_PAYMENT_DAY", "Payment day must be between 1 and 31")
	}
	return nil
}

func validatePaymentStatus(s PaymentStatus) error {
	switch s {
	case PaymentStatusPaid, PaymentStatusPending, PaymentStatusOverdue:
		return nil
	default:
		return shared.NewDomainError("INVALID_PAYMENT_STATUS", "Payment status must be 'Pagado', 'Pendiente' or 'Atrasado'")
	}
}
