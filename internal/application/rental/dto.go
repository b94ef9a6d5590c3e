package rental

import (
	"time"

	"github.com/alquileres/backend/internal/domain/rental"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TenantInput carries tenant details inside a property write request
type TenantInput struct {
	Name          string     `json:"name" binding:"required,min=1,max=200"`
	Phone         string     `json:"phone" binding:"max=50"`
	Email         string     `json:"email" binding:"omitempty,email,max=200"`
	ContractStart *time.Time `json:"contract_start"`
	ContractEnd   *time.Time `json:"contract_end"`
}

// GuarantorInput carries guarantor details inside a property write request
type GuarantorInput struct {
	Name  string `json:"name" binding:"required,min=1,max=200"`
	Phone string `json:"phone" binding:"max=50"`
	Email string `json:"email" binding:"omitempty,email,max=200"`
}

// CreatePropertyRequest represents a request to create a property. The
// occupancy block is optional: a property created with a tenant starts
// out Ocupado with its payment cycle already running.
type CreatePropertyRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Address     string          `json:"address" binding:"required,min=1,max=500"`
	Rooms       int             `json:"rooms" binding:"required,min=1"`
	MonthlyRent decimal.Decimal `json:"monthly_rent"`
	Currency    string          `json:"currency" binding:"required,oneof='RD$' USD"`

	PaymentDay *int            `json:"payment_day" binding:"omitempty,min=1,max=31"`
	Tenant     *TenantInput    `json:"tenant"`
	Guarantor  *GuarantorInput `json:"guarantor"`
}

// UpdatePropertyRequest represents a request to update a property and,
// atomically, its tenant and guarantor
type UpdatePropertyRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Address     string          `json:"address" binding:"required,min=1,max=500"`
	Rooms       int             `json:"rooms" binding:"required,min=1"`
	MonthlyRent decimal.Decimal `json:"monthly_rent"`
	Currency    string          `json:"currency" binding:"required,oneof='RD$' USD"`

	Status     *string         `json:"status" binding:"omitempty,oneof=Disponible Ocupado"`
	PaymentDay *int            `json:"payment_day" binding:"omitempty,min=1,max=31"`
	Tenant     *TenantInput    `json:"tenant"`
	Guarantor  *GuarantorInput `json:"guarantor"`
}

// UpdatePaymentStatusRequest patches the explicit payment status of an
// occupied property. NextPaymentDate is optional.
type UpdatePaymentStatusRequest struct {
	Status          string     `json:"status" binding:"required,oneof=Pagado Pendiente Atrasado"`
	NextPaymentDate *time.Time `json:"next_payment_date"`
}

// PropertyListFilter represents filter options for the property list
type PropertyListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=Disponible Ocupado"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// TenantResponse represents a tenant in API responses
type TenantResponse struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Phone         string     `json:"phone"`
	Email         string     `json:"email"`
	ContractStart *time.Time `json:"contract_start"`
	ContractEnd   *time.Time `json:"contract_end"`
}

// GuarantorResponse represents a guarantor in API responses
type GuarantorResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone string    `json:"phone"`
	Email string    `json:"email"`
}

// DocumentResponse represents an uploaded document in API responses
type DocumentResponse struct {
	ID         uuid.UUID `json:"id"`
	PropertyID uuid.UUID `json:"property_id"`
	Type       string    `json:"type"`
	Label      string    `json:"label"`
	Owner      string    `json:"owner"`
	FileURL    string    `json:"file_url"`
	FileName   string    `json:"file_name"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// PropertyResponse is the full detail view of a property with its tenant,
// guarantor, documents and derived display fields
type PropertyResponse struct {
	ID              uuid.UUID              `json:"id"`
	Name            string                 `json:"name"`
	Address         string                 `json:"address"`
	Rooms           int                    `json:"rooms"`
	MonthlyRent     decimal.Decimal        `json:"monthly_rent"`
	Currency        string                 `json:"currency"`
	Status          string                 `json:"status"`
	PaymentDay      *int                   `json:"payment_day"`
	NextPaymentDate *time.Time             `json:"next_payment_date"`
	PaymentStatus   *string                `json:"payment_status"`
	PaymentBadge    *rental.PaymentBadge   `json:"payment_badge"`
	ContractExpiry  *rental.ContractExpiry `json:"contract_expiry"`
	Tenant          *TenantResponse        `json:"tenant"`
	Guarantor       *GuarantorResponse     `json:"guarantor"`
	Documents       []DocumentResponse     `json:"documents"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
	Version         int                    `json:"version"`
}

// PropertyListItem is one row of the property list view. The same derived
// badge and expiry fields appear here and in the detail view.
type PropertyListItem struct {
	ID              uuid.UUID              `json:"id"`
	Name            string                 `json:"name"`
	Address         string                 `json:"address"`
	Rooms           int                    `json:"rooms"`
	MonthlyRent     decimal.Decimal        `json:"monthly_rent"`
	Currency        string                 `json:"currency"`
	Status          string                 `json:"status"`
	NextPaymentDate *time.Time             `json:"next_payment_date"`
	PaymentBadge    *rental.PaymentBadge   `json:"payment_badge"`
	ContractExpiry  *rental.ContractExpiry `json:"contract_expiry"`
	TenantName      string                 `json:"tenant_name"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// ToTenantResponse converts a domain Tenant to TenantResponse
func ToTenantResponse(t *rental.Tenant) *TenantResponse {
	if t == nil {
		return nil
	}
	return &TenantResponse{
		ID:            t.ID,
		Name:          t.Name,
		Phone:         t.Phone,
		Email:         t.Email,
		ContractStart: t.ContractStart,
		ContractEnd:   t.ContractEnd,
	}
}

// ToGuarantorResponse converts a domain Guarantor to GuarantorResponse
func ToGuarantorResponse(g *rental.Guarantor) *GuarantorResponse {
	if g == nil {
		return nil
	}
	return &GuarantorResponse{
		ID:    g.ID,
		Name:  g.Name,
		Phone: g.Phone,
		Email: g.Email,
	}
}

// ToDocumentResponse converts a domain Document to DocumentResponse
func ToDocumentResponse(d *rental.Document) DocumentResponse {
	var propertyID uuid.UUID
	if d.PropertyID != nil {
		propertyID = *d.PropertyID
	}
	return DocumentResponse{
		ID:         d.ID,
		PropertyID: propertyID,
		Type:       string(d.Type),
		Label:      d.Label(),
		Owner:      string(d.Owner),
		FileURL:    d.FileURL,
		FileName:   d.FileName,
		UploadedAt: d.UpdatedAt,
	}
}

func paymentStatusString(s *rental.PaymentStatus) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}
