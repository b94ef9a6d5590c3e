package rental

import (
	"context"
	"sort"
	"time"

	"github.com/alquileres/backend/internal/domain/rental"
	"github.com/alquileres/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// managementFeeRate is the share of collected rent counted as income
var managementFeeRate = decimal.NewFromFloat(0.1)

// recentActivityLimit caps the recent properties section of the dashboard
const recentActivityLimit = 5

// ExpiringContract is one row of the dashboard's expiring contracts list
type ExpiringContract struct {
	PropertyID   uuid.UUID             `json:"property_id"`
	PropertyName string                `json:"property_name"`
	TenantName   string                `json:"tenant_name"`
	ContractEnd  time.Time             `json:"contract_end"`
	Expiry       rental.ContractExpiry `json:"expiry"`
}

// DashboardStats is the aggregated view served to the dashboard
type DashboardStats struct {
	TotalProperties   int                        `json:"total_properties"`
	Occupied          int                        `json:"occupied"`
	Available         int                        `json:"available"`
	MonthlyIncome     map[string]decimal.Decimal `json:"monthly_income"`
	PaymentsPending   int                        `json:"payments_pending"`
	PaymentsOverdue   int                        `json:"payments_overdue"`
	PaymentsUrgent    int                        `json:"payments_urgent"`
	ExpiringContracts []ExpiringContract         `json:"expiring_contracts"`
	RecentProperties  []PropertyListItem         `json:"recent_properties"`
}

// DashboardService aggregates portfolio statistics. It reuses the same
// badge and expiry derivations as the property views, so the dashboard
// counters always agree with the list.
type DashboardService struct {
	propertyRepo rental.PropertyRepository
	tenantRepo   rental.TenantRepository
	expiryPolicy rental.ExpiryPolicy
	now          func() time.Time
}

// DashboardServiceOption is a functional option for configuring DashboardService
type DashboardServiceOption func(*DashboardService)

// WithDashboardExpiryPolicy overrides the contract expiry policy
func WithDashboardExpiryPolicy(policy rental.ExpiryPolicy) DashboardServiceOption {
	return func(s *DashboardService) {
		s.expiryPolicy = policy
	}
}

// WithDashboardClock overrides the time source, used by tests
func WithDashboardClock(now func() time.Time) DashboardServiceOption {
	return func(s *DashboardService) {
		s.now = now
	}
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	propertyRepo rental.PropertyRepository,
	tenantRepo rental.TenantRepository,
	opts ...DashboardServiceOption,
) *DashboardService {
	s := &DashboardService{
		propertyRepo: propertyRepo,
		tenantRepo:   tenantRepo,
		expiryPolicy: rental.DefaultExpiryPolicy(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetStats computes the dashboard aggregates from the current portfolio
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	properties, err := s.propertyRepo.FindAll(ctx, shared.Filter{OrderBy: "updated_at", OrderDir: "desc"})
	if err != nil {
		return nil, err
	}
	tenants, err := s.tenantRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	tenantByProperty := make(map[uuid.UUID]*rental.Tenant, len(tenants))
	for i := range tenants {
		if tenants[i].PropertyID != nil {
			tenantByProperty[*tenants[i].PropertyID] = &tenants[i]
		}
	}

	today := s.now()
	stats := &DashboardStats{
		TotalProperties:   len(properties),
		MonthlyIncome:     make(map[string]decimal.Decimal),
		ExpiringContracts: []ExpiringContract{},
		RecentProperties:  []PropertyListItem{},
	}

	for i := range properties {
		property := &properties[i]
		tenant := tenantByProperty[property.ID]

		if property.IsAvailable() {
			stats.Available++
			continue
		}
		stats.Occupied++

		currency := string(property.Currency)
		income := property.MonthlyRent.Mul(managementFeeRate)
		if total, ok := stats.MonthlyIncome[currency]; ok {
			stats.MonthlyIncome[currency] = total.Add(income)
		} else {
			stats.MonthlyIncome[currency] = income
		}

		badge := rental.DerivePaymentBadge(property.PaymentStatus, property.NextPaymentDate, today)
		switch {
		case badge.Class == rental.BadgeDestructive:
			stats.PaymentsOverdue++
		case badge.Urgent:
			stats.PaymentsUrgent++
		case badge.Class == rental.BadgeWarning:
			stats.PaymentsPending++
		}

		if tenant != nil && tenant.ContractEnd != nil {
			if expiry := rental.DeriveContractExpiry(tenant.ContractEnd, today, s.expiryPolicy); expiry != nil {
				stats.ExpiringContracts = append(stats.ExpiringContracts, ExpiringContract{
					PropertyID:   property.ID,
					PropertyName: property.Name,
					TenantName:   tenant.Name,
					ContractEnd:  *tenant.ContractEnd,
					Expiry:       *expiry,
				})
			}
		}
	}

	sort.Slice(stats.ExpiringContracts, func(i, j int) bool {
		return stats.ExpiringContracts[i].ContractEnd.Before(stats.ExpiringContracts[j].ContractEnd)
	})

	recent := make([]*rental.Property, 0, len(properties))
	for i := range properties {
		if needsPaymentAttention(&properties[i], today) {
			recent = append(recent, &properties[i])
		}
	}
	sort.Slice(recent, func(i, j int) bool {
		return recent[i].NextPaymentDate.Before(*recent[j].NextPaymentDate)
	})
	for _, property := range recent {
		if len(stats.RecentProperties) >= recentActivityLimit {
			break
		}
		badge := rental.DerivePaymentBadge(property.PaymentStatus, property.NextPaymentDate, today)
		item := PropertyListItem{
			ID:              property.ID,
			Name:            property.Name,
			Address:         property.Address,
			Rooms:           property.Rooms,
			MonthlyRent:     property.MonthlyRent,
			Currency:        string(property.Currency),
			Status:          string(property.Status),
			NextPaymentDate: property.NextPaymentDate,
			UpdatedAt:       property.UpdatedAt,
			PaymentBadge:    &badge,
		}
		if tenant := tenantByProperty[property.ID]; tenant != nil {
			item.TenantName = tenant.Name
			item.ContractExpiry = rental.DeriveContractExpiry(tenant.ContractEnd, today, s.expiryPolicy)
		}
		stats.RecentProperties = append(stats.RecentProperties, item)
	}

	return stats, nil
}

// needsPaymentAttention reports whether a property belongs in the recent
// payment activity section: occupied, with a due date that is either
// already past or falls within the next seven days while still unpaid.
func needsPaymentAttention(p *rental.Property, today time.Time) bool {
	if !p.IsOccupied() || p.NextPaymentDate == nil {
		return false
	}
	if p.NextPaymentDate.Before(today) {
		return true
	}
	if p.PaymentStatus != nil && *p.PaymentStatus == rental.PaymentStatusPaid {
		return false
	}
	return p.NextPaymentDate.Before(today.AddDate(0, 0, 7))
}
