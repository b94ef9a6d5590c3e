package rental

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alquileres/backend/internal/domain/rental"
	"github.com/alquileres/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ListingCache caches the unfiltered property list between mutations.
// Implementations live in the infrastructure layer (Redis or in-memory).
type ListingCache interface {
	Get(ctx context.Context) ([]PropertyListItem, bool, error)
	Set(ctx context.Context, items []PropertyListItem) error
	Invalidate(ctx context.Context) error
}

// PropertyService handles property-related business operations. Writes
// that touch the property together with its tenant or guarantor run
// inside a single unit of work.
type PropertyService struct {
	uow           rental.UnitOfWork
	propertyRepo  rental.PropertyRepository
	tenantRepo    rental.TenantRepository
	guarantorRepo rental.GuarantorRepository
	documentRepo  rental.DocumentRepository
	storage       ObjectStorage
	cache         ListingCache
	expiryPolicy  rental.ExpiryPolicy
	now           func() time.Time
	logger        *zap.Logger
}

// PropertyServiceOption is a functional option for configuring PropertyService
type PropertyServiceOption func(*PropertyService)

// WithExpiryPolicy overrides the contract expiry policy
func WithExpiryPolicy(policy rental.ExpiryPolicy) PropertyServiceOption {
	return func(s *PropertyService) {
		s.expiryPolicy = policy
	}
}

// WithClock overrides the time source, used by tests
func WithClock(now func() time.Time) PropertyServiceOption {
	return func(s *PropertyService) {
		s.now = now
	}
}

// WithPropertyLogger sets the logger for PropertyService
func WithPropertyLogger(logger *zap.Logger) PropertyServiceOption {
	return func(s *PropertyService) {
		s.logger = logger
	}
}

// NewPropertyService creates a new PropertyService
func NewPropertyService(
	uow rental.UnitOfWork,
	propertyRepo rental.PropertyRepository,
	tenantRepo rental.TenantRepository,
	guarantorRepo rental.GuarantorRepository,
	documentRepo rental.DocumentRepository,
	storage ObjectStorage,
	cache ListingCache,
	opts ...PropertyServiceOption,
) *PropertyService {
	s := &PropertyService{
		uow:           uow,
		propertyRepo:  propertyRepo,
		tenantRepo:    tenantRepo,
		guarantorRepo: guarantorRepo,
		documentRepo:  documentRepo,
		storage:       storage,
		cache:         cache,
		expiryPolicy:  rental.DefaultExpiryPolicy(),
		now:           time.Now,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create creates a property and, when a tenant block is present, its
// tenant and guarantor in the same transaction
func (s *PropertyService) Create(ctx context.Context, req CreatePropertyRequest) (*PropertyResponse, error) {
	property, err := rental.NewProperty(req.Name, req.Address, req.Rooms, req.MonthlyRent, rental.Currency(req.Currency))
	if err != nil {
		return nil, err
	}

	if req.Guarantor != nil && req.Tenant == nil {
		return nil, shared.NewDomainError("MISSING_TENANT", "A guarantor requires a tenant to be assigned")
	}
	if req.Tenant != nil {
		if req.PaymentDay == nil {
			return nil, shared.NewDomainError("MISSING_PAYMENT_DAY", "A payment day is required when a tenant is assigned")
		}
		if err := property.MarkOccupied(*req.PaymentDay, s.now()); err != nil {
			return nil, err
		}
	}

	err = s.uow.Execute(ctx, func(repos rental.RepositoryScope) error {
		if err := repos.Properties().Save(ctx, property); err != nil {
			return err
		}
		if req.Tenant != nil {
			if err := s.createTenant(ctx, repos, property.ID, *req.Tenant); err != nil {
				return err
			}
		}
		if req.Guarantor != nil {
			if err := s.createGuarantor(ctx, repos, property.ID, *req.Guarantor); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)
	return s.GetByID(ctx, property.ID)
}

// GetByID retrieves a property with its tenant, guarantor, documents and
// derived display fields
func (s *PropertyService) GetByID(ctx context.Context, id uuid.UUID) (*PropertyResponse, error) {
	property, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tenant, err := s.tenantRepo.FindByProperty(ctx, id)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	guarantor, err := s.guarantorRepo.FindByProperty(ctx, id)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	documents, err := s.documentRepo.FindByProperty(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.toPropertyResponse(property, tenant, guarantor, documents), nil
}

// List retrieves the property list with tenant names and derived badges.
// The unfiltered listing is served from cache; any filter bypasses it.
func (s *PropertyService) List(ctx context.Context, filter PropertyListFilter) ([]PropertyListItem, error) {
	cacheable := filter == PropertyListFilter{}
	if cacheable {
		if items, ok, err := s.cache.Get(ctx); err != nil {
			s.logger.Warn("listing cache read failed", zap.Error(err))
		} else if ok {
			return items, nil
		}
	}

	domainFilter := shared.Filter{OrderBy: "created_at", OrderDir: "desc"}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
		domainFilter.OrderDir = filter.OrderDir
		if domainFilter.OrderDir == "" {
			domainFilter.OrderDir = "asc"
		}
	}

	// Status filtering happens in the store; only the tenant-name search
	// stays in memory because it spans the tenant join
	var properties []rental.Property
	var err error
	if filter.Status != "" && filter.OrderBy == "" {
		properties, err = s.propertyRepo.FindByStatus(ctx, rental.PropertyStatus(filter.Status))
	} else {
		if filter.Status != "" {
			domainFilter.Filters = map[string]interface{}{"status": filter.Status}
		}
		properties, err = s.propertyRepo.FindAll(ctx, domainFilter)
	}
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

	items := make([]PropertyListItem, 0, len(properties))
	for i := range properties {
		property := &properties[i]
		tenant := tenantByProperty[property.ID]
		if !matchesSearch(property, tenant, filter.Search) {
			continue
		}
		items = append(items, s.toListItem(property, tenant))
	}

	if cacheable {
		if err := s.cache.Set(ctx, items); err != nil {
			s.logger.Warn("listing cache write failed", zap.Error(err))
		}
	}

	return items, nil
}

// Update updates a property and its tenant and guarantor atomically.
// Status transitions start or stop the payment cycle: occupying requires
// a payment day, and freeing a property removes its tenant and guarantor.
func (s *PropertyService) Update(ctx context.Context, id uuid.UUID, req UpdatePropertyRequest) (*PropertyResponse, error) {
	err := s.uow.Execute(ctx, func(repos rental.RepositoryScope) error {
		property, err := repos.Properties().FindByID(ctx, id)
		if err != nil {
			return err
		}

		if err := property.Update(req.Name, req.Address, req.Rooms, req.MonthlyRent, rental.Currency(req.Currency)); err != nil {
			return err
		}

		if err := s.applyStatusChange(ctx, repos, property, req); err != nil {
			return err
		}

		if property.IsOccupied() {
			if req.Tenant != nil {
				if err := s.upsertTenant(ctx, repos, property.ID, *req.Tenant); err != nil {
					return err
				}
			}
			if req.Guarantor != nil {
				if err := s.upsertGuarantor(ctx, repos, property.ID, *req.Guarantor); err != nil {
					return err
				}
			} else if err := repos.Guarantors().DeleteByProperty(ctx, property.ID); err != nil {
				return err
			}
		}

		return repos.Properties().Save(ctx, property)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)
	return s.GetByID(ctx, id)
}

// Delete removes a property together with its tenant, guarantor and
// document rows in one transaction, then removes the stored files
func (s *PropertyService) Delete(ctx context.Context, id uuid.UUID) error {
	var documents []rental.Document

	err := s.uow.Execute(ctx, func(repos rental.RepositoryScope) error {
		if _, err := repos.Properties().FindByID(ctx, id); err != nil {
			return err
		}

		var err error
		documents, err = repos.Documents().FindByProperty(ctx, id)
		if err != nil {
			return err
		}

		if err := repos.Documents().DeleteByProperty(ctx, id); err != nil {
			return err
		}
		if err := repos.Tenants().DeleteByProperty(ctx, id); err != nil {
			return err
		}
		if err := repos.Guarantors().DeleteByProperty(ctx, id); err != nil {
			return err
		}
		return repos.Properties().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	// Storage cleanup is best effort: the rows are already gone and an
	// orphaned object is harmless.
	for i := range documents {
		key, err := s.storage.ParseObjectKey(documents[i].FileURL)
		if err != nil {
			s.logger.Warn("skipping stored file with unparseable URL",
				zap.String("file_url", documents[i].FileURL), zap.Error(err))
			continue
		}
		if err := s.storage.DeleteObject(ctx, key); err != nil {
			s.logger.Warn("failed to delete stored file", zap.String("key", key), zap.Error(err))
		}
	}

	s.invalidateListing(ctx)
	return nil
}

// MarkPaid records a rent payment and advances the due date
func (s *PropertyService) MarkPaid(ctx context.Context, id uuid.UUID) (*PropertyResponse, error) {
	property, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := property.MarkPaid(s.now()); err != nil {
		return nil, err
	}
	if err := s.propertyRepo.Save(ctx, property); err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)
	return s.GetByID(ctx, id)
}

// CancelPayment reverts the last recorded payment back to Pendiente
func (s *PropertyService) CancelPayment(ctx context.Context, id uuid.UUID) (*PropertyResponse, error) {
	property, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := property.CancelPayment(); err != nil {
		return nil, err
	}
	if err := s.propertyRepo.Save(ctx, property); err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)
	return s.GetByID(ctx, id)
}

// UpdatePaymentStatus applies a direct payment status patch
func (s *PropertyService) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, req UpdatePaymentStatusRequest) (*PropertyResponse, error) {
	property, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := property.SetPaymentStatus(rental.PaymentStatus(req.Status), req.NextPaymentDate); err != nil {
		return nil, err
	}
	if err := s.propertyRepo.Save(ctx, property); err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)
	return s.GetByID(ctx, id)
}

func (s *PropertyService) applyStatusChange(ctx context.Context, repos rental.RepositoryScope, property *rental.Property, req UpdatePropertyRequest) error {
	wantOccupied := req.Status != nil && *req.Status == string(rental.PropertyStatusOccupied)
	wantAvailable := req.Status != nil && *req.Status == string(rental.PropertyStatusAvailable)

	switch {
	case wantOccupied && property.IsAvailable():
		if req.PaymentDay == nil {
			return shared.NewDomainError("MISSING_PAYMENT_DAY", "A payment day is required to occupy a property")
		}
		return property.MarkOccupied(*req.PaymentDay, s.now())

	case wantOccupied && property.IsOccupied():
		// Changing the payment day restarts the cycle from today.
		if req.PaymentDay != nil && (property.PaymentDay == nil || *property.PaymentDay != *req.PaymentDay) {
			return property.MarkOccupied(*req.PaymentDay, s.now())
		}
		return nil

	case wantAvailable && property.IsOccupied():
		property.MarkAvailable()
		if err := repos.Tenants().DeleteByProperty(ctx, property.ID); err != nil {
			return err
		}
		return repos.Guarantors().DeleteByProperty(ctx, property.ID)
	}

	return nil
}

func (s *PropertyService) createTenant(ctx context.Context, repos rental.RepositoryScope, propertyID uuid.UUID, input TenantInput) error {
	tenant, err := rental.NewTenant(propertyID, input.Name, input.Phone, input.Email)
	if err != nil {
		return err
	}
	if err := tenant.SetContractPeriod(input.ContractStart, input.ContractEnd); err != nil {
		return err
	}
	return repos.Tenants().Save(ctx, tenant)
}

func (s *PropertyService) upsertTenant(ctx context.Context, repos rental.RepositoryScope, propertyID uuid.UUID, input TenantInput) error {
	tenant, err := repos.Tenants().FindByProperty(ctx, propertyID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return s.createTenant(ctx, repos, propertyID, input)
		}
		return err
	}

	if err := tenant.Update(input.Name, input.Phone, input.Email); err != nil {
		return err
	}
	if err := tenant.SetContractPeriod(input.ContractStart, input.ContractEnd); err != nil {
		return err
	}
	return repos.Tenants().Save(ctx, tenant)
}

func (s *PropertyService) createGuarantor(ctx context.Context, repos rental.RepositoryScope, propertyID uuid.UUID, input GuarantorInput) error {
	guarantor, err := rental.NewGuarantor(propertyID, input.Name, input.Phone, input.Email)
	if err != nil {
		return err
	}
	return repos.Guarantors().Save(ctx, guarantor)
}

func (s *PropertyService) upsertGuarantor(ctx context.Context, repos rental.RepositoryScope, propertyID uuid.UUID, input GuarantorInput) error {
	guarantor, err := repos.Guarantors().FindByProperty(ctx, propertyID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return s.createGuarantor(ctx, repos, propertyID, input)
		}
		return err
	}

	if err := guarantor.Update(input.Name, input.Phone, input.Email); err != nil {
		return err
	}
	return repos.Guarantors().Save(ctx, guarantor)
}

func (s *PropertyService) invalidateListing(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("listing cache invalidation failed", zap.Error(err))
	}
}

func (s *PropertyService) toPropertyResponse(p *rental.Property, tenant *rental.Tenant, guarantor *rental.Guarantor, documents []rental.Document) *PropertyResponse {
	resp := &PropertyResponse{
		ID:              p.ID,
		Name:            p.Name,
		Address:         p.Address,
		Rooms:           p.Rooms,
		MonthlyRent:     p.MonthlyRent,
		Currency:        string(p.Currency),
		Status:          string(p.Status),
		PaymentDay:      p.PaymentDay,
		NextPaymentDate: p.NextPaymentDate,
		PaymentStatus:   paymentStatusString(p.PaymentStatus),
		Tenant:          ToTenantResponse(tenant),
		Guarantor:       ToGuarantorResponse(guarantor),
		Documents:       make([]DocumentResponse, len(documents)),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		Version:         p.Version,
	}
	for i := range documents {
		resp.Documents[i] = ToDocumentResponse(&documents[i])
	}

	today := s.now()
	if p.IsOccupied() {
		badge := rental.DerivePaymentBadge(p.PaymentStatus, p.NextPaymentDate, today)
		resp.PaymentBadge = &badge
	}
	if tenant != nil {
		resp.ContractExpiry = rental.DeriveContractExpiry(tenant.ContractEnd, today, s.expiryPolicy)
	}

	return resp
}

func (s *PropertyService) toListItem(p *rental.Property, tenant *rental.Tenant) PropertyListItem {
	item := PropertyListItem{
		ID:              p.ID,
		Name:            p.Name,
		Address:         p.Address,
		Rooms:           p.Rooms,
		MonthlyRent:     p.MonthlyRent,
		Currency:        string(p.Currency),
		Status:          string(p.Status),
		NextPaymentDate: p.NextPaymentDate,
		UpdatedAt:       p.UpdatedAt,
	}

	today := s.now()
	if p.IsOccupied() {
		badge := rental.DerivePaymentBadge(p.PaymentStatus, p.NextPaymentDate, today)
		item.PaymentBadge = &badge
	}
	if tenant != nil {
		item.TenantName = tenant.Name
		item.ContractExpiry = rental.DeriveContractExpiry(tenant.ContractEnd, today, s.expiryPolicy)
	}

	return item
}

func matchesSearch(p *rental.Property, tenant *rental.Tenant, search string) bool {
	if search == "" {
		return true
	}
	search = strings.ToLower(search)
	if strings.Contains(strings.ToLower(p.Name), search) || strings.Contains(strings.ToLower(p.Address), search) {
		return true
	}
	return tenant != nil && strings.Contains(strings.ToLower(tenant.Name), search)
}
