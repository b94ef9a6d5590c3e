package handler

import (
	"context"
	"io"
	"time"

	rentalapp "github.com/alquileres/backend/internal/application/rental"
	"github.com/alquileres/backend/internal/domain/rental"
	"github.com/alquileres/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPropertyRepository implements rental.PropertyRepository for testing
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*rental.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]rental.Property, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rental.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindByStatus(ctx context.Context, status rental.PropertyStatus) ([]rental.Property, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rental.Property), args.Error(1)
}

func (m *MockPropertyRepository) Save(ctx context.Context, property *rental.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPropertyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockTenantRepository implements rental.TenantRepository for testing
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*rental.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) (*rental.Tenant, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindAll(ctx context.Context) ([]rental.Tenant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rental.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Save(ctx context.Context, tenant *rental.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) DeleteByProperty(ctx context.Context, propertyID uuid.UUID) error {
	args := m.Called(ctx, propertyID)
	return args.Error(0)
}

// MockGuarantorRepository implements rental.GuarantorRepository for testing
type MockGuarantorRepository struct {
	mock.Mock
}

func (m *MockGuarantorRepository) FindByID(ctx context.Context, id uuid.UUID) (*rental.Guarantor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.Guarantor), args.Error(1)
}

func (m *MockGuarantorRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) (*rental.Guarantor, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.Guarantor), args.Error(1)
}

func (m *MockGuarantorRepository) FindAll(ctx context.Context) ([]rental.Guarantor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rental.Guarantor), args.Error(1)
}

func (m *MockGuarantorRepository) Save(ctx context.Context, guarantor *rental.Guarantor) error {
	args := m.Called(ctx, guarantor)
	return args.Error(0)
}

func (m *MockGuarantorRepository) DeleteByProperty(ctx context.Context, propertyID uuid.UUID) error {
	args := m.Called(ctx, propertyID)
	return args.Error(0)
}

// MockDocumentRepository implements rental.DocumentRepository for testing
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*rental.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]rental.Document, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rental.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindByPropertyTypeOwner(ctx context.Context, propertyID uuid.UUID, docType rental.DocumentType, owner rental.DocumentOwner) (*rental.Document, error) {
	args := m.Called(ctx, propertyID, docType, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindAll(ctx context.Context) ([]rental.Document, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rental.Document), args.Error(1)
}

func (m *MockDocumentRepository) Save(ctx context.Context, document *rental.Document) error {
	args := m.Called(ctx, document)
	return args.Error(0)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDocumentRepository) DeleteByProperty(ctx context.Context, propertyID uuid.UUID) error {
	args := m.Called(ctx, propertyID)
	return args.Error(0)
}

// MockKeepAliveRepository implements rental.KeepAliveRepository for testing
type MockKeepAliveRepository struct {
	mock.Mock
}

func (m *MockKeepAliveRepository) Ping(ctx context.Context, at time.Time) error {
	args := m.Called(ctx, at)
	return args.Error(0)
}

func (m *MockKeepAliveRepository) LastPing(ctx context.Context) (*time.Time, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

// MockObjectStorage implements rentalapp.ObjectStorage for testing
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, key, body, size, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStorage) GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, key, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) DeleteObject(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockObjectStorage) ParseObjectKey(fileURL string) (string, error) {
	args := m.Called(fileURL)
	return args.String(0), args.Error(1)
}

// MockListingCache implements rentalapp.ListingCache for testing
type MockListingCache struct {
	mock.Mock
}

func (m *MockListingCache) Get(ctx context.Context) ([]rentalapp.PropertyListItem, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]rentalapp.PropertyListItem), args.Bool(1), args.Error(2)
}

func (m *MockListingCache) Set(ctx context.Context, items []rentalapp.PropertyListItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockListingCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// stubScope wires the mocks into a repository scope
type stubScope struct {
	properties *MockPropertyRepository
	tenants    *MockTenantRepository
	guarantors *MockGuarantorRepository
	documents  *MockDocumentRepository
}

func (s *stubScope) Properties() rental.PropertyRepository  { return s.properties }
func (s *stubScope) Tenants() rental.TenantRepository       { return s.tenants }
func (s *stubScope) Guarantors() rental.GuarantorRepository { return s.guarantors }
func (s *stubScope) Documents() rental.DocumentRepository   { return s.documents }

// stubUnitOfWork runs the callback against the mocks without a real
// transaction
type stubUnitOfWork struct {
	scope *stubScope
}

func (u *stubUnitOfWork) Execute(ctx context.Context, fn func(repos rental.RepositoryScope) error) error {
	return fn(u.scope)
}
