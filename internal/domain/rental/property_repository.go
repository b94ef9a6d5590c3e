package rental

import (
	"context"

	"github.com/alquileres/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PropertyRepository defines persistence operations for properties
type PropertyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Property, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Property, error)
	FindByStatus(ctx context.Context, status PropertyStatus) ([]Property, error)
	Save(ctx context.Context, property *Property) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// UnitOfWork runs a multi-entity mutation inside a single transactional
// boundary. Repositories obtained from the callback's scope share one
// transaction; any error rolls the whole mutation back.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(repos RepositoryScope) error) error
}

// RepositoryScope exposes the repositories bound to one transaction
type RepositoryScope interface {
	Properties() PropertyRepository
	Tenants() TenantRepository
	Guarantors() GuarantorRepository
	Documents() DocumentRepository
}
