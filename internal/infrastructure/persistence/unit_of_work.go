package persistence

import (
	"context"

	"github.com/alquileres/backend/internal/domain/rental"
	"gorm.io/gorm"
)

// GormUnitOfWork implements rental.UnitOfWork over a GORM transaction.
// Repositories handed to the callback share the transaction; returning an
// error rolls everything back.
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a new GormUnitOfWork
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// Execute runs fn inside a single database transaction
func (u *GormUnitOfWork) Execute(ctx context.Context, fn func(repos rental.RepositoryScope) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormScope{tx: tx})
	})
}

// gormScope exposes repositories bound to one transaction
type gormScope struct {
	tx *gorm.DB
}

func (s *gormScope) Properties() rental.PropertyRepository {
	return NewGormPropertyRepository(s.tx)
}

func (s *gormScope) Tenants() rental.TenantRepository {
	return NewGormTenantRepository(s.tx)
}

func (s *gormScope) Guarantors() rental.GuarantorRepository {
	return NewGormGuarantorRepository(s.tx)
}

func (s *gormScope) Documents() rental.DocumentRepository {
	return NewGormDocumentRepository(s.tx)
}

// Ensure GormUnitOfWork implements UnitOfWork
var _ rental.UnitOfWork = (*GormUnitOfWork)(nil)
