package mysql

import (
	"storefront/domain/shared"
	"storefront/infrastructure/persistence/retry"

	"gorm.io/gorm"
)

// UnitOfWorkFactory builds per-request UnitOfWork instances
type UnitOfWorkFactory struct {
	db          *gorm.DB
	retryConfig retry.Config
}

// NewUnitOfWorkFactory creates a factory with the given retry configuration
func NewUnitOfWorkFactory(db *gorm.DB, retryConfig retry.Config) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		db:          db,
		retryConfig: retryConfig,
	}
}

// New creates a fresh UnitOfWork
func (f *UnitOfWorkFactory) New() shared.UnitOfWork {
	uow := NewUnitOfWork(f.db)
	uow.SetRetryConfig(f.retryConfig)
	return uow
}

var _ shared.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)
