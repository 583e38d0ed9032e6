package mysql

import (
	"foody/domain/shared"
	"foody/infrastructure/persistence/retry"

	"gorm.io/gorm"
)

// UnitOfWorkFactory creates one UnitOfWork per request so concurrent
// requests never share aggregate registrations.
type UnitOfWorkFactory struct {
	db          *gorm.DB
	retryConfig retry.Config
}

// NewUnitOfWorkFactory creates the factory.
func NewUnitOfWorkFactory(db *gorm.DB, retryConfig retry.Config) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		db:          db,
		retryConfig: retryConfig,
	}
}

// New creates a fresh UnitOfWork.
func (f *UnitOfWorkFactory) New() shared.UnitOfWork {
	uow := NewUnitOfWork(f.db)
	uow.SetRetryConfig(f.retryConfig)
	return uow
}

var _ shared.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)
