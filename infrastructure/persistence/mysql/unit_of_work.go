package mysql

import (
	"context"
	"fmt"

	"storefront/domain/shared"
	"storefront/infrastructure/persistence"
	"storefront/infrastructure/persistence/retry"

	"gorm.io/gorm"
)

// UnitOfWork implements the Unit of Work pattern with GORM
// It manages database transactions and collects domain events from aggregates
type UnitOfWork struct {
	db               *gorm.DB
	sources          []shared.EventSource
	outboxRepository *OutboxRepository
	retryConfig      retry.Config
}

// NewUnitOfWork creates a new UnitOfWork instance
func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{
		db:               db,
		sources:          make([]shared.EventSource, 0),
		outboxRepository: NewOutboxRepository(db),
		retryConfig:      retry.DefaultConfig,
	}
}

// SetRetryConfig updates the retry configuration for this UnitOfWork
func (u *UnitOfWork) SetRetryConfig(config retry.Config) {
	u.retryConfig = config
}

// Execute runs the business logic inside a database transaction
// It:
// 1. Begins a transaction and injects it into context for repositories to use
// 2. Executes the business function
// 3. Drains events from registered sources into the outbox table
// 4. Commits on success, rolls back on error
// 5. Automatically retries on retryable errors (deadlocks, lock timeouts)
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	executeOnce := func(ctx context.Context) error {
		u.sources = make([]shared.EventSource, 0)

		tx := u.db.WithContext(ctx).Begin()
		if tx.Error != nil {
			return fmt.Errorf("failed to begin transaction: %w", tx.Error)
		}

		txCtx := persistence.ContextWithTx(ctx, tx)

		if err := fn(txCtx); err != nil {
			tx.Rollback()
			return err
		}

		for _, source := range u.sources {
			for _, event := range source.PullEvents() {
				if err := u.outboxRepository.SaveEvent(txCtx, event); err != nil {
					tx.Rollback()
					return fmt.Errorf("failed to save event to outbox: %w", err)
				}
			}
		}

		if err := tx.Commit().Error; err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil
	}

	return retry.ExecuteWithRetry(ctx, u.retryConfig, executeOnce)
}

// Register registers an event source for outbox collection before commit
func (u *UnitOfWork) Register(source shared.EventSource) {
	u.sources = append(u.sources, source)
}

// Compile-time check that UnitOfWork implements shared.UnitOfWork
var _ shared.UnitOfWork = (*UnitOfWork)(nil)
