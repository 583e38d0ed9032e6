package mysql

import (
	"context"
	"fmt"

	"foody/domain/shared"
	"foody/infrastructure/persistence"
	"foody/infrastructure/persistence/retry"

	"gorm.io/gorm"
)

// UnitOfWork GORM-backed transaction boundary. It injects the transaction
// into context for repositories, collects domain events from registered
// aggregates into the outbox inside the same transaction, and retries the
// whole function on optimistic-lock conflicts.
//
// Retrying re-runs fn from scratch, so business logic inside Execute must
// re-load its aggregates each attempt.
type UnitOfWork struct {
	db               *gorm.DB
	aggregates       []shared.AggregateRoot
	outboxRepository *OutboxRepository
	retryConfig      retry.Config
}

// NewUnitOfWork creates a UnitOfWork.
func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{
		db:               db,
		aggregates:       make([]shared.AggregateRoot, 0),
		outboxRepository: NewOutboxRepository(db),
		retryConfig:      retry.DefaultConfig,
	}
}

// SetRetryConfig overrides the retry configuration.
func (u *UnitOfWork) SetRetryConfig(config retry.Config) {
	u.retryConfig = config
}

// Execute runs fn inside a transaction: begin, inject tx into context, run
// fn, drain events from registered aggregates into the outbox, commit.
// Rolls back on any error; retryable errors re-run the whole attempt.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	executeOnce := func(ctx context.Context) error {
		// Registrations from a failed attempt must not leak into this one.
		u.aggregates = make([]shared.AggregateRoot, 0)

		tx := u.db.WithContext(ctx).Begin()
		if tx.Error != nil {
			return fmt.Errorf("failed to begin transaction: %w", tx.Error)
		}

		txCtx := persistence.ContextWithTx(ctx, tx)

		if err := fn(txCtx); err != nil {
			tx.Rollback()
			return err
		}

		for _, agg := range u.aggregates {
			for _, event := range agg.PullEvents() {
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

// RegisterNew registers a newly created aggregate for event collection.
func (u *UnitOfWork) RegisterNew(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

// RegisterDirty registers a modified aggregate for event collection.
func (u *UnitOfWork) RegisterDirty(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

// RegisterRemoved registers a removed aggregate for event collection.
func (u *UnitOfWork) RegisterRemoved(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

var _ shared.UnitOfWork = (*UnitOfWork)(nil)
