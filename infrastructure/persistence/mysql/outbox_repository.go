package mysql

import (
	"context"
	"fmt"

	"foody/domain/shared"
	"foody/infrastructure/persistence"
	"foody/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// OutboxRepository transactional outbox over MySQL. Events are written in
// the same transaction as the aggregate change and drained asynchronously
// by the stats worker.
type OutboxRepository struct {
	db *gorm.DB
}

// NewOutboxRepository creates an outbox repository.
func NewOutboxRepository(db *gorm.DB) *OutboxRepository {
	return &OutboxRepository{db: db}
}

func (r *OutboxRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// SaveEvent persists a domain event. Inside UnitOfWork.Execute the write
// joins the active transaction; standalone calls open their own.
func (r *OutboxRepository) SaveEvent(ctx context.Context, event shared.DomainEvent) error {
	if err := shared.ValidateEvent(event); err != nil {
		return fmt.Errorf("invalid domain event: %w", err)
	}

	if tx := persistence.TxFromContext(ctx); tx != nil {
		return r.saveEventWithTx(tx, event)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveEventWithTx(tx, event)
	})
}

func (r *OutboxRepository) saveEventWithTx(tx *gorm.DB, event shared.DomainEvent) error {
	outboxPO, err := po.FromDomainEvent(event)
	if err != nil {
		return fmt.Errorf("failed to convert domain event: %w", err)
	}
	if err := tx.Create(outboxPO).Error; err != nil {
		return fmt.Errorf("failed to save event to outbox: %w", err)
	}
	return nil
}

// GetPendingEvents returns the oldest pending events, up to limit.
func (r *OutboxRepository) GetPendingEvents(ctx context.Context, limit int) ([]*po.OutboxEventPO, error) {
	var events []*po.OutboxEventPO
	err := r.getDB(ctx).
		Where("status = ?", po.EventStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get pending events: %w", err)
	}
	return events, nil
}

// MarkEventProcessing claims a pending event. The status guard keeps two
// worker instances from processing the same event.
func (r *OutboxRepository) MarkEventProcessing(ctx context.Context, eventID string) error {
	result := r.getDB(ctx).Model(&po.OutboxEventPO{}).
		Where("id = ? AND status = ?", eventID, po.EventStatusPending).
		Update("status", po.EventStatusProcessing)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("event not found or already being processed: %s", eventID)
	}
	return nil
}

// MarkEventProcessed records a successfully applied event.
func (r *OutboxRepository) MarkEventProcessed(ctx context.Context, eventID string) error {
	result := r.getDB(ctx).Model(&po.OutboxEventPO{}).
		Where("id = ?", eventID).
		Updates(map[string]any{
			"status":       po.EventStatusProcessed,
			"processed_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("event not found: %s", eventID)
	}
	return nil
}

// MarkEventFailed records a failed attempt. The event goes back to PENDING
// until maxRetries is exhausted, then parks as FAILED for manual inspection.
func (r *OutboxRepository) MarkEventFailed(ctx context.Context, eventID string, handleErr error, maxRetries int) error {
	db := r.getDB(ctx)

	var event po.OutboxEventPO
	if err := db.First(&event, "id = ?", eventID).Error; err != nil {
		return fmt.Errorf("failed to find event: %w", err)
	}

	newRetryCount := event.RetryCount + 1
	newStatus := po.EventStatusFailed
	if newRetryCount < maxRetries {
		newStatus = po.EventStatusPending
	}

	lastError := ""
	if handleErr != nil {
		lastError = handleErr.Error()
		if len(lastError) > 1024 {
			lastError = lastError[:1024]
		}
	}

	return db.Model(&po.OutboxEventPO{}).
		Where("id = ?", eventID).
		Updates(map[string]any{
			"status":      newStatus,
			"retry_count": newRetryCount,
			"last_error":  lastError,
		}).Error
}

var _ shared.OutboxRepository = (*OutboxRepository)(nil)
