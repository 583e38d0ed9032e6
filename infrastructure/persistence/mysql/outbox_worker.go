package mysql

import (
	"context"
	"fmt"
	"time"

	"foody/pkg/logger"

	"go.uber.org/zap"
)

// OutboxHandler consumes one serialized outbox event.
type OutboxHandler interface {
	Handle(ctx context.Context, eventType, payload string) error
}

// LoggingOutboxHandler logs events without applying them. Used in
// environments where the stats projection is disabled.
type LoggingOutboxHandler struct{}

func (h *LoggingOutboxHandler) Handle(ctx context.Context, eventType, payload string) error {
	logger.Info("Outbox event drained",
		zap.String("event_type", eventType),
		zap.String("payload", payload),
	)
	return nil
}

// OutboxWorker polls the outbox table and feeds pending events to a
// handler. Failed events go back to pending until maxRetries is exhausted.
type OutboxWorker struct {
	repository   *OutboxRepository
	handler      OutboxHandler
	pollInterval time.Duration
	batchSize    int
	maxRetries   int
}

// NewOutboxWorker creates the worker.
func NewOutboxWorker(
	repository *OutboxRepository,
	handler OutboxHandler,
	pollInterval time.Duration,
	batchSize int,
	maxRetries int,
) (*OutboxWorker, error) {
	if repository == nil {
		return nil, fmt.Errorf("outbox repository is required")
	}
	if handler == nil {
		return nil, fmt.Errorf("outbox handler is required")
	}
	if pollInterval <= 0 {
		return nil, fmt.Errorf("poll interval must be positive")
	}
	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive")
	}
	if maxRetries <= 0 {
		return nil, fmt.Errorf("max retries must be positive")
	}

	return &OutboxWorker{
		repository:   repository,
		handler:      handler,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		maxRetries:   maxRetries,
	}, nil
}

// Run polls until the context is cancelled.
func (w *OutboxWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.processBatch(ctx); err != nil {
				logger.Error("Outbox batch processing failed", zap.Error(err))
			}
		}
	}
}

func (w *OutboxWorker) processBatch(ctx context.Context) error {
	events, err := w.repository.GetPendingEvents(ctx, w.batchSize)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	for _, event := range events {
		if err := w.repository.MarkEventProcessing(ctx, event.ID); err != nil {
			logger.Warn("Skip outbox event due to lock contention",
				zap.String("event_id", event.ID),
				zap.Error(err),
			)
			continue
		}

		if err := w.handler.Handle(ctx, event.EventType, event.Payload); err != nil {
			logger.Warn("Outbox event handling failed",
				zap.String("event_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.Error(err),
			)
			if failErr := w.repository.MarkEventFailed(ctx, event.ID, err, w.maxRetries); failErr != nil {
				logger.Error("Failed to mark outbox event as failed",
					zap.String("event_id", event.ID),
					zap.Error(failErr),
				)
			}
			continue
		}

		if err := w.repository.MarkEventProcessed(ctx, event.ID); err != nil {
			logger.Error("Failed to mark outbox event as processed",
				zap.String("event_id", event.ID),
				zap.Error(err),
			)
		}
	}

	return nil
}
