// Package events delivers committed task transitions to downstream consumers.
package events

import (
	"context"

	"go.uber.org/zap"

	"housetasks/internal/core/domain"
)

// LogPublisher writes every transition to a zap logger. It is the default
// publisher when no broker is configured.
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	if logger == nil {
		logger = zap.L()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, event domain.TransitionEvent) error {
	p.logger.Info("task transition",
		zap.String("event_id", event.EventID),
		zap.String("operation", string(event.Operation)),
		zap.Uint64("task_id", event.TaskID),
		zap.Uint64("task_list_id", event.TaskListID),
		zap.Uint64("house_id", event.HouseID),
		zap.String("kind", string(event.Kind)),
		zap.Time("occurred_at", event.OccurredAt),
	)
	return nil
}
