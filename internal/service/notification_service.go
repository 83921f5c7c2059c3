package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/pet-service/internal/events"
)

// EventRelay forwards events to an external broker.
type EventRelay interface {
	Publish(ctx context.Context, event events.Event) error
}

// CacheInvalidator drops derived read models.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// NotificationService reacts to domain events: it logs them, invalidates
// cached statistics and relays them to the broker when one is configured.
type NotificationService struct {
	logger *zap.Logger
	stats  CacheInvalidator
	relay  EventRelay
}

// NewNotificationService creates the service. stats and relay may be nil.
func NewNotificationService(logger *zap.Logger, stats CacheInvalidator, relay EventRelay) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		logger: logger,
		stats:  stats,
		relay:  relay,
	}
}

// Handle processes one event. It never fails; problems are logged.
func (n *NotificationService) Handle(ctx context.Context, event events.Event) error {
	n.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("resource_id", event.ResourceID),
		zap.String("actor", event.Actor.Subject),
		zap.Any("payload", event.Payload))

	if n.stats != nil && event.Type.AffectsStatistics() {
		if err := n.stats.Invalidate(ctx); err != nil {
			n.logger.Warn("statistics invalidation failed", zap.String("event_id", event.ID), zap.Error(err))
		}
	}
	if n.relay != nil {
		if err := n.relay.Publish(ctx, event); err != nil {
			n.logger.Warn("event relay failed",
				zap.String("event_id", event.ID),
				zap.String("event_type", string(event.Type)),
				zap.Error(err))
		}
	}
	return nil
}
