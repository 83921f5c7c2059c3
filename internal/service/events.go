package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/pet-service/internal/auth"
	"github.com/spec-kit/pet-service/internal/events"
)

// eventPublisher wraps a dispatcher. Publication failures are logged only.
type eventPublisher struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

func newEventPublisher(dispatcher events.Dispatcher, logger *zap.Logger) eventPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return eventPublisher{dispatcher: dispatcher, logger: logger}
}

func (p eventPublisher) publish(ctx context.Context, eventType events.EventType, resourceID string, principal *auth.Principal, payload any) {
	if p.dispatcher == nil {
		return
	}
	event := events.New(eventType, resourceID, actorOf(principal), payload)
	if err := p.dispatcher.Publish(ctx, event); err != nil {
		p.logger.Warn("event handlers failed",
			zap.String("event_type", string(eventType)),
			zap.String("resource_id", resourceID),
			zap.Error(err))
	}
}

func actorOf(p *auth.Principal) events.Actor {
	if p == nil {
		return events.Actor{}
	}
	return events.Actor{Subject: p.Subject, UserID: p.UserID}
}
