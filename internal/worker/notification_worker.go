package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/pet-service/internal/events"
)

const defaultQueueSize = 256

// EventHandler processes one event.
type EventHandler interface {
	Handle(ctx context.Context, event events.Event) error
}

// NotificationWorker drains domain events off the request path.
type NotificationWorker struct {
	handler EventHandler
	logger  *zap.Logger
	queue   chan events.Event

	mu      sync.Mutex
	stopped bool
	wg      sync.WaitGroup
}

// NewNotificationWorker builds a worker with a bounded queue.
func NewNotificationWorker(handler EventHandler, logger *zap.Logger, queueSize int) *NotificationWorker {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationWorker{
		handler: handler,
		logger:  logger,
		queue:   make(chan events.Event, queueSize),
	}
}

// StartNotificationWorker subscribes w to every event and starts draining.
func StartNotificationWorker(ctx context.Context, dispatcher events.Dispatcher, w *NotificationWorker) {
	if dispatcher == nil || w == nil {
		return
	}
	dispatcher.SubscribeAll(w.Enqueue)
	w.wg.Add(1)
	go w.run(ctx)
}

// Enqueue hands event to the worker. A full queue drops the event.
func (w *NotificationWorker) Enqueue(_ context.Context, event events.Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return nil
	}
	select {
	case w.queue <- event:
	default:
		w.logger.Warn("notification queue full; dropping event",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)))
	}
	return nil
}

// Stop closes the queue and waits for queued events to be handled.
func (w *NotificationWorker) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	close(w.queue)
	w.mu.Unlock()
	w.wg.Wait()
}

func (w *NotificationWorker) run(ctx context.Context) {
	defer w.wg.Done()
	for event := range w.queue {
		w.process(ctx, event)
	}
}

func (w *NotificationWorker) process(ctx context.Context, event events.Event) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("notification handler panicked", zap.Any("panic", r), zap.String("event_id", event.ID))
		}
	}()
	if err := w.handler.Handle(ctx, event); err != nil {
		w.logger.Warn("notification handler failed", zap.String("event_id", event.ID), zap.Error(err))
	}
}
