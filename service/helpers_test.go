package service_test

import (
	"context"
	"sync"

	"resource-service/events"
)

// eventRecorder captures published events for assertions.
type eventRecorder struct {
	mu     sync.Mutex
	events []events.TaskAssigned
}

func (r *eventRecorder) PublishTaskAssigned(_ context.Context, event events.TaskAssigned) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *eventRecorder) published() []events.TaskAssigned {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.TaskAssigned, len(r.events))
	copy(out, r.events)
	return out
}
