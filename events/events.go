package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const subjectTaskAssigned = "tasks.assigned"

// TaskAssigned is published after a task allocation is persisted.
type TaskAssigned struct {
	TaskID               string    `json:"taskId"`
	ProjectID            string    `json:"projectId"`
	EngineerID           string    `json:"engineerId"`
	ManagerID            string    `json:"managerId"`
	AllocationPercentage float64   `json:"allocationPercentage"`
	AutoEnrolled         bool      `json:"autoEnrolled"`
	OccurredAt           time.Time `json:"occurredAt"`
}

// Publisher emits domain events. Publishing is best-effort: failures are
// logged, never surfaced to the request that triggered them.
type Publisher interface {
	PublishTaskAssigned(ctx context.Context, event TaskAssigned)
}

type NATSPublisher struct {
	nc     *nats.Conn
	logger *zap.Logger
}

func Connect(url string) (*nats.Conn, error) {
	return nats.Connect(url)
}

func NewNATSPublisher(nc *nats.Conn, logger *zap.Logger) *NATSPublisher {
	return &NATSPublisher{nc: nc, logger: logger}
}

func (p *NATSPublisher) PublishTaskAssigned(_ context.Context, event TaskAssigned) {
	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("marshal task assigned event", zap.Error(err))
		return
	}
	if err := p.nc.Publish(subjectTaskAssigned, data); err != nil {
		p.logger.Error("publish task assigned event",
			zap.String("taskId", event.TaskID), zap.Error(err))
	}
}

// NoopPublisher is used when NATS_URL is not configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishTaskAssigned(context.Context, TaskAssigned) {}
