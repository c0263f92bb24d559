package event

import (
	"context"

	"go.uber.org/zap"
)

// LogPublisher writes events to the structured log. It is the sink used when
// no broker is configured.
type LogPublisher struct {
	log *zap.Logger
}

func NewLogPublisher(log *zap.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(ctx context.Context, key string, payload any) error {
	p.log.Info("event", zap.String("key", key), zap.Any("payload", payload))
	return nil
}
