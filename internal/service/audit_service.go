package service

import (
	"context"
	"log"

	"notevault-be/internal/pkg/logger"
	"notevault-be/pkg/events"
	pktNats "notevault-be/pkg/nats"
)

// IAuditService tails the JetStream event stream and writes an append-only
// audit log of every lifecycle transition. The durable consumer means the
// trail survives restarts without gaps.
type IAuditService interface {
	Start()
}

type auditService struct {
	subscriber *pktNats.Subscriber
	logger     logger.ILogger
}

func NewAuditService(subscriber *pktNats.Subscriber, log logger.ILogger) IAuditService {
	return &auditService{
		subscriber: subscriber,
		logger:     log,
	}
}

func (s *auditService) Start() {
	err := s.subscriber.Subscribe("events.>", "lifecycle-audit", func(_ context.Context, event events.Event) error {
		s.logger.Info("Audit", event.EventType(), event.Payload())
		return nil
	})
	if err != nil {
		log.Printf("[WARN] Audit subscription failed: %v", err)
	}
}
