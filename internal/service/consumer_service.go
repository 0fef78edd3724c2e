package service

import (
	"context"
	"encoding/json"
	"log"

	"notevault-be/internal/dto"
	"notevault-be/internal/websocket"
	"notevault-be/pkg/events"
	pktNats "notevault-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IConsumerService drains the in-process lifecycle topic. Each event is
// pushed to the owner's websocket clients and mirrored to NATS JetStream
// for out-of-process consumers.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	hub       *websocket.Hub
	natsPub   *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	hub *websocket.Hub,
	natsPub *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		hub:       hub,
		natsPub:   natsPub,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var evt dto.LifecycleEventMessage
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		log.Printf("consumer: dropping malformed lifecycle event: %v", err)
		return
	}

	if cs.hub != nil {
		cs.hub.Send(evt.UserId, evt)
	}

	if cs.natsPub != nil {
		if err := cs.natsPub.Publish(ctx, events.NewLifecycleEvent(evt)); err != nil {
			log.Printf("consumer: failed to mirror %s to NATS: %v", evt.EventType, err)
		}
	}
}
