package service

import (
	"context"
	"encoding/json"

	"eduease-be/internal/constant"
	"eduease-be/internal/entity"
	"eduease-be/internal/pkg/logger"
	"eduease-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// NotificationDelivery pushes a toast to the sockets of one session.
type NotificationDelivery interface {
	Send(sessionId string, notification entity.Notification)
}

// EventPublisher mirrors notifications to an external bus.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	delivery  NotificationDelivery
	mirror    EventPublisher
	logger    logger.ILogger
}

// NewConsumerService wires the bus to delivery. mirror may be nil.
func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	delivery NotificationDelivery,
	mirror EventPublisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		delivery:  delivery,
		mirror:    mirror,
		logger:    log,
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
	var notification entity.Notification
	if err := json.Unmarshal(msg.Payload, &notification); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal notification", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err,
		})
		// Ack so a malformed payload is not redelivered forever.
		msg.Ack()
		return
	}

	if cs.delivery != nil {
		cs.delivery.Send(notification.SessionId, notification)
	}

	if cs.mirror != nil {
		evt := events.FromNotification(constant.NotificationEventType, notification)
		if err := cs.mirror.Publish(ctx, evt); err != nil {
			cs.logger.Warn("ConsumerService", "Failed to mirror notification", map[string]interface{}{
				"session_id": notification.SessionId,
				"error":      err,
			})
		}
	}

	msg.Ack()
}
