package service

import (
	"context"
	"encoding/json"

	"teletherapy-be/internal/dto"
	"teletherapy-be/internal/pkg/logger"
	"teletherapy-be/internal/pkg/mailer"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// INotificationService drains the in-process notification topic and sends
// mail. Delivery is best effort: a failed send is logged and acked, never
// retried into the user's mailbox twice.
type INotificationService interface {
	Consume(ctx context.Context) error
}

type notificationService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	emailService mailer.IEmailService
	logger       logger.ILogger
}

func NewNotificationService(
	pubSub *gochannel.GoChannel,
	topicName string,
	emailService mailer.IEmailService,
	log logger.ILogger,
) INotificationService {
	return &notificationService{
		pubSub:       pubSub,
		topicName:    topicName,
		emailService: emailService,
		logger:       log,
	}
}

func (s *notificationService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(msg)
		}
	}()

	return nil
}

func (s *notificationService) processMessage(msg *message.Message) {
	var payload dto.NotificationMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Error("NotificationService", "Failed to unmarshal notification", map[string]interface{}{"error": err.Error()})
		msg.Ack()
		return
	}

	var err error
	switch payload.Kind {
	case dto.NotificationSessionBooked:
		err = s.emailService.SendSessionBooked(payload.RecipientMail, payload.TherapistName, payload.Date, payload.Time)
	case dto.NotificationSessionCancelled:
		err = s.emailService.SendSessionCancelled(payload.RecipientMail, payload.Date, payload.Time, payload.Fee)
	case dto.NotificationTherapistActivated:
		err = s.emailService.SendTherapistActivated(payload.RecipientMail)
	default:
		s.logger.Warn("NotificationService", "Unknown notification kind", map[string]interface{}{"kind": payload.Kind})
	}

	if err != nil {
		s.logger.Warn("NotificationService", "Failed to send notification mail", map[string]interface{}{
			"kind":  payload.Kind,
			"error": err.Error(),
		})
	}

	msg.Ack()
}
