// FILE: internal/service/publisher_service.go
package service

import (
	"encoding/json"

	"teletherapy-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IPublisherService fans notification work out to the in-process bus so the
// request path never waits on SMTP.
type IPublisherService interface {
	PublishNotification(msg *dto.NotificationMessage) error
}

type publisherService struct {
	pubSub    *gochannel.GoChannel
	topicName string
}

func NewPublisherService(pubSub *gochannel.GoChannel, topicName string) IPublisherService {
	return &publisherService{
		pubSub:    pubSub,
		topicName: topicName,
	}
}

func (s *publisherService) PublishNotification(msg *dto.NotificationMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return s.pubSub.Publish(s.topicName, message.NewMessage(watermill.NewUUID(), payload))
}
