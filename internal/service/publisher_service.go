package service

import (
	"encoding/json"
	"fmt"

	"github.com/cleanaz-dev/hueline-sub000/internal/entity"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// ScopeStreamMessage is the in-process bus payload carrying one extracted
// item toward the room's live stream consumers.
type ScopeStreamMessage struct {
	TenantSlug string            `json:"tenant_slug"`
	RoomKey    string            `json:"room_key"`
	Item       *entity.ScopeItem `json:"item"`
}

type IPublisherService interface {
	PublishScopeItem(msg ScopeStreamMessage) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (p *publisherService) PublishScopeItem(msg ScopeStreamMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal scope stream message: %w", err)
	}
	return p.pubSub.Publish(p.topicName, message.NewMessage(watermill.NewUUID(), payload))
}
