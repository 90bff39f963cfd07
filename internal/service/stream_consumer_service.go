package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/cleanaz-dev/hueline-sub000/internal/dto"
	internalWS "github.com/cleanaz-dev/hueline-sub000/internal/websocket"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IStreamConsumerService drains the in-process scope stream bus and pushes
// SCOPE_ITEM frames to the host participants of the item's room.
type IStreamConsumerService interface {
	Consume(ctx context.Context) error
}

type streamConsumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	hub       *internalWS.Hub
}

func NewStreamConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	hub *internalWS.Hub,
) IStreamConsumerService {
	return &streamConsumerService{
		pubSub:    pubSub,
		topicName: topicName,
		hub:       hub,
	}
}

func (cs *streamConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *streamConsumerService) processMessage(msg *message.Message) {
	var payload ScopeStreamMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal scope stream message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}
	if payload.Item == nil {
		msg.Ack()
		return
	}

	itemPayload := dto.ScopeItemPayload{
		Id:            payload.Item.Id,
		Type:          payload.Item.Type,
		Area:          payload.Item.Area,
		Item:          payload.Item.Item,
		Action:        payload.Item.Action,
		ImageUrls:     payload.Item.ImageUrls,
		DetectionData: payload.Item.DetectionData,
		Timestamp:     payload.Item.Timestamp,
	}

	frame, err := internalWS.Encode(internalWS.TypeScopeItem, itemPayload)
	if err != nil {
		log.Printf("[ERROR] Failed to encode scope item frame: %v", err)
		msg.Ack()
		return
	}

	// Best-effort push. An empty room is a valid steady state, not an
	// error: the extraction pipeline can outrun the host joining.
	cs.hub.SendToHosts(internalWS.RoomID(payload.TenantSlug, payload.RoomKey), frame)
	msg.Ack()
}
