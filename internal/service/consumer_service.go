package service

import (
	"context"
	"encoding/json"
	"log"

	"study-stream-be/internal/dto"
	"study-stream-be/internal/websocket"
	"study-stream-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	hub            *websocket.Hub
	summaryService ISummaryService
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	hub *websocket.Hub,
	summaryService ISummaryService,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		hub:            hub,
		summaryService: summaryService,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
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

func (cs *consumerService) processMessage(msg *message.Message) {
	if et := msg.Metadata.Get("event_type"); et != "" && et != events.RoomEndedType {
		msg.Ack()
		return
	}

	var payload dto.PublishRoomEndedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal room ended message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Room ended, closing realtime channel for room %s", payload.RoomId)

	if cs.hub != nil {
		cs.hub.CloseRoom(payload.RoomId, payload.RoomTitle)
	}

	// The freshly written summary must be visible on the next list call.
	cs.summaryService.InvalidateCache()

	msg.Ack()
}
