package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cleanaz-dev/hueline-sub000/internal/constant"
	"github.com/cleanaz-dev/hueline-sub000/internal/entity"
	"github.com/cleanaz-dev/hueline-sub000/internal/pkg/logger"
	"github.com/cleanaz-dev/hueline-sub000/pkg/events"
	pktNats "github.com/cleanaz-dev/hueline-sub000/pkg/nats"

	"github.com/google/uuid"
)

// ScopeExtractedSubjectPrefix is where the external AI extraction service
// publishes candidate items: walkthrough.scope.extracted.<tenant>.<roomKey>
const ScopeExtractedSubjectPrefix = "walkthrough.scope.extracted"

// IExtractionService bridges extraction events from NATS onto the
// in-process scope stream bus.
type IExtractionService interface {
	Start() error
}

type extractionService struct {
	subscriber *pktNats.Subscriber
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewExtractionService(sub *pktNats.Subscriber, publisher IPublisherService, log logger.ILogger) IExtractionService {
	return &extractionService{
		subscriber: sub,
		publisher:  publisher,
		logger:     log,
	}
}

func (s *extractionService) Start() error {
	// The container runs degraded when the broker is down; honor that here
	// instead of dereferencing a nil subscriber.
	if s.subscriber == nil {
		s.logger.Warn("ExtractionService", "No NATS connection, scope extraction stream disabled", nil)
		return nil
	}

	err := s.subscriber.Subscribe(ScopeExtractedSubjectPrefix+".>", "scope-stream-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("ExtractionService", "Failed to start extraction subscriber", map[string]interface{}{"error": err})
		return err
	}
	s.logger.Info("ExtractionService", "Listening for extracted scope items", nil)
	return nil
}

func (s *extractionService) handleEvent(ctx context.Context, event events.Event) error {
	tenantSlug, roomKey, ok := parseRoomSubject(event.EventType())
	if !ok {
		s.logger.Warn("ExtractionService", "Unroutable extraction subject", map[string]interface{}{"subject": event.EventType()})
		return nil // Ack, a retry can't fix the subject
	}

	item, err := itemFromEventPayload(event.Payload())
	if err != nil {
		s.logger.Warn("ExtractionService", "Dropping malformed scope candidate", map[string]interface{}{
			"subject": event.EventType(),
			"error":   err.Error(),
		})
		return nil // Ack malformed payloads to prevent infinite retry
	}

	item.TenantSlug = tenantSlug
	item.RoomKey = roomKey

	if err := s.publisher.PublishScopeItem(ScopeStreamMessage{
		TenantSlug: tenantSlug,
		RoomKey:    roomKey,
		Item:       item,
	}); err != nil {
		return err // Nack, the in-process bus should accept this
	}
	return nil
}

func parseRoomSubject(subject string) (tenantSlug, roomKey string, ok bool) {
	rest, found := strings.CutPrefix(subject, ScopeExtractedSubjectPrefix+".")
	if !found {
		return "", "", false
	}
	parts := strings.SplitN(rest, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// itemFromEventPayload validates the extraction payload shape and stamps
// the server-issued identity. The client-generated timestamp stays the
// user-facing key; the UUID exists so same-millisecond items don't collide.
func itemFromEventPayload(payload map[string]interface{}) (*entity.ScopeItem, error) {
	itemType, _ := payload["type"].(string)
	if !constant.IsKnownScopeType(itemType) {
		return nil, fmt.Errorf("unknown scope type %q", itemType)
	}

	area, _ := payload["area"].(string)
	area = strings.ToLower(strings.TrimSpace(area))
	if area == "" {
		return nil, fmt.Errorf("missing area")
	}
	if strings.EqualFold(area, constant.AreaFilterAll) {
		return nil, fmt.Errorf("reserved area %q", area)
	}

	timestamp, _ := payload["timestamp"].(string)
	if timestamp == "" {
		timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	}

	item := &entity.ScopeItem{
		Id:        uuid.New(),
		Type:      itemType,
		Area:      area,
		Timestamp: timestamp,
		CreatedAt: time.Now(),
	}
	item.Item, _ = payload["item"].(string)
	item.Action, _ = payload["action"].(string)

	if urls, ok := payload["imageUrls"].([]interface{}); ok {
		for _, u := range urls {
			if s, ok := u.(string); ok && s != "" {
				item.ImageUrls = append(item.ImageUrls, s)
			}
		}
	}
	if itemType != constant.ScopeTypeImage && len(item.ImageUrls) > 0 {
		// imageUrls is authoritative only on IMAGE items
		item.ImageUrls = nil
	}

	if counts, ok := payload["detectionData"].(map[string]interface{}); ok && itemType == constant.ScopeTypeDetection {
		item.DetectionData = make(map[string]int, len(counts))
		for k, v := range counts {
			if f, ok := v.(float64); ok {
				item.DetectionData[k] = int(f)
			}
		}
	}
	if itemType == constant.ScopeTypeDetection && len(item.DetectionData) == 0 {
		return nil, fmt.Errorf("DETECTION item without detection data")
	}

	return item, nil
}
