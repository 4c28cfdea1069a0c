package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"soapstone/contract"
	"soapstone/domain"
	"soapstone/domain/search"
)

// ToDocument converts a message into its stored shape. The content is kept as a
// serialized JSON string and decoded again on read.
func ToDocument(message domain.StoredMessage) (contract.Document, error) {
	content, err := json.Marshal(message.Content)
	if err != nil {
		return contract.Document{}, fmt.Errorf("marshal content: %w", err)
	}
	location := map[string]any{
		"lat": message.Location.Latitude,
		"lon": message.Location.Longitude,
	}
	return contract.Document{
		ID:     message.ID,
		Source: map[string]any{
			search.FieldOwnerID:   message.OwnerID,
			search.FieldContent:   string(content),
			search.FieldLocation:  location,
			search.FieldCreatedAt: message.CreatedAt.UTC().Format(time.RFC3339Nano),
		},
	}, nil
}

// ToStoredMessage converts a raw stored document back into a message.
func ToStoredMessage(doc contract.Document) (domain.StoredMessage, error) {
	message := domain.StoredMessage{ID: doc.ID, OwnerID: ownerOf(doc)}

	rawContent, ok := doc.Source[search.FieldContent].(string)
	if !ok {
		return domain.StoredMessage{}, fmt.Errorf("document %s has no content", doc.ID)
	}
	if err := json.Unmarshal([]byte(rawContent), &message.Content); err != nil {
		return domain.StoredMessage{}, fmt.Errorf("document %s content: %w", doc.ID, err)
	}

	if point, ok := doc.Source[search.FieldLocation].(map[string]any); ok {
		message.Location.Latitude, _ = point["lat"].(float64)
		message.Location.Longitude, _ = point["lon"].(float64)
	}

	if rawCreatedAt, ok := doc.Source[search.FieldCreatedAt].(string); ok {
		createdAt, err := time.Parse(time.RFC3339Nano, rawCreatedAt)
		if err != nil {
			return domain.StoredMessage{}, fmt.Errorf("document %s createdAt: %w", doc.ID, err)
		}
		message.CreatedAt = createdAt
	}
	return message, nil
}

// toStoredMessages keeps the store order and drops documents that cannot be decoded.
func toStoredMessages(docs []contract.Document, log *slog.Logger) []domain.StoredMessage {
	messages := make([]domain.StoredMessage, 0, len(docs))
	for _, doc := range docs {
		message, err := ToStoredMessage(doc)
		if err != nil {
			log.Warn("Skipping undecodable document", "message_id", doc.ID, "error", err)
			continue
		}
		messages = append(messages, message)
	}
	return messages
}

func ownerOf(doc contract.Document) string {
	owner, _ := doc.Source[search.FieldOwnerID].(string)
	return owner
}
