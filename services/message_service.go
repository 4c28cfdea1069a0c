//go:generate go run go.uber.org/mock/mockgen -source=message_service.go -destination=../mocks/mock_message_service.go -package=mocks
package services

import (
	"context"
	goerrors "errors"
	"fmt"
	"log/slog"
	"time"

	"soapstone/contract"
	"soapstone/domain"
	"soapstone/domain/search"
	"soapstone/errors"
	"soapstone/observability"

	"github.com/google/uuid"
)

type IMessageService interface {
	ListByOwner(ctx context.Context, ownerID string) []domain.StoredMessage
	ListByLocation(ctx context.Context, locationToken string) ([]domain.StoredMessage, error)
	Create(ctx context.Context, ownerID string, content any, location any) error
	Delete(ctx context.Context, ownerID, messageID string) error
}

// Limits are the tunable sizes of the message queries.
type Limits struct {
	RetentionWindow int
	OwnerLimit      int
	RadiusDistance  string
	RadiusLimit     int
}

func DefaultLimits() Limits {
	return Limits{
		RetentionWindow: search.DefaultOwnerLimit,
		OwnerLimit:      search.DefaultOwnerLimit,
		RadiusDistance:  search.DefaultRadius,
		RadiusLimit:     search.DefaultRadiusLimit,
	}
}

// MessageService runs every operation as an independent sequence of store calls.
// It holds no state between calls besides its injected dependencies.
type MessageService struct {
	store     contract.DocumentStore
	retention RetentionEnforcer
	log       *slog.Logger
	metrics   *observability.Metrics
	limits    Limits
	now       func() time.Time
}

func NewMessageService(store contract.DocumentStore, log *slog.Logger,
	metrics *observability.Metrics, limits Limits) *MessageService {
	return &MessageService{
		store:     store,
		retention: NewRetentionEnforcer(store, limits.RetentionWindow),
		log:       log,
		metrics:   metrics,
		limits:    limits,
		now:       time.Now,
	}
}

// ListByOwner returns the owner's messages, most recent first.
// A failing store yields an empty list, never an error.
func (s *MessageService) ListByOwner(ctx context.Context, ownerID string) []domain.StoredMessage {
	s.log.Debug("Fetching messages by owner", "owner_id", ownerID)
	query := search.OwnerQuery(ownerID, s.limits.OwnerLimit)
	return s.search(ctx, "list_by_owner", query)
}

// ListByLocation returns the messages around the "lat,lon" token, most recent first.
// A malformed token is ErrInvalidLocation; a failing store yields an empty list.
func (s *MessageService) ListByLocation(ctx context.Context, locationToken string) ([]domain.StoredMessage, error) {
	center, err := domain.ParseLocation(locationToken)
	if err != nil {
		return nil, err
	}
	s.log.Debug("Fetching messages near location", "location", center.String())
	query := search.RadiusQuery(center, s.limits.RadiusDistance, s.limits.RadiusLimit)
	return s.search(ctx, "list_by_location", query), nil
}

func (s *MessageService) search(ctx context.Context, operation string, query search.Query) []domain.StoredMessage {
	docs, err := s.store.Search(ctx, query, contract.MessagesCollection)
	if err != nil {
		s.log.Warn("Unexpected store failure, answering with no messages",
			"operation", operation,
			"query", query.Body(),
			"error", err)
		s.metrics.StoreReadFailures.WithLabelValues(operation).Inc()
		return []domain.StoredMessage{}
	}
	return toStoredMessages(docs, s.log)
}

// Create validates and stores a message, then prunes the owner's older messages.
// Once the write succeeds the create succeeds: retention failures are only logged.
func (s *MessageService) Create(ctx context.Context, ownerID string, content any, location any) error {
	messageContent, err := domain.ValidateContent(content)
	if err != nil {
		return err
	}
	coordinate, err := domain.ValidateLocation(location)
	if err != nil {
		return err
	}

	message := domain.StoredMessage{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Content:   messageContent,
		Location:  coordinate,
		CreatedAt: s.now().UTC(),
	}
	s.log.Debug("Posting message",
		"owner_id", ownerID,
		"message_id", message.ID,
		"location", coordinate.String())

	doc, err := ToDocument(message)
	if err != nil {
		return err
	}
	if _, err = s.store.Index(ctx, doc, contract.MessagesCollection); err != nil {
		return fmt.Errorf("index message: %w", err)
	}
	s.metrics.MessagesCreated.Inc()

	pruned, err := s.retention.Enforce(ctx, ownerID)
	if err != nil {
		s.log.Error("Retention enforcement failed", "owner_id", ownerID, "error", err)
		s.metrics.RetentionFailures.Inc()
		return nil
	}
	if pruned > 0 {
		s.log.Debug("Pruned older messages", "owner_id", ownerID, "count", pruned)
		s.metrics.MessagesPruned.Add(float64(pruned))
	}
	return nil
}

// Delete removes the message when it exists and belongs to ownerID.
// Missing and foreign messages are silently ignored so existence never leaks.
func (s *MessageService) Delete(ctx context.Context, ownerID, messageID string) error {
	if messageID == "" {
		return nil
	}
	doc, err := s.store.Get(ctx, messageID, contract.MessagesCollection)
	if goerrors.Is(err, errors.ErrDocumentNotFound) {
		return nil
	}
	if err != nil {
		s.log.Warn("Failed to fetch message before delete", "message_id", messageID, "error", err)
		s.metrics.StoreReadFailures.WithLabelValues("delete").Inc()
		return nil
	}
	if ownerOf(doc) != ownerID {
		s.log.Debug("Ignoring delete of foreign message", "owner_id", ownerID, "message_id", messageID)
		return nil
	}
	if err = s.store.Delete(ctx, messageID, contract.MessagesCollection); err != nil {
		return fmt.Errorf("delete message %s: %w", messageID, err)
	}
	s.metrics.MessagesDeleted.Inc()
	return nil
}
