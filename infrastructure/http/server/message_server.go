package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"soapstone/auth"
	"soapstone/domain"
	"soapstone/errors"
	"soapstone/observability"
	"soapstone/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/samber/lo"
)

// MessageServer is the thin HTTP layer in front of the message service.
type MessageServer struct {
	messageService services.IMessageService
	identity       auth.IdentityResolver
	log            *slog.Logger
	metrics        *observability.Metrics
	requestTimeout time.Duration
}

func NewMessageServer(log *slog.Logger, messageService services.IMessageService,
	identity auth.IdentityResolver, metrics *observability.Metrics, requestTimeout time.Duration) *MessageServer {
	return &MessageServer{
		messageService: messageService,
		identity:       identity,
		log:            log,
		metrics:        metrics,
		requestTimeout: requestTimeout,
	}
}

// Register mounts the message routes on r.
func (s *MessageServer) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(middleware.Timeout(s.requestTimeout))
		r.Use(s.observe)
		r.Use(auth.RequireOwner(s.identity, s.log))

		r.Get("/messages", s.getMessages)
		r.Post("/messages", s.postMessage)
		r.Delete("/messages", s.deleteMessage)
		r.Get("/messages/{location}", s.getLocationMessages)
	})
}

type postMessageRequest struct {
	Message  json.RawMessage `json:"message"`
	Location json.RawMessage `json:"location"`
}

type messageResponse struct {
	MessageID string                `json:"messageId"`
	Content   domain.MessageContent `json:"content"`
	Location  domain.Coordinate     `json:"location"`
	CreatedAt time.Time             `json:"createdAt"`
}

func (s *MessageServer) getMessages(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.OwnerID(r.Context())
	messages := s.messageService.ListByOwner(r.Context(), ownerID)
	s.writeJSON(w, http.StatusOK, toMessageResponse(messages))
}

func (s *MessageServer) getLocationMessages(w http.ResponseWriter, r *http.Request) {
	token, err := url.PathUnescape(chi.URLParam(r, "location"))
	if err != nil {
		s.writeError(w, r, errors.ErrInvalidLocation)
		return
	}
	messages, err := s.messageService.ListByLocation(r.Context(), token)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toMessageResponse(messages))
}

func (s *MessageServer) postMessage(w http.ResponseWriter, r *http.Request) {
	var body postMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.log.WarnContext(r.Context(), "Undecodable message body",
			"request_id", middleware.GetReqID(r.Context()),
			"error", err)
		s.writeError(w, r, errors.ErrInvalidContent)
		return
	}
	ownerID := auth.OwnerID(r.Context())
	if err := s.messageService.Create(r.Context(), ownerID, body.Message, body.Location); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// deleteMessage always answers 204 unless the store write itself fails.
func (s *MessageServer) deleteMessage(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.OwnerID(r.Context())
	messageID := r.URL.Query().Get("messageId")
	if err := s.messageService.Delete(r.Context(), ownerID, messageID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toMessageResponse(messages []domain.StoredMessage) []messageResponse {
	return lo.Map(messages, func(item domain.StoredMessage, _ int) messageResponse {
		return messageResponse{
			MessageID: item.ID,
			Content:   item.Content,
			Location:  item.Location,
			CreatedAt: item.CreatedAt,
		}
	})
}

func (s *MessageServer) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("Failed to write response", "error", err)
	}
}

func (s *MessageServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.MapToHTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.log.ErrorContext(r.Context(), "Request failed",
			"request_id", middleware.GetReqID(r.Context()),
			"path", r.URL.Path,
			"error", err)
		message = http.StatusText(status)
	}
	s.writeJSON(w, status, map[string]string{"error": message})
}

// observe records the request latency under its route pattern.
func (s *MessageServer) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		s.metrics.RequestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).
			Observe(time.Since(start).Seconds())
	})
}
