package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"soapstone/contract"
	"soapstone/domain"
	"soapstone/domain/search"
	"soapstone/errors"
	"soapstone/mocks"
	"soapstone/observability"

	"github.com/mama165/sdk-go/logs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const validContent = `{"phrase1":{"template":"BLANK_AHEAD","word":"HEAD"}}`

func newTestService(t *testing.T) (*MessageService, *mocks.MockDocumentStore, *observability.Metrics) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockDocumentStore(ctrl)
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	service := NewMessageService(store, logs.GetLoggerFromLevel(slog.LevelDebug), metrics, DefaultLimits())
	return service, store, metrics
}

func messageDoc(id, owner string, at time.Time) contract.Document {
	return contract.Document{ID: id, Source: map[string]any{
		search.FieldOwnerID:   owner,
		search.FieldContent:   validContent,
		search.FieldLocation:  map[string]any{"lat": 1.0, "lon": 2.0},
		search.FieldCreatedAt: at.Format(time.RFC3339Nano),
	}}
}

func TestMessageService_ListByOwner(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	service, store, _ := newTestService(t)
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	store.EXPECT().
		Search(ctx, search.OwnerQuery("alice", 30), contract.MessagesCollection).
		Return([]contract.Document{messageDoc("m-2", "alice", at.Add(time.Minute)), messageDoc("m-1", "alice", at)}, nil)

	messages := service.ListByOwner(ctx, "alice")
	req.Len(messages, 2)
	req.Equal("m-2", messages[0].ID)
	req.Equal("m-1", messages[1].ID)
	req.Equal(domain.Coordinate{Latitude: 1, Longitude: 2}, messages[0].Location)
	req.Equal("head ahead", messages[0].Content.String())
}

func TestMessageService_ListByOwner_StoreFailure(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	service, store, metrics := newTestService(t)

	store.EXPECT().Search(ctx, gomock.Any(), contract.MessagesCollection).Return(nil, fmt.Errorf("connection refused"))

	messages := service.ListByOwner(ctx, "alice")
	req.NotNil(messages)
	req.Empty(messages)
	req.Equal(1.0, testutil.ToFloat64(metrics.StoreReadFailures.WithLabelValues("list_by_owner")))
}

func TestMessageService_ListByLocation(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	service, store, _ := newTestService(t)
	center := domain.Coordinate{Latitude: 48.85, Longitude: 2.35}

	store.EXPECT().
		Search(ctx, search.RadiusQuery(center, "100m", 20), contract.MessagesCollection).
		Return([]contract.Document{messageDoc("m-1", "bob", time.Now())}, nil)

	messages, err := service.ListByLocation(ctx, "48.85,2.35")
	req.NoError(err)
	req.Len(messages, 1)
	req.Equal("bob", messages[0].OwnerID)
}

func TestMessageService_ListByLocation_Invalid(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	service, store, _ := newTestService(t)
	store.EXPECT().Search(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	for _, token := range []string{"", "48.85", "north,east", "1;2"} {
		messages, err := service.ListByLocation(ctx, token)
		req.ErrorIs(err, errors.ErrInvalidLocation, token)
		req.Nil(messages)
	}
}

func TestMessageService_ListByLocation_StoreFailure(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	service, store, _ := newTestService(t)

	store.EXPECT().Search(ctx, gomock.Any(), contract.MessagesCollection).Return(nil, fmt.Errorf("timeout"))

	messages, err := service.ListByLocation(ctx, "0,0")
	req.NoError(err)
	req.Empty(messages)
}

func TestMessageService_Create(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	service, store, metrics := newTestService(t)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	var indexed contract.Document
	gomock.InOrder(
		store.EXPECT().
			Index(ctx, gomock.Any(), contract.MessagesCollection).
			DoAndReturn(func(_ context.Context, doc contract.Document, _ contract.Collection) (string, error) {
				indexed = doc
				return doc.ID, nil
			}),
		store.EXPECT().
			Search(ctx, search.RetentionQuery("alice", 30), contract.MessagesCollection).
			Return([]contract.Document{{ID: "old-1"}}, nil),
		store.EXPECT().
			DeleteByIDs(ctx, []string{"old-1"}, contract.MessagesCollection).
			Return(1, nil),
	)

	err := service.Create(ctx, "alice", json.RawMessage(validContent), json.RawMessage(`{"latitude":0,"longitude":0}`))
	req.NoError(err)

	req.NotEmpty(indexed.ID)
	req.Equal("alice", indexed.Source[search.FieldOwnerID])
	req.Equal(map[string]any{"lat": 0.0, "lon": 0.0}, indexed.Source[search.FieldLocation])
	req.Equal("2024-05-01T10:00:00Z", indexed.Source[search.FieldCreatedAt])
	req.JSONEq(validContent, indexed.Source[search.FieldContent].(string))

	req.Equal(1.0, testutil.ToFloat64(metrics.MessagesCreated))
	req.Equal(1.0, testutil.ToFloat64(metrics.MessagesPruned))
}

func TestMessageService_Create_Invalid(t *testing.T) {
	validLocation := json.RawMessage(`{"latitude":1,"longitude":2}`)
	tests := []struct {
		description string
		content     any
		location    any
		wantErr     error
	}{
		{"Should reject unknown word", `{"phrase1":{"template":"BLANK","word":"SWORD"}}`, validLocation, errors.ErrInvalidContent},
		{"Should reject missing content", nil, validLocation, errors.ErrInvalidContent},
		{"Should reject latitude out of range", json.RawMessage(validContent), `{"latitude":-91,"longitude":2}`, errors.ErrInvalidLocation},
		{"Should reject missing location", json.RawMessage(validContent), nil, errors.ErrInvalidLocation},
		{"Should check content before location", `{}`, `{}`, errors.ErrInvalidContent},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			req := require.New(t)
			service, store, _ := newTestService(t)
			store.EXPECT().Index(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			err := service.Create(context.Background(), "alice", tt.content, tt.location)
			req.ErrorIs(err, tt.wantErr)
		})
	}
}

func TestMessageService_Create_IndexFailure(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	service, store, metrics := newTestService(t)
	boom := fmt.Errorf("disk full")

	store.EXPECT().Index(ctx, gomock.Any(), contract.MessagesCollection).Return("", boom)
	store.EXPECT().Search(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	err := service.Create(ctx, "alice", validContent, `{"latitude":1,"longitude":2}`)
	req.ErrorIs(err, boom)
	req.Zero(testutil.ToFloat64(metrics.MessagesCreated))
}

func TestMessageService_Create_RetentionFailureIsSwallowed(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	service, store, metrics := newTestService(t)

	store.EXPECT().Index(ctx, gomock.Any(), contract.MessagesCollection).Return("m-1", nil)
	store.EXPECT().Search(ctx, gomock.Any(), contract.MessagesCollection).Return(nil, fmt.Errorf("index unavailable"))

	err := service.Create(ctx, "alice", validContent, `{"latitude":1,"longitude":2}`)
	req.NoError(err)
	req.Equal(1.0, testutil.ToFloat64(metrics.RetentionFailures))
}

func TestMessageService_Delete(t *testing.T) {
	at := time.Now()
	tests := []struct {
		description string
		messageID   string
		setup       func(store *mocks.MockDocumentStore)
		wantErr     bool
	}{
		{
			"Should delete an owned message",
			"m-1",
			func(store *mocks.MockDocumentStore) {
				store.EXPECT().Get(gomock.Any(), "m-1", contract.MessagesCollection).Return(messageDoc("m-1", "alice", at), nil)
				store.EXPECT().Delete(gomock.Any(), "m-1", contract.MessagesCollection).Return(nil)
			},
			false,
		},
		{
			"Should ignore an empty id",
			"",
			func(store *mocks.MockDocumentStore) {},
			false,
		},
		{
			"Should ignore a missing message",
			"m-404",
			func(store *mocks.MockDocumentStore) {
				store.EXPECT().Get(gomock.Any(), "m-404", contract.MessagesCollection).Return(contract.Document{}, errors.ErrDocumentNotFound)
			},
			false,
		},
		{
			"Should ignore a message owned by someone else",
			"m-1",
			func(store *mocks.MockDocumentStore) {
				store.EXPECT().Get(gomock.Any(), "m-1", contract.MessagesCollection).Return(messageDoc("m-1", "bob", at), nil)
			},
			false,
		},
		{
			"Should ignore a failing lookup",
			"m-1",
			func(store *mocks.MockDocumentStore) {
				store.EXPECT().Get(gomock.Any(), "m-1", contract.MessagesCollection).Return(contract.Document{}, fmt.Errorf("timeout"))
			},
			false,
		},
		{
			"Should surface a failing delete",
			"m-1",
			func(store *mocks.MockDocumentStore) {
				store.EXPECT().Get(gomock.Any(), "m-1", contract.MessagesCollection).Return(messageDoc("m-1", "alice", at), nil)
				store.EXPECT().Delete(gomock.Any(), "m-1", contract.MessagesCollection).Return(fmt.Errorf("disk full"))
			},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			req := require.New(t)
			service, store, _ := newTestService(t)
			tt.setup(store)

			err := service.Delete(context.Background(), "alice", tt.messageID)
			if tt.wantErr {
				req.Error(err)
				return
			}
			req.NoError(err)
		})
	}
}
