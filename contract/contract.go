//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"

	"soapstone/domain/search"
)

// Collection names a group of documents sharing one field mapping.
type Collection string

const MessagesCollection Collection = "messages"

// Document is a raw stored document: an id and its JSON-like source.
type Document struct {
	ID     string
	Source map[string]any
}

// DocumentStore is the capability the message operations consume.
// The store is the only owner of persisted bytes; callers keep nothing between calls.
type DocumentStore interface {
	// Get returns errors.ErrDocumentNotFound when no document has this id.
	Get(ctx context.Context, id string, collection Collection) (Document, error)
	// Index writes doc and returns its id, generating one when doc.ID is empty.
	Index(ctx context.Context, doc Document, collection Collection) (string, error)
	Search(ctx context.Context, query search.Query, collection Collection) ([]Document, error)
	Delete(ctx context.Context, id string, collection Collection) error
	// DeleteByIDs removes every listed document and returns how many ids were submitted.
	DeleteByIDs(ctx context.Context, ids []string, collection Collection) (int, error)
}
