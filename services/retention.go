package services

import (
	"context"
	"fmt"

	"soapstone/contract"
	"soapstone/domain/search"

	"github.com/samber/lo"
)

// RetentionEnforcer keeps at most window messages per owner.
//
// It reads the ids beyond the window, newest first, then deletes exactly that id set.
// A single delete-by-query with sort and offset is not honored reliably by search
// stores, so the two steps stay separate.
//
// Two creates racing for the same owner can both read before either prunes, leaving
// more than window messages until the next create. The cap is enforced eventually.
type RetentionEnforcer struct {
	store  contract.DocumentStore
	window int
}

func NewRetentionEnforcer(store contract.DocumentStore, window int) RetentionEnforcer {
	return RetentionEnforcer{store: store, window: window}
}

// Enforce prunes the owner's messages beyond the window and returns how many were removed.
func (r RetentionEnforcer) Enforce(ctx context.Context, ownerID string) (int, error) {
	expired, err := r.store.Search(ctx, search.RetentionQuery(ownerID, r.window), contract.MessagesCollection)
	if err != nil {
		return 0, fmt.Errorf("find messages beyond retention window: %w", err)
	}
	if len(expired) == 0 {
		return 0, nil
	}

	ids := lo.Map(expired, func(doc contract.Document, _ int) string { return doc.ID })
	deleted, err := r.store.DeleteByIDs(ctx, ids, contract.MessagesCollection)
	if err != nil {
		return 0, fmt.Errorf("delete %d expired messages: %w", len(ids), err)
	}
	return deleted, nil
}
