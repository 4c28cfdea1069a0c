// Package domain contains the core concepts of the message board.
// Messages are built from closed vocabularies and are immutable once stored:
// they are only ever read or deleted.
package domain

import "time"

// StoredMessage is a message as persisted in the document store.
type StoredMessage struct {
	ID        string // opaque, assigned by the server
	OwnerID   string
	Content   MessageContent
	Location  Coordinate
	CreatedAt time.Time
}
