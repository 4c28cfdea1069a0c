package search

import (
	"soapstone/domain"
)

// Document field names shared by the query builder, the mapper and the store mapping.
const (
	FieldOwnerID   = "ownerId"
	FieldContent   = "content"
	FieldLocation  = "location"
	FieldCreatedAt = "createdAt"
)

const (
	DefaultRadius      = "100m"
	DefaultRadiusLimit = 20
	DefaultOwnerLimit  = 30
	// RetentionScanLimit bounds how many expired ids one retention pass collects.
	RetentionScanLimit = 1000
)

type Kind int

const (
	// KindTerm is an exact match on a keyword field.
	KindTerm Kind = iota
	// KindRadius matches everything, filtered to a distance around a center point.
	KindRadius
)

type Sort struct {
	Field      string
	Descending bool
}

// Query is the store-agnostic description of a search.
// It decouples the message operations from the actual index engine.
type Query struct {
	Kind     Kind
	Field    string
	Term     string            // KindTerm only
	Center   domain.Coordinate // KindRadius only
	Distance string            // KindRadius only, e.g. "100m"
	Sort     Sort
	Size     int
	From     int
}

func newestFirst() Sort {
	return Sort{Field: FieldCreatedAt, Descending: true}
}

// OwnerQuery selects the messages of one owner, most recent first.
func OwnerQuery(ownerID string, size int) Query {
	return Query{
		Kind:  KindTerm,
		Field: FieldOwnerID,
		Term:  ownerID,
		Sort:  newestFirst(),
		Size:  size,
	}
}

// RadiusQuery selects the messages located within distance of center, most recent first.
func RadiusQuery(center domain.Coordinate, distance string, size int) Query {
	return Query{
		Kind:     KindRadius,
		Field:    FieldLocation,
		Center:   center,
		Distance: distance,
		Sort:     newestFirst(),
		Size:     size,
	}
}

// RetentionQuery selects the owner's messages that fall outside the newest window.
func RetentionQuery(ownerID string, window int) Query {
	q := OwnerQuery(ownerID, RetentionScanLimit)
	q.From = window
	return q
}

// Body renders the query in the search DSL shape used by OpenSearch compatible stores.
func (q Query) Body() map[string]any {
	order := "asc"
	if q.Sort.Descending {
		order = "desc"
	}
	body := map[string]any{
		"query": q.clause(),
		"size":  q.Size,
		"sort": []any{
			map[string]any{q.Sort.Field: map[string]any{"order": order}},
		},
	}
	if q.From > 0 {
		body["from"] = q.From
	}
	return body
}

func (q Query) clause() map[string]any {
	switch q.Kind {
	case KindRadius:
		return map[string]any{
			"bool": map[string]any{
				"must": map[string]any{"match_all": map[string]any{}},
				"filter": map[string]any{
					"geo_distance": map[string]any{
						"distance": q.Distance,
						q.Field: map[string]any{
							"lat": q.Center.Latitude,
							"lon": q.Center.Longitude,
						},
					},
				},
			},
		}
	default:
		return map[string]any{"term": map[string]any{q.Field: q.Term}}
	}
}
