package storage

import (
	"fmt"
	"time"

	"soapstone/contract"
	"soapstone/domain/search"

	"github.com/blugelabs/bluge"
)

const collectionField = "_collection"

// Mapping tells the index how to treat the source fields of a collection.
// Fields that are not mapped are stored in Badger but not searchable.
type Mapping struct {
	Keywords []string // exact match fields
	GeoPoint string   // {"lat": float, "lon": float}
	DateTime string   // RFC 3339 string, sortable
}

// Mappings lists every collection the store accepts.
type Mappings map[contract.Collection]Mapping

// DefaultMappings holds the collections used by the message board.
var DefaultMappings = Mappings{
	contract.MessagesCollection: {
		Keywords: []string{search.FieldOwnerID},
		GeoPoint: search.FieldLocation,
		DateTime: search.FieldCreatedAt,
	},
}

// document builds the index entry for a source. Only mapped fields are indexed.
func (m Mapping) document(collection contract.Collection, id string, source map[string]any) (*bluge.Document, error) {
	doc := bluge.NewDocument(id).
		AddField(bluge.NewKeywordField(collectionField, string(collection)))

	for _, field := range m.Keywords {
		value, ok := source[field].(string)
		if !ok {
			continue
		}
		doc.AddField(bluge.NewKeywordField(field, value).StoreValue())
	}

	if m.GeoPoint != "" {
		if raw, ok := source[m.GeoPoint]; ok {
			lat, lon, err := geoPoint(raw)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", m.GeoPoint, err)
			}
			doc.AddField(bluge.NewGeoPointField(m.GeoPoint, lon, lat))
		}
	}

	if m.DateTime != "" {
		if raw, ok := source[m.DateTime].(string); ok {
			at, err := time.Parse(time.RFC3339Nano, raw)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", m.DateTime, err)
			}
			doc.AddField(bluge.NewDateTimeField(m.DateTime, at).Sortable())
		}
	}
	return doc, nil
}

func geoPoint(raw any) (float64, float64, error) {
	point, ok := raw.(map[string]any)
	if !ok {
		return 0, 0, fmt.Errorf("geo point must be an object, got %T", raw)
	}
	lat, latOK := point["lat"].(float64)
	lon, lonOK := point["lon"].(float64)
	if !latOK || !lonOK {
		return 0, 0, fmt.Errorf("geo point needs numeric lat and lon")
	}
	return lat, lon, nil
}
