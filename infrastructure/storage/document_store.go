package storage

import (
	"context"
	goerrors "errors"
	"fmt"
	"log/slog"

	"soapstone/contract"
	"soapstone/domain/search"
	"soapstone/errors"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const defaultSearchSize = 10

// DocumentStore keeps document sources in BadgerDB and makes them searchable through Bluge.
// Badger is the source of truth: a search resolves ids in Bluge, then loads the bytes from Badger.
type DocumentStore struct {
	db       *badger.DB
	writer   *bluge.Writer
	log      *slog.Logger
	mappings Mappings
}

func NewDocumentStore(db *badger.DB, writer *bluge.Writer, log *slog.Logger, mappings Mappings) *DocumentStore {
	return &DocumentStore{db: db, writer: writer, log: log, mappings: mappings}
}

// Key formats the Badger key of a document as "doc:{collection}:{id}".
func Key(collection contract.Collection, id string) []byte {
	return []byte(KeyPrefix(collection) + id)
}

func KeyPrefix(collection contract.Collection) string {
	return fmt.Sprintf("doc:%s:", collection)
}

// EncodeSource serializes a document source as a protobuf Struct.
func EncodeSource(source map[string]any) ([]byte, error) {
	s, err := structpb.NewStruct(source)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(s)
}

func DecodeSource(value []byte) (map[string]any, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(value, &s); err != nil {
		return nil, err
	}
	return s.AsMap(), nil
}

func (s *DocumentStore) mapping(collection contract.Collection) (Mapping, error) {
	m, ok := s.mappings[collection]
	if !ok {
		return Mapping{}, fmt.Errorf("%w: %s", errors.ErrUnknownCollection, collection)
	}
	return m, nil
}

func (s *DocumentStore) Get(ctx context.Context, id string, collection contract.Collection) (contract.Document, error) {
	if err := ctx.Err(); err != nil {
		return contract.Document{}, err
	}
	if _, err := s.mapping(collection); err != nil {
		return contract.Document{}, err
	}

	var source map[string]any
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(Key(collection, id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			source, err = DecodeSource(val)
			return err
		})
	})
	if goerrors.Is(err, badger.ErrKeyNotFound) {
		return contract.Document{}, errors.ErrDocumentNotFound
	}
	if err != nil {
		return contract.Document{}, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return contract.Document{ID: id, Source: source}, nil
}

// Index persists the source in Badger first, then updates the search index.
// If indexing fails the Badger write is rolled back so both sides stay aligned.
func (s *DocumentStore) Index(ctx context.Context, doc contract.Document, collection contract.Collection) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m, err := s.mapping(collection)
	if err != nil {
		return "", err
	}

	id := doc.ID
	if id == "" {
		id = uuid.NewString()
	}
	bytes, err := EncodeSource(doc.Source)
	if err != nil {
		return "", fmt.Errorf("encode source: %w", err)
	}
	entry, err := m.document(collection, id, doc.Source)
	if err != nil {
		return "", fmt.Errorf("map document: %w", err)
	}

	key := Key(collection, id)
	if err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, bytes)
	}); err != nil {
		return "", fmt.Errorf("store source: %w", err)
	}

	if err = s.writer.Update(entry.ID(), entry); err != nil {
		if rbErr := s.db.Update(func(txn *badger.Txn) error { return txn.Delete(key) }); rbErr != nil {
			s.log.Error("Failed to roll back source after index failure", "id", id, "error", rbErr)
		}
		return "", fmt.Errorf("index document: %w", err)
	}
	return id, nil
}

func (s *DocumentStore) Search(ctx context.Context, query search.Query, collection contract.Collection) ([]contract.Document, error) {
	if _, err := s.mapping(collection); err != nil {
		return nil, err
	}

	reader, err := s.writer.Reader()
	if err != nil {
		return nil, fmt.Errorf("open reader: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	size := query.Size
	if size <= 0 {
		size = defaultSearchSize
	}
	request := bluge.NewTopNSearch(size, toBlugeQuery(collection, query)).SetFrom(query.From)
	if query.Sort.Field != "" {
		request = request.SortBy(sortOrder(query.Sort))
	}

	matches, err := reader.Search(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", collection, err)
	}

	var ids []string
	match, err := matches.Next()
	for err == nil && match != nil {
		if visitErr := match.VisitStoredFields(func(field string, value []byte) bool {
			if field == "_id" {
				ids = append(ids, string(value))
				return false
			}
			return true
		}); visitErr != nil {
			return nil, visitErr
		}
		match, err = matches.Next()
	}
	if err != nil {
		return nil, fmt.Errorf("iterate %s: %w", collection, err)
	}
	return s.load(collection, ids)
}

// load reads the sources of ids in order. Ids indexed but missing from Badger are skipped.
func (s *DocumentStore) load(collection contract.Collection, ids []string) ([]contract.Document, error) {
	documents := make([]contract.Document, 0, len(ids))
	err := s.db.View(func(txn *badger.Txn) error {
		for _, id := range ids {
			item, err := txn.Get(Key(collection, id))
			if goerrors.Is(err, badger.ErrKeyNotFound) {
				s.log.Warn("Indexed document has no source", "collection", collection, "id", id)
				continue
			}
			if err != nil {
				return err
			}
			if err = item.Value(func(val []byte) error {
				source, err := DecodeSource(val)
				if err != nil {
					return err
				}
				documents = append(documents, contract.Document{ID: id, Source: source})
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load sources: %w", err)
	}
	return documents, nil
}

func (s *DocumentStore) Delete(ctx context.Context, id string, collection contract.Collection) error {
	_, err := s.DeleteByIDs(ctx, []string{id}, collection)
	return err
}

// DeleteByIDs removes the sources and index entries of ids. Unknown ids are ignored.
func (s *DocumentStore) DeleteByIDs(ctx context.Context, ids []string, collection contract.Collection) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if _, err := s.mapping(collection); err != nil {
		return 0, err
	}
	ids = lo.Uniq(ids)
	if len(ids) == 0 {
		return 0, nil
	}

	batch := bluge.NewBatch()
	for _, id := range ids {
		batch.Delete(bluge.Identifier(id))
	}
	if err := s.writer.Batch(batch); err != nil {
		return 0, fmt.Errorf("delete from index: %w", err)
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		for _, id := range ids {
			if err := txn.Delete(Key(collection, id)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("delete sources: %w", err)
	}
	return len(ids), nil
}

func toBlugeQuery(collection contract.Collection, query search.Query) bluge.Query {
	q := bluge.NewBooleanQuery().
		AddMust(bluge.NewTermQuery(string(collection)).SetField(collectionField))

	switch query.Kind {
	case search.KindRadius:
		q.AddMust(
			bluge.NewMatchAllQuery(),
			bluge.NewGeoDistanceQuery(query.Center.Longitude, query.Center.Latitude, query.Distance).
				SetField(query.Field),
		)
	default:
		q.AddMust(bluge.NewTermQuery(query.Term).SetField(query.Field))
	}
	return q
}

func sortOrder(sort search.Sort) []string {
	if sort.Descending {
		return []string{"-" + sort.Field, "-_id"}
	}
	return []string{sort.Field, "_id"}
}
