package mongo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/favourami/eventplanner/internal/api/metrics"
	"github.com/favourami/eventplanner/internal/core/domain"
	"github.com/favourami/eventplanner/internal/core/ports"
)

// DocumentStore implements ports.DocumentStore on a MongoDB database. Each
// collection name maps to a Mongo collection and documents use uuid strings
// as _id.
type DocumentStore struct {
	db  *mongo.Database
	log zerolog.Logger
}

func NewDocumentStore(db *mongo.Database, log zerolog.Logger) *DocumentStore {
	return &DocumentStore{db: db, log: log}
}

func (s *DocumentStore) Get(ctx context.Context, collection, id string) (ports.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var raw bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.M{idField: id}).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ports.Document{}, fmt.Errorf("mongo: %s/%s: %w", collection, id, domain.ErrNotFound)
		}
		return ports.Document{}, fmt.Errorf("mongo: get %s/%s: %w", collection, id, err)
	}
	return toDocument(raw)
}

func (s *DocumentStore) Query(ctx context.Context, q ports.Query) ([]ports.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := s.db.Collection(q.Collection).Find(ctx, bson.M{q.Field: q.Value})
	if err != nil {
		return nil, fmt.Errorf("mongo: query %s: %w", q.Collection, err)
	}
	var raws []bson.M
	if err := cur.All(ctx, &raws); err != nil {
		return nil, fmt.Errorf("mongo: query %s: %w", q.Collection, err)
	}

	docs := make([]ports.Document, 0, len(raws))
	for _, raw := range raws {
		d, err := toDocument(raw)
		if err != nil {
			s.log.Warn().Err(err).Str("collection", q.Collection).Msg("skipping malformed document")
			continue
		}
		docs = append(docs, d)
	}
	return docs, nil
}

func (s *DocumentStore) Set(ctx context.Context, collection, id string, fields ports.Fields) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := s.db.Collection(collection).ReplaceOne(ctx, bson.M{idField: id}, toBSON(id, fields), options.Replace().SetUpsert(true))
	metrics.DocumentWritesTotal.WithLabelValues(collection, "set", metrics.Result(err)).Inc()
	if err != nil {
		return fmt.Errorf("mongo: set %s/%s: %w: %w", collection, id, domain.ErrWrite, err)
	}
	return nil
}

func (s *DocumentStore) Add(ctx context.Context, collection string, fields ports.Fields) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id := uuid.NewString()
	_, err := s.db.Collection(collection).InsertOne(ctx, toBSON(id, fields))
	metrics.DocumentWritesTotal.WithLabelValues(collection, "add", metrics.Result(err)).Inc()
	if err != nil {
		return "", fmt.Errorf("mongo: add %s: %w: %w", collection, domain.ErrWrite, err)
	}
	return id, nil
}

func (s *DocumentStore) Update(ctx context.Context, collection, id string, fields ports.Fields) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{idField: id}, bson.M{"$set": toBSON("", fields)})
	metrics.DocumentWritesTotal.WithLabelValues(collection, "update", metrics.Result(err)).Inc()
	if err != nil {
		return fmt.Errorf("mongo: update %s/%s: %w: %w", collection, id, domain.ErrWrite, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("mongo: update %s/%s: %w", collection, id, domain.ErrNotFound)
	}
	return nil
}

func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{idField: id})
	metrics.DocumentWritesTotal.WithLabelValues(collection, "delete", metrics.Result(err)).Inc()
	if err != nil {
		return fmt.Errorf("mongo: delete %s/%s: %w: %w", collection, id, domain.ErrWrite, err)
	}
	return nil
}

// Subscribe opens a change stream on q.Collection. The first snapshot and
// every one after a change are produced by re-running q, so consumers always
// receive the full result set. Requires a replica set.
func (s *DocumentStore) Subscribe(ctx context.Context, q ports.Query, onSnapshot ports.SnapshotFunc, onError ports.ErrorFunc) (ports.Subscription, error) {
	watchCtx, cancel := context.WithCancel(ctx)

	// open the stream before the first read so no change falls in between
	stream, err := s.db.Collection(q.Collection).Watch(watchCtx, mongo.Pipeline{})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("mongo: watch %s: %w", q.Collection, err)
	}
	first, err := s.Query(watchCtx, q)
	if err != nil {
		_ = stream.Close(context.Background())
		cancel()
		return nil, err
	}

	sub := &subscription{cancel: cancel, done: make(chan struct{})}
	go s.watch(watchCtx, sub, stream, q, first, onSnapshot, onError)
	return sub, nil
}

func (s *DocumentStore) watch(
	ctx context.Context,
	sub *subscription,
	stream *mongo.ChangeStream,
	q ports.Query,
	first []ports.Document,
	onSnapshot ports.SnapshotFunc,
	onError ports.ErrorFunc,
) {
	defer close(sub.done)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = stream.Close(closeCtx)
	}()

	onSnapshot(first)
	for stream.Next(ctx) {
		docs, err := s.Query(ctx, q)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.report(q, err, onError)
			return
		}
		onSnapshot(docs)
	}
	if ctx.Err() != nil {
		return
	}
	err := stream.Err()
	if err == nil {
		err = errors.New("change stream closed")
	}
	s.report(q, err, onError)
}

func (s *DocumentStore) report(q ports.Query, err error, onError ports.ErrorFunc) {
	s.log.Warn().Err(err).Str("collection", q.Collection).Msg("subscription ended")
	if onError != nil {
		onError(fmt.Errorf("mongo: watch %s: %w", q.Collection, err))
	}
}

// EnsureIndexes creates the indexes behind the equality queries.
func (s *DocumentStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	byCollection := map[string][]string{
		ports.CollectionEvents: {"owner_id"},
		ports.CollectionGuests: {"event_id", "owner_id"},
	}
	for coll, keys := range byCollection {
		models := make([]mongo.IndexModel, 0, len(keys))
		for _, k := range keys {
			models = append(models, mongo.IndexModel{Keys: bson.D{{Key: k, Value: 1}}})
		}
		if _, err := s.db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("mongo: indexes on %s: %w", coll, err)
		}
	}
	return nil
}

type subscription struct {
	once   sync.Once
	cancel context.CancelFunc
	done   chan struct{}
}

// Close stops the watcher and waits for it to exit.
func (s *subscription) Close() error {
	s.once.Do(func() {
		s.cancel()
		<-s.done
	})
	return nil
}
