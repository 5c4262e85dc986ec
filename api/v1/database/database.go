package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrDatabaseError = errors.New("database error occurred")

// Store owns the single Mongo client shared by all requests. The driver
// handles pooling and concurrent use; Store adds no locking of its own.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect builds the client without pinging the server, so startup succeeds
// even when the database is down. Operations fail individually instead.
func Connect(ctx context.Context, uri, name string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Store{
		client: client,
		db:     client.Database(name),
	}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Collection exposes the raw collection handle for operations the generic
// helpers don't cover.
func (s *Store) Collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// ListCollections returns up to limit collection names from the database.
func (s *Store) ListCollections(ctx context.Context, limit int) ([]string, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list collections", ErrDatabaseError)
	}
	if len(names) > limit {
		names = names[:limit]
	}
	return names, nil
}

// CreateDocument inserts item into the named collection and returns the
// identifier assigned by the store.
func (s *Store) CreateDocument(ctx context.Context, collection string, item interface{}) (primitive.ObjectID, error) {
	res, err := s.db.Collection(collection).InsertOne(ctx, item)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: failed to insert document", ErrDatabaseError)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("%w: unexpected inserted id type", ErrDatabaseError)
	}
	return id, nil
}

// GetDocuments runs a fresh query on every call and materializes all matching
// documents. An empty filter matches everything; no order is guaranteed.
func GetDocuments[T any](ctx context.Context, s *Store, collection string, filter interface{}) ([]T, error) {
	cursor, err := s.db.Collection(collection).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query documents", ErrDatabaseError)
	}
	defer cursor.Close(ctx)

	var docs []T
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: failed to decode documents", ErrDatabaseError)
	}

	return docs, nil
}
