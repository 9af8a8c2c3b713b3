package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const stateCollection = "session_state"

// Store implements ports.Storage on MongoDB, for deployments that run the
// gateway without Redis. One document per key, upserted in place.
type Store struct {
	coll *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{coll: db.Collection(stateCollection)}
}

type stateDoc struct {
	Key       string `bson:"_id"`
	Value     string `bson:"value"`
	UpdatedAt int64  `bson:"updated_at"`
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var doc stateDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("find session state: %w", err)
	}
	return doc.Value, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	doc := stateDoc{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC().Unix(),
	}

	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert session state: %w", err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("delete session state: %w", err)
	}
	return nil
}
