package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoTimeout bounds every round trip to the MongoDB server.
const mongoTimeout = 10 * time.Second

// mongoItem is the document shape stored per key.
type mongoItem struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// MongoBackend implements StorageBackend using a MongoDB collection.
//
// Each key is one document whose _id is the key.
type MongoBackend struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoBackend connects to uri and verifies the server with a ping.
//
// Returns an error if the connection or ping fails.
func NewMongoBackend(uri, database, collection string) (*MongoBackend, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoBackend{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}, nil
}

// GetItem returns the value stored under key.
func (b *MongoBackend) GetItem(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	var item mongoItem
	err := b.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read item %q: %w", key, err)
	}

	return item.Value, true, nil
}

// SetItem replaces the document for key, inserting it if missing.
func (b *MongoBackend) SetItem(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	item := mongoItem{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	_, err := b.collection.ReplaceOne(ctx, bson.M{"_id": key}, item, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to write item %q: %w", key, err)
	}

	return nil
}

// RemoveItem deletes the document for key.
func (b *MongoBackend) RemoveItem(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	if _, err := b.collection.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("failed to remove item %q: %w", key, err)
	}

	return nil
}

// Close disconnects the client.
func (b *MongoBackend) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()
	return b.client.Disconnect(ctx)
}
