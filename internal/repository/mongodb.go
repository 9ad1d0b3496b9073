package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/m2tx/workspace-assistant/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoExchangeRepository implements ExchangeRepository using MongoDB.
type MongoExchangeRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoExchangeRepository connects to uri and uses database.collectionName.
// collectionName defaults to "exchanges" if empty.
func NewMongoExchangeRepository(ctx context.Context, uri, database, collectionName string) (*MongoExchangeRepository, error) {
	if collectionName == "" {
		collectionName = "exchanges"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("repository: connect mongodb: %w", err)
	}

	return &MongoExchangeRepository{
		client:     client,
		collection: client.Database(database).Collection(collectionName),
	}, nil
}

func (r *MongoExchangeRepository) Save(ctx context.Context, record model.ExchangeRecord) error {
	filter := bson.M{"_id": record.RequestID}
	update := bson.M{"$set": record}
	opts := options.Update().SetUpsert(true)

	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("repository: upsert exchange %q: %w", record.RequestID, err)
	}

	return nil
}

func (r *MongoExchangeRepository) Load(ctx context.Context, requestID string) (*model.ExchangeRecord, error) {
	filter := bson.M{"_id": requestID}

	var record model.ExchangeRecord
	err := r.collection.FindOne(ctx, filter).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("repository: find exchange %q: %w", requestID, err)
	}

	return &record, nil
}

func (r *MongoExchangeRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
