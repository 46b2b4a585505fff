package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UsersCollection holds one document per user, keyed by user id.
const UsersCollection = "users"

// MongoStore reads profiles from MongoDB. It never writes.
type MongoStore struct {
	client *mongo.Client
	users  *mongo.Collection
}

var _ ProfileReader = (*MongoStore)(nil)

// NewMongoStore connects to uri and verifies the connection.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoStore{
		client: client,
		users:  client.Database(database).Collection(UsersCollection),
	}, nil
}

// GetProfile returns the user document for id or ErrNotFound.
func (s *MongoStore) GetProfile(ctx context.Context, id string) (Profile, error) {
	var p Profile
	err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Profile{}, ErrNotFound
	}
	if err != nil {
		return Profile{}, fmt.Errorf("load profile %s: %w", id, err)
	}
	return p, nil
}

// Close disconnects the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
