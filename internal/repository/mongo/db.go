package mongo

import (
	"context"
	"fmt"
	"time"
	"youclone/internal/repository"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// Collection names
const (
	userCollectionName    = "users"
	channelCollectionName = "channels"
	videoCollectionName   = "videos"
	commentCollectionName = "comments"
)

// ConnectDB establishes a connection to MongoDB using the provided URI.
// It returns the mongo.Client which can be used to access databases and collections.
func ConnectDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// Ping the primary node; a successful Connect does not mean the server answers.
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, err
	}

	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// NewRepositories wires every MongoDB repository against db.
func NewRepositories(db *mongo.Database) repository.Repositories {
	return repository.Repositories{
		Users:    NewMongoUserRepository(db),
		Channels: NewMongoChannelRepository(db),
		Videos:   NewMongoVideoRepository(db),
		Comments: NewMongoCommentRepository(db),
	}
}

// EnsureIndexes creates the indexes of every collection, stopping at the first failure.
func EnsureIndexes(ctx context.Context, db *mongo.Database, log logrus.FieldLogger) error {
	ensure := []struct {
		collection string
		fn         func(context.Context, *mongo.Collection) error
	}{
		{userCollectionName, EnsureUserIndexes},
		{channelCollectionName, EnsureChannelIndexes},
		{videoCollectionName, EnsureVideoIndexes},
		{commentCollectionName, EnsureCommentIndexes},
	}
	for _, e := range ensure {
		if err := e.fn(ctx, db.Collection(e.collection)); err != nil {
			log.WithError(err).WithField("collection", e.collection).Error("Failed to create indexes")
			return fmt.Errorf("create %s indexes: %w", e.collection, err)
		}
	}
	log.Info("Index creation process completed")
	return nil
}

// DropAll removes every collection owned by the application. Used by the seeder.
func DropAll(ctx context.Context, db *mongo.Database) error {
	for _, name := range []string{userCollectionName, channelCollectionName, videoCollectionName, commentCollectionName} {
		if err := db.Collection(name).Drop(ctx); err != nil {
			return err
		}
	}
	return nil
}
