package mongo

import (
	"context"
	"errors"
	"time"
	"youclone/internal/domain"
	"youclone/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoChannelRepository implements repository.ChannelRepository
type mongoChannelRepository struct {
	collection *mongo.Collection
}

// NewMongoChannelRepository creates a new Channel repository backed by MongoDB.
func NewMongoChannelRepository(db *mongo.Database) repository.ChannelRepository {
	return &mongoChannelRepository{
		collection: db.Collection(channelCollectionName),
	}
}

// Create inserts a new channel. The unique (owner, channelName) index turns a
// concurrent duplicate into repository.ErrDuplicate.
func (r *mongoChannelRepository) Create(ctx context.Context, channel *domain.Channel) (primitive.ObjectID, error) {
	if channel.ChannelName == "" || channel.OwnerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("channel name and owner are required")
	}

	channel.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	channel.CreatedAt = now
	channel.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, channel)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a channel by its ID.
func (r *mongoChannelRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Channel, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetByOwnerAndName retrieves the owner's channel called channelName.
func (r *mongoChannelRepository) GetByOwnerAndName(ctx context.Context, ownerID primitive.ObjectID, channelName string) (*domain.Channel, error) {
	return r.findOne(ctx, bson.M{"owner": ownerID, "channelName": channelName})
}

// GetByIDs retrieves the channels whose id is in ids.
func (r *mongoChannelRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Channel, error) {
	if len(ids) == 0 {
		return []domain.Channel{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find())
}

// List retrieves every channel, newest first.
func (r *mongoChannelRepository) List(ctx context.Context) ([]domain.Channel, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	return r.find(ctx, bson.M{}, findOptions)
}

// ListByOwner retrieves the channels owned by ownerID in creation order.
func (r *mongoChannelRepository) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Channel, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	return r.find(ctx, bson.M{"owner": ownerID}, findOptions)
}

func (r *mongoChannelRepository) findOne(ctx context.Context, filter bson.M) (*domain.Channel, error) {
	var channel domain.Channel
	err := r.collection.FindOne(ctx, filter).Decode(&channel)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &channel, nil
}

func (r *mongoChannelRepository) find(ctx context.Context, filter bson.M, findOptions *options.FindOptions) ([]domain.Channel, error) {
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	channels := []domain.Channel{}
	if err = cursor.All(ctx, &channels); err != nil {
		return nil, err
	}
	return channels, nil
}

// EnsureChannelIndexes creates necessary indexes for the channels collection.
func EnsureChannelIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner", Value: 1}, {Key: "channelName", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("owner_channel_name_unique"),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
