package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"
	"youclone/internal/domain"
	"youclone/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoVideoRepository implements repository.VideoRepository
type mongoVideoRepository struct {
	collection *mongo.Collection
}

// NewMongoVideoRepository creates a new Video repository backed by MongoDB.
func NewMongoVideoRepository(db *mongo.Database) repository.VideoRepository {
	return &mongoVideoRepository{
		collection: db.Collection(videoCollectionName),
	}
}

// Create inserts a new video. A clash on the short videoId surfaces as repository.ErrDuplicate.
func (r *mongoVideoRepository) Create(ctx context.Context, video *domain.Video) (primitive.ObjectID, error) {
	if video.VideoID == "" || video.Title == "" || video.UploaderID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("video id, title and uploader are required")
	}

	video.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	if video.UploadedAt.IsZero() {
		video.UploadedAt = now
	}
	video.CreatedAt = now
	video.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, video)
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

// GetByID retrieves a video by its ID.
func (r *mongoVideoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Video, error) {
	var video domain.Video
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&video)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &video, nil
}

// List retrieves videos matching filter, newest upload first.
func (r *mongoVideoRepository) List(ctx context.Context, filter domain.VideoFilter) ([]domain.Video, error) {
	query := bson.M{}
	if filter.TitleQuery != "" {
		query["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.TitleQuery), Options: "i"}
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "uploadedAt", Value: -1}, {Key: "_id", Value: -1}})
	return r.find(ctx, query, findOptions)
}

// ListByChannel retrieves the videos of a channel in upload order.
func (r *mongoVideoRepository) ListByChannel(ctx context.Context, channelID primitive.ObjectID) ([]domain.Video, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "uploadedAt", Value: 1}, {Key: "_id", Value: 1}})
	return r.find(ctx, bson.M{"channel": channelID}, findOptions)
}

// Update applies the non-nil fields of update and returns the stored result.
func (r *mongoVideoRepository) Update(ctx context.Context, id primitive.ObjectID, update domain.VideoUpdate) (*domain.Video, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.ThumbnailURL != nil {
		set["thumbnailUrl"] = *update.ThumbnailURL
	}
	if update.MediaURL != nil {
		set["mediaUrl"] = *update.MediaURL
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	doc := bson.M{"$set": set}
	if update.ChannelID != nil {
		set["channel"] = *update.ChannelID
	} else if update.ClearChannel {
		doc["$unset"] = bson.M{"channel": ""}
	}

	return r.findOneAndUpdate(ctx, id, doc)
}

// Increment atomically bumps one counter by 1 using $inc.
func (r *mongoVideoRepository) Increment(ctx context.Context, id primitive.ObjectID, counter domain.VideoCounter) (*domain.Video, error) {
	switch counter {
	case domain.CounterViews, domain.CounterLikes, domain.CounterDislikes:
	default:
		return nil, fmt.Errorf("unknown video counter %q", counter)
	}
	return r.findOneAndUpdate(ctx, id, bson.M{"$inc": bson.M{string(counter): 1}})
}

// Delete removes a video by ID.
func (r *mongoVideoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoVideoRepository) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*domain.Video, error) {
	var video domain.Video
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&video)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &video, nil
}

func (r *mongoVideoRepository) find(ctx context.Context, filter bson.M, findOptions *options.FindOptions) ([]domain.Video, error) {
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	videos := []domain.Video{}
	if err = cursor.All(ctx, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// EnsureVideoIndexes creates necessary indexes for the videos collection.
func EnsureVideoIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "videoId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			// Channel page lists a channel's videos
			Keys:    bson.D{{Key: "channel", Value: 1}, {Key: "uploadedAt", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "uploader", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
