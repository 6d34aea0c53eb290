package service

import (
	"context"
	"youclone/internal/domain"
	"youclone/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserProfile is a user together with the channels it owns.
type UserProfile struct {
	User     domain.User
	Channels []domain.Channel
}

// ChannelDetails is a channel with its owner and, on single-channel reads, its videos.
type ChannelDetails struct {
	Channel domain.Channel
	Owner   *domain.User // nil when the owner no longer resolves
	Videos  []VideoDetails
}

// VideoDetails is a video with its uploader and channel resolved.
type VideoDetails struct {
	Video    domain.Video
	Uploader *domain.User
	Channel  *domain.Channel
	// PlaybackURL is a short-lived GET URL for media held in our object
	// storage. Only GetVideo fills it.
	PlaybackURL string
	// CommentIDs lists the video's comments in posting order. Only GetVideo
	// fills it.
	CommentIDs []primitive.ObjectID
}

// CommentDetails is a comment with its author resolved.
type CommentDetails struct {
	Comment domain.Comment
	Author  *domain.User
}

// expander resolves weak references (owner, uploader, channel, authorId)
// into documents with one batched lookup per collection.
type expander struct {
	userRepo    repository.UserRepository
	channelRepo repository.ChannelRepository
}

func (e expander) users(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*domain.User, error) {
	users, err := e.userRepo.GetByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*domain.User, len(users))
	for i := range users {
		users[i].PasswordHash = ""
		byID[users[i].ID] = &users[i]
	}
	return byID, nil
}

func (e expander) channels(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*domain.Channel, error) {
	channels, err := e.channelRepo.GetByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*domain.Channel, len(channels))
	for i := range channels {
		byID[channels[i].ID] = &channels[i]
	}
	return byID, nil
}

// videoDetails expands uploader and channel of every video, keeping order.
func (e expander) videoDetails(ctx context.Context, videos []domain.Video) ([]VideoDetails, error) {
	uploaderIDs := make([]primitive.ObjectID, 0, len(videos))
	channelIDs := make([]primitive.ObjectID, 0, len(videos))
	for _, v := range videos {
		uploaderIDs = append(uploaderIDs, v.UploaderID)
		if v.ChannelID != nil {
			channelIDs = append(channelIDs, *v.ChannelID)
		}
	}

	uploaders, err := e.users(ctx, uploaderIDs)
	if err != nil {
		return nil, err
	}
	channels, err := e.channels(ctx, channelIDs)
	if err != nil {
		return nil, err
	}

	details := make([]VideoDetails, len(videos))
	for i, v := range videos {
		details[i] = VideoDetails{Video: v, Uploader: uploaders[v.UploaderID]}
		if v.ChannelID != nil {
			details[i].Channel = channels[*v.ChannelID]
		}
	}
	return details, nil
}

// channelDetails expands the owner of every channel, keeping order.
func (e expander) channelDetails(ctx context.Context, channels []domain.Channel) ([]ChannelDetails, error) {
	ownerIDs := make([]primitive.ObjectID, len(channels))
	for i, c := range channels {
		ownerIDs[i] = c.OwnerID
	}
	owners, err := e.users(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}

	details := make([]ChannelDetails, len(channels))
	for i, c := range channels {
		details[i] = ChannelDetails{Channel: c, Owner: owners[c.OwnerID]}
	}
	return details, nil
}

// commentDetails expands the author of every comment, keeping order.
func (e expander) commentDetails(ctx context.Context, comments []domain.Comment) ([]CommentDetails, error) {
	authorIDs := make([]primitive.ObjectID, len(comments))
	for i, c := range comments {
		authorIDs[i] = c.AuthorID
	}
	authors, err := e.users(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	details := make([]CommentDetails, len(comments))
	for i, c := range comments {
		details[i] = CommentDetails{Comment: c, Author: authors[c.AuthorID]}
	}
	return details, nil
}

func uniqueIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
