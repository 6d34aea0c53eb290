package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"youclone/internal/domain"
	"youclone/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentService manages comments. Only a comment's author may change it.
type CommentService interface {
	ListComments(ctx context.Context, videoID primitive.ObjectID) ([]CommentDetails, error)
	CreateComment(ctx context.Context, authorID, videoID primitive.ObjectID, text string) (*CommentDetails, error)
	UpdateComment(ctx context.Context, callerID, commentID primitive.ObjectID, text string) (*CommentDetails, error)
	DeleteComment(ctx context.Context, callerID, commentID primitive.ObjectID) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
	expand      expander
}

// NewCommentService creates a new instance of commentService.
func NewCommentService(
	commentRepo repository.CommentRepository,
	videoRepo repository.VideoRepository,
	userRepo repository.UserRepository,
	channelRepo repository.ChannelRepository,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
		expand:      expander{userRepo: userRepo, channelRepo: channelRepo},
	}
}

// ListComments returns the comments of a video, newest first. An unknown
// video simply has no comments.
func (s *commentService) ListComments(ctx context.Context, videoID primitive.ObjectID) ([]CommentDetails, error) {
	comments, err := s.commentRepo.ListByVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	return s.expand.commentDetails(ctx, comments)
}

// CreateComment posts text under a video on behalf of authorID.
func (s *commentService) CreateComment(ctx context.Context, authorID, videoID primitive.ObjectID, text string) (*CommentDetails, error) {
	if authorID == primitive.NilObjectID {
		return nil, ErrUnauthorized
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: text required", ErrValidation)
	}

	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	// Video.comments is derived from comments.videoId, nothing else to link.
	comment := &domain.Comment{
		Text:     text,
		AuthorID: authorID,
		VideoID:  videoID,
	}
	if _, err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.withAuthor(ctx, comment)
}

// UpdateComment replaces the text of the caller's comment. Blank text leaves
// the comment unchanged.
func (s *commentService) UpdateComment(ctx context.Context, callerID, commentID primitive.ObjectID, text string) (*CommentDetails, error) {
	comment, err := s.loadOwnComment(ctx, callerID, commentID)
	if err != nil {
		return nil, err
	}

	if text = strings.TrimSpace(text); text != "" {
		if err := s.commentRepo.UpdateText(ctx, commentID, text); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrCommentNotFound
			}
			return nil, err
		}
		if comment, err = s.commentRepo.GetByID(ctx, commentID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrCommentNotFound
			}
			return nil, err
		}
	}
	return s.withAuthor(ctx, comment)
}

// DeleteComment removes the caller's comment.
func (s *commentService) DeleteComment(ctx context.Context, callerID, commentID primitive.ObjectID) error {
	if _, err := s.loadOwnComment(ctx, callerID, commentID); err != nil {
		return err
	}
	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	return nil
}

func (s *commentService) loadOwnComment(ctx context.Context, callerID, commentID primitive.ObjectID) (*domain.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if !comment.IsAuthoredBy(callerID) {
		return nil, ErrForbidden
	}
	return comment, nil
}

func (s *commentService) withAuthor(ctx context.Context, comment *domain.Comment) (*CommentDetails, error) {
	details, err := s.expand.commentDetails(ctx, []domain.Comment{*comment})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}
