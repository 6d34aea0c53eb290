package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
	"youclone/internal/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UploadKind selects the key prefix of an uploaded object.
type UploadKind string

const (
	UploadKindVideo     UploadKind = "video"
	UploadKindThumbnail UploadKind = "thumbnail"
)

// ErrUploadURL is returned when the storage provider fails to presign.
var ErrUploadURL = errors.New("failed to generate upload URL")

// PresignUploadInput describes the file a client wants to upload.
type PresignUploadInput struct {
	FileName    string
	ContentType string
	Kind        UploadKind
}

// UploadTicket tells the client where to PUT the file and which key to report
// back as the video's mediaKey.
type UploadTicket struct {
	UploadURL string
	ObjectKey string
	ExpiresAt time.Time
}

// UploadService hands out presigned upload URLs.
type UploadService interface {
	PresignUpload(ctx context.Context, userID primitive.ObjectID, in PresignUploadInput) (*UploadTicket, error)
}

type uploadService struct {
	fileStorage storage.FileStorage // Optional
	expiry      time.Duration
	log         logrus.FieldLogger
}

// NewUploadService creates a new instance of uploadService. With a nil
// fileStorage every request fails with ErrStorageDisabled.
func NewUploadService(fileStorage storage.FileStorage, log logrus.FieldLogger) UploadService {
	return &uploadService{
		fileStorage: fileStorage,
		expiry:      storage.DefaultPresignedURLExpiry,
		log:         log.WithField("component", "upload_service"),
	}
}

// PresignUpload generates a unique object key under <kind>/<userId>/ and a
// PUT URL for it.
func (s *uploadService) PresignUpload(ctx context.Context, userID primitive.ObjectID, in PresignUploadInput) (*UploadTicket, error) {
	if s.fileStorage == nil {
		return nil, ErrStorageDisabled
	}
	if userID == primitive.NilObjectID {
		return nil, ErrUnauthorized
	}

	// 1. Validate input
	contentType := strings.TrimSpace(in.ContentType)
	if contentType == "" {
		return nil, fmt.Errorf("%w: contentType required", ErrValidation)
	}
	kind := in.Kind
	if kind == "" {
		kind = UploadKindVideo
	}
	if kind != UploadKindVideo && kind != UploadKindThumbnail {
		return nil, fmt.Errorf("%w: kind must be %q or %q", ErrValidation, UploadKindVideo, UploadKindThumbnail)
	}

	// 2. Generate a unique object key
	objectKey := ObjectKey(kind, userID, in.FileName, contentType)

	// 3. Generate the pre-signed URL
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, s.expiry)
	if err != nil {
		s.log.WithError(err).WithField("object_key", objectKey).Error("Failed to presign upload")
		return nil, ErrUploadURL
	}

	return &UploadTicket{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
		ExpiresAt: time.Now().UTC().Add(s.expiry),
	}, nil
}

// ObjectKey builds "<kind>/<userHex>/<uuid><ext>". The extension comes from
// the file name, falling back to the content subtype.
func ObjectKey(kind UploadKind, userID primitive.ObjectID, fileName, contentType string) string {
	ext := strings.ToLower(path.Ext(path.Base(strings.TrimSpace(fileName))))
	if ext == "" || ext == "." {
		ext = ""
		mediaType, _, _ := strings.Cut(contentType, ";")
		if _, sub, ok := strings.Cut(strings.TrimSpace(mediaType), "/"); ok && sub != "" {
			ext = "." + strings.ToLower(sub)
		}
	}
	return path.Join(string(kind), userID.Hex(), uuid.NewString()+ext)
}

// OwnsObjectKey reports whether key lies under one of userID's upload
// prefixes, as handed out by ObjectKey.
func OwnsObjectKey(userID primitive.ObjectID, key string) bool {
	if userID == primitive.NilObjectID || path.Clean(key) != key {
		return false
	}
	for _, kind := range []UploadKind{UploadKindVideo, UploadKindThumbnail} {
		prefix := string(kind) + "/" + userID.Hex() + "/"
		if strings.HasPrefix(key, prefix) && len(key) > len(prefix) {
			return true
		}
	}
	return false
}
