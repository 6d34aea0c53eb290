package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
	"youclone/internal/domain"
	"youclone/internal/repository"
	"youclone/internal/repository/memory"

	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeStorage struct {
	mu        sync.Mutex
	deleted   []string
	deleteErr error
	presigned []string
}

func (f *fakeStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, _ string, _ time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.presigned = append(f.presigned, objectKey)
	return "https://storage.test/" + objectKey + "?signature=x", nil
}

func (f *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://storage.test/" + objectKey, nil
}

func (f *fakeStorage) DeleteObject(_ context.Context, objectKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, objectKey)
	return f.deleteErr
}

type testEnv struct {
	repos    repository.Repositories
	storage  *fakeStorage
	logHook  *logrustest.Hook
	auth     AuthService
	users    UserService
	channels ChannelService
	videos   VideoService
	comments CommentService
	uploads  UploadService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repos := memory.NewRepositories()
	store := &fakeStorage{}
	log, hook := logrustest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	return &testEnv{
		repos:    repos,
		storage:  store,
		logHook:  hook,
		auth:     NewAuthService(repos.Users, "test-secret", time.Hour),
		users:    NewUserService(repos.Users, repos.Channels),
		channels: NewChannelService(repos.Channels, repos.Videos, repos.Users),
		videos:   NewVideoService(repos.Videos, repos.Channels, repos.Comments, repos.Users, store, log),
		comments: NewCommentService(repos.Comments, repos.Videos, repos.Users, repos.Channels),
		uploads:  NewUploadService(store, log),
	}
}

func (e *testEnv) register(t *testing.T, username string) *domain.User {
	t.Helper()
	user, err := e.auth.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) video(t *testing.T, uploader primitive.ObjectID, title, category string, channelID *primitive.ObjectID) *domain.Video {
	t.Helper()
	video, err := e.videos.CreateVideo(context.Background(), CreateVideoInput{
		UploaderID: uploader,
		Title:      title,
		MediaURL:   "https://cdn.example.com/" + title + ".mp4",
		Category:   category,
		ChannelID:  channelID,
	})
	require.NoError(t, err)
	return video
}

// --- Auth ---

func TestAuthService_RegisterLoginVerify(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	user, err := env.auth.Register(ctx, RegisterInput{Username: "alice", Email: "Alice@Example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Empty(t, user.PasswordHash)

	_, err = env.auth.Register(ctx, RegisterInput{Username: "alice", Email: "other@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	for _, login := range []string{"alice", "alice@example.com", "ALICE@example.com"} {
		token, loggedIn, err := env.auth.Login(ctx, login, "secret")
		require.NoError(t, err, login)
		assert.Equal(t, user.ID, loggedIn.ID)
		assert.Empty(t, loggedIn.PasswordHash)

		identity, err := env.auth.VerifyToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, identity.UserID)
		assert.Equal(t, "alice", identity.Username)
	}

	_, _, err = env.auth.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
	_, _, err = env.auth.Login(ctx, "nobody", "secret")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.auth.Register(context.Background(), RegisterInput{Username: " ", Email: "a@b.c", Password: "x"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAuthService_LoginByEmailIgnoresUsernames(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.auth.Register(ctx, RegisterInput{Username: "alice@example.com", Email: "squatter@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrValidation)

	// A username shaped like an email, stored before registration rejected it
	_, err = env.repos.Users.Create(ctx, &domain.User{Username: "alice@example.com", Email: "squatter@example.com", PasswordHash: "x"})
	require.NoError(t, err)
	alice, err := env.auth.Register(ctx, RegisterInput{Username: "alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	for i := 0; i < 8; i++ {
		_, user, err := env.auth.Login(ctx, "alice@example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, user.ID)
	}
}

func TestAuthService_VerifyToken_Rejects(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "alice")
	token, _, err := env.auth.Login(context.Background(), "alice", "password123")
	require.NoError(t, err)

	other := NewAuthService(env.repos.Users, "another-secret", time.Hour)
	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, ErrUnauthorized)

	past := time.Now().Add(-time.Hour)
	stale, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwtClaims{
		UserID: user.ID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(past),
		},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = env.auth.VerifyToken(stale)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = env.auth.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

// --- Channels ---

func TestChannelService_CreateLinksOwner(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "alice")

	details, profile, err := env.channels.CreateChannel(ctx, CreateChannelInput{
		OwnerID:     alice.ID,
		ChannelName: "  Alice Cooks ",
		Description: "recipes",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Cooks", details.Channel.ChannelName)
	assert.Equal(t, alice.ID, details.Channel.OwnerID)
	require.NotNil(t, details.Owner)
	assert.Equal(t, "alice", details.Owner.Username)
	assert.Empty(t, details.Owner.PasswordHash)
	assert.Empty(t, details.Videos)

	require.Len(t, profile.Channels, 1)
	assert.Equal(t, details.Channel.ID, profile.Channels[0].ID)

	fetched, err := env.users.GetProfile(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Channels, 1)
	assert.Equal(t, details.Channel.ID, fetched.Channels[0].ID)
}

func TestChannelService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "alice")

	_, _, err := env.channels.CreateChannel(ctx, CreateChannelInput{OwnerID: alice.ID, ChannelName: "   "})
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = env.channels.CreateChannel(ctx, CreateChannelInput{ChannelName: "x"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, _, err = env.channels.CreateChannel(ctx, CreateChannelInput{OwnerID: alice.ID, ChannelName: "Main"})
	require.NoError(t, err)
	_, _, err = env.channels.CreateChannel(ctx, CreateChannelInput{OwnerID: alice.ID, ChannelName: "Main"})
	assert.ErrorIs(t, err, ErrChannelExists)

	profile, err := env.users.GetProfile(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, profile.Channels, 1)
}

func TestChannelService_GetChannelListsVideos(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "alice")

	details, _, err := env.channels.CreateChannel(ctx, CreateChannelInput{OwnerID: alice.ID, ChannelName: "Main"})
	require.NoError(t, err)
	channelID := details.Channel.ID

	env.video(t, alice.ID, "T", "", &channelID)
	env.video(t, alice.ID, "Loose", "", nil)

	got, err := env.channels.GetChannel(ctx, channelID)
	require.NoError(t, err)
	require.Len(t, got.Videos, 1)
	assert.Equal(t, "T", got.Videos[0].Video.Title)
	require.NotNil(t, got.Videos[0].Uploader)
	assert.Equal(t, "alice", got.Videos[0].Uploader.Username)

	_, err = env.channels.GetChannel(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrChannelNotFound)

	all, err := env.channels.ListChannels(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NotNil(t, all[0].Owner)
	assert.Equal(t, alice.ID, all[0].Owner.ID)
}

func TestUserService_GetProfileNotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.users.GetProfile(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// --- Videos ---

func TestVideoService_CreateDefaultsAndValidation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "alice")

	video := env.video(t, alice.ID, "Hello", "", nil)
	assert.Equal(t, domain.DefaultCategory, video.Category)
	assert.Len(t, video.VideoID, videoIDLength)
	assert.Zero(t, video.ViewCount)
	assert.False(t, video.UploadedAt.IsZero())

	_, err := env.videos.CreateVideo(ctx, CreateVideoInput{UploaderID: alice.ID, Title: "no media"})
	assert.ErrorIs(t, err, ErrValidation)

	missing := primitive.NewObjectID()
	_, err = env.videos.CreateVideo(ctx, CreateVideoInput{UploaderID: alice.ID, Title: "t", MediaURL: "u", ChannelID: &missing})
	assert.ErrorIs(t, err, ErrChannelNotFound)
}

func TestVideoService_CreateInForeignChannel(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	details, _, err := env.channels.CreateChannel(ctx, CreateChannelInput{OwnerID: alice.ID, ChannelName: "Main"})
	require.NoError(t, err)
	channelID := details.Channel.ID

	_, err = env.videos.CreateVideo(ctx, CreateVideoInput{UploaderID: bob.ID, Title: "t", MediaURL: "u", ChannelID: &channelID})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestVideoService_UpdateVideo(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	video := env.video(t, alice.ID, "Old", "General", nil)

	newTitle := "New"
	updated, err := env.videos.UpdateVideo(ctx, alice.ID, video.ID, domain.VideoUpdate{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, video.MediaURL, updated.MediaURL)
	assert.Equal(t, video.VideoID, updated.VideoID)

	_, err = env.videos.UpdateVideo(ctx, bob.ID, video.ID, domain.VideoUpdate{Title: &newTitle})
	assert.ErrorIs(t, err, ErrForbidden)

	blank := " "
	_, err = env.videos.UpdateVideo(ctx, alice.ID, video.ID, domain.VideoUpdate{MediaURL: &blank})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.videos.UpdateVideo(ctx, alice.ID, primitive.NewObjectID(), domain.VideoUpdate{Title: &newTitle})
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestVideoService_DeleteCascadesComments(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	mediaKey := "video/" + alice.ID.Hex() + "/doomed.mp4"
	video, err := env.videos.CreateVideo(ctx, CreateVideoInput{
		UploaderID: alice.ID,
		Title:      "Doomed",
		MediaURL:   "https://cdn.example.com/doomed.mp4",
		MediaKey:   mediaKey,
	})
	require.NoError(t, err)
	for _, text := range []string{"one", "two", "three"} {
		_, err := env.comments.CreateComment(ctx, bob.ID, video.ID, text)
		require.NoError(t, err)
	}

	assert.ErrorIs(t, env.videos.DeleteVideo(ctx, bob.ID, video.ID), ErrForbidden)

	require.NoError(t, env.videos.DeleteVideo(ctx, alice.ID, video.ID))

	_, err = env.videos.GetVideo(ctx, video.ID)
	assert.ErrorIs(t, err, ErrVideoNotFound)

	left, err := env.repos.Comments.ListByVideo(ctx, video.ID)
	require.NoError(t, err)
	assert.Empty(t, left)
	assert.Equal(t, []string{mediaKey}, env.storage.deleted)
}

func TestVideoService_DeleteIgnoresStorageFailure(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.storage.deleteErr = errors.New("bucket unreachable")
	alice := env.register(t, "alice")

	video, err := env.videos.CreateVideo(ctx, CreateVideoInput{UploaderID: alice.ID, Title: "t", MediaURL: "u", MediaKey: "video/" + alice.ID.Hex() + "/k.mp4"})
	require.NoError(t, err)

	require.NoError(t, env.videos.DeleteVideo(ctx, alice.ID, video.ID))

	var warned bool
	for _, entry := range env.logHook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestVideoService_MediaKeyMustBeOwnUpload(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	mallory := env.register(t, "mallory")

	ticket, err := env.uploads.PresignUpload(ctx, alice.ID, PresignUploadInput{FileName: "clip.mp4", ContentType: "video/mp4"})
	require.NoError(t, err)
	_, err = env.videos.CreateVideo(ctx, CreateVideoInput{UploaderID: alice.ID, Title: "mine", MediaURL: "u", MediaKey: ticket.ObjectKey})
	require.NoError(t, err)

	for _, key := range []string{
		ticket.ObjectKey,
		"video/" + mallory.ID.Hex() + "/../" + alice.ID.Hex() + "/x.mp4",
		"video/" + mallory.ID.Hex() + "/",
		"avatar/" + mallory.ID.Hex() + "/x.png",
	} {
		_, err := env.videos.CreateVideo(ctx, CreateVideoInput{UploaderID: mallory.ID, Title: "stolen", MediaURL: "u", MediaKey: key})
		assert.ErrorIs(t, err, ErrForbidden, key)
	}

	own, err := env.videos.CreateVideo(ctx, CreateVideoInput{UploaderID: mallory.ID, Title: "own", MediaURL: "u", MediaKey: "thumbnail/" + mallory.ID.Hex() + "/a.png"})
	require.NoError(t, err)
	require.NoError(t, env.videos.DeleteVideo(ctx, mallory.ID, own.ID))
	assert.Equal(t, []string{"thumbnail/" + mallory.ID.Hex() + "/a.png"}, env.storage.deleted)
}

func TestVideoService_GetVideoPlaybackURL(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "alice")

	mediaKey := "video/" + alice.ID.Hex() + "/k.mp4"
	stored, err := env.videos.CreateVideo(ctx, CreateVideoInput{UploaderID: alice.ID, Title: "stored", MediaURL: "u", MediaKey: mediaKey})
	require.NoError(t, err)
	external := env.video(t, alice.ID, "external", "", nil)

	details, err := env.videos.GetVideo(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://storage.test/"+mediaKey, details.PlaybackURL)
	require.NotNil(t, details.Uploader)
	assert.Equal(t, "alice", details.Uploader.Username)

	details, err = env.videos.GetVideo(ctx, external.ID)
	require.NoError(t, err)
	assert.Empty(t, details.PlaybackURL)
}

func TestVideoService_ListVideosFilters(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "alice")

	env.video(t, alice.ID, "Lo-fi Beats", "Music", nil)
	env.video(t, alice.ID, "Go Concurrency", "Education", nil)
	env.video(t, alice.ID, "Jazz (live)", "Music", nil)

	music, err := env.videos.ListVideos(ctx, "", "Music")
	require.NoError(t, err)
	require.Len(t, music, 2)
	for _, v := range music {
		assert.Equal(t, "Music", v.Video.Category)
		require.NotNil(t, v.Uploader)
	}
	assert.Equal(t, "Jazz (live)", music[0].Video.Title)

	all, err := env.videos.ListVideos(ctx, "", "ALL")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byTitle, err := env.videos.ListVideos(ctx, "BEATS", "")
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	assert.Equal(t, "Lo-fi Beats", byTitle[0].Video.Title)

	// Regex metacharacters are matched literally
	paren, err := env.videos.ListVideos(ctx, "(live", "")
	require.NoError(t, err)
	assert.Len(t, paren, 1)
}

func TestVideoService_ConcurrentLikes(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	video := env.video(t, alice.ID, "Popular", "", nil)

	const n = 40
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.videos.LikeVideo(ctx, video.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := env.videos.GetVideo(ctx, video.ID)
	require.NoError(t, err)
	assert.EqualValues(t, n, got.Video.LikeCount)
	assert.Zero(t, got.Video.DislikeCount)

	viewed, err := env.videos.IncrementView(ctx, video.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, viewed.ViewCount)

	disliked, err := env.videos.DislikeVideo(ctx, video.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, disliked.DislikeCount)

	_, err = env.videos.LikeVideo(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

// --- Comments ---

func TestCommentService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	video := env.video(t, alice.ID, "T", "", nil)

	created, err := env.comments.CreateComment(ctx, bob.ID, video.ID, " nice ")
	require.NoError(t, err)
	assert.Equal(t, "nice", created.Comment.Text)
	require.NotNil(t, created.Author)
	assert.Equal(t, "bob", created.Author.Username)

	listed, err := env.comments.ListComments(ctx, video.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, created.Comment.ID, listed[0].Comment.ID)

	details, err := env.videos.GetVideo(ctx, video.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{created.Comment.ID}, details.CommentIDs)

	updated, err := env.comments.UpdateComment(ctx, bob.ID, created.Comment.ID, "even nicer")
	require.NoError(t, err)
	assert.Equal(t, "even nicer", updated.Comment.Text)
	stored, err := env.repos.Comments.GetByID(ctx, created.Comment.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.UpdatedAt, updated.Comment.UpdatedAt)
	assert.False(t, updated.Comment.UpdatedAt.Before(created.Comment.UpdatedAt))

	// Blank text keeps the current one
	unchanged, err := env.comments.UpdateComment(ctx, bob.ID, created.Comment.ID, "  ")
	require.NoError(t, err)
	assert.Equal(t, "even nicer", unchanged.Comment.Text)

	require.NoError(t, env.comments.DeleteComment(ctx, bob.ID, created.Comment.ID))
	listed, err = env.comments.ListComments(ctx, video.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)

	assert.ErrorIs(t, env.comments.DeleteComment(ctx, bob.ID, created.Comment.ID), ErrCommentNotFound)
}

func TestCommentService_OnlyAuthorMayChange(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	video := env.video(t, alice.ID, "T", "", nil)

	created, err := env.comments.CreateComment(ctx, alice.ID, video.ID, "mine")
	require.NoError(t, err)

	_, err = env.comments.UpdateComment(ctx, bob.ID, created.Comment.ID, "hijacked")
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, env.comments.DeleteComment(ctx, bob.ID, created.Comment.ID), ErrForbidden)

	stored, err := env.repos.Comments.GetByID(ctx, created.Comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", stored.Text)
}

func TestCommentService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	video := env.video(t, alice.ID, "T", "", nil)

	_, err := env.comments.CreateComment(ctx, alice.ID, video.ID, "   ")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.comments.CreateComment(ctx, alice.ID, primitive.NewObjectID(), "hello")
	assert.ErrorIs(t, err, ErrVideoNotFound)

	listed, err := env.comments.ListComments(ctx, primitive.NewObjectID())
	require.NoError(t, err)
	assert.Empty(t, listed)
}

// --- Uploads ---

func TestUploadService_PresignUpload(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	userID := primitive.NewObjectID()

	ticket, err := env.uploads.PresignUpload(ctx, userID, PresignUploadInput{
		FileName:    "Holiday.MP4",
		ContentType: "video/mp4",
		Kind:        UploadKindVideo,
	})
	require.NoError(t, err)
	assert.Regexp(t, `^video/`+userID.Hex()+`/[0-9a-f-]{36}\.mp4$`, ticket.ObjectKey)
	assert.Contains(t, ticket.UploadURL, ticket.ObjectKey)
	assert.True(t, ticket.ExpiresAt.After(time.Now()))

	_, err = env.uploads.PresignUpload(ctx, userID, PresignUploadInput{ContentType: "image/png", Kind: "avatar"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.uploads.PresignUpload(ctx, userID, PresignUploadInput{Kind: UploadKindThumbnail})
	assert.ErrorIs(t, err, ErrValidation)

	disabled := NewUploadService(nil, logrus.New())
	_, err = disabled.PresignUpload(ctx, userID, PresignUploadInput{ContentType: "video/mp4"})
	assert.ErrorIs(t, err, ErrStorageDisabled)
}

func TestObjectKey_ExtensionFallback(t *testing.T) {
	userID := primitive.NewObjectID()
	key := ObjectKey(UploadKindThumbnail, userID, "", "image/png; charset=binary")
	assert.Regexp(t, `^thumbnail/`+userID.Hex()+`/[0-9a-f-]{36}\.png$`, key)
}
