package mongo

import (
	"context"
	"io"
	"testing"
	"time"
	"youclone/internal/domain"
	"youclone/internal/repository"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newMockT(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func videoDoc(id primitive.ObjectID, title string, likes int64) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "videoId", Value: "vid-" + id.Hex()[18:]},
		{Key: "title", Value: title},
		{Key: "category", Value: "Music"},
		{Key: "uploader", Value: primitive.NewObjectID()},
		{Key: "likeCount", Value: likes},
		{Key: "uploadedAt", Value: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)},
	}
}

func TestChannelRepository_Create(t *testing.T) {
	mt := newMockT(t)
	ctx := context.Background()

	mt.Run("inserts the channel", func(mt *mtest.T) {
		repo := NewMongoChannelRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		owner := primitive.NewObjectID()
		channel := &domain.Channel{ChannelName: "Main", OwnerID: owner}
		id, err := repo.Create(ctx, channel)
		require.NoError(mt, err)
		assert.Equal(mt, channel.ID, id)
		assert.False(mt, channel.CreatedAt.IsZero())

		cmd := mt.GetStartedEvent().Command
		assert.Equal(mt, channelCollectionName, cmd.Lookup("insert").StringValue())
		inserted := cmd.Lookup("documents").Array().Index(0).Value().Document()
		assert.Equal(mt, "Main", inserted.Lookup("channelName").StringValue())
		assert.Equal(mt, owner, inserted.Lookup("owner").ObjectID())
	})

	mt.Run("duplicate key maps to ErrDuplicate", func(mt *mtest.T) {
		repo := NewMongoChannelRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: test.channels index: owner_channel_name_unique",
		}))

		_, err := repo.Create(ctx, &domain.Channel{ChannelName: "Main", OwnerID: primitive.NewObjectID()})
		assert.ErrorIs(mt, err, repository.ErrDuplicate)
	})

	mt.Run("other write errors pass through", func(mt *mtest.T) {
		repo := NewMongoChannelRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 121, Message: "Document failed validation"}))

		_, err := repo.Create(ctx, &domain.Channel{ChannelName: "Main", OwnerID: primitive.NewObjectID()})
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, repository.ErrDuplicate)
	})

	mt.Run("missing owner never reaches the server", func(mt *mtest.T) {
		repo := NewMongoChannelRepository(mt.DB)

		_, err := repo.Create(ctx, &domain.Channel{ChannelName: "Main"})
		assert.Error(mt, err)
		assert.Nil(mt, mt.GetStartedEvent())
	})
}

func TestVideoRepository_List(t *testing.T) {
	mt := newMockT(t)
	ctx := context.Background()

	mt.Run("title and category filters", func(mt *mtest.T) {
		repo := NewMongoVideoRepository(mt.DB)
		first, second := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test."+videoCollectionName, mtest.FirstBatch,
			videoDoc(first, "Concert (Live)", 3),
			videoDoc(second, "Studio (live) take", 0),
		))

		videos, err := repo.List(ctx, domain.VideoFilter{TitleQuery: "(live", Category: "Music"})
		require.NoError(mt, err)
		require.Len(mt, videos, 2)
		assert.Equal(mt, first, videos[0].ID)
		assert.Equal(mt, "Concert (Live)", videos[0].Title)
		assert.Equal(mt, int64(3), videos[0].LikeCount)
		assert.Equal(mt, second, videos[1].ID)

		cmd := mt.GetStartedEvent().Command
		assert.Equal(mt, videoCollectionName, cmd.Lookup("find").StringValue())

		// The query text is matched literally, case-insensitively
		pattern, opts := cmd.Lookup("filter", "title").Regex()
		assert.Equal(mt, `\(live`, pattern)
		assert.Equal(mt, "i", opts)
		assert.Equal(mt, "Music", cmd.Lookup("filter", "category").StringValue())

		sortKeys, err := cmd.Lookup("sort").Document().Elements()
		require.NoError(mt, err)
		require.Len(mt, sortKeys, 2)
		assert.Equal(mt, "uploadedAt", sortKeys[0].Key())
		assert.Equal(mt, int64(-1), sortKeys[0].Value().AsInt64())
		assert.Equal(mt, "_id", sortKeys[1].Key())
		assert.Equal(mt, int64(-1), sortKeys[1].Value().AsInt64())
	})

	mt.Run("empty filter matches everything", func(mt *mtest.T) {
		repo := NewMongoVideoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test."+videoCollectionName, mtest.FirstBatch))

		videos, err := repo.List(ctx, domain.VideoFilter{})
		require.NoError(mt, err)
		assert.NotNil(mt, videos)
		assert.Empty(mt, videos)

		filter := mt.GetStartedEvent().Command.Lookup("filter").Document()
		elems, err := filter.Elements()
		require.NoError(mt, err)
		assert.Empty(mt, elems)
	})
}

func TestVideoRepository_Increment(t *testing.T) {
	mt := newMockT(t)
	ctx := context.Background()

	mt.Run("bumps the counter and returns the new document", func(mt *mtest.T) {
		repo := NewMongoVideoRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: videoDoc(id, "Clip", 8)}))

		video, err := repo.Increment(ctx, id, domain.CounterLikes)
		require.NoError(mt, err)
		assert.Equal(mt, id, video.ID)
		assert.Equal(mt, int64(8), video.LikeCount)

		cmd := mt.GetStartedEvent().Command
		assert.Equal(mt, videoCollectionName, cmd.Lookup("findAndModify").StringValue())
		assert.Equal(mt, id, cmd.Lookup("query", "_id").ObjectID())
		assert.Equal(mt, int64(1), cmd.Lookup("update", "$inc", "likeCount").AsInt64())
		assert.True(mt, cmd.Lookup("new").Boolean())
	})

	mt.Run("missing video", func(mt *mtest.T) {
		repo := NewMongoVideoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		_, err := repo.Increment(ctx, primitive.NewObjectID(), domain.CounterViews)
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("unknown counter", func(mt *mtest.T) {
		repo := NewMongoVideoRepository(mt.DB)

		_, err := repo.Increment(ctx, primitive.NewObjectID(), domain.VideoCounter("subscriberCount"))
		assert.Error(mt, err)
		assert.Nil(mt, mt.GetStartedEvent())
	})
}

func TestVideoRepository_UpdateChannel(t *testing.T) {
	mt := newMockT(t)
	ctx := context.Background()

	mt.Run("clearing unsets the channel", func(mt *mtest.T) {
		repo := NewMongoVideoRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: videoDoc(id, "Clip", 0)}))

		video, err := repo.Update(ctx, id, domain.VideoUpdate{ClearChannel: true})
		require.NoError(mt, err)
		assert.Nil(mt, video.ChannelID)

		update := mt.GetStartedEvent().Command.Lookup("update")
		_, err = update.Document().LookupErr("$unset", "channel")
		assert.NoError(mt, err)
		_, err = update.Document().LookupErr("$set", "channel")
		assert.Error(mt, err)
	})

	mt.Run("setting wins over clearing", func(mt *mtest.T) {
		repo := NewMongoVideoRepository(mt.DB)
		id, channelID := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: videoDoc(id, "Clip", 0)}))

		_, err := repo.Update(ctx, id, domain.VideoUpdate{ChannelID: &channelID, ClearChannel: true})
		require.NoError(mt, err)

		update := mt.GetStartedEvent().Command.Lookup("update").Document()
		assert.Equal(mt, channelID, update.Lookup("$set", "channel").ObjectID())
		_, err = update.LookupErr("$unset")
		assert.Error(mt, err)
	})
}

func TestCommentRepository_DeleteByVideo(t *testing.T) {
	mt := newMockT(t)
	ctx := context.Background()

	mt.Run("returns the deleted count", func(mt *mtest.T) {
		repo := NewMongoCommentRepository(mt.DB)
		videoID := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 3}))

		n, err := repo.DeleteByVideo(ctx, videoID)
		require.NoError(mt, err)
		assert.Equal(mt, int64(3), n)

		cmd := mt.GetStartedEvent().Command
		assert.Equal(mt, commentCollectionName, cmd.Lookup("delete").StringValue())
		del := cmd.Lookup("deletes").Array().Index(0).Value().Document()
		assert.Equal(mt, videoID, del.Lookup("q", "videoId").ObjectID())
		// DeleteMany sends limit 0
		assert.Equal(mt, int64(0), del.Lookup("limit").AsInt64())
	})

	mt.Run("server error", func(mt *mtest.T) {
		repo := NewMongoCommentRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized on test to execute command",
		}))

		n, err := repo.DeleteByVideo(ctx, primitive.NewObjectID())
		assert.Error(mt, err)
		assert.Zero(mt, n)
	})
}

func TestUserRepository_GetByLogin(t *testing.T) {
	mt := newMockT(t)
	ctx := context.Background()

	userDoc := func(id primitive.ObjectID) bson.D {
		return bson.D{
			{Key: "_id", Value: id},
			{Key: "username", Value: "alice"},
			{Key: "email", Value: "alice@example.com"},
			{Key: "passwordHash", Value: "hash"},
		}
	}

	mt.Run("email login matches only the email", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test."+userCollectionName, mtest.FirstBatch, userDoc(id)))

		user, err := repo.GetByLogin(ctx, "alice@example.com")
		require.NoError(mt, err)
		assert.Equal(mt, id, user.ID)

		filter := mt.GetStartedEvent().Command.Lookup("filter").Document()
		assert.Equal(mt, "alice@example.com", filter.Lookup("email").StringValue())
		_, err = filter.LookupErr("username")
		assert.Error(mt, err)
		_, err = filter.LookupErr("$or")
		assert.Error(mt, err)
	})

	mt.Run("plain login matches only the username", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test."+userCollectionName, mtest.FirstBatch, userDoc(primitive.NewObjectID())))

		_, err := repo.GetByLogin(ctx, "alice")
		require.NoError(mt, err)

		filter := mt.GetStartedEvent().Command.Lookup("filter").Document()
		assert.Equal(mt, "alice", filter.Lookup("username").StringValue())
		_, err = filter.LookupErr("email")
		assert.Error(mt, err)
	})

	mt.Run("no match", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test."+userCollectionName, mtest.FirstBatch))

		_, err := repo.GetByLogin(ctx, "nobody")
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})
}

func TestEnsureIndexes(t *testing.T) {
	mt := newMockT(t)
	ctx := context.Background()

	mt.Run("creates every collection's indexes in order", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
		)

		require.NoError(mt, EnsureIndexes(ctx, mt.DB, quietLogger()))

		for _, name := range []string{userCollectionName, channelCollectionName, videoCollectionName, commentCollectionName} {
			evt := mt.GetStartedEvent()
			require.NotNil(mt, evt)
			assert.Equal(mt, "createIndexes", evt.CommandName)
			assert.Equal(mt, name, evt.Command.Lookup("createIndexes").StringValue())
		}
	})

	mt.Run("stops at the first failure", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateCommandErrorResponse(mtest.CommandError{
				Code:    86,
				Name:    "IndexKeySpecsConflict",
				Message: "An existing index has the same name as the requested index",
			}),
		)

		err := EnsureIndexes(ctx, mt.DB, quietLogger())
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), channelCollectionName)

		// users, then the failing channels call; videos and comments are never attempted
		require.NotNil(mt, mt.GetStartedEvent())
		require.NotNil(mt, mt.GetStartedEvent())
		assert.Nil(mt, mt.GetStartedEvent())
	})
}
