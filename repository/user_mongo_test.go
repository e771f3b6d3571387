package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"team-portal/models"
)

func TestMongoUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create assigns id", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		u := &models.User{Username: "alice", FullName: "Alice", PasswordHash: "hash", Role: models.RoleMember}
		require.NoError(mt, repo.Create(ctx, u))

		_, err := primitive.ObjectIDFromHex(u.ID)
		assert.NoError(mt, err)
	})

	mt.Run("create duplicate username", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := repo.Create(ctx, &models.User{Username: "alice"})
		assert.ErrorIs(mt, err, ErrDuplicate)
	})

	mt.Run("find by username", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		oid := primitive.NewObjectID()
		seen := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "username", Value: "alice"},
			{Key: "fullName", Value: "Alice"},
			{Key: "password", Value: "hash"},
			{Key: "role", Value: "admin"},
			{Key: "isOnline", Value: true},
			{Key: "lastSeen", Value: seen},
		}))

		u, err := repo.FindByUsername(ctx, "alice")
		require.NoError(mt, err)
		assert.Equal(mt, oid.Hex(), u.ID)
		assert.Equal(mt, "hash", u.PasswordHash)
		assert.True(mt, u.IsAdmin())
		require.NotNil(mt, u.LastSeen)
		assert.True(mt, seen.Equal(*u.LastSeen))
	})

	mt.Run("find missing", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch))

		_, err := repo.FindByID(ctx, primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("malformed id is not found", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)

		_, err := repo.FindByID(ctx, "nope")
		assert.ErrorIs(mt, err, ErrNotFound)
		assert.ErrorIs(mt, repo.Delete(ctx, "nope"), ErrNotFound)
	})

	mt.Run("mark stale offline", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: int32(2)},
			bson.E{Key: "nModified", Value: int32(2)},
		))

		n, err := repo.MarkStaleOffline(ctx, models.RoleMember, time.Now().Add(-10*time.Minute))
		require.NoError(mt, err)
		assert.EqualValues(mt, 2, n)
	})

	mt.Run("set presence on missing user", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: int32(0)},
			bson.E{Key: "nModified", Value: int32(0)},
		))

		err := repo.SetPresence(ctx, primitive.NewObjectID().Hex(), true, time.Now())
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(1)}))

		assert.NoError(mt, repo.Delete(ctx, primitive.NewObjectID().Hex()))
	})

	mt.Run("stats", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: int32(4)},
			{Key: "online", Value: int32(1)},
		}))

		stats, err := repo.Stats(ctx)
		require.NoError(mt, err)
		assert.Equal(mt, models.UserStats{Total: 4, Online: 1}, stats)
	})

	mt.Run("list", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "username", Value: "bob"}, {Key: "role", Value: "member"}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "username", Value: "carol"}, {Key: "role", Value: "member"}},
		))

		users, err := repo.List(ctx, models.RoleMember)
		require.NoError(mt, err)
		require.Len(mt, users, 2)
		assert.Equal(mt, "bob", users[0].Username)
		assert.Nil(mt, users[0].LastSeen)
	})
}

func TestMongoProjectRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create", func(mt *mtest.T) {
		repo := NewMongoProjectRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		p := &models.Project{Name: "Deck", ProjectLink: "https://www.canva.com/x", CreatedBy: primitive.NewObjectID().Hex()}
		require.NoError(mt, repo.Create(ctx, p))
		assert.NotEmpty(mt, p.ID)
	})

	mt.Run("find by id", func(mt *mtest.T) {
		repo := NewMongoProjectRepository(mt.DB)
		oid := primitive.NewObjectID()
		owner := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.projects", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "name", Value: "Deck"},
			{Key: "previewType", Value: "pdf"},
			{Key: "createdBy", Value: owner},
		}))

		p, err := repo.FindByID(ctx, oid.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, "Deck", p.Name)
		assert.Equal(mt, owner.Hex(), p.CreatedBy)
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		repo := NewMongoProjectRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(0)}))

		assert.ErrorIs(mt, repo.Delete(ctx, primitive.NewObjectID().Hex()), ErrNotFound)
	})
}
