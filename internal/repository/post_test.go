package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"snapfeed/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_ListFeedOrdering(t *testing.T) {
	db := setupTestDB()
	repo := NewPostRepository(db)
	ctx := context.Background()

	user := &models.User{Username: "alice", Email: "alice@example.com", Password: "hashed"}
	require.NoError(t, db.Create(user).Error)

	base := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	older := &models.Post{UserID: user.ID, URL: "https://cdn/1.png", FileType: "image", FileName: "1.png", CreatedAt: base}
	newer := &models.Post{UserID: user.ID, URL: "https://cdn/2.png", FileType: "image", FileName: "2.png", CreatedAt: base.Add(time.Hour)}
	require.NoError(t, db.Create(older).Error)
	require.NoError(t, db.Create(newer).Error)

	// Two posts sharing a timestamp; the higher id must come first.
	tieA := &models.Post{UserID: user.ID, URL: "https://cdn/3.png", FileType: "image", FileName: "3.png", CreatedAt: base.Add(2 * time.Hour)}
	tieB := &models.Post{UserID: user.ID, URL: "https://cdn/4.png", FileType: "image", FileName: "4.png", CreatedAt: base.Add(2 * time.Hour)}
	require.NoError(t, db.Create(tieA).Error)
	require.NoError(t, db.Create(tieB).Error)

	posts, err := repo.ListFeed(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 4)

	assert.Equal(t, tieB.ID, posts[0].ID)
	assert.Equal(t, tieA.ID, posts[1].ID)
	assert.Equal(t, newer.ID, posts[2].ID)
	assert.Equal(t, older.ID, posts[3].ID)
}

func TestPostRepository_ListFeedPreloadsOwner(t *testing.T) {
	db := setupTestDB()
	repo := NewPostRepository(db)
	ctx := context.Background()

	user := &models.User{Username: "bob", Email: "bob@example.com", Password: "hashed"}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(&models.Post{UserID: user.ID, URL: "u", FileType: "image", FileName: "f"}).Error)

	// A post whose owner row is gone; the feed must still include it.
	require.NoError(t, db.Create(&models.Post{UserID: 9999, URL: "u2", FileType: "image", FileName: "f2"}).Error)

	posts, err := repo.ListFeed(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	var withOwner, orphaned int
	for _, p := range posts {
		if p.User != nil {
			withOwner++
			assert.Equal(t, "bob@example.com", p.User.Email)
		} else {
			orphaned++
		}
	}
	assert.Equal(t, 1, withOwner)
	assert.Equal(t, 1, orphaned)
}

func TestPostRepository_GetByUserID(t *testing.T) {
	db := setupTestDB()
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := &models.User{Username: "alice", Email: "alice@example.com", Password: "hashed"}
	bob := &models.User{Username: "bob", Email: "bob@example.com", Password: "hashed"}
	require.NoError(t, db.Create(alice).Error)
	require.NoError(t, db.Create(bob).Error)

	require.NoError(t, repo.Create(ctx, &models.Post{UserID: alice.ID, URL: "a1", FileType: "image", FileName: "a1"}))
	require.NoError(t, repo.Create(ctx, &models.Post{UserID: alice.ID, URL: "a2", FileType: "image", FileName: "a2"}))
	require.NoError(t, repo.Create(ctx, &models.Post{UserID: bob.ID, URL: "b1", FileType: "image", FileName: "b1"}))

	posts, err := repo.GetByUserID(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	for _, p := range posts {
		assert.Equal(t, alice.ID, p.UserID)
	}
}

func TestPostRepository_GetByIDNotFound(t *testing.T) {
	db := setupTestDB()
	repo := NewPostRepository(db)

	post, err := repo.GetByID(context.Background(), 42)
	assert.Nil(t, post)
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestPostRepository_DeleteIdempotence(t *testing.T) {
	db := setupTestDB()
	repo := NewPostRepository(db)
	ctx := context.Background()

	user := &models.User{Username: "alice", Email: "alice@example.com", Password: "hashed"}
	require.NoError(t, db.Create(user).Error)

	post := &models.Post{UserID: user.ID, URL: "u", FileType: "image", FileName: "f"}
	require.NoError(t, repo.Create(ctx, post))

	// First delete succeeds, second observes NotFound.
	require.NoError(t, repo.Delete(ctx, post.ID))

	err := repo.Delete(ctx, post.ID)
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	var count int64
	db.Model(&models.Post{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
