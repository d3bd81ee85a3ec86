// Package service contains the business logic mediating between HTTP
// handlers, the post repository, and the media store.
package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"snapfeed/internal/mediastore"
	"snapfeed/internal/models"
	"snapfeed/internal/observability"
	"snapfeed/internal/repository"
)

// MaxCaptionLength bounds the caption in characters, matching the column size.
const MaxCaptionLength = 500

// ownerUnknown is the display email when a post's owner record is missing.
// A missing owner is a data-integrity anomaly, not a fatal error.
const ownerUnknown = "Unknown"

// PublishInput carries everything needed to create a post.
type PublishInput struct {
	UserID      uint
	Filename    string
	ContentType string
	Caption     string
	Content     []byte
}

// FeedService enforces the ownership rule on every client-visible post
// operation and shapes the feed view. It is the only component with policy;
// the repository and media store are mechanism.
type FeedService struct {
	posts          repository.PostRepository
	media          mediastore.Uploader
	maxUploadBytes int64
}

// NewFeedService creates a feed service. maxUploadMB bounds accepted files.
func NewFeedService(posts repository.PostRepository, media mediastore.Uploader, maxUploadMB int) *FeedService {
	if maxUploadMB <= 0 {
		maxUploadMB = 25
	}
	return &FeedService{
		posts:          posts,
		media:          media,
		maxUploadBytes: int64(maxUploadMB) * 1024 * 1024,
	}
}

// Publish uploads the file to the media store and persists the post. The
// upload happens first: a failed upload prevents any repository write. A
// failed write after a successful upload leaves an orphaned object in the
// media store; reclaiming it is a product decision that has not been made,
// so no compensating delete is attempted here.
func (s *FeedService) Publish(ctx context.Context, in PublishInput) (*models.Post, error) {
	if in.UserID == 0 {
		return nil, models.NewValidationError("Invalid user")
	}
	if len(in.Content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadBytes/(1024*1024)))
	}
	if filepath.Ext(in.Filename) == "" {
		return nil, models.NewValidationError("Filename must have an extension")
	}
	if utf8.RuneCountInString(in.Caption) > MaxCaptionLength {
		return nil, models.NewValidationError(fmt.Sprintf("Caption too long (max %d characters)", MaxCaptionLength))
	}

	start := time.Now()
	uploaded, err := s.media.Upload(ctx, in.Filename, in.Content)
	observability.ObserveUpload(start, err)
	if err != nil {
		return nil, models.NewStorageError(err)
	}

	fileType := models.FileTypeImage
	if strings.HasPrefix(in.ContentType, "video/") {
		fileType = models.FileTypeVideo
	}

	post := &models.Post{
		UserID:   in.UserID,
		Caption:  in.Caption,
		URL:      uploaded.URL,
		FileType: fileType,
		FileName: uploaded.Name,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	observability.PostsCreatedTotal.WithLabelValues(fileType).Inc()
	return post, nil
}

// GetFeed returns every post, newest first, each annotated with the owner's
// email and whether the caller owns it. All posts are visible to any
// authenticated caller; there is no privacy or follow model.
func (s *FeedService) GetFeed(ctx context.Context, callerID uint) ([]models.FeedItem, error) {
	posts, err := s.posts.ListFeed(ctx)
	if err != nil {
		return nil, err
	}
	return s.toFeedItems(posts, callerID), nil
}

// UserPosts returns one user's posts, newest first, annotated for the caller.
func (s *FeedService) UserPosts(ctx context.Context, callerID, userID uint) ([]models.FeedItem, error) {
	posts, err := s.posts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toFeedItems(posts, callerID), nil
}

// DeletePost removes a post if and only if the caller owns it. Ownership is
// the sole access-control rule; there is no admin override. The media store
// object is not reclaimed.
func (s *FeedService) DeletePost(ctx context.Context, callerID, postID uint) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != callerID {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		return err
	}
	observability.PostsDeletedTotal.Inc()
	return nil
}

func (s *FeedService) toFeedItems(posts []*models.Post, callerID uint) []models.FeedItem {
	items := make([]models.FeedItem, 0, len(posts))
	for _, post := range posts {
		email := ownerUnknown
		if post.User != nil {
			email = post.User.Email
		}
		items = append(items, models.FeedItem{
			ID:        post.ID,
			Caption:   post.Caption,
			URL:       post.URL,
			FileType:  post.FileType,
			FileName:  post.FileName,
			Email:     email,
			IsOwner:   post.UserID == callerID,
			CreatedAt: post.CreatedAt,
		})
	}
	return items
}
