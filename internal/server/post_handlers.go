package server

import (
	"io"

	"snapfeed/internal/models"
	"snapfeed/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UploadPost handles POST /api/upload. Multipart form: "file" (required) and
// "caption" (optional). The file goes to the media store first; the post row
// is only written after the store has accepted the object.
func (s *Server) UploadPost(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No file uploaded"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unable to read uploaded file"))
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(file)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unable to read uploaded file"))
	}

	post, err := s.feed.Publish(c.Context(), service.PublishInput{
		UserID:      currentUserID(c),
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Caption:     c.FormValue("caption"),
		Content:     content,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetFeed handles GET /api/feed. Every post is visible to any authenticated
// caller, newest first.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	items, err := s.feed.GetFeed(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"posts": items,
	})
}

// GetUserPosts handles GET /api/users/:id/posts
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid user ID"))
	}

	items, err := s.feed.UserPosts(c.Context(), currentUserID(c), uint(userID))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"posts": items,
	})
}

// DeletePost handles DELETE /api/posts/:id. Only the owner may delete.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := c.ParamsInt("id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid post ID"))
	}

	if err := s.feed.DeletePost(c.Context(), currentUserID(c), uint(postID)); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}
