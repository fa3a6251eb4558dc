package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/socialhub-app/backend/internal/middleware"
	"github.com/socialhub-app/backend/internal/models"
	"github.com/socialhub-app/backend/internal/repositories"
	"github.com/socialhub-app/backend/pkg/response"
)

// CommentHandler handles HTTP requests related to post comments
type CommentHandler struct {
	postRepository repositories.PostRepository
	log            *logrus.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(postRepo repositories.PostRepository, log *logrus.Logger) *CommentHandler {
	return &CommentHandler{postRepository: postRepo, log: log}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.POST("/posts/:id/comment", h.AddComment, auth)
}

// AddComment appends a comment to the end of the post's comment sequence and
// returns the updated post.
func (h *CommentHandler) AddComment(c echo.Context) error {
	claims := middleware.ClaimsFromContext(c)

	var req models.CommentRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, response.CodeValidationFailed, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, response.CodeValidationFailed, "Comment text required")
	}

	comment := models.Comment{
		UserID:    claims.UserID,
		UserName:  claims.Name,
		Text:      req.Text,
		CreatedAt: time.Now(),
	}

	post, err := h.postRepository.AppendComment(c.Request().Context(), c.Param("id"), comment)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return response.Error(c, http.StatusNotFound, response.CodeNotFound, "Post not found")
		}
		h.log.WithError(err).Error("appending comment")
		return response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to add comment")
	}

	return c.JSON(http.StatusOK, post)
}
