package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/socialhub-app/backend/internal/middleware"
	"github.com/socialhub-app/backend/internal/repositories"
	"github.com/socialhub-app/backend/pkg/response"
)

// LikeHandler handles HTTP requests related to post likes
type LikeHandler struct {
	postRepository repositories.PostRepository
	log            *logrus.Logger
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(postRepo repositories.PostRepository, log *logrus.Logger) *LikeHandler {
	return &LikeHandler{postRepository: postRepo, log: log}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.POST("/posts/:id/like", h.ToggleLike, auth)
}

// ToggleLike adds the caller to the post's like set, or removes them if they
// are already in it, and returns the updated post.
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	claims := middleware.ClaimsFromContext(c)

	post, err := h.postRepository.ToggleLike(c.Request().Context(), c.Param("id"), claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return response.Error(c, http.StatusNotFound, response.CodeNotFound, "Post not found")
		}
		h.log.WithError(err).Error("toggling like")
		return response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to toggle like")
	}

	return c.JSON(http.StatusOK, post)
}
