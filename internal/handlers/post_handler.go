package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/socialhub-app/backend/internal/media"
	"github.com/socialhub-app/backend/internal/middleware"
	"github.com/socialhub-app/backend/internal/models"
	"github.com/socialhub-app/backend/internal/repositories"
	"github.com/socialhub-app/backend/pkg/response"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
	uploader       media.Uploader
	log            *logrus.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository, uploader media.Uploader, log *logrus.Logger) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		userRepository: userRepo,
		uploader:       uploader,
		log:            log,
	}
}

// RegisterPostRoutes registers post-related routes. Reads are public;
// mutations require a bearer token.
func (h *PostHandler) RegisterPostRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.GET("/posts", h.GetPosts)
	g.GET("/posts/user/:userId", h.GetPostsByUser)
	g.GET("/posts/:id", h.GetPost)
	g.POST("/posts", h.CreatePost, auth)
	g.PUT("/posts/:id", h.UpdatePost, auth)
	g.DELETE("/posts/:id", h.DeletePost, auth)
}

// CreatePost creates a new post from a multipart form, uploading the optional
// media attachment before anything is written to the store.
func (h *PostHandler) CreatePost(c echo.Context) error {
	claims := middleware.ClaimsFromContext(c)

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, response.CodeValidationFailed, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, response.CodeValidationFailed, err.Error())
	}

	// Snapshot the author from the store, not the token, so attribution
	// reflects the record at creation time.
	userID, err := strconv.ParseUint(claims.UserID, 10, 32)
	if err != nil {
		return response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Invalid token")
	}
	author, err := h.userRepository.GetUserByID(uint(userID))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return response.Error(c, http.StatusNotFound, response.CodeNotFound, "User not found")
		}
		h.log.WithError(err).Error("loading post author")
		return response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to load user")
	}

	var mediaURL, mediaType string
	if file, err := c.FormFile("media"); err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			return response.Error(c, http.StatusBadRequest, response.CodeInvalidMedia, "Failed to read media file")
		}
		data, err := io.ReadAll(io.LimitReader(src, media.MaxUploadSize+1))
		src.Close()
		if err != nil {
			return response.Error(c, http.StatusBadRequest, response.CodeInvalidMedia, "Failed to read media file")
		}

		mediaURL, mediaType, err = h.uploader.Upload(c.Request().Context(), data, file.Header.Get("Content-Type"))
		if err != nil {
			if errors.Is(err, media.ErrInvalidMedia) {
				return response.Error(c, http.StatusBadRequest, response.CodeInvalidMedia, err.Error())
			}
			h.log.WithError(err).Error("uploading media")
			return response.Error(c, http.StatusBadRequest, response.CodeUploadFailed, "Failed to upload media")
		}
	}

	post := &models.Post{
		Title:       req.Title,
		Description: req.Description,
		MediaURL:    mediaURL,
		MediaType:   mediaType,
		UserID:      author.PublicID(),
		UserEmail:   author.Email,
		UserName:    author.Name,
		Likes:       []string{},
		Comments:    []models.Comment{},
	}

	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		h.log.WithError(err).Error("creating post")
		return response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to create post")
	}

	return c.JSON(http.StatusOK, post)
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return response.Error(c, http.StatusNotFound, response.CodeNotFound, "Post not found")
		}
		h.log.WithError(err).Error("loading post")
		return response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to load post")
	}
	return c.JSON(http.StatusOK, post)
}

// GetPosts retrieves the shared feed, newest first
func (h *PostHandler) GetPosts(c echo.Context) error {
	posts, err := h.postRepository.GetAllPosts(c.Request().Context())
	if err != nil {
		h.log.WithError(err).Error("listing posts")
		return response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to list posts")
	}
	return c.JSON(http.StatusOK, posts)
}

// GetPostsByUser retrieves one author's posts, newest first
func (h *PostHandler) GetPostsByUser(c echo.Context) error {
	posts, err := h.postRepository.GetPostsByUserID(c.Request().Context(), c.Param("userId"))
	if err != nil {
		h.log.WithError(err).Error("listing user posts")
		return response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to list posts")
	}
	return c.JSON(http.StatusOK, posts)
}

// UpdatePost updates an existing post's title and description
func (h *PostHandler) UpdatePost(c echo.Context) error {
	claims := middleware.ClaimsFromContext(c)
	postID := c.Param("id")

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, response.CodeValidationFailed, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, response.CodeValidationFailed, err.Error())
	}

	existingPost, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return response.Error(c, http.StatusNotFound, response.CodeNotFound, "Post not found")
		}
		h.log.WithError(err).Error("loading post")
		return response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to load post")
	}

	// Ensure the user updating the post is the owner
	if existingPost.UserID != claims.UserID {
		return response.Error(c, http.StatusForbidden, response.CodeForbidden, "You are not authorized to update this post")
	}

	updated, err := h.postRepository.UpdatePost(c.Request().Context(), postID, req)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return response.Error(c, http.StatusNotFound, response.CodeNotFound, "Post not found")
		}
		h.log.WithError(err).Error("updating post")
		return response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to update post")
	}

	return c.JSON(http.StatusOK, updated)
}

// DeletePost deletes a post
func (h *PostHandler) DeletePost(c echo.Context) error {
	claims := middleware.ClaimsFromContext(c)
	postID := c.Param("id")

	existingPost, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return response.Error(c, http.StatusNotFound, response.CodeNotFound, "Post not found")
		}
		h.log.WithError(err).Error("loading post")
		return response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to load post")
	}

	// Ensure the user deleting the post is the owner
	if existingPost.UserID != claims.UserID {
		return response.Error(c, http.StatusForbidden, response.CodeForbidden, "You are not authorized to delete this post")
	}

	if err := h.postRepository.DeletePost(c.Request().Context(), postID); err != nil {
		h.log.WithError(err).Error("deleting post")
		return response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to delete post")
	}

	return response.OK(c, http.StatusOK)
}
