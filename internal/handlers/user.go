package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/socialhub-app/backend/internal/middleware"
	"github.com/socialhub-app/backend/internal/models"
	"github.com/socialhub-app/backend/internal/repositories"
	"github.com/socialhub-app/backend/pkg/response"
	"golang.org/x/crypto/bcrypt"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	userRepository repositories.UserRepository
	postRepository repositories.PostRepository
	log            *logrus.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, postRepo repositories.PostRepository, log *logrus.Logger) *UserHandler {
	return &UserHandler{
		userRepository: userRepo,
		postRepository: postRepo,
		log:            log,
	}
}

// RegisterUserRoutes registers user-related routes; all of them are self-only
func (h *UserHandler) RegisterUserRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.PUT("/users/:id", h.UpdateProfile, auth)
	g.PUT("/users/:id/password", h.ChangePassword, auth)
	g.DELETE("/users/:id", h.DeleteUser, auth)
}

// requireSelf loads the target user if and only if the caller is that user.
func (h *UserHandler) requireSelf(c echo.Context) (*models.User, error) {
	claims := middleware.ClaimsFromContext(c)
	targetID := c.Param("id")
	if claims.UserID != targetID {
		return nil, response.Error(c, http.StatusForbidden, response.CodeForbidden, "You are not authorized to modify this user")
	}

	id, err := strconv.ParseUint(targetID, 10, 32)
	if err != nil {
		return nil, response.Error(c, http.StatusBadRequest, response.CodeValidationFailed, "Invalid user ID")
	}
	user, err := h.userRepository.GetUserByID(uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, response.Error(c, http.StatusNotFound, response.CodeNotFound, "User not found")
		}
		h.log.WithError(err).Error("loading user")
		return nil, response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to load user")
	}
	return user, nil
}

// UpdateProfile updates the authenticated user's name, email or profile
// image. Posts created before the change keep their author snapshot.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	user, err := h.requireSelf(c)
	if user == nil {
		return err
	}

	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, response.CodeValidationFailed, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, response.CodeValidationFailed, err.Error())
	}

	if req.Email != "" && req.Email != user.Email {
		// A changed email must not collide with another account
		if other, err := h.userRepository.GetUserByEmail(req.Email); err == nil && other.ID != user.ID {
			return response.Error(c, http.StatusBadRequest, response.CodeEmailExists, "User with this email already registered")
		}
		user.Email = req.Email
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.ProfileImage != "" {
		user.ProfileImage = req.ProfileImage
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		h.log.WithError(err).Error("updating user")
		return response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to update user")
	}

	return c.JSON(http.StatusOK, echo.Map{"user": user.ToResponse()})
}

// ChangePassword re-hashes the password after proving the current one. The
// stored token epoch moves forward, so tokens issued before the change stop
// verifying.
func (h *UserHandler) ChangePassword(c echo.Context) error {
	user, err := h.requireSelf(c)
	if user == nil {
		return err
	}

	var req models.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, response.CodeValidationFailed, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, response.CodeValidationFailed, "Current and new password required")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return response.Error(c, http.StatusUnauthorized, response.CodeInvalidCredentials, "Current password is incorrect")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to hash password")
	}

	if err := h.userRepository.UpdatePassword(user.ID, string(hashedPassword)); err != nil {
		h.log.WithError(err).Error("updating password")
		return response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to update password")
	}

	return response.OK(c, http.StatusOK)
}

// DeleteUser removes the authenticated user's account together with every
// post attributed to it.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	user, err := h.requireSelf(c)
	if user == nil {
		return err
	}

	// Cascade first; an orphaned post is worse than an orphaned user row.
	if err := h.postRepository.DeletePostsByAuthor(c.Request().Context(), user.PublicID(), user.Email); err != nil {
		h.log.WithError(err).Error("deleting user posts")
		return response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to delete user posts")
	}

	if err := h.userRepository.DeleteUser(user.ID); err != nil {
		h.log.WithError(err).Error("deleting user")
		return response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to delete user")
	}

	return response.OK(c, http.StatusOK)
}
