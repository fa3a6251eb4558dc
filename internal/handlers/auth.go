package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/socialhub-app/backend/internal/middleware"
	"github.com/socialhub-app/backend/internal/models"
	"github.com/socialhub-app/backend/internal/repositories"
	"github.com/socialhub-app/backend/pkg/response"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	userRepository repositories.UserRepository
	jwtSecret      string
	log            *logrus.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, jwtSecret string, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		jwtSecret:      jwtSecret,
		log:            log,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.GET("/me", h.Me, auth)
}

// authResponse pairs the sanitized user record with a fresh bearer token.
type authResponse struct {
	User  models.UserResponse `json:"user"`
	Token string              `json:"token"`
}

// Register handles user registration with email and password
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, response.CodeValidationFailed, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, response.CodeValidationFailed, err.Error())
	}

	// Hash the password; the plaintext is never stored
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to hash password")
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
	}

	if err := h.userRepository.CreateUser(user); err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			return response.Error(c, http.StatusConflict, response.CodeEmailExists, "User with this email already registered")
		}
		h.log.WithError(err).Error("creating user")
		return response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to create user")
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, authResponse{User: user.ToResponse(), Token: token})
}

// Login handles user authentication with email and password. Unknown email
// and wrong password answer identically, so accounts cannot be enumerated.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, response.CodeValidationFailed, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, response.CodeValidationFailed, err.Error())
	}

	user, err := h.userRepository.GetUserByEmail(req.Email)
	if err != nil {
		return response.Error(c, http.StatusUnauthorized, response.CodeInvalidCredentials, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return response.Error(c, http.StatusUnauthorized, response.CodeInvalidCredentials, "Invalid credentials")
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, authResponse{User: user.ToResponse(), Token: token})
}

// Me returns the authenticated user's current record
func (h *AuthHandler) Me(c echo.Context) error {
	claims := middleware.ClaimsFromContext(c)

	userID, err := strconv.ParseUint(claims.UserID, 10, 32)
	if err != nil {
		return response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Invalid token")
	}

	user, err := h.userRepository.GetUserByID(uint(userID))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return response.Error(c, http.StatusNotFound, response.CodeNotFound, "User not found")
		}
		h.log.WithError(err).Error("loading user")
		return response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to load user")
	}

	return c.JSON(http.StatusOK, echo.Map{"user": user.ToResponse()})
}

// generateJWT generates a signed token for a given user
func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID: user.PublicID(),
		Email:  user.Email,
		Name:   user.Name,
		Epoch:  user.TokenEpoch,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
