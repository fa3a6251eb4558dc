package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/socialhub-app/backend/internal/handlers"
	"github.com/socialhub-app/backend/internal/models"
	"github.com/socialhub-app/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test_jwt_secret"

func TestAuthHandler_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	h := handlers.NewAuthHandler(mockRepo, testJWTSecret, testLogger())

	mockRepo.On("CreateUser", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		user := args.Get(0).(*models.User)
		user.ID = 7
		// The repository receives a hash, never the plaintext
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret1")))
	}).Return(nil).Once()

	c, rec := newContext(http.MethodPost, "/api/auth/register", `{"name":"Ann","email":"ann@x.com","password":"secret1"}`)
	assert.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		User  map[string]interface{} `json:"user"`
		Token string                 `json:"token"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ann@x.com", body.User["email"])
	assert.Equal(t, "7", body.User["id"])
	assert.NotContains(t, rec.Body.String(), "secret1")
	assert.NotContains(t, body.User, "password")

	// The token embeds the user's claims and verifies with the secret
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(body.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, "7", claims.UserID)
	assert.Equal(t, "ann@x.com", claims.Email)
	assert.Equal(t, "Ann", claims.Name)

	mockRepo.AssertExpectations(t)
}

func TestAuthHandler_RegisterDuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	h := handlers.NewAuthHandler(mockRepo, testJWTSecret, testLogger())

	mockRepo.On("CreateUser", mock.AnythingOfType("*models.User")).Return(repositories.ErrEmailTaken).Once()

	c, rec := newContext(http.MethodPost, "/api/auth/register", `{"name":"Ann","email":"ann@x.com","password":"secret1"}`)
	assert.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"email_exists"`)
	mockRepo.AssertExpectations(t)
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	mockRepo := new(MockUserRepository)
	h := handlers.NewAuthHandler(mockRepo, testJWTSecret, testLogger())

	// Bad email and short password never reach the repository
	c, rec := newContext(http.MethodPost, "/api/auth/register", `{"name":"Ann","email":"not-an-email","password":"x"}`)
	assert.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockRepo.AssertNotCalled(t, "CreateUser", mock.Anything)
}

func TestAuthHandler_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	h := handlers.NewAuthHandler(mockRepo, testJWTSecret, testLogger())

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	user := &models.User{ID: 7, Name: "Ann", Email: "ann@x.com", Password: string(hashed)}

	mockRepo.On("GetUserByEmail", "ann@x.com").Return(user, nil).Once()

	c, rec := newContext(http.MethodPost, "/api/auth/login", `{"email":"ann@x.com","password":"secret1"}`)
	assert.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token"`)
	mockRepo.AssertExpectations(t)
}

func TestAuthHandler_LoginWrongPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	h := handlers.NewAuthHandler(mockRepo, testJWTSecret, testLogger())

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	user := &models.User{ID: 7, Name: "Ann", Email: "ann@x.com", Password: string(hashed)}

	mockRepo.On("GetUserByEmail", "ann@x.com").Return(user, nil).Once()

	c, rec := newContext(http.MethodPost, "/api/auth/login", `{"email":"ann@x.com","password":"wrong"}`)
	assert.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotContains(t, rec.Body.String(), `"token"`)
}

func TestAuthHandler_LoginUnknownEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	h := handlers.NewAuthHandler(mockRepo, testJWTSecret, testLogger())

	mockRepo.On("GetUserByEmail", "ghost@x.com").Return(nil, repositories.ErrUserNotFound).Once()

	c, rec := newContext(http.MethodPost, "/api/auth/login", `{"email":"ghost@x.com","password":"secret1"}`)
	assert.NoError(t, h.Login(c))

	// Unknown email answers exactly like a wrong password
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"invalid_credentials"`)
}

func TestAuthHandler_Me(t *testing.T) {
	mockRepo := new(MockUserRepository)
	h := handlers.NewAuthHandler(mockRepo, testJWTSecret, testLogger())

	user := &models.User{ID: 7, Name: "Ann", Email: "ann@x.com"}
	mockRepo.On("GetUserByID", uint(7)).Return(user, nil).Once()

	c, rec := newContext(http.MethodGet, "/api/auth/me", "")
	asUser(c, "7", "ann@x.com", "Ann")
	assert.NoError(t, h.Me(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"ann@x.com"`)
}

func TestAuthHandler_MeUserGone(t *testing.T) {
	mockRepo := new(MockUserRepository)
	h := handlers.NewAuthHandler(mockRepo, testJWTSecret, testLogger())

	mockRepo.On("GetUserByID", uint(7)).Return(nil, repositories.ErrUserNotFound).Once()

	c, rec := newContext(http.MethodGet, "/api/auth/me", "")
	asUser(c, "7", "ann@x.com", "Ann")
	assert.NoError(t, h.Me(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
