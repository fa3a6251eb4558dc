package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/socialhub-app/backend/internal/middleware"
	"github.com/socialhub-app/backend/internal/models"
	"github.com/socialhub-app/backend/internal/repositories"
	"github.com/socialhub-app/backend/validators"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(id uint, hashedPassword string) error {
	args := m.Called(id, hashedPassword)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockPostRepository is a mock implementation of repositories.PostRepository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) GetPostsByUserID(ctx context.Context, userID string) ([]models.Post, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) UpdatePost(ctx context.Context, id string, update models.UpdatePostRequest) (*models.Post, error) {
	args := m.Called(id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) DeletePost(ctx context.Context, id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockPostRepository) ToggleLike(ctx context.Context, postID, userID string) (*models.Post, error) {
	args := m.Called(postID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) AppendComment(ctx context.Context, postID string, comment models.Comment) (*models.Post, error) {
	args := m.Called(postID, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) DeletePostsByAuthor(ctx context.Context, userID, userEmail string) error {
	args := m.Called(userID, userEmail)
	return args.Error(0)
}

// fakeUploader is a canned media.Uploader for handler tests.
type fakeUploader struct {
	url       string
	mediaType string
	err       error
	calls     int
	lastMIME  string
}

func (f *fakeUploader) Upload(ctx context.Context, data []byte, mimeType string) (string, string, error) {
	f.calls++
	f.lastMIME = mimeType
	if f.err != nil {
		return "", "", f.err
	}
	return f.url, f.mediaType, nil
}

// fakePostStore is an in-memory repositories.PostRepository with the real
// interaction semantics: like membership toggles, comments append in order.
type fakePostStore struct {
	posts map[string]*models.Post
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{posts: map[string]*models.Post{}}
}

func (s *fakePostStore) add(post *models.Post) string {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	if post.Likes == nil {
		post.Likes = []string{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	s.posts[post.ID.Hex()] = post
	return post.ID.Hex()
}

func (s *fakePostStore) CreatePost(ctx context.Context, post *models.Post) error {
	post.CreatedAt = time.Now()
	s.add(post)
	return nil
}

func (s *fakePostStore) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	post, ok := s.posts[id]
	if !ok {
		return nil, repositories.ErrPostNotFound
	}
	return post, nil
}

func (s *fakePostStore) GetPostsByUserID(ctx context.Context, userID string) ([]models.Post, error) {
	out := []models.Post{}
	for _, p := range s.posts {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *fakePostStore) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	out := []models.Post{}
	for _, p := range s.posts {
		out = append(out, *p)
	}
	return out, nil
}

func (s *fakePostStore) UpdatePost(ctx context.Context, id string, update models.UpdatePostRequest) (*models.Post, error) {
	post, ok := s.posts[id]
	if !ok {
		return nil, repositories.ErrPostNotFound
	}
	if update.Title != "" {
		post.Title = update.Title
	}
	if update.Description != "" {
		post.Description = update.Description
	}
	return post, nil
}

func (s *fakePostStore) DeletePost(ctx context.Context, id string) error {
	if _, ok := s.posts[id]; !ok {
		return repositories.ErrPostNotFound
	}
	delete(s.posts, id)
	return nil
}

func (s *fakePostStore) ToggleLike(ctx context.Context, postID, userID string) (*models.Post, error) {
	post, ok := s.posts[postID]
	if !ok {
		return nil, repositories.ErrPostNotFound
	}
	for i, id := range post.Likes {
		if id == userID {
			post.Likes = append(post.Likes[:i], post.Likes[i+1:]...)
			return post, nil
		}
	}
	post.Likes = append(post.Likes, userID)
	return post, nil
}

func (s *fakePostStore) AppendComment(ctx context.Context, postID string, comment models.Comment) (*models.Post, error) {
	post, ok := s.posts[postID]
	if !ok {
		return nil, repositories.ErrPostNotFound
	}
	post.Comments = append(post.Comments, comment)
	return post, nil
}

func (s *fakePostStore) DeletePostsByAuthor(ctx context.Context, userID, userEmail string) error {
	for id, p := range s.posts {
		if p.UserID == userID || p.UserEmail == userEmail {
			delete(s.posts, id)
		}
	}
	return nil
}

// testLogger discards output so test runs stay quiet.
func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(&strings.Builder{})
	return log
}

// newContext builds an Echo context around a JSON request.
func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validators.NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// asUser stamps verified claims onto the context the way the auth middleware
// would.
func asUser(c echo.Context, userID, email, name string) {
	c.Set(middleware.ContextUserKey, &models.JwtCustomClaims{
		UserID: userID,
		Email:  email,
		Name:   name,
	})
}
