package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Media types a post may carry. A post has either both MediaURL and MediaType
// or neither.
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// Post represents a shared-feed post stored in MongoDB. The user fields are a
// snapshot of the author at creation time; later profile edits do not touch
// historic posts.
type Post struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	MediaURL    string             `json:"mediaUrl,omitempty" bson:"mediaUrl,omitempty"`
	MediaType   string             `json:"mediaType,omitempty" bson:"mediaType,omitempty"`
	UserID      string             `json:"userId" bson:"userId"`
	UserEmail   string             `json:"userEmail" bson:"userEmail"`
	UserName    string             `json:"userName" bson:"userName"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	Likes       []string           `json:"likes" bson:"likes"`
	Comments    []Comment          `json:"comments" bson:"comments"`
}

// Comment is one entry of a post's append-only comment sequence.
type Comment struct {
	UserID    string    `json:"userId" bson:"userId"`
	UserName  string    `json:"userName" bson:"userName"`
	Text      string    `json:"text" bson:"text"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// CreatePostRequest defines the multipart form fields for creating a new post.
// The optional media file is read separately from the form.
type CreatePostRequest struct {
	Title       string `form:"title" validate:"required,min=1,max=200"`
	Description string `form:"description" validate:"omitempty,max=2000"`
}

// UpdatePostRequest defines the request body for updating an existing post.
type UpdatePostRequest struct {
	Title       string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

// CommentRequest defines the request body for commenting on a post.
type CommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=1000"`
}
