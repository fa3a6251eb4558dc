package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/socialhub-app/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetPostsByUserID(ctx context.Context, userID string) ([]models.Post, error)
	GetAllPosts(ctx context.Context) ([]models.Post, error)
	UpdatePost(ctx context.Context, id string, update models.UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, postID, userID string) (*models.Post, error)
	AppendComment(ctx context.Context, postID string, comment models.Comment) (*models.Post, error)
	DeletePostsByAuthor(ctx context.Context, userID, userEmail string) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// CreatePost creates a new post in MongoDB
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	if post.Likes == nil {
		post.Likes = []string{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a post by ID from MongoDB
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrPostNotFound
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetPostsByUserID retrieves posts by a specific user, newest first
func (r *MongoPostRepository) GetPostsByUserID(ctx context.Context, userID string) ([]models.Post, error) {
	return r.findPosts(ctx, bson.M{"userId": userID})
}

// GetAllPosts retrieves all posts, newest first. Pagination is left to the
// client.
func (r *MongoPostRepository) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	return r.findPosts(ctx, bson.M{})
}

func (r *MongoPostRepository) findPosts(ctx context.Context, filter bson.M) ([]models.Post, error) {
	posts := []models.Post{}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdatePost applies a partial update of the owner-mutable fields and returns
// the updated post. Ownership is checked by the caller.
func (r *MongoPostRepository) UpdatePost(ctx context.Context, id string, update models.UpdatePostRequest) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrPostNotFound
	}

	set := bson.M{}
	if update.Title != "" {
		set["title"] = update.Title
	}
	if update.Description != "" {
		set["description"] = update.Description
	}
	if len(set) == 0 {
		return r.GetPostByID(ctx, id)
	}

	var post models.Post
	after := options.After
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": objID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// DeletePost deletes a post by ID from MongoDB
func (r *MongoPostRepository) DeletePost(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrPostNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// ToggleLike flips the membership of userID in the post's like set with a
// single server-side pipeline update: present means remove, absent means add.
// Because the condition and the mutation run in one document update there is
// no fetch-mutate-write window, even for rapid toggles by the same user.
func (r *MongoPostRepository) ToggleLike(ctx context.Context, postID, userID string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, ErrPostNotFound
	}

	update := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.D{{Key: "likes", Value: bson.D{{Key: "$cond", Value: bson.A{
			bson.D{{Key: "$in", Value: bson.A{userID, "$likes"}}},
			bson.D{{Key: "$setDifference", Value: bson.A{"$likes", bson.A{userID}}}},
			bson.D{{Key: "$concatArrays", Value: bson.A{"$likes", bson.A{userID}}}},
		}}}}}}},
	}

	var post models.Post
	after := options.After
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": objID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("toggling like on post %s: %w", postID, err)
	}
	return &post, nil
}

// AppendComment pushes a comment onto the end of the post's comment sequence
// and returns the updated post. Comments are never reordered or deduplicated.
func (r *MongoPostRepository) AppendComment(ctx context.Context, postID string, comment models.Comment) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, ErrPostNotFound
	}

	var post models.Post
	after := options.After
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": objID},
		bson.M{"$push": bson.M{"comments": comment}},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("appending comment to post %s: %w", postID, err)
	}
	return &post, nil
}

// DeletePostsByAuthor removes every post attributed to the user, matching the
// id and, for older records, the snapshotted email.
func (r *MongoPostRepository) DeletePostsByAuthor(ctx context.Context, userID, userEmail string) error {
	filter := bson.M{"$or": bson.A{
		bson.M{"userId": userID},
		bson.M{"userEmail": userEmail},
	}}
	_, err := r.collection.DeleteMany(ctx, filter)
	return err
}
