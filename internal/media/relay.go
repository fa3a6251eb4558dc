package media

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/socialhub-app/backend/internal/models"
)

const (
	// MaxUploadSize is the ceiling for a single media payload.
	MaxUploadSize = 10 << 20 // 10MB

	folder = "socialhub"
)

var (
	ErrInvalidMedia = errors.New("invalid media type or size")
	ErrUploadFailed = errors.New("media upload failed")
)

// allowedTypes maps accepted MIME types to the object-name extension.
var allowedTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"video/mp4":       ".mp4",
	"video/quicktime": ".mov",
}

// Uploader relays media payloads to external hosting.
type Uploader interface {
	Upload(ctx context.Context, data []byte, mimeType string) (url, mediaType string, err error)
}

// Relay uploads media to a cloud storage bucket and hands back the hosted URL.
type Relay struct {
	bucket     *storage.BucketHandle
	bucketName string
}

// NewRelay creates a Relay writing into the given bucket.
func NewRelay(bucket *storage.BucketHandle, bucketName string) *Relay {
	return &Relay{bucket: bucket, bucketName: bucketName}
}

// Upload validates the payload against the MIME allow-list and size ceiling,
// writes it to the bucket under a fresh object name, and returns the public
// URL plus the resolved media type. Validation failures surface before any
// network call; a relay failure is fatal to the enclosing request, no retry.
func (r *Relay) Upload(ctx context.Context, data []byte, mimeType string) (string, string, error) {
	ext, ok := allowedTypes[mimeType]
	if !ok {
		return "", "", fmt.Errorf("%w: unsupported type %q", ErrInvalidMedia, mimeType)
	}
	if len(data) == 0 || len(data) > MaxUploadSize {
		return "", "", fmt.Errorf("%w: payload is %d bytes", ErrInvalidMedia, len(data))
	}

	objectPath := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), ext)

	wc := r.bucket.Object(objectPath).NewWriter(ctx)
	wc.ContentType = mimeType
	wc.ChunkSize = 0 // single-shot write, payloads are small
	if _, err := wc.Write(data); err != nil {
		_ = wc.Close()
		return "", "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if err := wc.Close(); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	return r.publicURL(objectPath), ResolveType(mimeType), nil
}

// ResolveType maps a MIME type onto the post's media type discriminator.
func ResolveType(mimeType string) string {
	if strings.HasPrefix(mimeType, "video/") {
		return models.MediaTypeVideo
	}
	return models.MediaTypeImage
}

// publicURL builds the public URL for an uploaded object.
func (r *Relay) publicURL(objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", r.bucketName, objectPath)
}
