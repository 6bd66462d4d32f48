package services

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"regexp"

	"github.com/blogpessoal/blogapi/internal/storage"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrInvalidPhoto is returned for empty uploads or unsupported image types.
var ErrInvalidPhoto = errors.New("invalid photo")

var photoExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

var photoKeyPattern = regexp.MustCompile(`^[0-9a-f-]{36}\.(jpg|png|gif|webp)$`)

// PhotoStore is the subset of storage used for photos.
type PhotoStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (storage.Object, error)
	Delete(ctx context.Context, key string) error
}

// PhotoService stores user and post pictures in object storage.
type PhotoService struct {
	store PhotoStore
}

func NewPhotoService(store PhotoStore) *PhotoService {
	return &PhotoService{store: store}
}

// Upload sniffs the content type, stores the image under a random key and
// returns that key.
func (s *PhotoService) Upload(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.Wrap(ErrInvalidPhoto, "empty file")
	}

	contentType := http.DetectContentType(data)
	ext, ok := photoExtensions[contentType]
	if !ok {
		return "", errors.Wrapf(ErrInvalidPhoto, "unsupported type %s", contentType)
	}

	key := uuid.NewString() + ext
	if err := s.store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return "", errors.Wrap(err, "store photo")
	}
	return key, nil
}

// Open returns the stored photo. Keys not produced by Upload are reported
// as storage.ErrObjectNotFound.
func (s *PhotoService) Open(ctx context.Context, key string) (storage.Object, error) {
	if !photoKeyPattern.MatchString(key) {
		return storage.Object{}, storage.ErrObjectNotFound
	}
	return s.store.Get(ctx, key)
}

func (s *PhotoService) Delete(ctx context.Context, key string) error {
	if !photoKeyPattern.MatchString(key) {
		return storage.ErrObjectNotFound
	}
	return s.store.Delete(ctx, key)
}
