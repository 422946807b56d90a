package gallery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"templeseva/internal/domain"
	"templeseva/internal/storage"

	"github.com/google/uuid"
)

const maxImageSize = 10 * 1024 * 1024 // 10 MB

var (
	ErrEmptyFile    = errors.New("empty file")
	ErrFileTooLarge = errors.New("file too large")
	ErrNotAnImage   = errors.New("only image uploads are allowed")
	ErrNotFound     = errors.New("gallery item not found")
)

var allowedMimeTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type itemRepo interface {
	Create(ctx context.Context, item *domain.GalleryItem) error
	GetByID(ctx context.Context, id string) (*domain.GalleryItem, error)
	List(ctx context.Context) ([]domain.GalleryItem, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	items itemRepo
	store storage.ObjectStore
}

func NewService(items itemRepo, store storage.ObjectStore) *Service {
	return &Service{items: items, store: store}
}

func (s *Service) List(ctx context.Context) ([]domain.GalleryItem, error) {
	return s.items.List(ctx)
}

// Upload stores an image in the object store and records it with its public
// URL. Only image mime types pass; detection sniffs the content, not the
// file name.
func (s *Service) Upload(ctx context.Context, fileHeader *multipart.FileHeader, caption string) (*domain.GalleryItem, error) {
	if fileHeader.Size == 0 {
		return nil, ErrEmptyFile
	}
	if fileHeader.Size > maxImageSize {
		return nil, ErrFileTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload failed: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read upload failed: %w", err)
	}

	mimeType := strings.Split(http.DetectContentType(data), ";")[0]
	ext, ok := allowedMimeTypes[mimeType]
	if !ok {
		return nil, ErrNotAnImage
	}
	if orig := filepath.Ext(fileHeader.Filename); orig != "" {
		ext = strings.ToLower(orig)
	}

	id := uuid.NewString()
	now := time.Now()
	path := fmt.Sprintf("gallery/%d/%02d/%s%s", now.Year(), now.Month(), id, ext)
	if err := s.store.Put(ctx, path, data, mimeType); err != nil {
		return nil, fmt.Errorf("store upload failed: %w", err)
	}

	item := &domain.GalleryItem{
		ID:       id,
		Caption:  strings.TrimSpace(caption),
		Path:     path,
		URL:      s.store.PublicURL(path),
		MimeType: mimeType,
		Size:     fileHeader.Size,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.items.GetByID(ctx, id); err != nil {
		return ErrNotFound
	}
	return s.items.Delete(ctx, id)
}
