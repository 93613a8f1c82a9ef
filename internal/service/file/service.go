package file

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hadirin/hadirin-backend-go/internal/pkg/storage"
)

// FileService stores selfie captures and hands back the URL that goes into
// the attendance record. The payload is opaque to everything downstream.
type FileService interface {
	SaveSelfie(ctx context.Context, employeeID string, date time.Time, event string, file io.Reader, filename string) (string, error)
	RemoveByURL(ctx context.Context, url string) error
}

type fileServiceImpl struct {
	storage storage.FileStorage
	baseURL string
}

func NewFileService(fileStorage storage.FileStorage, baseURL string) FileService {
	return &fileServiceImpl{storage: fileStorage, baseURL: baseURL}
}

// SaveSelfie implements FileService.
func (s *fileServiceImpl) SaveSelfie(ctx context.Context, employeeID string, date time.Time, event string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	path := fmt.Sprintf("selfies/%s/%s/%s-%s%s",
		employeeID,
		date.Format("2006-01-02"),
		event,
		uuid.NewString(),
		ext,
	)

	storedPath, err := s.storage.Upload(ctx, file, path, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to store selfie: %w", err)
	}

	url, err := s.storage.GetURL(ctx, storedPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve selfie URL: %w", err)
	}

	return url, nil
}

// RemoveByURL implements FileService. Used to roll a selfie back when the
// record write that references it fails.
func (s *fileServiceImpl) RemoveByURL(ctx context.Context, url string) error {
	path := strings.TrimPrefix(url, s.baseURL+"/")
	if path == url {
		return fmt.Errorf("url %q is not under the storage base URL", url)
	}
	return s.storage.Delete(ctx, path)
}
