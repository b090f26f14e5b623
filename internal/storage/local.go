package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStorageService implements MediaStorage on the local filesystem.
// It stands in for the external media host in development and tests.
type LocalStorageService struct {
	baseURL    string // server URL, e.g. "http://localhost:8080"
	uploadsDir string
}

func NewLocalStorageService(baseURL, uploadsDir string) (*LocalStorageService, error) {
	if err := os.MkdirAll(uploadsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &LocalStorageService{
		baseURL:    baseURL,
		uploadsDir: uploadsDir,
	}, nil
}

func (s *LocalStorageService) Upload(ctx context.Context, reader io.Reader, folder, filename string) (string, error) {
	key, err := s.buildKey(folder, filename)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(s.uploadsDir, filepath.Dir(key))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create folder: %w", err)
	}

	f, err := os.Create(filepath.Join(s.uploadsDir, key))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return fmt.Sprintf("%s/api/v1/media/%s", s.baseURL, key), nil
}

func (s *LocalStorageService) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	clean, err := s.cleanKey(key)
	if err != nil {
		return nil, err
	}
	return os.Open(filepath.Join(s.uploadsDir, clean))
}

func (s *LocalStorageService) Delete(ctx context.Context, key string) error {
	clean, err := s.cleanKey(key)
	if err != nil {
		return err
	}
	return os.Remove(filepath.Join(s.uploadsDir, clean))
}

func (s *LocalStorageService) buildKey(folder, filename string) (string, error) {
	if folder == "" || strings.Contains(folder, "..") {
		return "", fmt.Errorf("invalid folder %q", folder)
	}
	ext := filepath.Ext(filename)
	return filepath.Join(folder, uuid.New().String()+ext), nil
}

// cleanKey rejects path traversal out of the uploads directory.
func (s *LocalStorageService) cleanKey(key string) (string, error) {
	clean := filepath.Clean(key)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return clean, nil
}
