package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	storagePort "socialfeed/internal/ports/storage"
)

// LocalStorage فایل‌ها را زیر MEDIA_ROOT ذخیره می‌کند
type LocalStorage struct {
	root    string
	baseURL string
}

func NewLocalStorage(root, baseURL string) *LocalStorage {
	return &LocalStorage{root: root, baseURL: baseURL}
}

func (s *LocalStorage) Upload(ctx context.Context, object *storagePort.UploadObject) (*storagePort.UploadResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.path(object.Key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(path, object.Data, 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", object.Key, err)
	}
	return &storagePort.UploadResponse{Url: s.URL(object.Key), Key: object.Key}, nil
}

func (s *LocalStorage) URL(key string) string {
	return s.baseURL + strings.TrimPrefix(key, "/")
}

// path کلید را داخل root نگه می‌دارد
func (s *LocalStorage) path(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if clean == "/" {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.root, clean), nil
}
