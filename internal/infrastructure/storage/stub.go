// Package storage provides object storage implementations for document files.
package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	rentalapp "github.com/alquileres/backend/internal/application/rental"
)

// MemoryObjectStorage is an in-memory implementation of ObjectStorage.
// Use this for development and tests until a real S3 backend is configured.
type MemoryObjectStorage struct {
	// BaseURL is the base URL embedded in stored file URLs.
	// Defaults to "https://storage.example.com" if not set.
	BaseURL string

	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryObjectStorage creates a new MemoryObjectStorage
func NewMemoryObjectStorage() *MemoryObjectStorage {
	return &MemoryObjectStorage{
		BaseURL: "https://storage.example.com",
		objects: make(map[string][]byte),
	}
}

// Ensure MemoryObjectStorage implements ObjectStorage
var _ rentalapp.ObjectStorage = (*MemoryObjectStorage)(nil)

// Upload stores the object in memory and returns its file URL
func (s *MemoryObjectStorage) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.objects[key] = data
	s.mu.Unlock()

	return s.BaseURL + "/" + key, nil
}

// GenerateDownloadURL returns a fake signed URL for a stored object
func (s *MemoryObjectStorage) GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	s.mu.RLock()
	_, ok := s.objects[key]
	s.mu.RUnlock()
	if !ok {
		return "", time.Time{}, errors.New("object not found: " + key)
	}

	expiresAt := time.Now().Add(expiresIn)
	url := s.BaseURL + "/" + key + "?expires=" + expiresAt.Format(time.RFC3339)

	return url, expiresAt, nil
}

// DeleteObject removes the object from memory
func (s *MemoryObjectStorage) DeleteObject(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	delete(s.objects, key)
	s.mu.Unlock()

	return nil
}

// ParseObjectKey extracts the storage key from a stored file URL
func (s *MemoryObjectStorage) ParseObjectKey(fileURL string) (string, error) {
	key, ok := strings.CutPrefix(fileURL, s.BaseURL+"/")
	if !ok || key == "" {
		return "", errors.New("unrecognized file URL: " + fileURL)
	}
	if idx := strings.IndexByte(key, '?'); idx >= 0 {
		key = key[:idx]
	}
	return key, nil
}

// Contents returns a copy of a stored object, for assertions in tests
func (s *MemoryObjectStorage) Contents(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, false
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, true
}
