package storage

import (
	"context"
	"errors"
	"sync"
	"time"
)

var _ ObjectStorage = (*MemoryObjectStorage)(nil)

// MemoryObjectStorage keeps objects in memory. It is used when object
// storage is disabled and in tests; its URLs are not downloadable.
type MemoryObjectStorage struct {
	BaseURL string

	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryObjectStorage creates an empty store
func NewMemoryObjectStorage() *MemoryObjectStorage {
	return &MemoryObjectStorage{
		BaseURL: "https://storage.invalid",
		objects: make(map[string][]byte),
	}
}

func (s *MemoryObjectStorage) GenerateUploadURL(_ context.Context, storageKey, _ string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/upload/" + storageKey + "?expires=" + expiresAt.Format(time.RFC3339), expiresAt, nil
}

func (s *MemoryObjectStorage) GenerateDownloadURL(_ context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/download/" + storageKey + "?expires=" + expiresAt.Format(time.RFC3339), expiresAt, nil
}

func (s *MemoryObjectStorage) Upload(_ context.Context, storageKey string, data []byte, _ string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[storageKey] = append([]byte(nil), data...)
	return nil
}

func (s *MemoryObjectStorage) DeleteObject(_ context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, storageKey)
	return nil
}

// ObjectExists reports true for uploaded objects and for any key while no
// object has been uploaded directly, so presigned upload flows can be
// confirmed in development.
func (s *MemoryObjectStorage) ObjectExists(_ context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[storageKey]
	return ok || len(s.objects) == 0, nil
}

// Object returns a stored object
func (s *MemoryObjectStorage) Object(storageKey string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[storageKey]
	return data, ok
}
