// Package storage provides object storage for property documents, KYC
// evidence and rendered statements.
package storage

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ObjectStorage is the object store used by the application services
type ObjectStorage interface {
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	DeleteObject(ctx context.Context, storageKey string) error
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// NewObjectKey builds "<prefix>/<owner>/<random>-<file name>" with the file
// name reduced to its base name.
func NewObjectKey(prefix string, owner uuid.UUID, fileName string) string {
	name := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
	if name == "." || name == "/" || name == "" {
		name = "file"
	}
	return strings.Join([]string{prefix, owner.String(), uuid.NewString()[:8] + "-" + name}, "/")
}
