// Package filestore keeps uploaded resumes on local disk or in an S3 bucket.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"jobboard/config"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned by Open when no object exists under the key.
	ErrNotFound = errors.New("file not found")
	// ErrInvalidKey rejects keys that could escape the storage root.
	ErrInvalidKey = errors.New("invalid file key")
)

// Store is a flat key/value blob store.
type Store interface {
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// ResumePrefix is the directory every resume key lives under.
const ResumePrefix = "resumes"

// ResumeExtensions lists the accepted resume file extensions.
var ResumeExtensions = []string{".pdf", ".doc", ".docx"}

// ResumeExtension returns the lowercased extension of filename and whether it is accepted.
func ResumeExtension(filename string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range ResumeExtensions {
		if ext == allowed {
			return ext, true
		}
	}
	return ext, false
}

// NewResumeKey builds resumes/YYYY/MM/DD/<uuid><ext>.
func NewResumeKey(now time.Time, ext string) string {
	return path.Join(ResumePrefix, now.Format("2006/01/02"), uuid.NewString()+ext)
}

// ContentType guesses the MIME type of a resume from its key.
func ContentType(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}

func validateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || path.Clean(key) != key || strings.HasPrefix(key, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// New builds the Store selected by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case config.StorageDriverLocal, "":
		return NewLocal(cfg.LocalRoot)
	case config.StorageDriverS3:
		return NewS3(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
