// AngelaMos | 2026
// storage.go

package asset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/carterperez-dev/wedding-backend/internal/config"
)

var ErrInvalidName = errors.New("invalid object name")

type Object struct {
	Name    string
	ModTime time.Time
}

// Storage is a flat namespace of uploaded files. Names never contain a
// path separator.
type Storage interface {
	Put(
		ctx context.Context,
		name string,
		r io.Reader,
		size int64,
		contentType string,
	) error
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]Object, error)
	Ping(ctx context.Context) error
}

func validName(name string) bool {
	return name != "" &&
		name != "." &&
		name != ".." &&
		!strings.ContainsAny(name, `/\`) &&
		!strings.Contains(name, "..")
}

// NewStorage builds the backend selected by uploads.driver.
func NewStorage(ctx context.Context, cfg config.UploadsConfig) (Storage, error) {
	switch cfg.Driver {
	case config.UploadDriverLocal:
		local, err := NewLocalStorage(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return local, nil
	case config.UploadDriverS3:
		remote, err := NewS3Storage(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return remote, nil
	default:
		return nil, fmt.Errorf("unknown upload driver %q", cfg.Driver)
	}
}
