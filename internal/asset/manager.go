// AngelaMos | 2026
// manager.go

package asset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/wedding-backend/internal/core"
)

const sniffLen = 512

// Upload is a file received from a client, opened lazily so a request that
// fails validation never reads the body.
type Upload struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// FormFile returns the named multipart file, or nil when the field is
// absent or empty. The request form must already be parsed.
func FormFile(r *http.Request, field string) *Upload {
	if r.MultipartForm == nil {
		return nil
	}

	files := r.MultipartForm.File[field]
	if len(files) == 0 || files[0].Size == 0 {
		return nil
	}

	return FromFileHeader(files[0])
}

func FromFileHeader(fh *multipart.FileHeader) *Upload {
	return &Upload{
		Filename: fh.Filename,
		Size:     fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

func BytesUpload(filename string, data []byte) *Upload {
	return &Upload{
		Filename: filename,
		Size:     int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

type ManagerConfig struct {
	URLPrefix    string
	BaseURL      string
	MaxSize      int64
	AllowedTypes []string
}

type Manager struct {
	storage   Storage
	urlPrefix string
	baseURL   string
	maxSize   int64
	allowed   []string
	logger    *slog.Logger
	now       func() time.Time
}

func NewManager(storage Storage, cfg ManagerConfig, logger *slog.Logger) *Manager {
	prefix := "/" + strings.Trim(cfg.URLPrefix, "/")
	if prefix == "/" {
		prefix = "/uploads"
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Manager{
		storage:   storage,
		urlPrefix: prefix,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		maxSize:   cfg.MaxSize,
		allowed:   cfg.AllowedTypes,
		logger:    logger,
		now:       time.Now,
	}
}

// Store validates and saves up, returning its relative public path. Names
// are "{millis}-{base}", or "{field}-{millis}-{base}" when field is set.
func (m *Manager) Store(
	ctx context.Context,
	up *Upload,
	field string,
) (string, error) {
	ctx, span := core.StartSpan(ctx, "asset.store",
		attribute.String("asset.field", field),
	)
	relPath, err := m.store(ctx, up, field)
	core.EndSpan(span, err)
	return relPath, err
}

func (m *Manager) store(
	ctx context.Context,
	up *Upload,
	field string,
) (string, error) {
	if up == nil {
		return "", core.InvalidInput("image is required")
	}

	if m.maxSize > 0 && up.Size > m.maxSize {
		return "", m.tooLarge()
	}

	rc, err := up.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer func() { _ = rc.Close() }()

	reader := io.Reader(rc)
	if m.maxSize > 0 {
		reader = io.LimitReader(rc, m.maxSize+1)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	if m.maxSize > 0 && int64(len(data)) > m.maxSize {
		return "", m.tooLarge()
	}
	if len(data) == 0 {
		return "", core.InvalidInput("image is empty")
	}

	contentType := http.DetectContentType(data[:min(len(data), sniffLen)])
	if len(m.allowed) > 0 && !slices.Contains(m.allowed, contentType) {
		return "", core.InvalidInput(
			"image must be one of: " + strings.Join(m.allowed, ", "),
		)
	}

	name := strconv.FormatInt(m.now().UnixMilli(), 10) + "-" +
		SanitizeFilename(up.Filename)
	if field != "" {
		name = field + "-" + name
	}

	if err := m.storage.Put(
		ctx,
		name,
		bytes.NewReader(data),
		int64(len(data)),
		contentType,
	); err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}

	return m.urlPrefix + "/" + name, nil
}

func (m *Manager) tooLarge() error {
	return core.InvalidInput(
		fmt.Sprintf("image exceeds the %d byte limit", m.maxSize),
	)
}

// Delete removes the file behind a stored relative path. Empty paths,
// paths outside the upload prefix and missing files are not errors.
func (m *Manager) Delete(ctx context.Context, relPath string) error {
	if relPath == "" {
		return nil
	}
	if strings.Contains(relPath, "..") {
		return core.InvalidInput("invalid asset path")
	}

	name, ok := m.NameFromPath(relPath)
	if !ok {
		return nil
	}

	return m.storage.Delete(ctx, name)
}

// Discard deletes each path and logs failures. Used after a row change has
// committed, where the reconciler picks up anything left behind.
func (m *Manager) Discard(ctx context.Context, relPaths ...string) {
	for _, p := range relPaths {
		if err := m.Delete(ctx, p); err != nil {
			m.logger.WarnContext(ctx, "asset cleanup failed",
				"path", p,
				"error", err,
			)
		}
	}
}

func (m *Manager) NameFromPath(relPath string) (string, bool) {
	name, ok := strings.CutPrefix(relPath, m.urlPrefix+"/")
	if !ok || !validName(name) {
		return "", false
	}
	return name, true
}

// URL turns a stored relative path into an absolute URL. Empty stays empty.
func (m *Manager) URL(relPath string) string {
	if relPath == "" {
		return ""
	}
	if strings.HasPrefix(relPath, "http://") ||
		strings.HasPrefix(relPath, "https://") {
		return relPath
	}
	return m.baseURL + relPath
}

func (m *Manager) Ping(ctx context.Context) error {
	return m.storage.Ping(ctx)
}

// SanitizeFilename keeps only the base name of a client supplied filename
// and replaces whitespace with dashes.
func SanitizeFilename(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, `\`, "/"))

	var b strings.Builder
	for _, r := range base {
		switch {
		case unicode.IsSpace(r):
			b.WriteByte('-')
		case unicode.IsControl(r), r == '/', r == ':':
			continue
		default:
			b.WriteRune(r)
		}
	}

	name := strings.TrimLeft(b.String(), ".")
	for strings.Contains(name, "..") {
		name = strings.ReplaceAll(name, "..", ".")
	}
	if name == "" {
		return "upload"
	}
	return name
}
