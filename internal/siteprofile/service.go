// AngelaMos | 2026
// service.go

package siteprofile

import (
	"context"
	"errors"
	"log/slog"

	"github.com/carterperez-dev/wedding-backend/internal/asset"
	"github.com/carterperez-dev/wedding-backend/internal/core"
)

const existsMessage = "Website profile already exists. Use PUT to update."

type AssetStore interface {
	Store(ctx context.Context, up *asset.Upload, field string) (string, error)
	Discard(ctx context.Context, relPaths ...string)
	URL(relPath string) string
}

// Uploads maps an image field name to the file sent for it.
type Uploads map[string]*asset.Upload

type Service struct {
	repo   Repository
	assets AssetStore
	logger *slog.Logger
}

func NewService(repo Repository, assets AssetStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, assets: assets, logger: logger}
}

func (s *Service) Get(ctx context.Context) (*Response, error) {
	p, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	return &Response{
		Profile:   *p,
		ImageURLs: newImageURLs(&p.Images, s.imageURL),
	}, nil
}

// Create inserts the profile. It fails with a conflict when one exists.
func (s *Service) Create(
	ctx context.Context,
	content Content,
	uploads Uploads,
) (int, error) {
	if err := core.ValidateStruct(content); err != nil {
		return 0, err
	}

	exists, err := s.repo.Exists(ctx)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, core.ConflictError(existsMessage)
	}

	images, stored, err := s.storeImages(ctx, uploads)
	if err != nil {
		return 0, err
	}

	p := &Profile{Content: content, Images: images}
	if err := s.repo.Create(ctx, p); err != nil {
		s.assets.Discard(ctx, stored...)
		if errors.Is(err, core.ErrConflict) {
			return 0, core.ConflictError(existsMessage)
		}
		return 0, err
	}

	s.logger.InfoContext(ctx, "site profile created", "images", len(stored))

	return p.ID, nil
}

// Upsert writes the profile, creating it when absent. Text and counts are
// replaced. Images without a new upload keep their stored path, and a
// replaced file is removed only after the write succeeds.
func (s *Service) Upsert(
	ctx context.Context,
	content Content,
	uploads Uploads,
) error {
	if err := core.ValidateStruct(content); err != nil {
		return err
	}

	var previous Images
	current, err := s.repo.Get(ctx)
	switch {
	case err == nil:
		previous = current.Images
	case !errors.Is(err, core.ErrNotFound):
		return err
	}

	images, stored, err := s.storeImages(ctx, uploads)
	if err != nil {
		return err
	}

	p := &Profile{Content: content, Images: images}
	if err := s.repo.Upsert(ctx, p); err != nil {
		s.assets.Discard(ctx, stored...)
		return err
	}

	var replaced []string
	for _, field := range ImageFields {
		next, old := images.Get(field), previous.Get(field)
		if next != "" && old != "" && next != old {
			replaced = append(replaced, old)
		}
	}
	s.assets.Discard(ctx, replaced...)

	s.logger.InfoContext(ctx, "site profile saved",
		"images_uploaded", len(stored),
		"images_replaced", len(replaced),
	)

	return nil
}

// Delete removes the profile row and every image it referenced.
func (s *Service) Delete(ctx context.Context) error {
	images, err := s.repo.Delete(ctx)
	if err != nil {
		return err
	}

	s.assets.Discard(ctx, images.Paths()...)
	s.logger.InfoContext(ctx, "site profile deleted")

	return nil
}

func (s *Service) ReferencedAssets(ctx context.Context) ([]string, error) {
	return s.repo.ImagePaths(ctx)
}

// storeImages saves every upload under its field name. On failure the files
// already written are removed.
func (s *Service) storeImages(
	ctx context.Context,
	uploads Uploads,
) (Images, []string, error) {
	var (
		images Images
		stored []string
	)

	for _, field := range ImageFields {
		up := uploads[field]
		if up == nil {
			continue
		}

		path, err := s.assets.Store(ctx, up, field)
		if err != nil {
			s.assets.Discard(ctx, stored...)
			return Images{}, nil, err
		}

		images.Set(field, path)
		stored = append(stored, path)
	}

	return images, stored, nil
}

func (s *Service) imageURL(rel string) string {
	if rel == "" {
		return ""
	}
	return s.assets.URL(rel)
}
