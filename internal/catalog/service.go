// AngelaMos | 2026
// service.go

package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/carterperez-dev/wedding-backend/internal/asset"
	"github.com/carterperez-dev/wedding-backend/internal/core"
)

type AssetStore interface {
	Store(ctx context.Context, up *asset.Upload, field string) (string, error)
	Discard(ctx context.Context, relPaths ...string)
	URL(relPath string) string
}

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

func (s *Service) List(ctx context.Context) ([]PackageResponse, error) {
	packages, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]PackageResponse, 0, len(packages))
	for i := range packages {
		out = append(out, s.toResponse(&packages[i]))
	}

	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*PackageResponse, error) {
	pkg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := s.toResponse(pkg)
	return &resp, nil
}

// Create stores the image first so the row never points at a missing file.
// The stored file is removed again if the insert fails.
func (s *Service) Create(
	ctx context.Context,
	in PackageInput,
	image *asset.Upload,
) (int64, error) {
	price, err := in.Validate()
	if err != nil {
		return 0, err
	}

	pkg := &Package{
		Name:        in.Name,
		Description: in.Description,
		Price:       price,
	}

	if image != nil {
		path, err := s.assets.Store(ctx, image, "")
		if err != nil {
			return 0, err
		}
		pkg.ImagePath = &path
	}

	if err := s.repo.Create(ctx, pkg); err != nil {
		if pkg.ImagePath != nil {
			s.assets.Discard(ctx, *pkg.ImagePath)
		}
		return 0, err
	}

	s.logger.InfoContext(ctx, "package created", "package_id", pkg.ID)

	return pkg.ID, nil
}

// Update replaces the fields of a package. Without a new image the stored
// path is kept. An unknown id is a silent no-op.
func (s *Service) Update(
	ctx context.Context,
	id int64,
	in PackageInput,
	image *asset.Upload,
) error {
	price, err := in.Validate()
	if err != nil {
		return err
	}

	oldPath, err := s.repo.ImagePath(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil
		}
		return err
	}

	pkg := &Package{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Price:       price,
	}

	if image != nil {
		path, err := s.assets.Store(ctx, image, "")
		if err != nil {
			return err
		}
		pkg.ImagePath = &path
	}

	if err := s.repo.Update(ctx, pkg); err != nil {
		if pkg.ImagePath != nil {
			s.assets.Discard(ctx, *pkg.ImagePath)
		}
		if errors.Is(err, core.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("update package %d: %w", id, err)
	}

	if pkg.ImagePath != nil && oldPath != nil && *oldPath != *pkg.ImagePath {
		s.assets.Discard(ctx, *oldPath)
	}

	return nil
}

// Delete removes the row, then its image. An unknown id is a silent no-op.
func (s *Service) Delete(ctx context.Context, id int64) error {
	path, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil
		}
		return err
	}

	if path != nil {
		s.assets.Discard(ctx, *path)
	}

	return nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Service) ReferencedAssets(ctx context.Context) ([]string, error) {
	return s.repo.ImagePaths(ctx)
}

func (s *Service) toResponse(pkg *Package) PackageResponse {
	resp := PackageResponse{
		ID:          pkg.ID,
		Name:        pkg.Name,
		Description: pkg.Description,
		Price:       pkg.Price,
		ImagePath:   pkg.ImagePath,
		CreatedAt:   pkg.CreatedAt,
		UpdatedAt:   pkg.UpdatedAt,
	}

	if pkg.ImagePath != nil && *pkg.ImagePath != "" {
		url := s.assets.URL(*pkg.ImagePath)
		resp.ImageURL = &url
	}

	return resp
}
