// AngelaMos | 2026
// service.go

package order

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/wedding-backend/internal/core"
)

type Service struct {
	repo   Repository
	policy Policy
	logger *slog.Logger
}

func NewService(repo Repository, policy Policy, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, policy: policy, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]Order, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

// Create places a new order. The status is always request.
func (s *Service) Create(ctx context.Context, in CreateOrderInput) (int64, error) {
	packageID, err := in.Validate()
	if err != nil {
		return 0, err
	}

	o := &Order{
		PackageID:    &packageID,
		CustomerName: in.CustomerName,
		PhoneNumber:  in.PhoneNumber,
		Email:        in.Email,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "order created",
		"order_id", o.ID,
		"package_id", packageID,
	)

	return o.ID, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, raw string) (err error) {
	ctx, span := core.StartSpan(ctx, "order.update_status",
		attribute.Int64("order.id", id),
		attribute.String("order.status", raw),
	)
	defer func() { core.EndSpan(span, err) }()

	status, err := ParseStatus(raw)
	if err != nil {
		return err
	}

	err = s.repo.UpdateStatus(ctx, id, status, func(from Status) error {
		return s.policy.Check(from, status)
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "order status changed",
		"order_id", id,
		"status", status,
	)

	return nil
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateOrderInput) error {
	packageID, status, err := in.Validate()
	if err != nil {
		return err
	}

	o := &Order{
		ID:           id,
		PackageID:    &packageID,
		CustomerName: in.CustomerName,
		PhoneNumber:  in.PhoneNumber,
		Email:        in.Email,
		Status:       status,
	}

	return s.repo.Update(ctx, o, func(from Status) error {
		return s.policy.Check(from, status)
	})
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	return s.repo.CountByStatus(ctx)
}
