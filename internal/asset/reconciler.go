// AngelaMos | 2026
// reconciler.go

package asset

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/wedding-backend/internal/core"
)

// ReferenceSource reports every upload path a store still points at.
type ReferenceSource interface {
	ReferencedAssets(ctx context.Context) ([]string, error)
}

// Reconciler deletes uploads that no row references. Objects younger than
// the grace period are kept so an upload whose row write is still in
// flight is not removed.
type Reconciler struct {
	manager *Manager
	sources []ReferenceSource
	grace   time.Duration
	timeout time.Duration
	logger  *slog.Logger
	cron    *cron.Cron
	now     func() time.Time
}

func NewReconciler(
	manager *Manager,
	grace time.Duration,
	logger *slog.Logger,
	sources ...ReferenceSource,
) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		manager: manager,
		sources: sources,
		grace:   grace,
		timeout: 5 * time.Minute,
		logger:  logger,
		now:     time.Now,
	}
}

type SweepResult struct {
	Scanned int
	Deleted int
	Failed  int
}

func (r *Reconciler) Sweep(ctx context.Context) (result SweepResult, err error) {
	ctx, span := core.StartSpan(ctx, "asset.sweep")
	defer func() {
		span.SetAttributes(
			attribute.Int("sweep.scanned", result.Scanned),
			attribute.Int("sweep.deleted", result.Deleted),
		)
		core.EndSpan(span, err)
	}()

	referenced := make(map[string]struct{})
	for _, src := range r.sources {
		paths, err := src.ReferencedAssets(ctx)
		if err != nil {
			return result, fmt.Errorf("collect references: %w", err)
		}
		for _, p := range paths {
			if name, ok := r.manager.NameFromPath(p); ok {
				referenced[name] = struct{}{}
			}
		}
	}

	objects, err := r.manager.storage.List(ctx)
	if err != nil {
		return result, err
	}

	cutoff := r.now().Add(-r.grace)
	for _, obj := range objects {
		result.Scanned++

		if _, ok := referenced[obj.Name]; ok {
			continue
		}
		if obj.ModTime.After(cutoff) {
			continue
		}

		if err := r.manager.storage.Delete(ctx, obj.Name); err != nil {
			result.Failed++
			r.logger.WarnContext(ctx, "orphan upload delete failed",
				"name", obj.Name,
				"error", err,
			)
			continue
		}
		result.Deleted++
	}

	return result, nil
}

// Start schedules Sweep with a cron spec. An empty spec disables the job.
func (r *Reconciler) Start(spec string) error {
	if spec == "" {
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, r.run); err != nil {
		return fmt.Errorf("schedule upload reconciler: %w", err)
	}

	r.cron = c
	c.Start()
	r.logger.Info("upload reconciler scheduled", "schedule", spec)

	return nil
}

// Stop halts the schedule and waits for a running sweep to finish or ctx
// to end.
func (r *Reconciler) Stop(ctx context.Context) {
	if r.cron == nil {
		return
	}

	select {
	case <-r.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (r *Reconciler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	res, err := r.Sweep(ctx)
	if err != nil {
		r.logger.Error("upload reconcile failed", "error", err)
		return
	}

	r.logger.Info("upload reconcile finished",
		"scanned", res.Scanned,
		"deleted", res.Deleted,
		"failed", res.Failed,
	)
}
