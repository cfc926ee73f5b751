// internal/runner/runner.go
package runner

import (
	"context"
	"sync"

	"github.com/andresuchdata/reposia/internal/domain"
	"github.com/andresuchdata/reposia/internal/service"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Runner fans a full pipeline invocation out across branches. Each branch
// run is independent and pure, so branches may compute concurrently; the
// snapshot write and classification happen once, after every branch has
// finished.
type Runner struct {
	svc         *service.ReplenishmentService
	concurrency int
}

func New(svc *service.ReplenishmentService, concurrency int) *Runner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Runner{svc: svc, concurrency: concurrency}
}

// RunAll computes the replenishment report of every branch, ordered as
// given. A failing branch cancels the remaining ones.
func (r *Runner) RunAll(ctx context.Context, branches []domain.BranchID, lookback domain.Lookback) ([]*domain.ReplenishmentReport, error) {
	reports := make([]*domain.ReplenishmentReport, len(branches))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, branch := range branches {
		i, branch := i, branch
		g.Go(func() error {
			report, err := r.svc.BranchReport(ctx, branch, lookback)
			if err != nil {
				return err
			}
			log.Info().
				Str("branch", branch.String()).
				Int("rows", len(report.Rows)).
				Msg("branch report computed")

			mu.Lock()
			reports[i] = report
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// RunAndClassify is the full batch entrypoint: compute all branches,
// seed the snapshot when absent, then run the compute-once indicator
// pass.
func (r *Runner) RunAndClassify(ctx context.Context, branches []domain.BranchID, lookback domain.Lookback) ([]*domain.ReplenishmentReport, error) {
	reports, err := r.RunAll(ctx, branches, lookback)
	if err != nil {
		return nil, err
	}
	if err := r.svc.EnsureSnapshot(ctx, reports); err != nil {
		return nil, err
	}
	if _, err := r.svc.ClassifyIndicators(ctx); err != nil {
		return nil, err
	}
	return reports, nil
}
