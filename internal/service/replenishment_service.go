// internal/service/replenishment_service.go
package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/andresuchdata/reposia/internal/cache"
	"github.com/andresuchdata/reposia/internal/domain"
	"github.com/andresuchdata/reposia/internal/indicator"
	"github.com/andresuchdata/reposia/internal/replenish"
	"github.com/andresuchdata/reposia/internal/repository"
	"github.com/andresuchdata/reposia/internal/snapshot"
	"github.com/rs/zerolog/log"
)

// gradingWindowMonths is the trailing history span fed to the grading
// engine: five calendar months including the current one.
const gradingWindowMonths = 5

type ReplenishmentService struct {
	erp    repository.ERPRepository
	params repository.ParamsRepository
	store  snapshot.Store
	cache  cache.ReportCache
}

func NewReplenishmentService(
	erp repository.ERPRepository,
	params repository.ParamsRepository,
	store snapshot.Store,
	cacheImpl cache.ReportCache,
) *ReplenishmentService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopReportCache()
	}
	return &ReplenishmentService{erp: erp, params: params, store: store, cache: cacheImpl}
}

// BranchReport runs the replenishment pipeline for one branch. An invalid
// lookback selector yields an empty report, not an error; callers check
// Empty(). Cached stock indicators are joined on when a classified
// snapshot exists.
func (s *ReplenishmentService) BranchReport(ctx context.Context, branch domain.BranchID, lookback domain.Lookback) (*domain.ReplenishmentReport, error) {
	if !lookback.Valid() {
		return &domain.ReplenishmentReport{Branch: branch, Lookback: lookback}, nil
	}

	if report, ok, err := s.cache.GetReport(ctx, branch, lookback); err == nil && ok {
		return report, nil
	} else if err != nil {
		log.Warn().Err(err).Str("branch", branch.String()).Msg("replenishment: cache get failed")
	}

	stock, err := s.erp.StockLevels(ctx, branch)
	if err != nil {
		return nil, fmt.Errorf("fetch stock levels: %w", err)
	}
	incoming, err := s.erp.IncomingOrders(ctx, branch)
	if err != nil {
		return nil, fmt.Errorf("fetch incoming orders: %w", err)
	}
	history, err := s.erp.SalesHistory(ctx, branch, gradingWindowMonths)
	if err != nil {
		return nil, fmt.Errorf("fetch sales history: %w", err)
	}
	params, err := s.params.Params(ctx, branch)
	if err != nil {
		return nil, fmt.Errorf("fetch params: %w", err)
	}

	report := replenish.Build(replenish.Input{
		Branch:   branch,
		Lookback: lookback,
		Stock:    stock,
		Incoming: incoming,
		History:  history,
		Params:   params,
	})

	// Indicator join is best effort: a broken snapshot degrades to unset
	// labels instead of failing the whole report.
	if snap, found, err := s.store.Load(); err != nil {
		log.Warn().Err(err).Msg("replenishment: snapshot load failed, indicators left unset")
	} else if found {
		report.Rows = indicator.Attach(report.Rows, snap)
	}

	if err := s.cache.SetReport(ctx, report); err != nil {
		log.Warn().Err(err).Str("branch", branch.String()).Msg("replenishment: cache set failed")
	}

	return report, nil
}

// Suggestions returns only the rows with a positive purchase suggestion,
// the view the buying team works from.
func (s *ReplenishmentService) Suggestions(ctx context.Context, branch domain.BranchID, lookback domain.Lookback) ([]domain.ReplenishmentRow, error) {
	report, err := s.BranchReport(ctx, branch, lookback)
	if err != nil {
		return nil, err
	}
	return replenish.PositiveSuggestions(report), nil
}

// Analysis joins the lookback-window sales and order-cost aggregates onto
// the branch report for the inventory analysis view.
func (s *ReplenishmentService) Analysis(ctx context.Context, branch domain.BranchID, lookback domain.Lookback) (*domain.AnalysisReport, error) {
	report, err := s.BranchReport(ctx, branch, lookback)
	if err != nil {
		return nil, err
	}
	analysis := &domain.AnalysisReport{Branch: branch, Lookback: lookback}
	if report.Empty() {
		return analysis, nil
	}

	sales, err := s.erp.SalesWindow(ctx, branch, lookback.Days())
	if err != nil {
		return nil, fmt.Errorf("fetch sales window: %w", err)
	}
	orders, err := s.erp.OrderWindow(ctx, branch, lookback.Days())
	if err != nil {
		return nil, fmt.Errorf("fetch order window: %w", err)
	}

	salesAggs := replenish.AggregateSales(sales, lookback)
	costAggs := replenish.AggregateOrderCosts(orders)
	analysis.Rows = replenish.JoinPeriodMetrics(report.Rows, salesAggs, costAggs)
	return analysis, nil
}

// RebuildSnapshot overwrites the snapshot file with the rows of the given
// reports, resetting it to the unclassified state. This is the explicit
// way to invalidate the indicator cache; cached branch reports carry the
// old labels, so they are invalidated along with it.
func (s *ReplenishmentService) RebuildSnapshot(ctx context.Context, reports []*domain.ReplenishmentReport) error {
	snap := &snapshot.Snapshot{}
	for _, report := range reports {
		snap.Rows = append(snap.Rows, report.Rows...)
	}
	sort.Slice(snap.Rows, func(i, j int) bool {
		if snap.Rows[i].Branch != snap.Rows[j].Branch {
			return snap.Rows[i].Branch < snap.Rows[j].Branch
		}
		return snap.Rows[i].GroupID < snap.Rows[j].GroupID
	})
	// Indicators belong to the classifier; a rebuilt snapshot starts clean.
	for i := range snap.Rows {
		snap.Rows[i].Indicator = domain.IndicatorUnset
	}
	if err := s.store.Save(snap); err != nil {
		return err
	}

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("replenishment: cache invalidation failed")
	}
	return nil
}

// EnsureSnapshot writes the snapshot only when none exists yet, keeping an
// already-classified snapshot (and its cached labels) untouched.
func (s *ReplenishmentService) EnsureSnapshot(ctx context.Context, reports []*domain.ReplenishmentReport) error {
	_, found, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if found {
		return nil
	}
	return s.RebuildSnapshot(ctx, reports)
}

// ClassifyIndicators runs the compute-once indicator pass over the
// current snapshot.
func (s *ReplenishmentService) ClassifyIndicators(ctx context.Context) (*snapshot.Snapshot, error) {
	return indicator.NewClassifier(s.store).EnsureClassified()
}

// Indicators returns the cached labels, or nil when the snapshot is
// missing or still unclassified.
func (s *ReplenishmentService) Indicators(ctx context.Context) ([]domain.ReplenishmentRow, error) {
	snap, found, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if !found || !snap.Classified {
		return nil, nil
	}
	return snap.Rows, nil
}
