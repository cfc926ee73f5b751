// internal/indicator/classifier.go
package indicator

import (
	"fmt"

	"github.com/andresuchdata/reposia/internal/domain"
	"github.com/andresuchdata/reposia/internal/snapshot"
	"github.com/rs/zerolog/log"
)

// Classifier assigns the cached stock-health label per (product group,
// branch). The label is computed at most once per snapshot lifetime: a
// snapshot whose schema already carries the indicator column is returned
// untouched, even if the underlying grades have since changed.
type Classifier struct {
	store snapshot.Store
}

func NewClassifier(store snapshot.Store) *Classifier {
	return &Classifier{store: store}
}

// EnsureClassified loads the snapshot and classifies it when, and only
// when, it has not been classified before. The classified snapshot is
// persisted back through the store exactly once. A missing snapshot is
// reported to the caller so it can build one first.
func (c *Classifier) EnsureClassified() (*snapshot.Snapshot, error) {
	snap, found, err := c.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if !found {
		return nil, nil
	}
	if snap.Classified {
		return snap, nil
	}

	classified := Classify(snap)
	if err := c.store.Save(classified); err != nil {
		return nil, fmt.Errorf("persist classified snapshot: %w", err)
	}
	log.Info().Int("rows", len(classified.Rows)).Msg("stock indicators computed and persisted")
	return classified, nil
}

// Classify returns a new snapshot with the indicator filled on every row.
// The input is left untouched.
func Classify(snap *snapshot.Snapshot) *snapshot.Snapshot {
	type groupKey struct {
		group  string
		branch domain.BranchID
	}

	members := make(map[groupKey][]domain.ReplenishmentRow)
	for _, row := range snap.Rows {
		key := groupKey{group: row.GroupID, branch: row.Branch}
		members[key] = append(members[key], row)
	}

	labels := make(map[groupKey]domain.StockIndicator, len(members))
	for key, rows := range members {
		labels[key] = labelFor(rows)
	}

	out := &snapshot.Snapshot{
		Rows:       make([]domain.ReplenishmentRow, len(snap.Rows)),
		Classified: true,
	}
	for i, row := range snap.Rows {
		row.Indicator = labels[groupKey{group: row.GroupID, branch: row.Branch}]
		out.Rows[i] = row
	}
	return out
}

// labelFor evaluates the label rules for one (group, branch) in priority
// order; the first rule with any matching member row wins.
func labelFor(rows []domain.ReplenishmentRow) domain.StockIndicator {
	var anyActive, anySafetyOnly, anyNoMovement bool
	for _, row := range rows {
		if row.DoNotBuy == 1 {
			return domain.IndicatorNoBuy
		}
		switch row.Grade {
		case domain.GradeFrequent, domain.GradeContinual:
			anyActive = true
		case domain.GradeNone, domain.GradeSparse:
			if row.SafetyStock > 0 {
				anySafetyOnly = true
			} else {
				anyNoMovement = true
			}
		}
	}

	switch {
	case anyActive:
		return domain.IndicatorActive
	case anySafetyOnly:
		return domain.IndicatorSafetyOnly
	case anyNoMovement:
		return domain.IndicatorNoMovement
	}
	return domain.IndicatorUnset
}

// Attach left-joins cached indicators onto freshly computed report rows.
// Rows without a cached label keep the unset indicator.
func Attach(rows []domain.ReplenishmentRow, snap *snapshot.Snapshot) []domain.ReplenishmentRow {
	if snap == nil || !snap.Classified {
		return rows
	}

	type groupKey struct {
		group  string
		branch domain.BranchID
	}
	labels := make(map[groupKey]domain.StockIndicator, len(snap.Rows))
	for _, row := range snap.Rows {
		labels[groupKey{group: row.GroupID, branch: row.Branch}] = row.Indicator
	}

	out := make([]domain.ReplenishmentRow, len(rows))
	for i, row := range rows {
		if label, ok := labels[groupKey{group: row.GroupID, branch: row.Branch}]; ok {
			row.Indicator = label
		}
		out[i] = row
	}
	return out
}
