package indicator

import (
	"testing"

	"github.com/andresuchdata/reposia/internal/domain"
	"github.com/andresuchdata/reposia/internal/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore is an in-memory snapshot.Store that records how often the
// snapshot was written back.
type memoryStore struct {
	snap      *snapshot.Snapshot
	saveCalls int
	loadErr   error
}

func (m *memoryStore) Load() (*snapshot.Snapshot, bool, error) {
	if m.loadErr != nil {
		return nil, false, m.loadErr
	}
	if m.snap == nil {
		return nil, false, nil
	}
	return m.snap, true, nil
}

func (m *memoryStore) Save(snap *snapshot.Snapshot) error {
	m.snap = snap
	m.saveCalls++
	return nil
}

func row(group, branch string, grade domain.Grade, safety float64, doNotBuy int) domain.ReplenishmentRow {
	return domain.ReplenishmentRow{
		GroupID:     group,
		Branch:      domain.NewBranchID(branch),
		Grade:       grade,
		SafetyStock: safety,
		DoNotBuy:    doNotBuy,
	}
}

func TestClassifyLabels(t *testing.T) {
	tests := []struct {
		name string
		rows []domain.ReplenishmentRow
		want domain.StockIndicator
	}{
		{
			name: "do-not-buy anywhere in the group wins",
			rows: []domain.ReplenishmentRow{
				row("100", "101", domain.GradeContinual, 5, 0),
				row("100", "101", domain.GradeNone, 0, 1),
			},
			want: domain.IndicatorNoBuy,
		},
		{
			name: "any active member marks the group active",
			rows: []domain.ReplenishmentRow{
				row("100", "101", domain.GradeNone, 0, 0),
				row("100", "101", domain.GradeFrequent, 0, 0),
			},
			want: domain.IndicatorActive,
		},
		{
			name: "slow mover held by safety stock",
			rows: []domain.ReplenishmentRow{
				row("100", "101", domain.GradeSparse, 3, 0),
			},
			want: domain.IndicatorSafetyOnly,
		},
		{
			name: "slow mover with no safety stock",
			rows: []domain.ReplenishmentRow{
				row("100", "101", domain.GradeNone, 0, 0),
			},
			want: domain.IndicatorNoMovement,
		},
		{
			name: "safety-only outranks no-movement within the group",
			rows: []domain.ReplenishmentRow{
				row("100", "101", domain.GradeNone, 0, 0),
				row("100", "101", domain.GradeSparse, 2, 0),
			},
			want: domain.IndicatorSafetyOnly,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Classify(&snapshot.Snapshot{Rows: tt.rows})
			require.True(t, out.Classified)
			for _, r := range out.Rows {
				assert.Equal(t, tt.want, r.Indicator)
			}
		})
	}
}

func TestClassifyKeepsGroupsSeparate(t *testing.T) {
	snap := &snapshot.Snapshot{Rows: []domain.ReplenishmentRow{
		row("100", "101", domain.GradeContinual, 0, 0),
		row("100", "102", domain.GradeNone, 0, 0), // same group, other branch
		row("200", "101", domain.GradeNone, 4, 0),
	}}

	out := Classify(snap)
	assert.Equal(t, domain.IndicatorActive, out.Rows[0].Indicator)
	assert.Equal(t, domain.IndicatorNoMovement, out.Rows[1].Indicator)
	assert.Equal(t, domain.IndicatorSafetyOnly, out.Rows[2].Indicator)
}

func TestClassifyDoesNotMutateInput(t *testing.T) {
	snap := &snapshot.Snapshot{Rows: []domain.ReplenishmentRow{
		row("100", "101", domain.GradeContinual, 0, 0),
	}}

	_ = Classify(snap)
	assert.False(t, snap.Classified)
	assert.Equal(t, domain.IndicatorUnset, snap.Rows[0].Indicator)
}

func TestEnsureClassifiedComputesOnce(t *testing.T) {
	store := &memoryStore{snap: &snapshot.Snapshot{Rows: []domain.ReplenishmentRow{
		row("100", "101", domain.GradeContinual, 0, 0),
	}}}
	c := NewClassifier(store)

	first, err := c.EnsureClassified()
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.True(t, first.Classified)
	assert.Equal(t, 1, store.saveCalls)

	// A second pass sees the classified snapshot and leaves it untouched.
	second, err := c.EnsureClassified()
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.saveCalls)
}

func TestEnsureClassifiedMissingSnapshot(t *testing.T) {
	c := NewClassifier(&memoryStore{})
	snap, err := c.EnsureClassified()
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestAttach(t *testing.T) {
	cached := Classify(&snapshot.Snapshot{Rows: []domain.ReplenishmentRow{
		row("100", "101", domain.GradeContinual, 0, 0),
	}})

	fresh := []domain.ReplenishmentRow{
		row("100", "101", domain.GradeNone, 0, 0), // grade changed since caching
		row("300", "101", domain.GradeNone, 0, 0), // no cached label
	}

	out := Attach(fresh, cached)
	require.Len(t, out, 2)
	// The cached label sticks even though the grade moved.
	assert.Equal(t, domain.IndicatorActive, out[0].Indicator)
	assert.Equal(t, domain.IndicatorUnset, out[1].Indicator)

	// An unclassified or missing snapshot leaves rows untouched.
	assert.Equal(t, fresh, Attach(fresh, &snapshot.Snapshot{Rows: cached.Rows}))
	assert.Equal(t, fresh, Attach(fresh, nil))
}
