// internal/snapshot/store.go
package snapshot

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/andresuchdata/reposia/internal/domain"
)

// indicatorColumn is the marker column whose presence flips a snapshot
// from UNCLASSIFIED to CLASSIFIED. The header name is the one the report
// consumers expect.
const indicatorColumn = "Ind. Stk"

// Snapshot is the persisted flat table: one row per (product group,
// branch) with every report column. Classified mirrors whether the
// indicator column was present when the table was read; it is the
// precondition the classifier checks before doing any work.
type Snapshot struct {
	Rows       []domain.ReplenishmentRow
	Classified bool
}

// Store reads and writes a snapshot wholesale. No partial updates exist:
// the only way to invalidate a classified snapshot is to delete or
// regenerate the file behind the store.
type Store interface {
	Load() (*Snapshot, bool, error)
	Save(snap *Snapshot) error
}

// FileStore keeps the snapshot as a CSV file on local disk.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file location.
func (s *FileStore) Path() string {
	return s.path
}

var baseColumns = []string{
	"group_id",
	"branch",
	"description",
	"product_code",
	"stock_on_hand",
	"quantity_incoming",
	"total_sum",
	"avg_last_two_months",
	"avg_last_three_months",
	"grade",
	"safety_stock",
	"do_not_buy",
	"min",
	"max",
	"suggestion",
}

// Load reads the snapshot file. The second return value is false when the
// file does not exist yet.
func (s *FileStore) Load() (*Snapshot, bool, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("open snapshot %s: %w", s.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return &Snapshot{}, true, nil
		}
		return nil, false, fmt.Errorf("read snapshot header: %w", err)
	}

	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[name] = i
	}
	_, classified := colIndex[indicatorColumn]

	snap := &Snapshot{Classified: classified}
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, false, fmt.Errorf("read snapshot row: %w", err)
		}

		get := func(name string) string {
			idx, ok := colIndex[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return record[idx]
		}
		parseFloat := func(name string) float64 {
			v, _ := strconv.ParseFloat(get(name), 64)
			return v
		}
		parseInt := func(name string) int {
			v, _ := strconv.Atoi(get(name))
			return v
		}

		row := domain.ReplenishmentRow{
			GroupID:          get("group_id"),
			Branch:           domain.NewBranchID(get("branch")),
			Description:      get("description"),
			ProductCode:      get("product_code"),
			StockOnHand:      parseFloat("stock_on_hand"),
			QuantityIncoming: parseFloat("quantity_incoming"),
			TotalSum:         parseFloat("total_sum"),
			AvgLastTwoMonths: parseInt("avg_last_two_months"),
			AvgLastThree:     parseInt("avg_last_three_months"),
			Grade:            domain.Grade(parseInt("grade")),
			SafetyStock:      parseFloat("safety_stock"),
			DoNotBuy:         parseInt("do_not_buy"),
			Min:              parseInt("min"),
			Max:              parseInt("max"),
			Suggestion:       parseInt("suggestion"),
		}
		if classified {
			row.Indicator = domain.StockIndicator(get(indicatorColumn))
		}
		snap.Rows = append(snap.Rows, row)
	}

	return snap, true, nil
}

// Save writes the snapshot wholesale, replacing whatever was there. The
// indicator column is emitted only for classified snapshots so that an
// unclassified file keeps signalling its state through the schema.
func (s *FileStore) Save(snap *Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create snapshot %s: %w", s.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := baseColumns
	if snap.Classified {
		header = append(append([]string{}, baseColumns...), indicatorColumn)
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write snapshot header: %w", err)
	}

	for _, row := range snap.Rows {
		record := []string{
			row.GroupID,
			row.Branch.String(),
			row.Description,
			row.ProductCode,
			strconv.FormatFloat(row.StockOnHand, 'f', -1, 64),
			strconv.FormatFloat(row.QuantityIncoming, 'f', -1, 64),
			strconv.FormatFloat(row.TotalSum, 'f', -1, 64),
			strconv.Itoa(row.AvgLastTwoMonths),
			strconv.Itoa(row.AvgLastThree),
			strconv.Itoa(int(row.Grade)),
			strconv.FormatFloat(row.SafetyStock, 'f', -1, 64),
			strconv.Itoa(row.DoNotBuy),
			strconv.Itoa(row.Min),
			strconv.Itoa(row.Max),
			strconv.Itoa(row.Suggestion),
		}
		if snap.Classified {
			record = append(record, string(row.Indicator))
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write snapshot row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}
