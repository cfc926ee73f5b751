// internal/repository/postgres/params_repository.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/andresuchdata/reposia/internal/domain"
	"github.com/andresuchdata/reposia/internal/replenish"
)

// ParamsRepository reads the manually maintained replenishment parameters
// imported from the planning sheet: safety stock and do-not-buy flag per
// (product group, branch).
type ParamsRepository struct {
	db *DB
}

func NewParamsRepository(db *DB) *ParamsRepository {
	return &ParamsRepository{db: db}
}

type paramRow struct {
	GroupID     string         `db:"group_id"`
	SafetyStock sql.NullString `db:"safety_stock"`
	DoNotBuy    sql.NullString `db:"do_not_buy"`
}

const paramsQuery = `
	SELECT group_id, safety_stock, do_not_buy
	FROM replenishment_params
	WHERE branch = $1
`

// Params returns the parameter rows for a branch. Sheet imports carry
// locale quirks (comma decimals, float-formatted group codes), which are
// normalized here at the ingestion boundary; unparseable values default
// to zero, never to an error.
func (r *ParamsRepository) Params(ctx context.Context, branch domain.BranchID) ([]replenish.ParamRecord, error) {
	if err := r.db.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("could not acquire semaphore: %w", err)
	}
	defer r.db.sem.Release(1)

	var rows []paramRow
	if err := r.db.SelectContext(ctx, &rows, paramsQuery, branch.String()); err != nil {
		return nil, fmt.Errorf("query params for branch %s: %w", branch, err)
	}

	records := make([]replenish.ParamRecord, 0, len(rows))
	for _, row := range rows {
		group := replenish.NormalizeGroupCode(row.GroupID)
		if group == "" {
			continue
		}
		rec := replenish.ParamRecord{
			GroupID:     group,
			SafetyStock: replenish.ParseSheetNumber(row.SafetyStock.String),
		}
		if replenish.ParseSheetNumber(row.DoNotBuy.String) == 1 {
			rec.DoNotBuy = 1
		}
		records = append(records, rec)
	}
	return records, nil
}

const (
	deleteParamsStmt = `DELETE FROM replenishment_params WHERE branch = $1`
	insertParamStmt  = `
		INSERT INTO replenishment_params (branch, group_id, safety_stock, do_not_buy)
		VALUES ($1, $2, $3, $4)
	`
)

// ReplaceParams swaps a branch's parameter rows for a fresh sheet import.
// Delete and insert run in one transaction so concurrent pipeline runs
// never read a half-imported branch.
func (r *ParamsRepository) ReplaceParams(ctx context.Context, branch domain.BranchID, records []replenish.ParamRecord) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, deleteParamsStmt, branch.String()); err != nil {
			return fmt.Errorf("clear params for branch %s: %w", branch, err)
		}
		for _, rec := range records {
			if _, err := tx.ExecContext(ctx, insertParamStmt, branch.String(), rec.GroupID, rec.SafetyStock, rec.DoNotBuy); err != nil {
				return fmt.Errorf("insert param %s for branch %s: %w", rec.GroupID, branch, err)
			}
		}
		return nil
	})
}
