// internal/repository/postgres/erp_repository.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/andresuchdata/reposia/internal/domain"
	"github.com/andresuchdata/reposia/internal/replenish"
)

// ERPRepository reads the ERP mirror tables. The mirror keeps the source
// system's text-typed numeric columns as-is; coercion belongs to the
// pipeline, so rows are returned with their raw string values.
type ERPRepository struct {
	db *DB
}

func NewERPRepository(db *DB) *ERPRepository {
	return &ERPRepository{db: db}
}

// erpDateLayout is the source system's yyyymmdd text date format.
const erpDateLayout = "20060102"

type salesRow struct {
	GroupID  string         `db:"group_id"`
	DocCode  sql.NullString `db:"doc_code"`
	IssuedAt sql.NullString `db:"issued_at"`
	Quantity sql.NullString `db:"quantity"`
}

const salesQuery = `
	SELECT group_id, doc_code, issued_at, quantity
	FROM erp_sales
	WHERE branch = $1
	  AND issued_at >= $2
	  AND TRIM(group_id) <> ''
`

func (r *ERPRepository) salesSince(ctx context.Context, branch domain.BranchID, since time.Time) ([]replenish.SalesRecord, error) {
	if err := r.db.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("could not acquire semaphore: %w", err)
	}
	defer r.db.sem.Release(1)

	var rows []salesRow
	if err := r.db.SelectContext(ctx, &rows, salesQuery, branch.String(), since.Format(erpDateLayout)); err != nil {
		return nil, fmt.Errorf("query sales for branch %s: %w", branch, err)
	}

	records := make([]replenish.SalesRecord, 0, len(rows))
	for _, row := range rows {
		rec := replenish.SalesRecord{
			GroupID:  strings.TrimSpace(row.GroupID),
			Branch:   branch,
			DocCode:  row.DocCode.String,
			Quantity: row.Quantity.String,
		}
		// An unparseable date stays zero-valued and is dropped by the
		// pivot, matching the coerce-to-missing rule.
		if row.IssuedAt.Valid {
			if t, err := time.Parse(erpDateLayout, strings.TrimSpace(row.IssuedAt.String)); err == nil {
				rec.IssuedAt = t
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// SalesHistory returns the trailing grading window in whole calendar
// months, anchored at the first day of the oldest month.
func (r *ERPRepository) SalesHistory(ctx context.Context, branch domain.BranchID, months int) ([]replenish.SalesRecord, error) {
	now := time.Now()
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)
	return r.salesSince(ctx, branch, anchor)
}

// SalesWindow returns the lookback window in days.
func (r *ERPRepository) SalesWindow(ctx context.Context, branch domain.BranchID, days int) ([]replenish.SalesRecord, error) {
	return r.salesSince(ctx, branch, time.Now().AddDate(0, 0, -days))
}

type orderRow struct {
	GroupID string         `db:"group_id"`
	Price   sql.NullString `db:"price"`
}

const orderQuery = `
	SELECT group_id, price
	FROM erp_purchase_orders
	WHERE branch = $1
	  AND issued_at >= $2
	  AND TRIM(group_id) <> ''
`

// OrderWindow returns received-order rows of the lookback window.
func (r *ERPRepository) OrderWindow(ctx context.Context, branch domain.BranchID, days int) ([]replenish.OrderRecord, error) {
	if err := r.db.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("could not acquire semaphore: %w", err)
	}
	defer r.db.sem.Release(1)

	since := time.Now().AddDate(0, 0, -days).Format(erpDateLayout)
	var rows []orderRow
	if err := r.db.SelectContext(ctx, &rows, orderQuery, branch.String(), since); err != nil {
		return nil, fmt.Errorf("query orders for branch %s: %w", branch, err)
	}

	records := make([]replenish.OrderRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, replenish.OrderRecord{
			GroupID: strings.TrimSpace(row.GroupID),
			Branch:  branch,
			Price:   row.Price.String,
		})
	}
	return records, nil
}

type stockRow struct {
	GroupID     string         `db:"group_id"`
	Description sql.NullString `db:"description"`
	ProductCode sql.NullString `db:"product_code"`
	OnHand      sql.NullString `db:"on_hand"`
}

const stockQuery = `
	SELECT s.group_id, p.description, p.product_code, s.on_hand
	FROM erp_stock s
	LEFT JOIN erp_products p ON p.product_code = s.product_code
	WHERE s.branch = $1
	  AND TRIM(s.group_id) <> ''
`

// StockLevels returns on-hand rows per SKU for the branch.
func (r *ERPRepository) StockLevels(ctx context.Context, branch domain.BranchID) ([]replenish.StockRecord, error) {
	if err := r.db.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("could not acquire semaphore: %w", err)
	}
	defer r.db.sem.Release(1)

	var rows []stockRow
	if err := r.db.SelectContext(ctx, &rows, stockQuery, branch.String()); err != nil {
		return nil, fmt.Errorf("query stock for branch %s: %w", branch, err)
	}

	records := make([]replenish.StockRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, replenish.StockRecord{
			GroupID:     strings.TrimSpace(row.GroupID),
			Branch:      branch,
			Description: row.Description.String,
			ProductCode: row.ProductCode.String,
			OnHand:      row.OnHand.String,
		})
	}
	return records, nil
}

type incomingRow struct {
	GroupID  string         `db:"group_id"`
	Quantity sql.NullString `db:"quantity_open"`
}

const incomingQuery = `
	SELECT group_id, quantity_open
	FROM erp_purchase_orders
	WHERE branch = $1
	  AND received_at IS NULL
	  AND TRIM(group_id) <> ''
`

// IncomingOrders returns open purchase-order rows not yet received.
func (r *ERPRepository) IncomingOrders(ctx context.Context, branch domain.BranchID) ([]replenish.IncomingRecord, error) {
	if err := r.db.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("could not acquire semaphore: %w", err)
	}
	defer r.db.sem.Release(1)

	var rows []incomingRow
	if err := r.db.SelectContext(ctx, &rows, incomingQuery, branch.String()); err != nil {
		return nil, fmt.Errorf("query incoming orders for branch %s: %w", branch, err)
	}

	records := make([]replenish.IncomingRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, replenish.IncomingRecord{
			GroupID:  strings.TrimSpace(row.GroupID),
			Branch:   branch,
			Quantity: row.Quantity.String,
		})
	}
	return records, nil
}
