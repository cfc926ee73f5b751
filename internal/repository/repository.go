// internal/repository/repository.go
package repository

import (
	"context"

	"github.com/andresuchdata/reposia/internal/domain"
	"github.com/andresuchdata/reposia/internal/replenish"
)

// ERPRepository is the raw-data source contract: transaction-level rows
// from the ERP mirror, filtered by branch and window. Date fields come
// back parsed; numeric fields stay raw strings and are coerced by the
// pipeline (missing, not zero, on failure).
type ERPRepository interface {
	// SalesHistory returns the sales rows of the trailing grading window,
	// expressed in calendar months.
	SalesHistory(ctx context.Context, branch domain.BranchID, months int) ([]replenish.SalesRecord, error)

	// SalesWindow returns the sales rows of the lookback window in days.
	SalesWindow(ctx context.Context, branch domain.BranchID, days int) ([]replenish.SalesRecord, error)

	// OrderWindow returns the received-order rows of the lookback window.
	OrderWindow(ctx context.Context, branch domain.BranchID, days int) ([]replenish.OrderRecord, error)

	// StockLevels returns current on-hand rows per SKU for the branch.
	StockLevels(ctx context.Context, branch domain.BranchID) ([]replenish.StockRecord, error)

	// IncomingOrders returns open purchase-order rows not yet received.
	IncomingOrders(ctx context.Context, branch domain.BranchID) ([]replenish.IncomingRecord, error)
}

// ParamsRepository is the parameter source contract: manually maintained
// safety stock and do-not-buy flags per product group and branch. It is a
// left-join source; groups absent here get zero defaults downstream.
type ParamsRepository interface {
	Params(ctx context.Context, branch domain.BranchID) ([]replenish.ParamRecord, error)
}
