// cmd/replenish/import_params.go
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/andresuchdata/reposia/internal/domain"
	"github.com/andresuchdata/reposia/internal/replenish"
	"github.com/andresuchdata/reposia/internal/repository/postgres"
	"github.com/urfave/cli/v2"
)

// importParamsAction replaces a branch's safety stock and do-not-buy
// parameters with the contents of a sheet export, in one transaction.
func importParamsAction(c *cli.Context) error {
	records, err := readParamsFile(c.String("file"))
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no parameter rows in %s", c.String("file"))
	}

	db, err := postgres.Open("pgx", c.String("db-url"))
	if err != nil {
		return err
	}
	defer db.Close()

	branch := domain.NewBranchID(c.String("branch"))
	if err := postgres.NewParamsRepository(db).ReplaceParams(c.Context, branch, records); err != nil {
		return fmt.Errorf("import params: %w", err)
	}
	log.Printf("imported %d parameter rows for branch %s", len(records), branch)
	return nil
}

// readParamsFile reads a sheet export with group_id, safety_stock and
// do_not_buy columns, in any column order. Sheet locale quirks (comma
// decimals, float-formatted group codes) are normalized the same way the
// database boundary normalizes them.
func readParamsFile(path string) ([]replenish.ParamRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open params file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read params header: %w", err)
	}
	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[strings.ToLower(strings.TrimSpace(name))] = i
	}
	groupCol, ok := colIndex["group_id"]
	if !ok {
		return nil, fmt.Errorf("%s: missing group_id column", path)
	}

	get := func(record []string, name string) string {
		idx, ok := colIndex[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return record[idx]
	}

	var records []replenish.ParamRecord
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("read params row: %w", err)
		}
		if groupCol >= len(record) {
			continue
		}
		group := replenish.NormalizeGroupCode(record[groupCol])
		if group == "" {
			continue
		}
		rec := replenish.ParamRecord{
			GroupID:     group,
			SafetyStock: replenish.ParseSheetNumber(get(record, "safety_stock")),
		}
		if replenish.ParseSheetNumber(get(record, "do_not_buy")) == 1 {
			rec.DoNotBuy = 1
		}
		records = append(records, rec)
	}
	return records, nil
}
