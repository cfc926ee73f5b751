// cmd/replenish/main.go
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/andresuchdata/reposia/internal/cache"
	"github.com/andresuchdata/reposia/internal/domain"
	"github.com/andresuchdata/reposia/internal/repository/postgres"
	"github.com/andresuchdata/reposia/internal/runner"
	"github.com/andresuchdata/reposia/internal/service"
	"github.com/andresuchdata/reposia/internal/snapshot"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newSnapshotFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "snapshot",
		Usage:   "Path of the snapshot CSV file",
		Value:   "./data/output/base_snapshot.csv",
		EnvVars: []string{"APP_SNAPSHOT_PATH"},
	}
}

func newService(c *cli.Context) (*service.ReplenishmentService, func(), error) {
	db, err := postgres.Open("pgx", c.String("db-url"))
	if err != nil {
		return nil, nil, err
	}
	svc := service.NewReplenishmentService(
		postgres.NewERPRepository(db),
		postgres.NewParamsRepository(db),
		snapshot.NewFileStore(c.String("snapshot")),
		cache.NewNoopReportCache(),
	)
	return svc, func() { db.Close() }, nil
}

func parseBranches(raw []string) []domain.BranchID {
	branches := make([]domain.BranchID, 0, len(raw))
	for _, b := range raw {
		branches = append(branches, domain.NewBranchID(b))
	}
	return branches
}

func runAction(c *cli.Context) error {
	svc, closeDB, err := newService(c)
	if err != nil {
		return err
	}
	defer closeDB()

	lookback, ok := domain.ParseLookback(c.String("period"))
	if !ok {
		return fmt.Errorf("unrecognized period %q (expected 3, 6, 12 or 24)", c.String("period"))
	}

	branches := parseBranches(c.StringSlice("branch"))
	if len(branches) == 0 {
		return fmt.Errorf("at least one --branch is required")
	}

	r := runner.New(svc, c.Int("concurrency"))
	start := time.Now()
	reports, err := r.RunAll(c.Context, branches, lookback)
	if err != nil {
		return fmt.Errorf("pipeline run failed: %w", err)
	}

	if c.Bool("rebuild-snapshot") {
		if err := svc.RebuildSnapshot(c.Context, reports); err != nil {
			return fmt.Errorf("rebuild snapshot: %w", err)
		}
	} else if err := svc.EnsureSnapshot(c.Context, reports); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	if _, err := svc.ClassifyIndicators(c.Context); err != nil {
		return fmt.Errorf("classify indicators: %w", err)
	}

	total := 0
	suggested := 0
	for _, report := range reports {
		total += len(report.Rows)
		for _, row := range report.Rows {
			if row.Suggestion > 0 {
				suggested++
			}
		}
	}
	log.Printf("processed %d branches, %d rows, %d purchase suggestions in %v",
		len(reports), total, suggested, time.Since(start))
	return nil
}

func classifyAction(c *cli.Context) error {
	svc, closeDB, err := newService(c)
	if err != nil {
		return err
	}
	defer closeDB()

	snap, err := svc.ClassifyIndicators(c.Context)
	if err != nil {
		return err
	}
	if snap == nil {
		return fmt.Errorf("no snapshot at %s; run the pipeline first", c.String("snapshot"))
	}
	log.Printf("snapshot classified: %d rows", len(snap.Rows))
	return nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "replenish",
		Usage: "Compute replenishment suggestions and stock indicators",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run the full pipeline for one or more branches",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newSnapshotFlag(),
					&cli.StringSliceFlag{
						Name:     "branch",
						Usage:    "Branch code (repeatable)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "period",
						Usage: "Lookback period in months (3, 6, 12 or 24)",
						Value: "3",
					},
					&cli.IntFlag{
						Name:  "concurrency",
						Usage: "Number of branches computed in parallel",
						Value: 2,
					},
					&cli.BoolFlag{
						Name:  "rebuild-snapshot",
						Usage: "Overwrite the snapshot, discarding cached indicators",
						Value: false,
					},
				},
				Action: runAction,
			},
			{
				Name:  "classify",
				Usage: "Run the compute-once indicator pass over the snapshot",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newSnapshotFlag(),
				},
				Action: classifyAction,
			},
			{
				Name:  "import-params",
				Usage: "Replace a branch's safety stock and do-not-buy parameters from a sheet export",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:     "branch",
						Usage:    "Branch code the parameters belong to",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "file",
						Usage:    "CSV file with group_id, safety_stock and do_not_buy columns",
						Required: true,
					},
				},
				Action: importParamsAction,
			},
			{
				Name:  "backup",
				Usage: "Upload the snapshot to S3-compatible storage",
				Flags: []cli.Flag{
					newSnapshotFlag(),
				},
				Action: backupAction,
			},
			{
				Name:   "backups",
				Usage:  "List stored snapshot backups",
				Action: listBackupsAction,
			},
			{
				Name:  "restore",
				Usage: "Download a stored snapshot backup over the local snapshot file",
				Flags: []cli.Flag{
					newSnapshotFlag(),
					&cli.StringFlag{
						Name:     "key",
						Usage:    "Object key to restore (see the backups command)",
						Required: true,
					},
				},
				Action: restoreAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
