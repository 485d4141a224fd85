// Package main is the entry point for the byod command-line tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/trackd-analytics/byod/config"
	"github.com/trackd-analytics/byod/internal/application/adapter"
	"github.com/trackd-analytics/byod/internal/application/usecase/ledger"
	"github.com/trackd-analytics/byod/internal/application/usecase/normalize"
	"github.com/trackd-analytics/byod/internal/application/usecase/schema"
	"github.com/trackd-analytics/byod/internal/domain/valueobject"
	"github.com/trackd-analytics/byod/internal/infra/db"
	"github.com/trackd-analytics/byod/internal/integration/csvio"
	"github.com/trackd-analytics/byod/internal/integration/persistence"
	"github.com/trackd-analytics/byod/internal/integration/project"
)

const usage = `Usage: byod <command> [flags]

Commands:
  validate    Check a data directory against the dataset contract
  normalize   Map raw exports to canonical tables
  analyze     Build the tidy ledger and monthly summary

Run "byod <command> -h" for command flags.
`

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "validate":
		err = runValidate(cfg, os.Args[2:])
	case "normalize":
		err = runNormalize(cfg, os.Args[2:])
	case "analyze":
		err = runAnalyze(cfg, os.Args[2:])
	case "-h", "--help", "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "byod: unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "byod: %v\n", err)
		os.Exit(1)
	}
}

func runValidate(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	dir := fs.String("dir", cfg.Data.ProjectDir, "project data directory")
	dataset := fs.String("dataset", cfg.Data.Dataset, "dataset contract to validate against")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store := csvio.NewStore()
	uc := schema.NewValidateDatasetUseCase(store)

	report, err := uc.Execute(schema.ValidateDatasetInput{
		Directory: *dir,
		Dataset:   *dataset,
	})
	if err != nil {
		return err
	}

	printReport(report)
	if !report.OK {
		os.Exit(1)
	}
	return nil
}

func printReport(report *valueobject.ValidationReport) {
	if report.OK {
		fmt.Printf("ok: %s conforms to %s\n", report.Directory, report.Dataset)
		return
	}

	fmt.Printf("invalid: %s does not conform to %s\n", report.Directory, report.Dataset)
	for _, table := range report.Tables {
		switch {
		case !table.Present:
			fmt.Printf("  %s: missing file %s\n", table.Table, table.FileName)
		case len(table.MissingColumns) > 0:
			fmt.Printf("  %s: missing columns %v (found %v)\n",
				table.Table, table.MissingColumns, table.FoundColumns)
		}
	}
}

func runNormalize(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("normalize", flag.ExitOnError)
	dir := fs.String("dir", cfg.Data.ProjectDir, "project directory containing byod.yaml")
	dataset := fs.String("dataset", cfg.Data.Dataset, "dataset contract to normalize to")
	outName := fs.String("out", cfg.Data.NormalizedDirName, "output subdirectory name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store := csvio.NewStore()
	registry := normalize.NewRegistry()
	loader := project.NewLoader(registry.Names())
	uc := normalize.NewNormalizeProjectUseCase(store, loader, registry)

	output, err := uc.Execute(normalize.NormalizeProjectInput{
		ProjectDir:        *dir,
		NormalizedDirName: *outName,
		Dataset:           *dataset,
	})
	if err != nil {
		return err
	}

	fmt.Printf("adapter: %s\n", output.Adapter)
	for _, t := range output.Tables {
		if t.OK {
			fmt.Printf("  %s: %d rows -> %s\n", t.Table, t.RowCount, t.OutputFile)
		} else {
			fmt.Printf("  %s: FAILED\n%s\n", t.Table, indent(t.Error))
		}
	}
	if !output.OK {
		os.Exit(1)
	}
	return nil
}

func runAnalyze(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	dir := fs.String("dir", cfg.Data.ProjectDir, "directory of canonical tables (a normalized/ directory)")
	outDir := fs.String("out", "", "directory for tidy and monthly CSVs (default: same as -dir)")
	persist := fs.Bool("persist", false, "store the run in the workbook database")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store := csvio.NewStore()
	resolved, err := store.ResolveDirectory(*dir)
	if err != nil {
		return err
	}
	if *outDir == "" {
		*outDir = resolved
	}

	coaSpec, err := valueobject.LookupTableSpec(valueobject.TableChartOfAccounts)
	if err != nil {
		return err
	}
	journalSpec, err := valueobject.LookupTableSpec(valueobject.TableGLJournal)
	if err != nil {
		return err
	}

	coa, err := store.Read(filepath.Join(resolved, coaSpec.FileName))
	if err != nil {
		return err
	}
	journal, err := store.Read(filepath.Join(resolved, journalSpec.FileName))
	if err != nil {
		return err
	}

	var ledgerRepo adapter.LedgerRepository
	if *persist {
		if cfg.Workbook.Path == "" {
			return fmt.Errorf("persist requested but BYOD_WORKBOOK_PATH is not set")
		}
		database, err := db.NewWorkbookConnection(&cfg.Workbook)
		if err != nil {
			return err
		}
		defer database.Close()
		if err := database.Migrate(); err != nil {
			return err
		}
		ledgerRepo = persistence.NewLedgerRepository(database.DB())
	}

	uc := ledger.NewAnalyzeUseCase(
		ledger.NewPrepareTidyUseCase(),
		ledger.NewMonthlySummaryUseCase(),
		ledgerRepo,
	)
	output, err := uc.Execute(context.Background(), ledger.AnalyzeInput{
		ChartOfAccounts: coa,
		GLJournal:       journal,
		Persist:         *persist,
	})
	if err != nil {
		return err
	}

	tidyPath := filepath.Join(*outDir, "gl_tidy.csv")
	if err := store.Write(tidyPath, output.Tidy.Table()); err != nil {
		return err
	}
	monthlyPath := filepath.Join(*outDir, "gl_monthly_summary.csv")
	if err := store.Write(monthlyPath, output.Monthly.Table()); err != nil {
		return err
	}

	fmt.Printf("gl lines:      %d\n", output.Summary.Metrics.NGLLines)
	fmt.Printf("transactions:  %d\n", output.Summary.Metrics.NTransactions)
	fmt.Printf("accounts:      %d\n", output.Summary.Metrics.NAccounts)
	fmt.Printf("tidy:          %s\n", tidyPath)
	fmt.Printf("monthly:       %s\n", monthlyPath)
	if output.Summary.Checks.GLBalancesRawAmountSumZero {
		fmt.Println("balance check: ok (raw_amount sums to zero)")
	} else {
		fmt.Printf("balance check: OFF by %s\n", output.Summary.Checks.RawAmountSum)
		for _, txnID := range output.Summary.Checks.UnbalancedTxnIDs {
			fmt.Printf("  unbalanced txn: %s\n", txnID)
		}
	}
	return nil
}

func indent(s string) string {
	out := "    "
	for _, r := range s {
		out += string(r)
		if r == '\n' {
			out += "    "
		}
	}
	return out
}
