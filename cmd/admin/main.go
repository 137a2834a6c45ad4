// Command admin runs the back-office maintenance tasks: expiry updates,
// invoice price sync, address resets, invoice seeding, and the product
// CSV export.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/storeops/backoffice/internal/application/export"
	"github.com/storeops/backoffice/internal/application/maintenance"
	"github.com/storeops/backoffice/internal/domain/payment"
	"github.com/storeops/backoffice/internal/infrastructure/config"
	"github.com/storeops/backoffice/internal/infrastructure/logger"
	"github.com/storeops/backoffice/internal/infrastructure/persistence"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	args := os.Args[2:]

	if command == "help" || command == "-h" || command == "--help" {
		printUsage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	ctx := context.Background()

	var runErr error
	switch command {
	case "update-expiry":
		runErr = runUpdateExpiry(ctx, cfg, db, log, args)
	case "sync-invoice-prices":
		runErr = runPriceSync(ctx, cfg, db, log, args)
	case "reset-addresses":
		runErr = runAddressReset(ctx, db, log, args)
	case "generate-invoices":
		runErr = runGenerateInvoices(ctx, db, log, args)
	case "export-products":
		runErr = runExportProducts(ctx, db, log, args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if runErr != nil {
		log.Fatal("Command failed", zap.String("command", command), zap.Error(runErr))
	}
}

func runUpdateExpiry(ctx context.Context, cfg *config.Config, db *persistence.Database, log *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("update-expiry", flag.ExitOnError)
	years := fs.Int("years", cfg.Batch.ExpiryYears, "Years to add to each expiry value")
	batchSize := fs.Int("batch-size", cfg.Batch.Size, "Rows fetched and written per batch")
	dryRun := fs.Bool("dry-run", false, "Report what would change without writing")
	samples := fs.Int("samples", 5, "Sample updates to print during a dry run")
	unmatched := fs.Int("unmatched", 10, "Unmatched examples to print")
	preview := fs.Bool("preview", false, "Classify distinct expiry values without writing")
	if err := fs.Parse(args); err != nil {
		return err
	}

	service := maintenance.NewExpiryUpdateService(persistence.NewGormProductRepository(db.DB), log)

	if *preview {
		previews, err := service.Preview(ctx, *years, 50)
		if err != nil {
			return err
		}
		for _, p := range previews {
			if p.Matched {
				fmt.Printf("  %-20s -> %s\n", p.Exp, p.Result)
			} else {
				fmt.Printf("  %-20s -> (no format matched)\n", p.Exp)
			}
		}
		return nil
	}

	summary, err := service.Run(ctx, maintenance.ExpiryUpdateOptions{
		Years:          *years,
		BatchSize:      *batchSize,
		DryRun:         *dryRun,
		SampleLimit:    *samples,
		UnmatchedLimit: *unmatched,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Processed %d products: %d updated, %d unchanged, %d skipped\n",
		summary.Processed, summary.Updated, summary.Unchanged, summary.Skipped)
	for _, s := range summary.Samples {
		fmt.Printf("  would update %s: %q -> %q\n", s.ID, s.OldExp, s.NewExp)
	}
	for _, u := range summary.Unmatched {
		fmt.Printf("  unmatched %s: %q\n", u.ID, u.Exp)
	}
	return nil
}

func runPriceSync(ctx context.Context, cfg *config.Config, db *persistence.Database, log *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("sync-invoice-prices", flag.ExitOnError)
	batchSize := fs.Int("batch-size", cfg.Batch.Size, "Rows fetched and written per batch")
	dryRun := fs.Bool("dry-run", false, "Report what would change without writing")
	skipNil := fs.Bool("skip-unpriced", false, "Skip invoices whose product has no price")
	samples := fs.Int("samples", 5, "Sample updates to print during a dry run")
	if err := fs.Parse(args); err != nil {
		return err
	}

	service := maintenance.NewInvoicePriceSyncService(persistence.NewGormInvoiceRepository(db.DB), log)

	summary, err := service.Run(ctx, maintenance.PriceSyncOptions{
		BatchSize:     *batchSize,
		DryRun:        *dryRun,
		SkipNilPrices: *skipNil,
		SampleLimit:   *samples,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Processed %d invoices: %d updated, %d skipped\n",
		summary.Processed, summary.Updated, summary.Skipped)
	if summary.Stats != nil {
		fmt.Printf("Now %d of %d invoices carry a received amount, %d in sync with price\n",
			summary.Stats.WithReceived, summary.Stats.TotalInvoices, summary.Stats.InSync)
	}
	return nil
}

func runAddressReset(ctx context.Context, db *persistence.Database, log *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("reset-addresses", flag.ExitOnError)
	confirm := fs.Bool("confirm", false, "Actually clear every balance deposit address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !*confirm {
		return fmt.Errorf("this clears every balance deposit address; re-run with -confirm")
	}

	service := maintenance.NewAddressResetService(persistence.NewGormBalanceRepository(db.DB), log)

	cleared, err := service.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Cleared deposit addresses on %d balances\n", cleared)
	return nil
}

func runGenerateInvoices(ctx context.Context, db *persistence.Database, log *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("generate-invoices", flag.ExitOnError)
	count := fs.Int("count", 100, "Number of invoices to create")
	start := fs.String("start", "", "Start of the creation date range (YYYY-MM-DD)")
	end := fs.String("end", "", "End of the creation date range (YYYY-MM-DD)")
	status := fs.Int("status", -100, "Fix every invoice to this status (-1..2); random when unset")
	if err := fs.Parse(args); err != nil {
		return err
	}

	now := time.Now().UTC()
	startDate := now.AddDate(0, -6, 0)
	endDate := now
	var err error
	if *start != "" {
		if startDate, err = time.Parse("2006-01-02", *start); err != nil {
			return fmt.Errorf("invalid -start date: %w", err)
		}
	}
	if *end != "" {
		if endDate, err = time.Parse("2006-01-02", *end); err != nil {
			return fmt.Errorf("invalid -end date: %w", err)
		}
	}

	opts := maintenance.GeneratorOptions{
		Count:     *count,
		StartDate: startDate,
		EndDate:   endDate,
	}
	if *status != -100 {
		fixed := payment.InvoiceStatus(*status)
		if !fixed.IsValid() {
			return fmt.Errorf("invalid -status value: %d", *status)
		}
		opts.Status = &fixed
	}

	service := maintenance.NewInvoiceGeneratorService(
		persistence.NewGormProductRepository(db.DB),
		persistence.NewGormCustomerRepository(db.DB),
		persistence.NewGormInvoiceRepository(db.DB),
		log,
	)

	summary, err := service.Run(ctx, opts)
	if err != nil {
		return err
	}
	fmt.Printf("Created %d invoices (%d failed)\n", summary.Created, summary.Failed)
	return nil
}

func runExportProducts(ctx context.Context, db *persistence.Database, log *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("export-products", flag.ExitOnError)
	output := fs.String("output", "", "Output file path (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	service := export.NewProductExportService(persistence.NewGormProductRepository(db.DB), log)

	w := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	count, err := service.Export(ctx, w)
	if err != nil {
		return err
	}
	if *output != "" {
		fmt.Printf("Exported %d products to %s\n", count, *output)
	}
	return nil
}

func printUsage() {
	fmt.Println(`Back Office Maintenance Tool

Usage:
  admin <command> [flags]

Commands:
  update-expiry        Add years to every recognizable product expiry value
  sync-invoice-prices  Align invoice received amounts with product prices
  reset-addresses      Clear every balance deposit address (requires -confirm)
  generate-invoices    Seed random invoices for demo databases
  export-products      Write the product catalog as CSV

Run 'admin <command> -h' for command flags.

Configuration is read from config.toml and BACKOFFICE_* environment
variables, the same as the server.`)
}
