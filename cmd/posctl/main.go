package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	flag "github.com/spf13/pflag"

	"github.com/tillworks/tillcore/internal/cart"
	"github.com/tillworks/tillcore/internal/catalog"
	"github.com/tillworks/tillcore/internal/checkout"
	"github.com/tillworks/tillcore/internal/ledger"
	"github.com/tillworks/tillcore/internal/receipt"
	"github.com/tillworks/tillcore/internal/reporting"
	"github.com/tillworks/tillcore/pkg/config"
	"github.com/tillworks/tillcore/pkg/logger"
)

const usage = `usage: posctl <command> [flags]

commands:
  convert   re-serialize a catalog file into another format
  report    aggregate the sales ledger and print totals
  sales     list the sales recorded in the ledger
  receipt   re-print the receipt for a recorded sale
  sell      ring up items and check out against the configured catalog
`

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "posctl"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "posctl",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var cmdErr error
	switch os.Args[1] {
	case "convert":
		cmdErr = runConvert(ctx, logg, os.Args[2:])
	case "report":
		cmdErr = runReport(ctx, logg, cfg, os.Args[2:])
	case "sales":
		cmdErr = runSales(ctx, logg, cfg, os.Args[2:])
	case "receipt":
		cmdErr = runReceipt(ctx, logg, cfg, os.Args[2:])
	case "sell":
		cmdErr = runSell(ctx, logg, cfg, os.Args[2:])
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	if cmdErr != nil {
		logg.Error(ctx, "command failed", cmdErr)
		os.Exit(1)
	}
}

// runConvert is the local-file import/export path: it reads a catalog
// in whatever format its extension implies and writes it back out in
// the destination's format.
func runConvert(ctx context.Context, logg *logger.Logger, args []string) error {
	flags := flag.NewFlagSet("convert", flag.ExitOnError)
	from := flags.String("from", "", "source catalog file")
	to := flags.String("to", "", "destination catalog file")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *from == "" || *to == "" {
		return fmt.Errorf("convert requires --from and --to")
	}

	store := catalog.NewStore()
	if err := store.Load(ctx, *from); err != nil {
		return err
	}
	if err := store.SaveTo(ctx, *to); err != nil {
		return err
	}

	ctx = logg.WithCatalogPath(ctx, *to)
	logg.Info(ctx, fmt.Sprintf("converted %d items", store.Len()))
	return nil
}

func runReport(ctx context.Context, logg *logger.Logger, cfg *config.Config, args []string) error {
	flags := flag.NewFlagSet("report", flag.ExitOnError)
	path := flags.String("ledger", cfg.Till.LedgerPath, "ledger file to aggregate")
	top := flags.Int("top", 5, "number of top items to show")
	if err := flags.Parse(args); err != nil {
		return err
	}

	report, err := reporting.FromFile(*path)
	if err != nil {
		return err
	}

	symbol := cfg.Till.CurrencySymbol
	fmt.Printf("Transactions: %d\n", report.Transactions)
	fmt.Printf("Revenue:      %s%s\n", symbol, report.Revenue.StringFixed(2))

	fmt.Println("\nTop items:")
	for idx, entry := range report.TopItems {
		if idx >= *top {
			break
		}
		fmt.Printf("  %-25s %d\n", entry.Name, entry.Qty)
	}

	fmt.Println("\nBy kind:")
	for kind, qty := range report.ByKind {
		fmt.Printf("  %-25s %d\n", kind, qty)
	}

	fmt.Println("\nBy day:")
	for _, day := range report.ByDay {
		fmt.Printf("  %s  %s%s\n", day.Day, symbol, day.Total.StringFixed(2))
	}

	logg.Debug(logg.WithLedgerPath(ctx, *path), "report rendered")
	return nil
}

func runSales(ctx context.Context, logg *logger.Logger, cfg *config.Config, args []string) error {
	flags := flag.NewFlagSet("sales", flag.ExitOnError)
	path := flags.String("ledger", cfg.Till.LedgerPath, "ledger file to list")
	if err := flags.Parse(args); err != nil {
		return err
	}

	sales, err := ledger.Read(*path)
	if err != nil {
		return err
	}
	for _, sale := range sales {
		fmt.Printf("%s  %s  %d lines  total %s%s\n",
			sale.ID,
			sale.Timestamp.Format("2006-01-02 15:04:05"),
			len(sale.Lines),
			cfg.Till.CurrencySymbol,
			sale.Total.StringFixed(2),
		)
	}

	logg.Debug(logg.WithLedgerPath(ctx, *path), fmt.Sprintf("listed %d sales", len(sales)))
	return nil
}

func runReceipt(ctx context.Context, logg *logger.Logger, cfg *config.Config, args []string) error {
	flags := flag.NewFlagSet("receipt", flag.ExitOnError)
	path := flags.String("ledger", cfg.Till.LedgerPath, "ledger file to search")
	saleID := flags.String("sale", "", "sale id to re-print")
	out := flags.String("out", "", "write the receipt to a file instead of stdout")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *saleID == "" {
		return fmt.Errorf("receipt requires --sale")
	}

	sales, err := ledger.Read(*path)
	if err != nil {
		return err
	}
	for i := range sales {
		if sales[i].ID.String() != *saleID {
			continue
		}
		if *out != "" {
			if err := receipt.Write(&sales[i], *out); err != nil {
				return err
			}
			logg.Info(logg.WithSaleID(ctx, *saleID), "receipt written to "+*out)
			return nil
		}
		fmt.Println(receipt.Format(&sales[i]))
		return nil
	}
	return fmt.Errorf("sale %s not found in %s", *saleID, *path)
}

// runSell is the end-to-end path: load the catalog, ring up the
// requested items, check out, print the receipt. Each --item takes
// id=qty; qty defaults to 1 when omitted.
func runSell(ctx context.Context, logg *logger.Logger, cfg *config.Config, args []string) error {
	flags := flag.NewFlagSet("sell", flag.ExitOnError)
	items := flags.StringSlice("item", nil, "item to sell, as id or id=qty (repeatable)")
	tendered := flags.String("tendered", "", "cash tendered")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if len(*items) == 0 {
		return fmt.Errorf("sell requires at least one --item")
	}
	if *tendered == "" {
		return fmt.Errorf("sell requires --tendered")
	}
	cash, err := decimal.NewFromString(*tendered)
	if err != nil {
		return fmt.Errorf("parse tendered amount: %w", err)
	}

	store := catalog.NewStore()
	if err := store.Load(ctx, cfg.Till.CatalogPath); err != nil {
		return err
	}

	crt := cart.New()
	for _, entry := range *items {
		id, qty, err := parseItemArg(entry)
		if err != nil {
			return err
		}
		item, err := store.Get(id)
		if err != nil {
			return err
		}
		if err := crt.Add(item, qty); err != nil {
			return err
		}
	}

	svc, err := checkout.NewService(checkout.Config{
		TaxRate:     cfg.Till.TaxRate,
		LedgerPath:  cfg.Till.LedgerPath,
		CatalogPath: cfg.Till.CatalogPath,
	}, logg, nil)
	if err != nil {
		return err
	}

	sale, err := svc.Checkout(ctx, crt, store, cash)
	if sale != nil {
		fmt.Println(receipt.Format(sale))
	}
	return err
}

func parseItemArg(arg string) (string, int, error) {
	id, qtyPart, found := strings.Cut(arg, "=")
	if id == "" {
		return "", 0, fmt.Errorf("empty item id in %q", arg)
	}
	if !found {
		return id, 1, nil
	}
	qty, err := strconv.Atoi(qtyPart)
	if err != nil || qty <= 0 {
		return "", 0, fmt.Errorf("bad quantity in %q", arg)
	}
	return id, qty, nil
}
