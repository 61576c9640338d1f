// Command total prints the current value of the item catalog.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"GearValue/internal/di"
	"GearValue/internal/usecase"
	"GearValue/pkg/config"
	"GearValue/pkg/metrics"
	"GearValue/pkg/util"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	breakdown := flag.Bool("breakdown", false, "print a subtotal per item")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	cat, err := di.ProvideCatalog(cfg)
	if err != nil {
		log.Fatalf("catalog load failed: %v", err)
	}
	client := di.ProvideWikiClient(cfg, di.ProvideHTTPClient(cfg), metrics.Nop{})
	uc := usecase.NewValuationUseCase(client, cat, metrics.Nop{})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, uc, *breakdown, os.Stdout); err != nil {
		log.Fatalf("total: %v", err)
	}
}

// run prints the catalog value. The figure counts an id once per item that
// lists it, matching the per-item subtotals printed with -breakdown.
func run(ctx context.Context, uc *usecase.ValuationUseCase, breakdown bool, w io.Writer) error {
	v, err := uc.Breakdown(ctx)
	if err != nil {
		return err
	}
	if !breakdown {
		_, err = fmt.Fprintln(w, util.FormatGrouped(v.Total.Raw))
		return err
	}
	for _, it := range v.Items {
		if _, err := fmt.Fprintf(w, "%-32s %s\n", it.Item, it.Subtotal.Formatted); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(w, "%-32s %s\n", "Total", v.Total.Formatted)
	return err
}
