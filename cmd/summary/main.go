package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/vncsmyrnk/boulder/internal/app"
	"github.com/vncsmyrnk/boulder/internal/config"
	"github.com/vncsmyrnk/boulder/internal/logging"
)

// Prints the current week's compact summary, or the all-time stats with
// -stats, straight from the configured store.
func main() {
	var showStats bool
	flag.BoolVar(&showStats, "stats", false, "Print the points table as JSON instead of the summary")
	flag.Parse()

	cfg, envErr := config.Load()
	if envErr != nil {
		log.Println("No .env file found")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	// Keep stdout for the summary itself.
	if err := logging.BootstrapLogger("warn", cfg.Log.Format); err != nil {
		log.Fatal(err)
	}
	logging.Log.SetOutput(os.Stderr)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, err := app.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	svc, err := app.NewServices(cfg, store)
	if err != nil {
		log.Fatal(err)
	}

	if showStats {
		stats, err := svc.Votes.Stats(ctx)
		if err != nil {
			log.Fatalf("Error computing stats: %v", err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(stats); err != nil {
			log.Fatal(err)
		}
		return
	}

	view, err := svc.Votes.Leading(ctx)
	if err != nil {
		log.Fatalf("Error building summary: %v", err)
	}
	fmt.Println(view.Compact)
}
