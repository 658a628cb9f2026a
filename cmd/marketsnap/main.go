// marketsnap fetches a one-shot snapshot over the push service: the order
// book state of the configured markets, or the global market summary.
// Usage: go run ./cmd/marketsnap --config configs/streamwatch.example.yaml [--summary]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/tmalkov/bittrex-stream/bittrex"
	"github.com/tmalkov/bittrex-stream/internal/config"
)

func main() {
	configPath := flag.String("config", "configs/streamwatch.example.yaml", "path to config file")
	summary := flag.Bool("summary", false, "fetch the global market summary instead of order books")
	flag.Parse()

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))

	socket := bittrex.NewSocket(
		bittrex.WithSocketURL(cfg.Socket.BaseURL),
		bittrex.WithSocketHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		bittrex.WithSocketLogger(logger),
	)

	ctx := context.Background()

	var snapshot any
	if *summary {
		snapshot, err = socket.GetSummary(ctx)
	} else {
		if len(cfg.Markets) == 0 {
			logger.Error("no markets configured")
			os.Exit(1)
		}
		snapshot, err = socket.GetMarket(ctx, cfg.Markets)
	}
	if err != nil {
		logger.Error("snapshot failed", "error", err)
		os.Exit(1)
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		logger.Error("failed to render snapshot", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}
