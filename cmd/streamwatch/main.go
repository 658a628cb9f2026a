// streamwatch connects to the Bittrex push service and prints decoded
// events from one feed to the console.
// Usage: go run ./cmd/streamwatch --config configs/streamwatch.example.yaml --feed market
//
// The account feed requires API credentials in the config (or via the
// BITTREX_API_KEY / BITTREX_API_SECRET environment variables referenced
// from it).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tmalkov/bittrex-stream/bittrex"
	"github.com/tmalkov/bittrex-stream/internal/config"
	"github.com/tmalkov/bittrex-stream/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/streamwatch.example.yaml", "path to config file")
	feedName := flag.String("feed", "market", "feed to watch: market, summary, summary-lite, account")
	verbose := flag.Bool("verbose", false, "indent event JSON")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	socket := bittrex.NewSocket(
		bittrex.WithSocketURL(cfg.Socket.BaseURL),
		bittrex.WithSocketHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		bittrex.WithCredentials(cfg.API.Key, cfg.API.Secret),
		bittrex.WithSocketLogger(logger),
	)

	feed, err := openFeed(ctx, socket, *feedName, cfg.Markets)
	if err != nil {
		logger.Error("failed to open feed", "feed", *feedName, "error", err)
		os.Exit(1)
	}

	go func() {
		<-sigCh
		logger.Info("received shutdown signal")
		feed.Close()
		cancel()
	}()

	logger.Info("streaming started - press Ctrl+C to stop", "feed", *feedName)

	for event := range feed.Events() {
		printEvent(event, *verbose)
	}

	// There is no reconnect policy: any terminal error ends the process.
	if err := feed.Err(); err != nil {
		logger.Error("feed terminated", "error", err)
		os.Exit(1)
	}
	logger.Info("feed closed")
}

func openFeed(ctx context.Context, socket *bittrex.Socket, name string, markets []string) (*bittrex.Feed, error) {
	switch name {
	case "market":
		if len(markets) == 0 {
			return nil, fmt.Errorf("the market feed needs at least one market in the config")
		}
		return socket.ListenMarket(ctx, markets)
	case "summary":
		return socket.ListenSummary(ctx)
	case "summary-lite":
		return socket.ListenSummaryLite(ctx)
	case "account":
		return socket.ListenAccount(ctx)
	default:
		return nil, fmt.Errorf("unknown feed %q", name)
	}
}

func printEvent(event any, verbose bool) {
	var data []byte
	if verbose {
		data, _ = json.MarshalIndent(event, "", "  ")
	} else {
		data, _ = json.Marshal(event)
	}
	fmt.Printf("[EVENT] %s\n", data)
}
