package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/cache"
	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/config"
	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/dashboard"
	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/helpers"
	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/logging"
	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/sales"
	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/server"
	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/storage"
	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/surface"
)

// ============================================================================
// PIZZADASH CLI — pizza sales dashboard
// ============================================================================

const version = "1.0.0"

func main() {
	// ── Flags ─────────────────────────────────────────────────────────────
	filePath := flag.String("file", "", "Dataset path or s3://bucket/key (default $DATA_SOURCE)")
	months := flag.String("month", "", "Comma-separated months, or All (default All)")
	categories := flag.String("category", "", "Comma-separated pizza categories (default all)")
	sizes := flag.String("size", "", "Comma-separated pizza sizes (default all)")
	trendStr := flag.String("trend", "daily", "Trend granularity: daily, monthly")
	format := flag.String("format", "text", "Output format: json, pretty, text, csv")
	outFile := flag.String("out", "", "Write output to file instead of stdout")
	serve := flag.Bool("serve", false, "Serve the dashboard API over HTTP")
	addr := flag.String("addr", "", "HTTP listen address (default $HTTP_ADDR)")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `pizzadash — Pizza Sales Dashboard

Usage:
  pizzadash --file pizza_sales.xlsx
  pizzadash --file pizza_sales.csv --category Classic,Veggie --size L --format csv --out mix.csv
  pizzadash --file s3://datasets/pizza_sales.xlsx --month January,February --trend monthly
  pizzadash --serve --addr :8080

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Environment:
  DATA_SOURCE       Dataset location when --file is not given
  HTTP_ADDR         Listen address for --serve
  LOG_LEVEL         debug, info, warn, error
  LOG_FORMAT        json, text
  REDIS_URL         Render cache for --serve (in-memory when empty)
  CACHE_TTL         Render cache TTL, e.g. 5m
  CORS_ORIGINS      Comma-separated allowed origins
  S3_ENDPOINT, S3_REGION, S3_ACCESS_KEY, S3_SECRET_KEY

Formats:
  text      Human-readable report (default)
  json      Tabbed page document as JSON
  pretty    Pretty-printed JSON
  csv       Metrics and chart data as CSV (ready for Sheets/Excel)
`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("pizzadash %s\n", version)
		os.Exit(0)
	}

	// ── Config ────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		fatalf("Failed to load config: %v", err)
	}
	if *filePath != "" {
		cfg.DataSource = *filePath
	}
	if *addr != "" {
		cfg.HTTPAddr = *addr
	}
	if err := cfg.Validate(); err != nil {
		fatalf("Invalid config: %v", err)
	}

	log := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ── Load dataset ──────────────────────────────────────────────────────
	loc, err := storage.ParseURI(cfg.DataSource)
	if err != nil {
		fatalf("Invalid data source: %v", err)
	}
	fetcher := storage.NewFetcher(cfg.S3)
	err = sales.Init(func() ([]sales.RawRow, error) {
		data, err := fetcher.Fetch(ctx, loc)
		if err != nil {
			return nil, err
		}
		return helpers.Load(loc.Name(), data)
	})
	if err != nil {
		fatalf("Failed to load %s: %v", cfg.DataSource, err)
	}
	store, err := sales.Default()
	if err != nil {
		fatalf("%v", err)
	}
	log.Info("dataset loaded", "source", cfg.DataSource, "rows", store.Len())

	builder := dashboard.NewBuilder(dashboard.WithLogger(log))

	// ── Serve mode ────────────────────────────────────────────────────────
	if *serve {
		c, closeCache := openCache(ctx, cfg, log)
		defer closeCache()

		srv := server.New(server.Config{
			Store:       store,
			Builder:     builder,
			Cache:       c,
			Log:         log,
			CORSOrigins: cfg.CORSOrigins,
		})
		if err := srv.Run(ctx, cfg.HTTPAddr); err != nil {
			fatalf("HTTP server: %v", err)
		}
		return
	}

	// ── One-shot render ───────────────────────────────────────────────────
	trend, err := dashboard.ParseTrend(*trendStr)
	if err != nil {
		fatalf("%v", err)
	}

	st := store.DefaultFilterState()
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "month":
			st.Months = splitList(*months)
		case "category":
			st.Categories = splitList(*categories)
		case "size":
			st.Sizes = splitList(*sizes)
		}
	})

	d, err := builder.Build(ctx, store.Rows(), st, trend)
	if err != nil {
		fatalf("Failed to build dashboard: %v", err)
	}

	// ── Output writer ─────────────────────────────────────────────────────
	var writer io.Writer = os.Stdout
	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			fatalf("Failed to create output file: %v", err)
		}
		defer f.Close()
		writer = f
	}

	switch *format {
	case "csv":
		out := surface.NewCSV(writer)
		dashboard.Publish(d, out)
		if err := out.Flush(); err != nil {
			fatalf("Failed to write CSV: %v", err)
		}
	case "json", "pretty":
		page := surface.NewPage()
		dashboard.Publish(d, page)
		writeJSON(writer, page.Document(), *format)
	case "text":
		out := surface.NewConsole(writer)
		dashboard.Publish(d, out)
		if err := out.Flush(); err != nil {
			fatalf("Failed to write report: %v", err)
		}
	default:
		fatalf("Unknown format %q", *format)
	}
	if *outFile != "" {
		log.Info("output written", "path", *outFile, "format", *format)
	}
}

// openCache dials redis when configured and falls back to the in-memory
// cache otherwise, or when redis is unreachable.
func openCache(ctx context.Context, cfg config.Config, log *slog.Logger) (cache.Cache, func()) {
	if cfg.RedisURL == "" {
		return cache.NewMemory(cfg.CacheTTL), func() {}
	}
	r, err := cache.DialRedis(ctx, cfg.RedisURL, cfg.CacheTTL)
	if err != nil {
		log.Warn("redis unavailable, using in-memory cache", "err", err)
		return cache.NewMemory(cfg.CacheTTL), func() {}
	}
	log.Info("redis cache connected")
	return r, func() { _ = r.Close() }
}

// ============================================================================
// HELPERS
// ============================================================================

func writeJSON(w io.Writer, v interface{}, format string) {
	var out []byte
	var err error

	if format == "pretty" {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}

	if err != nil {
		fatalf("Failed to marshal output: %v", err)
	}
	fmt.Fprintln(w, string(out))
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
