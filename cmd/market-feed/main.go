package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-market-feed/internal/checkpoint"
	"github.com/pribylovaa/go-market-feed/internal/config"
	"github.com/pribylovaa/go-market-feed/internal/ebay"
	"github.com/pribylovaa/go-market-feed/internal/feed"
	"github.com/pribylovaa/go-market-feed/internal/models"
	"github.com/pribylovaa/go-market-feed/internal/pkg/lockfile"
	"github.com/pribylovaa/go-market-feed/internal/pkg/log"
	"github.com/pribylovaa/go-market-feed/internal/query"
	"github.com/pribylovaa/go-market-feed/internal/service"
	"github.com/pribylovaa/go-market-feed/internal/sources"
)

// Константы для определения окружения.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// Коды завершения: остановленный по квоте/бюджету запуск — успешный
// запуск с частичным прогрессом, поэтому тоже exitOK.
const (
	exitOK     = 0
	exitFatal  = 1
	exitLocked = 2
)

// При отсутствии предыдущего фида нижняя граница «изменено после» —
// сутки назад.
const defaultSinceWindow = 24 * time.Hour

func main() {
	var (
		configPath  string
		manualPath  string
		curatedPath string
		feedPath    string
		budgetMin   int
	)
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.StringVar(&manualPath, "searches", "", "file with search URLs, one per line")
	flag.StringVar(&curatedPath, "curated", "", "tab-separated file with search URLs and metadata")
	flag.StringVar(&feedPath, "feed", "", "Atom feed file to create or update")
	flag.IntVar(&budgetMin, "budget", 0, "wall-clock budget in minutes (0 = unlimited)")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	lg := setupLogger(cfg.Env).With(slog.String("run_id", uuid.NewString()))
	slog.SetDefault(lg)

	budget := cfg.Crawl.TimeBudget
	if budgetMin > 0 {
		budget = time.Duration(budgetMin) * time.Minute
	}

	os.Exit(run(cfg, lg, manualPath, curatedPath, feedPath, budget))
}

func run(cfg *config.Config, lg *slog.Logger, manualPath, curatedPath, feedPath string, budget time.Duration) int {
	lg.Info("starting market-feed",
		"env", cfg.Env,
		slog.Duration("budget", budget),
	)

	if feedPath == "" {
		lg.Error("feed_path_required")
		return exitFatal
	}

	lock, err := lockfile.Acquire(cfg.Crawl.LockPath)
	if err != nil {
		if errors.Is(err, lockfile.ErrLocked) {
			lg.Warn("instance_already_running", slog.String("path", cfg.Crawl.LockPath))
			return exitLocked
		}
		lg.Error("lock_failed", slog.String("err", err.Error()))
		return exitFatal
	}
	defer lock.Release()

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()
	ctx := log.Into(rootCtx, lg)

	now := time.Now().UTC()

	prev, err := feed.ReadFile(feedPath)
	if err != nil {
		lg.Error("previous_feed_unreadable", slog.String("err", err.Error()))
		return exitFatal
	}
	since := prev.LastUpdated(now.Add(-defaultSinceWindow))

	queries, err := sources.Load(manualPath, curatedPath)
	if err != nil {
		lg.Error("queries_load_failed", slog.String("err", err.Error()))
		return exitFatal
	}
	if len(queries) == 0 {
		lg.Warn("no_queries_configured")
	}

	client := ebay.New(cfg.API, nil)
	builder := feed.NewBuilder(cfg.Feed, now)
	svc := service.New(
		ebaySource{client: client},
		checkpoint.New(cfg.Crawl.CheckpointPath),
		budget,
	)

	report, err := svc.Crawl(ctx, queries, since, builder)
	if err != nil {
		lg.Error("crawl_failed", slog.String("err", err.Error()))
		return exitFatal
	}

	builder.MergePrevious(prev)

	if err := builder.WriteFile(feedPath); err != nil {
		lg.Error("feed_write_failed", slog.String("err", err.Error()))
		return exitFatal
	}

	lg.Info("run_finished",
		slog.Bool("completed", report.Completed),
		slog.String("halt_reason", string(report.HaltReason)),
		slog.Int("queries_processed", report.QueriesProcessed),
		slog.Int("queries_skipped", report.QueriesSkipped),
		slog.Int("queries_failed", report.QueriesFailed),
		slog.Int("items", report.Items),
		slog.Int("feed_entries", builder.Len()),
		slog.Int("api_calls", client.Calls()),
	)

	return exitOK
}

// ebaySource адаптирует *ebay.Client к service.Source (конкретный
// итератор — к интерфейсному типу).
type ebaySource struct {
	client *ebay.Client
}

func (s ebaySource) Search(ctx context.Context, params query.SearchParams, q models.SearchQuery) service.Results {
	return s.client.Search(ctx, params, q)
}

// setupLogger настраивает slog по окружению.
func setupLogger(env string) *slog.Logger {
	var lg *slog.Logger

	switch env {
	case envLocal:
		lg = slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		lg = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		lg = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		lg = slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}

	return lg
}
