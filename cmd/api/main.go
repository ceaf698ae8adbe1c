package main

import (
	"context"

	"github.com/alibomaye27/yourvoice/internal/cache"
	"github.com/alibomaye27/yourvoice/internal/config"
	"github.com/alibomaye27/yourvoice/internal/database"
	"github.com/alibomaye27/yourvoice/internal/gemini"
	"github.com/alibomaye27/yourvoice/internal/handler"
	"github.com/alibomaye27/yourvoice/internal/logger"
	"github.com/alibomaye27/yourvoice/internal/repository"
	"github.com/alibomaye27/yourvoice/internal/screening"
	"github.com/alibomaye27/yourvoice/internal/vapi"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

type application struct {
	DB      *pgxpool.Pool
	Logger  *zap.Logger
	Config  *config.Config
	Handler *handler.Handler
}

func main() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, _ := logger.NewLogger(cfg.Env)
	defer log.Sync()
	sugar := log.Sugar()
	sugar.Infof("config loaded: %s", cfg)

	pool, err := database.Connect(ctx, cfg.DB.DSN, cfg.DB.MaxConns, cfg.DB.MaxConnLifetime)
	if err != nil {
		sugar.Fatal(err)
	}
	defer pool.Close()

	repo := repository.NewRepository(pool)

	// Webhook dedupe is optional; without Redis every delivery is processed
	// and the reconciler relies on idempotent updates alone.
	var dedupe screening.Deduper
	if cfg.Redis.Enabled() {
		rdb := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := cache.Ping(ctx, rdb); err != nil {
			sugar.Fatalf("redis ping failed: %v", err)
		}
		defer rdb.Close()
		dedupe = cache.NewDeduper(rdb, cfg.Vapi.DedupeTTL, log)
	} else {
		sugar.Warn("REDIS_ADDR not set, webhook deduplication disabled")
	}

	vapiClient := vapi.NewClient(cfg.Vapi.APIKey, cfg.Vapi.PhoneNumberID)

	var generator *gemini.Generator
	if cfg.Gemini.APIKey != "" {
		generator, err = gemini.NewGenerator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			sugar.Fatalf("gemini client init failed: %v", err)
		}
	} else {
		sugar.Warn("GEMINI_API_KEY not set, job generation disabled")
	}

	scheduler := screening.NewInjectionScheduler(log)
	newInjector := func(controlURL string) screening.DocumentInjector {
		return vapi.NewCallController(controlURL, log)
	}
	initiator := screening.NewInitiator(repo, vapiClient, scheduler, newInjector,
		cfg.Vapi.PhoneNumberID, cfg.Screening.InjectDelay, log)
	reconciler := screening.NewReconciler(repo, dedupe, scheduler, log)

	app := &application{
		DB:     pool,
		Logger: log,
		Config: cfg,
		Handler: &handler.Handler{
			Logger:     log,
			Repo:       repo,
			Initiator:  initiator,
			Reconciler: reconciler,
			Vapi:       vapiClient,
			Generator:  generator,
		},
	}

	if err := app.serve(); err != nil {
		sugar.Fatal(err)
	}
}
