package commands

import (
	"context"
	"fmt"

	"github.com/wonny/advisor/internal/providers/fundamentals"
	"github.com/wonny/advisor/internal/providers/news"
	"github.com/wonny/advisor/internal/providers/yahoo"
	"github.com/wonny/advisor/internal/recommend"
	"github.com/wonny/advisor/pkg/config"
	"github.com/wonny/advisor/pkg/database"
	"github.com/wonny/advisor/pkg/logger"
	"github.com/wonny/advisor/pkg/redis"
)

// deps holds the wired pipeline shared by all commands
type deps struct {
	cfg          *config.Config
	logger       *logger.Logger
	redis        *redis.Client
	db           *database.DB
	orchestrator *recommend.Orchestrator
	repo         *recommend.Repository
}

// initDeps wires config, logger, cache, providers and the
// orchestrator. The database is optional: when withDB is false or the
// connection fails, persistence-backed features are simply disabled.
func initDeps(withDB bool) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	redisClient, err := redis.New(cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, running without cache")
		redisClient = redis.Disabled()
	}

	priceProvider := yahoo.NewProvider(cfg, redis.NewCache(redisClient, "yahoo"), log)
	fundProvider := fundamentals.NewProvider(cfg, redis.NewCache(redisClient, "fund"), log)
	newsProvider := news.NewProvider(cfg, redis.NewCache(redisClient, "news"), log)

	orch := recommend.NewOrchestrator(priceProvider, fundProvider, newsProvider, recommend.Options{
		HistoryDays:   cfg.Yahoo.HistoryDays,
		Workers:       cfg.Analysis.Workers,
		MinConfidence: cfg.Analysis.MinConfidence,
		SymbolTimeout: cfg.Analysis.SymbolTimeout,
	}, log)

	d := &deps{
		cfg:          cfg,
		logger:       log,
		redis:        redisClient,
		orchestrator: orch,
	}

	if withDB {
		db, err := database.New(cfg)
		if err != nil {
			log.WithError(err).Warn("Database unavailable, persistence disabled")
		} else {
			repo := recommend.NewRepository(db, log)
			if err := repo.EnsureSchema(context.Background()); err != nil {
				return nil, err
			}
			d.db = db
			d.repo = repo
		}
	}

	return d, nil
}

// Close releases the connections initDeps opened
func (d *deps) Close() {
	if d.db != nil {
		d.db.Close()
	}
	if d.redis != nil {
		_ = d.redis.Close()
	}
}
