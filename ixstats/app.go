package ixstats

import (
	"context"
	"log/slog"

	"github.com/ixstats/engine/ixstats/atomic"
	"github.com/ixstats/engine/ixstats/clock"
	"github.com/ixstats/engine/ixstats/database"
	"github.com/ixstats/engine/ixstats/database/repositories"
	"github.com/ixstats/engine/ixstats/logger"
	"github.com/ixstats/engine/ixstats/market"
	"github.com/ixstats/engine/ixstats/policy"
)

// App wires the engine together: store, repositories, market, policy and
// synergy services, plus the background scheduler. The HTTP surface receives
// an *App and calls into the services.
type App struct {
	Cfg     Config
	Version string
	Commit  string

	DB                *database.DB
	Clock             clock.Clock
	Registry          atomic.Registry
	AuctionRepository repositories.AuctionRepository
	NationRepository  repositories.NationRepository
	CardRepository    repositories.CardRepository
	SynergyRepository repositories.SynergyRepository

	Market    *market.Manager
	Scheduler *market.Scheduler
	Policy    *policy.Service
	Synergy   *atomic.Calculator
}

func New(cfg Config, version string, commit string) *App {
	return &App{
		Cfg:     cfg,
		Version: version,
		Commit:  commit,
	}
}

// Setup connects the store and builds every service. The caller owns db
// lifetime via Shutdown.
func (a *App) Setup(ctx context.Context) error {
	db, err := database.New(ctx, a.Cfg.DB)
	if err != nil {
		return err
	}
	a.DB = db

	if err := db.InitializeSchema(ctx); err != nil {
		db.Close()
		return err
	}

	clk, err := a.Cfg.GameClock()
	if err != nil {
		db.Close()
		return err
	}
	a.Clock = clk

	a.AuctionRepository = repositories.NewAuctionRepository(db.BunDB())
	a.NationRepository = repositories.NewNationRepository(db.BunDB())
	a.CardRepository = repositories.NewCardRepository(db.BunDB())
	a.SynergyRepository = repositories.NewSynergyRepository(db.BunDB())

	a.Market = market.NewManager(a.AuctionRepository, a.CardRepository, a.Cfg.Market.Fees, clk)
	a.Scheduler = market.NewScheduler(a.Market, clk)

	registry := atomic.DefaultRegistry()
	a.Registry = registry
	a.Synergy = atomic.NewCalculator(registry, a.Cfg.Policy.Synergy)

	extractor := policy.NewExtractor(registry, a.Synergy, nil, nil)
	a.Policy = policy.NewService(
		db.BunDB(),
		a.NationRepository,
		a.SynergyRepository,
		extractor,
		policy.NewImpactCalculator(a.Cfg.Policy.Impact),
		clk,
	)

	logger.LogSystem("Engine services initialized", slog.String("version", a.Version))
	return nil
}

// Start launches background work: the auction expiry sweep.
func (a *App) Start() {
	a.Scheduler.Start()
}

func (a *App) Shutdown() {
	if a.Scheduler != nil {
		a.Scheduler.Shutdown()
	}
	if a.DB != nil {
		a.DB.Close()
	}
	logger.LogSystem("Engine shutdown completed")
}
