package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/adshao/go-binance/v2"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/signhoff/7-ETF-Strategies/config"
	"github.com/signhoff/7-ETF-Strategies/internal/handlers"
	"github.com/signhoff/7-ETF-Strategies/internal/models"
	"github.com/signhoff/7-ETF-Strategies/internal/operations/backtest"
	"github.com/signhoff/7-ETF-Strategies/internal/operations/scanner"
	"github.com/signhoff/7-ETF-Strategies/internal/repositories"
	"github.com/signhoff/7-ETF-Strategies/internal/services/indicators"
	"github.com/signhoff/7-ETF-Strategies/internal/services/position"
	"github.com/signhoff/7-ETF-Strategies/internal/services/strategy"
	"github.com/signhoff/7-ETF-Strategies/internal/util"
)

func main() {
	var (
		tradingPath = flag.String("config", "trading.yaml", "trading configuration file")
		scanMode    = flag.Bool("scan", false, "run the daily scanner instead of a backtest")
		sync        = flag.Bool("sync", false, "backfill the bar cache from the exchange first")
		lookback    = flag.Int("lookback", 400, "days of history to backfill with -sync")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}
	log := util.NewLogger(cfg.LogLevel)

	trading, err := config.LoadTrading(*tradingPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load trading config")
	}

	db, err := openDatabase(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	if err := db.AutoMigrate(
		&models.Bar{},
		&models.Trade{},
		&models.PortfolioEntry{},
		&models.BacktestRun{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	barRepo := repositories.NewBarRepository(db)
	tradeRepo := repositories.NewTradeRepository(db)
	portfolioRepo := repositories.NewPortfolioRepository(db)
	runRepo := repositories.NewRunRepository(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		log.Info().Msg("shutting down...")
		cancel()
	}()

	client := binance.NewClient(cfg.Exchange.APIKey, cfg.Exchange.SecretKey)
	priceHandler := handlers.NewPriceHandler(client, barRepo, trading.Universe, log)
	if *sync {
		if err := priceHandler.Sync(ctx, *lookback); err != nil {
			log.Fatal().Err(err).Msg("bar cache sync failed")
		}
	}

	series, err := priceHandler.LoadSeries()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load bar series")
	}
	if len(series) == 0 {
		log.Fatal().Msg("no bar data available; run with -sync first")
	}

	indicatorEngine := indicators.NewEngine(trading.TrendFilterWindow)
	strategyManager := strategy.NewStrategyManager(trading)
	positionManager := position.NewManager(log)

	if *scanMode {
		runScan(log, trading, indicatorEngine, strategyManager, portfolioRepo, series)
		return
	}

	engine := backtest.NewEngine(indicatorEngine, strategyManager, positionManager, backtest.Config{
		InitialEquity: trading.InitialEquity,
		MaxGapDays:    trading.MaxGapDays,
		Workers:       trading.Workers,
	}, log)

	results, err := engine.Run(ctx, series)
	if err != nil {
		log.Fatal().Err(err).Msg("backtest failed")
	}

	fmt.Println("\n=== Backtest Results ===")
	var (
		totalTrades   int
		winningTrades int
		totalPnL      float64
	)
	for _, pair := range results.Pairs {
		if err := tradeRepo.CreateBatch(pair.Trades); err != nil {
			log.Error().Err(err).Str("symbol", pair.Ticker).Msg("failed to persist trades")
		}
		if len(pair.EquityCurve) > 0 {
			run := models.BacktestRun{
				Symbol:      pair.Ticker,
				StrategyID:  pair.StrategyID,
				StartDate:   pair.EquityCurve[0].Date,
				EndDate:     pair.EquityCurve[len(pair.EquityCurve)-1].Date,
				TotalTrades: pair.TotalTrades,
				WinRate:     pair.WinRate,
				AveragePnL:  pair.AveragePnL,
				MaxDrawdown: pair.MaxDrawdown,
				FinalEquity: pair.FinalEquity,
				SharpeRatio: pair.SharpeRatio,
			}
			if err := runRepo.Create(&run); err != nil {
				log.Error().Err(err).Str("symbol", pair.Ticker).Msg("failed to persist run summary")
			}
		}

		totalTrades += pair.TotalTrades
		winningTrades += pair.WinningTrades
		totalPnL += pair.AveragePnL * float64(pair.TotalTrades)

		fmt.Printf("%-6s %-16s trades=%-3d winRate=%5.1f%% avgPnL=%8.2f maxDD=%8.2f sharpe=%5.2f",
			pair.Ticker, pair.StrategyID, pair.TotalTrades,
			pair.WinRate*100, pair.AveragePnL, pair.MaxDrawdown, pair.SharpeRatio)
		if pair.OpenPosition != nil {
			fmt.Printf("  [open %s x%d]", pair.OpenPosition.Side, len(pair.OpenPosition.Tranches))
		}
		fmt.Println()
	}

	if totalTrades > 0 {
		fmt.Printf("\nTotal: %d trades, %.1f%% winners, %8.2f total P&L\n",
			totalTrades, float64(winningTrades)/float64(totalTrades)*100, totalPnL)
	}
}

func runScan(
	log zerolog.Logger,
	trading *config.TradingConfig,
	indicatorEngine *indicators.Engine,
	strategyManager *strategy.StrategyManager,
	portfolioRepo *repositories.PortfolioRepository,
	series map[string][]models.Bar,
) {
	portfolioHandler := handlers.NewPortfolioHandler(portfolioRepo, log)
	portfolio, err := portfolioHandler.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load live portfolio")
	}

	daily := scanner.NewDailyScanner(indicatorEngine, strategyManager, log)
	rows, err := daily.Scan(series, portfolio)
	if err != nil {
		log.Fatal().Err(err).Msg("daily scan failed")
	}

	fmt.Println("\n=== Daily Scan ===")
	for _, row := range rows {
		if row.Status == scanner.StatusNoSignal {
			continue
		}
		fmt.Printf("%s %-6s %-16s %-12s price=%.2f %s",
			row.Date.Format("2006-01-02"), row.Symbol, row.StrategyID,
			row.Status, row.CurrentPrice, row.KeyIndicator)
		if row.SizeFraction > 0 {
			fmt.Printf("  size=%.2f", trading.Notional(row.SizeFraction))
		}
		fmt.Println()
	}
}

func openDatabase(dbConfig config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Error),
	}
	if dbConfig.Driver == "postgres" {
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			dbConfig.Host,
			dbConfig.Port,
			dbConfig.User,
			dbConfig.Password,
			dbConfig.DBName)
		return gorm.Open(postgres.Open(dsn), gormConfig)
	}
	return gorm.Open(sqlite.Open(dbConfig.Path), gormConfig)
}
