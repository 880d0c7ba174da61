package handlers

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/signhoff/7-ETF-Strategies/internal/models"
	"github.com/signhoff/7-ETF-Strategies/internal/repositories"
)

// PortfolioHandler persists live position state between daily scans.
type PortfolioHandler struct {
	portfolioRepo *repositories.PortfolioRepository
	log           zerolog.Logger
}

func NewPortfolioHandler(portfolioRepo *repositories.PortfolioRepository, log zerolog.Logger) *PortfolioHandler {
	return &PortfolioHandler{portfolioRepo: portfolioRepo, log: log}
}

// Load returns the live portfolio keyed by (ticker, strategy) for the scanner.
func (h *PortfolioHandler) Load() (map[string]*models.Position, error) {
	return h.portfolioRepo.FindAll()
}

// Record stores the open position after an entry or scale-in fill.
func (h *PortfolioHandler) Record(pos *models.Position) error {
	if !pos.IsOpen() {
		return errors.New("cannot record a flat position")
	}
	entry := &models.PortfolioEntry{
		Symbol:          pos.Ticker,
		StrategyID:      pos.StrategyID,
		Side:            pos.Side,
		EntryDate:       pos.Tranches[0].EntryDate,
		FirstEntryPrice: pos.FirstEntryPrice(),
		LastEntryPrice:  pos.LastEntryPrice(),
		TranchesFilled:  len(pos.Tranches),
		TotalFraction:   pos.TotalFraction(),
	}
	return h.portfolioRepo.Upsert(entry)
}

// Clear removes the live entry after an exit.
func (h *PortfolioHandler) Clear(symbol string, strategyID models.StrategyID) error {
	h.log.Debug().Str("symbol", symbol).Str("strategy", string(strategyID)).Msg("clearing live position")
	return h.portfolioRepo.Delete(symbol, strategyID)
}
