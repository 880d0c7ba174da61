package repositories

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/signhoff/7-ETF-Strategies/internal/models"
)

type PortfolioRepository struct {
	db *gorm.DB
}

// NewPortfolioRepository creates a new instance of PortfolioRepository
func NewPortfolioRepository(db *gorm.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

// Upsert writes the live position state for one (symbol, strategy)
func (r *PortfolioRepository) Upsert(entry *models.PortfolioEntry) error {
	if entry == nil {
		return errors.New("entry cannot be nil")
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}, {Name: "strategy_id"}},
		UpdateAll: true,
	}).Create(entry).Error
}

// Delete clears the live position for one (symbol, strategy) after an exit
func (r *PortfolioRepository) Delete(symbol string, strategyID models.StrategyID) error {
	if symbol == "" {
		return errors.New("invalid symbol")
	}
	return r.db.Where("symbol = ? AND strategy_id = ?", symbol, strategyID).
		Delete(&models.PortfolioEntry{}).Error
}

// Find returns the live entry for one (symbol, strategy), or nil when flat
func (r *PortfolioRepository) Find(symbol string, strategyID models.StrategyID) (*models.PortfolioEntry, error) {
	var entry models.PortfolioEntry
	err := r.db.Where("symbol = ? AND strategy_id = ?", symbol, strategyID).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindAll returns every live entry keyed for the scanner
func (r *PortfolioRepository) FindAll() (map[string]*models.Position, error) {
	var entries []models.PortfolioEntry
	if err := r.db.Find(&entries).Error; err != nil {
		return nil, err
	}
	portfolio := make(map[string]*models.Position, len(entries))
	for i := range entries {
		e := &entries[i]
		portfolio[e.Symbol+"_"+string(e.StrategyID)] = e.ToPosition()
	}
	return portfolio, nil
}
