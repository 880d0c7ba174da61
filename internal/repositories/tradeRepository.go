package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/signhoff/7-ETF-Strategies/internal/models"
)

type TradeRepository struct {
	db *gorm.DB
}

// NewTradeRepository creates a new instance of TradeRepository
func NewTradeRepository(db *gorm.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// Create adds a closed trade to the log
func (r *TradeRepository) Create(trade *models.Trade) error {
	if trade == nil {
		return errors.New("trade cannot be nil")
	}
	return r.db.Create(trade).Error
}

// CreateBatch persists a pair's trade log in one insert
func (r *TradeRepository) CreateBatch(trades []models.Trade) error {
	if len(trades) == 0 {
		return nil
	}
	return r.db.Create(&trades).Error
}

// FindByPair returns the closed trades for one (symbol, strategy), ordered by
// exit date
func (r *TradeRepository) FindByPair(symbol string, strategyID models.StrategyID) ([]models.Trade, error) {
	if symbol == "" {
		return nil, errors.New("invalid symbol")
	}
	var trades []models.Trade
	err := r.db.Where("symbol = ? AND strategy_id = ?", symbol, strategyID).
		Order("exit_date ASC").
		Find(&trades).Error
	return trades, err
}

// FindAll retrieves the whole trade log ordered by exit date
func (r *TradeRepository) FindAll() ([]models.Trade, error) {
	var trades []models.Trade
	err := r.db.Order("exit_date ASC").Find(&trades).Error
	return trades, err
}
