package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/signhoff/7-ETF-Strategies/internal/models"
)

type RunRepository struct {
	db *gorm.DB
}

// NewRunRepository creates a new instance of RunRepository
func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create persists one backtest summary
func (r *RunRepository) Create(run *models.BacktestRun) error {
	if run == nil {
		return errors.New("run cannot be nil")
	}
	return r.db.Create(run).Error
}

// FindBySymbol returns the stored summaries for a symbol, newest first
func (r *RunRepository) FindBySymbol(symbol string) ([]models.BacktestRun, error) {
	if symbol == "" {
		return nil, errors.New("invalid symbol")
	}
	var runs []models.BacktestRun
	err := r.db.Where("symbol = ?", symbol).
		Order("created_at DESC").
		Find(&runs).Error
	return runs, err
}
