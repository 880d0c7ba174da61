package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/signhoff/7-ETF-Strategies/internal/models"
)

type BarRepository struct {
	db *gorm.DB
}

// NewBarRepository creates a new instance of BarRepository
func NewBarRepository(db *gorm.DB) *BarRepository {
	return &BarRepository{db: db}
}

// CreateBatch inserts bars, silently skipping (symbol, date) duplicates so
// backfills can overlap the cached range.
func (r *BarRepository) CreateBatch(bars []models.Bar) error {
	if len(bars) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&bars).Error
}

// GetDailyBars returns the cached bars for a symbol within [start, end],
// ordered by date ascending.
func (r *BarRepository) GetDailyBars(symbol string, start, end time.Time) ([]models.Bar, error) {
	if symbol == "" {
		return nil, errors.New("invalid symbol")
	}
	var bars []models.Bar
	err := r.db.Where("symbol = ? AND date BETWEEN ? AND ?", symbol, start, end).
		Order("date ASC").
		Find(&bars).Error
	return bars, err
}

// GetAllBars returns every cached bar for a symbol, ordered by date ascending.
func (r *BarRepository) GetAllBars(symbol string) ([]models.Bar, error) {
	if symbol == "" {
		return nil, errors.New("invalid symbol")
	}
	var bars []models.Bar
	err := r.db.Where("symbol = ?", symbol).
		Order("date ASC").
		Find(&bars).Error
	return bars, err
}

// LatestDate returns the most recent cached bar date for a symbol, or the
// zero time when nothing is cached.
func (r *BarRepository) LatestDate(symbol string) (time.Time, error) {
	var bar models.Bar
	err := r.db.Where("symbol = ?", symbol).
		Order("date DESC").
		First(&bar).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, nil
	}
	return bar.Date, err
}
