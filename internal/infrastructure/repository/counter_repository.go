package repository

import (
	"context"
	"fmt"

	domainRepo "github.com/sulayman101/puntrms/internal/domain/repository"
	"gorm.io/gorm"
)

type counterRepository struct {
	db *gorm.DB
}

// NewCounterRepository creates a new counter repository
func NewCounterRepository(db *gorm.DB) domainRepo.CounterRepository {
	return &counterRepository{db: db}
}

// Next increments the counter row and returns the new value in one
// statement, so concurrent allocations can never observe a stale read.
func (r *counterRepository) Next(ctx context.Context, name string) (int64, error) {
	var value int64
	err := r.db.WithContext(ctx).Raw(
		`UPDATE counters SET value = value + 1 WHERE name = ? RETURNING value`,
		name,
	).Scan(&value).Error
	if err != nil {
		return 0, err
	}
	if value == 0 {
		return 0, fmt.Errorf("counter %q is not seeded", name)
	}
	return value, nil
}
