package counter

import (
	"context"

	"gorm.io/gorm"
)

const TypeEmployeeCode = "employee_code"

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error)
	PeekNextValue(ctx context.Context, companyID string, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetNextValue increments the per company counter atomically.
func (r *repository) GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error) {
	var nextValue int64

	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO company_counters (company_id, counter_type, last_value, updated_at)
		VALUES (?, ?, 1, now())
		ON CONFLICT (company_id, counter_type) DO UPDATE
		SET last_value = company_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, companyID, counterType).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}

// PeekNextValue returns the value GetNextValue would hand out, without
// reserving it.
func (r *repository) PeekNextValue(ctx context.Context, companyID string, counterType string) (int64, error) {
	var lastValue int64

	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(MAX(last_value), 0)
		FROM company_counters
		WHERE company_id = ? AND counter_type = ?
	`, companyID, counterType).Scan(&lastValue).Error

	if err != nil {
		return 0, err
	}

	return lastValue + 1, nil
}
