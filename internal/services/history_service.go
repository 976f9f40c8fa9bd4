/**
 * @description
 * Check-in history recorder.
 * Persists every check-in result into PostgreSQL when DATABASE_URL is set.
 *
 * @dependencies
 * - gorm.io/gorm
 * - github.com/jackc/pgconn, github.com/jackc/pgx/v5/pgconn
 *
 * @notes
 * - (run_id, account_id) is unique, so replaying a result is a no-op.
 */

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/assr-bot/assr/internal/models"
	"github.com/jackc/pgconn"
	pgxconn "github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

type HistoryRecorder struct {
	DB *gorm.DB
}

func NewHistoryRecorder(db *gorm.DB) *HistoryRecorder {
	return &HistoryRecorder{DB: db}
}

// Migrate creates the history table
func (h *HistoryRecorder) Migrate() error {
	return h.DB.AutoMigrate(&models.CheckInRecord{})
}

// Record stores one result
func (h *HistoryRecorder) Record(ctx context.Context, res models.CheckInResult) error {
	err := h.DB.WithContext(ctx).Create(models.NewCheckInRecord(res)).Error
	if err == nil || isUniqueViolation(err) {
		return nil
	}
	return fmt.Errorf("insert checkin record: %w", err)
}

// Recent returns the latest records of a wallet, newest first
func (h *HistoryRecorder) Recent(ctx context.Context, wallet string, limit int) ([]models.CheckInRecord, error) {
	if limit <= 0 {
		limit = 30
	}
	var records []models.CheckInRecord
	err := h.DB.WithContext(ctx).
		Where("wallet = ?", wallet).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	// gorm's postgres driver reports errors through pgx v5
	var pgxErr *pgxconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code == pgUniqueViolation
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
