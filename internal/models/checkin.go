/**
 * @description
 * Check-in result and history models.
 * Maps CheckInRecord to the 'checkin_records' table in PostgreSQL.
 *
 * @dependencies
 * - gorm.io/gorm
 * - github.com/google/uuid
 */

package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CheckInStatus string

const (
	CheckInSuccess          CheckInStatus = "success"
	CheckInAlreadyPerformed CheckInStatus = "already_checked_in"
	CheckInMissingToken     CheckInStatus = "missing_token"
	CheckInFailed           CheckInStatus = "failed"
)

// CheckInResult is the outcome of one account in one check-in pass
type CheckInResult struct {
	RunID     uuid.UUID     `json:"run_id"`
	Index     int           `json:"index"`
	AccountID int           `json:"account_id"`
	Wallet    string        `json:"wallet"`
	Status    CheckInStatus `json:"status"`
	Username  string        `json:"username,omitempty"`
	Points    *int64        `json:"points,omitempty"`
	Streak    int           `json:"streak"`
	Error     string        `json:"error,omitempty"`
	At        time.Time     `json:"at"`
}

// PassSummary aggregates the results of one check-in pass
type PassSummary struct {
	RunID      uuid.UUID       `json:"run_id"`
	Cycle      int             `json:"cycle"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	Results    []CheckInResult `json:"results"`
}

// Count returns how many results have the given status
func (s *PassSummary) Count(status CheckInStatus) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}

// CheckInRecord persists a CheckInResult
type CheckInRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RunID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_checkin_run_account" json:"run_id"`
	AccountID int       `gorm:"not null;uniqueIndex:idx_checkin_run_account" json:"account_id"`
	Wallet    string    `gorm:"size:64;not null;index" json:"wallet"`
	Status    string    `gorm:"size:32;not null" json:"status"`
	Points    *int64    `json:"points"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name used by CheckInRecord
func (CheckInRecord) TableName() string {
	return "checkin_records"
}

// BeforeCreate ensures UUID is generated if not present
func (r *CheckInRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

// NewCheckInRecord converts a result into its persisted form
func NewCheckInRecord(res CheckInResult) *CheckInRecord {
	return &CheckInRecord{
		RunID:     res.RunID,
		AccountID: res.AccountID,
		Wallet:    res.Wallet,
		Status:    string(res.Status),
		Points:    res.Points,
		Message:   res.Error,
		CreatedAt: res.At,
	}
}

// FallbackName is the display name of an account without a username
func FallbackName(index int) string {
	return fmt.Sprintf("User %d", index+1)
}
