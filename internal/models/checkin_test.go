package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewCheckInRecord(t *testing.T) {
	points := int64(4200)
	at := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	res := CheckInResult{
		RunID:     uuid.New(),
		Index:     3,
		AccountID: 4,
		Wallet:    "Wallet4",
		Status:    CheckInAlreadyPerformed,
		Username:  "alice",
		Points:    &points,
		Streak:    2,
		Error:     "already checked in today",
		At:        at,
	}

	rec := NewCheckInRecord(res)
	assert.Equal(t, uuid.Nil, rec.ID, "assigned on create")
	assert.Equal(t, res.RunID, rec.RunID)
	assert.Equal(t, 4, rec.AccountID)
	assert.Equal(t, "Wallet4", rec.Wallet)
	assert.Equal(t, "already_checked_in", rec.Status)
	assert.Equal(t, &points, rec.Points)
	assert.Equal(t, "already checked in today", rec.Message)
	assert.Equal(t, at, rec.CreatedAt)
}

func TestCheckInRecordBeforeCreate(t *testing.T) {
	rec := NewCheckInRecord(CheckInResult{Status: CheckInSuccess})
	assert.NoError(t, rec.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, rec.ID)

	id := rec.ID
	assert.NoError(t, rec.BeforeCreate(nil))
	assert.Equal(t, id, rec.ID, "existing id kept")
}

func TestDisplayName(t *testing.T) {
	name := "bob"
	blank := "  "
	assert.Equal(t, "bob", (&UserProfile{Username: &name}).DisplayName(0))
	assert.Equal(t, "User 3", (&UserProfile{}).DisplayName(2))
	assert.False(t, (&UserProfile{Username: &blank}).HasUsername())
	assert.Equal(t, "User 1", (*UserProfile)(nil).DisplayName(0))
}
