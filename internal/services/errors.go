package services

import "errors"

var (
	// ErrMissingToken is reported for an account whose bearer slot is empty
	ErrMissingToken = errors.New("no access_token available")

	// ErrAlreadyCheckedIn is reported when the daily check-in was already claimed
	ErrAlreadyCheckedIn = errors.New("already checked in today")
)
