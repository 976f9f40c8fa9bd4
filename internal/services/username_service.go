package services

import (
	"context"
	"strings"
	"time"

	"github.com/assr-bot/assr/internal/models"
	"github.com/assr-bot/assr/internal/store"
)

// UsernameService walks every authenticated account and lets the operator set
// or change its username.
type UsernameService struct {
	api      IncentiveAPI
	reporter Reporter
	clock    Clock
	delay    time.Duration
}

func NewUsernameService(api IncentiveAPI, reporter Reporter, clock Clock, delay time.Duration) *UsernameService {
	if clock == nil {
		clock = RealClock{}
	}
	return &UsernameService{api: api, reporter: reporter, clock: clock, delay: delay}
}

// SetUsernames returns the number of usernames changed
func (s *UsernameService) SetUsernames(ctx context.Context, bearers store.BearerTable, accounts []models.Account, prompter Prompter) (int, error) {
	changed := 0
	for i, acc := range accounts {
		ok, err := s.setOne(ctx, bearers.Get(i), acc, prompter)
		if err != nil {
			s.reporter.Failure("Error setting username for Wallet ID %d: %v", acc.ID, err)
			continue
		}
		if ok {
			changed++
		}
		if err := s.clock.Sleep(ctx, s.delay); err != nil {
			return changed, err
		}
	}
	return changed, nil
}

func (s *UsernameService) setOne(ctx context.Context, bearer string, acc models.Account, prompter Prompter) (bool, error) {
	if bearer == "" {
		return false, ErrMissingToken
	}

	profile, err := s.api.GetUser(ctx, bearer)
	if err != nil {
		return false, err
	}

	s.reporter.Info("Wallet ID: %d", acc.ID)
	title := "Enter a username for this wallet:"
	if profile.HasUsername() {
		s.reporter.Info("Current Username: %s", *profile.Username)
		change, err := prompter.Confirm("Do you want to change the username?")
		if err != nil {
			return false, err
		}
		if !change {
			s.reporter.Info("Skipping username update.")
			return false, nil
		}
		title = "Enter the new username:"
	}

	username, err := prompter.Input(title)
	if err != nil {
		return false, err
	}
	username = strings.TrimSpace(username)
	if username == "" {
		s.reporter.Warn("Username cannot be empty. Skipping...")
		return false, nil
	}

	if _, err := s.api.SetUserInfo(ctx, bearer, username); err != nil {
		return false, err
	}
	s.reporter.Success("Username set to %q for Wallet ID %d", username, acc.ID)
	return true, nil
}
