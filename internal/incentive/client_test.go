package incentive_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/assr-bot/assr/internal/config"
	"github.com/assr-bot/assr/internal/incentive"
	"github.com/assr-bot/assr/internal/incentive/incentivetest"
	"github.com/assr-bot/assr/internal/signer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(url string) *incentive.Client {
	cfg := &config.Config{Incentive: config.IncentiveConfig{BaseURL: url, Timeout: 5 * time.Second}}
	return incentive.NewClient(cfg)
}

func login(t *testing.T, c *incentive.Client, wallet, key string) string {
	t.Helper()
	ctx := context.Background()
	msg, err := c.GetLoginMessage(ctx)
	require.NoError(t, err)
	sig, err := signer.Sign(key, msg)
	require.NoError(t, err)
	token, err := c.Login(ctx, wallet, msg, sig)
	require.NoError(t, err)
	return token
}

func TestLoginAndCheckInFlow(t *testing.T) {
	srv := incentivetest.NewServer()
	defer srv.Close()
	acc := srv.Seed(1)[0]
	c := newClient(srv.URL)
	ctx := context.Background()

	token := login(t, c, acc.Wallet, acc.PrivateKey)
	assert.NotEmpty(t, token)

	_, err := c.DailyCheckIn(ctx, token)
	require.NoError(t, err)

	profile, err := c.GetUser(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, profile.Points)
	assert.Equal(t, int64(100), *profile.Points)
	assert.Nil(t, profile.Username)

	_, err = c.DailyCheckIn(ctx, token)
	require.Error(t, err)
	assert.True(t, incentive.IsAlreadyCheckedIn(err))
	assert.Equal(t, http.StatusBadRequest, incentive.StatusCode(err))
}

func TestLoginRejectsReusedChallenge(t *testing.T) {
	srv := incentivetest.NewServer()
	defer srv.Close()
	acc := srv.Seed(1)[0]
	c := newClient(srv.URL)
	ctx := context.Background()

	msg, err := c.GetLoginMessage(ctx)
	require.NoError(t, err)
	sig, err := signer.Sign(acc.PrivateKey, msg)
	require.NoError(t, err)

	_, err = c.Login(ctx, acc.Wallet, msg, sig)
	require.NoError(t, err)

	_, err = c.Login(ctx, acc.Wallet, msg, sig)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, incentive.StatusCode(err))
}

func TestLoginRejectsForeignSignature(t *testing.T) {
	srv := incentivetest.NewServer()
	defer srv.Close()
	acc := srv.Seed(1)[0]
	other := incentivetest.NewAccount(9)
	c := newClient(srv.URL)
	ctx := context.Background()

	msg, err := c.GetLoginMessage(ctx)
	require.NoError(t, err)
	sig, err := signer.Sign(other.PrivateKey, msg)
	require.NoError(t, err)

	_, err = c.Login(ctx, acc.Wallet, msg, sig)
	assert.Equal(t, http.StatusUnauthorized, incentive.StatusCode(err))
}

func TestSetUserInfo(t *testing.T) {
	srv := incentivetest.NewServer()
	defer srv.Close()
	acc := srv.Seed(1)[0]
	c := newClient(srv.URL)
	token := login(t, c, acc.Wallet, acc.PrivateKey)

	profile, err := c.SetUserInfo(context.Background(), token, "farmer01")
	require.NoError(t, err)
	require.NotNil(t, profile.Username)
	assert.Equal(t, "farmer01", *profile.Username)
	assert.Equal(t, "farmer01", srv.User(acc.Wallet).Username)
}

func TestUnauthorizedIsAPIError(t *testing.T) {
	srv := incentivetest.NewServer()
	defer srv.Close()
	c := newClient(srv.URL)

	_, err := c.GetUser(context.Background(), "bogus")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, incentive.StatusCode(err))
	assert.False(t, incentive.IsAlreadyCheckedIn(err))
}

func TestTransportErrorIsNotAPIError(t *testing.T) {
	srv := incentivetest.NewServer()
	url := srv.URL
	srv.Close()

	_, err := newClient(url).GetLoginMessage(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, incentive.StatusCode(err))
}

func TestTokenExpiry(t *testing.T) {
	srv := incentivetest.NewServer()
	defer srv.Close()
	now := time.Now()

	live := srv.IssueToken("w", now.Add(time.Hour))
	dead := srv.IssueToken("w", now.Add(-time.Hour))

	exp, ok := incentive.TokenExpiry(live)
	require.True(t, ok)
	assert.WithinDuration(t, now.Add(time.Hour), exp, 2*time.Second)
	assert.False(t, incentive.TokenExpired(live, now))
	assert.True(t, incentive.TokenExpired(dead, now))

	_, ok = incentive.TokenExpiry("opaque-token")
	assert.False(t, ok)
	assert.False(t, incentive.TokenExpired("opaque-token", now))
}

func TestAPIErrorTruncatesOnRuneBoundary(t *testing.T) {
	body := strings.Repeat("é", 250)
	err := &incentive.APIError{Method: "POST", Path: "/x", StatusCode: 500, Body: body}

	msg := err.Error()
	assert.True(t, utf8.ValidString(msg))
	assert.True(t, strings.HasSuffix(msg, strings.Repeat("é", 200)+"..."))

	short := &incentive.APIError{Method: "GET", Path: "/y", StatusCode: 400, Body: "日本語"}
	assert.Equal(t, "GET /y: status 400: 日本語", short.Error())
}
