/**
 * @description
 * HTTP Client for the Assisterr incentive API.
 * Wraps login challenge, login, profile, daily check-in and profile update.
 *
 * @dependencies
 * - net/http
 * - encoding/json
 * - internal/config
 *
 * @notes
 * - Every call is a single request/response; retries are the caller's concern.
 * - Non-2xx responses are returned as *APIError so callers can branch on status.
 */

package incentive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/assr-bot/assr/internal/config"
	"github.com/assr-bot/assr/internal/models"
)

const (
	DefaultTimeout = 15 * time.Second

	loginMessagePath = "/incentive/auth/login/get_message/"
	loginPath        = "/incentive/auth/login/"
	userInfoPath     = "/incentive/users/me/"
	checkInPath      = "/incentive/users/me/daily_points/"
	setUserInfoPath  = "/incentive/users/me/set_info/"

	// DefaultAvatar is sent with every username update
	DefaultAvatar = "https://avataaars.io/?accessoriesType=Wayfarers&avatarStyle=Circle&clotheColor=PastelRed&clotheType=Overall&eyeType=Hearts&eyebrowType=FlatNatural&facialHairColor=BrownDark&facialHairType=Blank&hairColor=Red&hatColor=Heather&mouthType=Twinkle&skinColor=Black&topType=LongHairFrida"
)

// APIError is any non-2xx response from the incentive API
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	body := truncate(strings.TrimSpace(e.Body), maxErrorBody)
	if body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, body)
}

const maxErrorBody = 200

// truncate cuts s to at most n runes
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

// StatusCode extracts the HTTP status from an *APIError, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsAlreadyCheckedIn reports whether a check-in error is the daily cooldown.
// The service answers 400 for a repeated check-in; other validation errors may
// share that status, so this is a heuristic.
func IsAlreadyCheckedIn(err error) bool {
	return StatusCode(err) == http.StatusBadRequest
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	timeout := cfg.Incentive.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL: cfg.Incentive.BaseURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// LoginRequest is the body of POST /incentive/auth/login/
type LoginRequest struct {
	Key       string `json:"key"`
	Message   string `json:"message"`
	Signature string `json:"signature"`
}

// LoginResponse carries the access token; other fields are ignored.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// SetUserInfoRequest is the body of POST /incentive/users/me/set_info/
type SetUserInfoRequest struct {
	Avatar   string `json:"avatar"`
	Username string `json:"username"`
}

// GetLoginMessage fetches a fresh login challenge
func (c *Client) GetLoginMessage(ctx context.Context) (string, error) {
	body, err := c.do(ctx, http.MethodGet, loginMessagePath, "", nil)
	if err != nil {
		return "", err
	}

	// The challenge is served as a JSON string; tolerate a bare text body.
	var message string
	if err := json.Unmarshal(body, &message); err != nil {
		message = strings.TrimSpace(string(body))
	}
	if message == "" {
		return "", fmt.Errorf("empty login message")
	}
	return message, nil
}

// Login submits the signed challenge and returns the access token
func (c *Client) Login(ctx context.Context, key, message, signature string) (string, error) {
	body, err := c.do(ctx, http.MethodPost, loginPath, "", LoginRequest{
		Key:       key,
		Message:   message,
		Signature: signature,
	})
	if err != nil {
		return "", err
	}

	var resp LoginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to decode login response: %w", err)
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("login response has no access_token")
	}
	return resp.AccessToken, nil
}

// GetUser fetches the profile of the token's owner
func (c *Client) GetUser(ctx context.Context, bearer string) (*models.UserProfile, error) {
	body, err := c.do(ctx, http.MethodGet, userInfoPath, bearer, nil)
	if err != nil {
		return nil, err
	}

	var profile models.UserProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode user profile: %w", err)
	}
	return &profile, nil
}

// DailyCheckIn claims the daily points. The raw response is returned as-is.
func (c *Client) DailyCheckIn(ctx context.Context, bearer string) (json.RawMessage, error) {
	body, err := c.do(ctx, http.MethodPost, checkInPath, bearer, struct{}{})
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// SetUserInfo sets the username (and the default avatar)
func (c *Client) SetUserInfo(ctx context.Context, bearer, username string) (*models.UserProfile, error) {
	body, err := c.do(ctx, http.MethodPost, setUserInfoPath, bearer, SetUserInfoRequest{
		Avatar:   DefaultAvatar,
		Username: username,
	})
	if err != nil {
		return nil, err
	}

	var profile models.UserProfile
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &profile); err != nil {
			return nil, fmt.Errorf("failed to decode set_info response: %w", err)
		}
	}
	return &profile, nil
}

func (c *Client) do(ctx context.Context, method, path, bearer string, payload interface{}) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}
	return body, nil
}
