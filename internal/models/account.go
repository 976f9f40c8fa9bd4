/**
 * @description
 * Account and remote profile models.
 *
 * @notes
 * - An Account's identity is its position in wallets.json; ID is only a display label.
 */

package models

import "strings"

// Account is one wallet entry of wallets.json
type Account struct {
	ID         int    `json:"id"`
	Wallet     string `json:"wallet"`
	PrivateKey string `json:"privateKey"` // base58, 64 bytes (seed + public key)
}

// UserProfile is the subset of GET /incentive/users/me/ we read.
// Username and Points are pointers because the service may return null.
type UserProfile struct {
	ID       string  `json:"id,omitempty"`
	Username *string `json:"username"`
	Points   *int64  `json:"points"`
	Avatar   string  `json:"avatar,omitempty"`
	Wallet   string  `json:"wallet,omitempty"`
}

// DisplayName returns the username, or "User N" (1-based) when none is set.
func (p *UserProfile) DisplayName(index int) string {
	if p != nil && p.Username != nil && *p.Username != "" {
		return *p.Username
	}
	return FallbackName(index)
}

// HasUsername reports whether a non-blank username is set
func (p *UserProfile) HasUsername() bool {
	return p != nil && p.Username != nil && strings.TrimSpace(*p.Username) != ""
}
