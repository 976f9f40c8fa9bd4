/**
 * @description
 * Wallet Store: loads the account list from wallets.json.
 *
 * @notes
 * - Only an unreadable or malformed file is a ConfigLoadError (fatal at startup).
 * - Entries are not validated here; a bad key fails that account's login only.
 */

package store

import (
	"errors"
	"fmt"

	"github.com/assr-bot/assr/internal/models"
)

// ErrConfigLoad wraps every failure to read or parse a local JSON file
var ErrConfigLoad = errors.New("failed to load local configuration")

// LoadWallets reads wallets.json
func LoadWallets(path string) ([]models.Account, error) {
	var accounts []models.Account
	if err := readJSON(path, &accounts); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigLoad, path, err)
	}
	return accounts, nil
}
