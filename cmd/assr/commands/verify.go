package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/assr-bot/assr/internal/signer"
)

// verifyCmd checks wallets.json offline: every key must decode to 64 bytes and
// derive the listed wallet address.
func verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check that every private key matches its wallet address",
		RunE: func(cmd *cobra.Command, args []string) error {
			console := appCtx.Console
			bad := 0
			for _, acc := range appCtx.Accounts {
				pub, err := signer.PublicKey(acc.PrivateKey)
				switch {
				case err != nil:
					bad++
					console.Failure("Account %d: %v", acc.ID, err)
				case pub != acc.Wallet:
					bad++
					console.Failure("Account %d: key belongs to %s, not %s", acc.ID, pub, acc.Wallet)
				default:
					console.Success("Account %d: %s", acc.ID, acc.Wallet)
				}
			}
			if bad > 0 {
				return fmt.Errorf("%d of %d wallets failed verification", bad, len(appCtx.Accounts))
			}
			return nil
		},
	}
}
