package commands

import (
	"github.com/spf13/cobra"
)

func checkInCmd() *cobra.Command {
	var continuous, skipAuth bool

	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Authenticate all wallets and perform the daily check-in",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			bearers, err := appCtx.LoadBearers(ctx)
			if err != nil {
				return err
			}
			if !skipAuth {
				if bearers, err = appCtx.Auth.AuthenticateAll(ctx, appCtx.Accounts); err != nil {
					return err
				}
			}

			if continuous {
				appCtx.StartStatusServer(ctx)
			}
			return appCtx.CheckIn.Run(ctx, &bearers, appCtx.Accounts, continuous)
		},
	}

	cmd.Flags().BoolVarP(&continuous, "continuous", "c", false, "repeat every CHECKIN_INTERVAL, re-authenticating before each cycle")
	cmd.Flags().BoolVar(&skipAuth, "skip-auth", false, "use the tokens already in the bearers file for the first pass")
	return cmd
}

func authCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Authenticate all wallets and rewrite the bearers file",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := appCtx.Auth.AuthenticateAll(cmd.Context(), appCtx.Accounts)
			return err
		},
	}
}

func accountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "Show the account table using the stored tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			bearers, err := appCtx.LoadBearers(ctx)
			if err != nil {
				return err
			}
			appCtx.Console.Accounts(appCtx.Overview.Rows(ctx, bearers, appCtx.Accounts))
			return nil
		},
	}
}
