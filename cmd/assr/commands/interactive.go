package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/assr-bot/assr/internal/store"
	"github.com/assr-bot/assr/internal/ui"
)

func runInteractive(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	console := appCtx.Console

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("the interactive menu needs a terminal; use `assr checkin` instead")
	}

	console.Clear()
	console.Banner()

	bearers, err := appCtx.Auth.AuthenticateAll(ctx, appCtx.Accounts)
	if err != nil {
		return err
	}

	console.Clear()
	console.Banner()
	console.Accounts(appCtx.Overview.Rows(ctx, bearers, appCtx.Accounts))

	console.Highlight("%d wallets loaded, %d authenticated", len(appCtx.Accounts), authenticated(bearers))

	prompter := ui.Prompter{}
	choice, err := prompter.Menu()
	if err != nil {
		return err
	}

	switch choice {
	case ui.ChoiceCheckIn:
		continuous, err := prompter.Confirm("Do you wish to perform check in constantly?")
		if err != nil {
			return err
		}
		if continuous {
			appCtx.StartStatusServer(ctx)
		}
		return appCtx.CheckIn.Run(ctx, &bearers, appCtx.Accounts, continuous)
	case ui.ChoiceUsernames:
		_, err := appCtx.Usernames.SetUsernames(ctx, bearers, appCtx.Accounts, prompter)
		return err
	default:
		console.Success("Exiting...")
		return nil
	}
}

func authenticated(t store.BearerTable) int {
	n := 0
	for i := range t {
		if t.Present(i) {
			n++
		}
	}
	return n
}
