/**
 * @description
 * Entry point of the ASSR check-in bot CLI.
 * Without arguments it runs the interactive menu; see `assr --help`.
 */

package main

import (
	"os"

	"github.com/assr-bot/assr/cmd/assr/commands"
	"github.com/assr-bot/assr/internal/logger"
)

func main() {
	err := commands.Execute()
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
