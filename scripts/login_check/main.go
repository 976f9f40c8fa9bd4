package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/assr-bot/assr/internal/config"
	"github.com/assr-bot/assr/internal/incentive"
	"github.com/assr-bot/assr/internal/signer"
	"github.com/assr-bot/assr/internal/store"
)

// Logs in with a single wallet without touching bearers.json.
func main() {
	index := flag.Int("account", 0, "zero-based index into the wallets file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	accounts, err := store.LoadWallets(cfg.Files.Wallets)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if *index < 0 || *index >= len(accounts) {
		log.Fatalf("account index %d out of range (have %d wallets)", *index, len(accounts))
	}
	acc := accounts[*index]

	client := incentive.NewClient(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	message, err := client.GetLoginMessage(ctx)
	if err != nil {
		log.Fatalf("get_message failed: %v", err)
	}
	signature, err := signer.Sign(acc.PrivateKey, message)
	if err != nil {
		log.Fatalf("signing failed: %v", err)
	}
	token, err := client.Login(ctx, acc.Wallet, message, signature)
	if err != nil {
		log.Fatalf("login failed: %v", err)
	}

	if exp, ok := incentive.TokenExpiry(token); ok {
		fmt.Printf("Login succeeded for %s (token expires %s).\n", acc.Wallet, exp.Format(time.RFC3339))
		return
	}
	fmt.Printf("Login succeeded for %s.\n", acc.Wallet)
}
