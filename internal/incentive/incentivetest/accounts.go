package incentivetest

import (
	"crypto/ed25519"
	"crypto/rand"

	"github.com/assr-bot/assr/internal/models"
	"github.com/mr-tron/base58"
)

// NewAccount generates a fresh Solana-style keypair wrapped as an Account
func NewAccount(id int) models.Account {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		panic(err)
	}
	return models.Account{
		ID:         id,
		Wallet:     base58.Encode(pub),
		PrivateKey: base58.Encode(priv),
	}
}

// Seed registers n fresh accounts with the server and returns them in order
func (s *Server) Seed(n int) []models.Account {
	accounts := make([]models.Account, n)
	for i := range accounts {
		accounts[i] = NewAccount(i + 1)
		s.AddUser(User{Wallet: accounts[i].Wallet})
	}
	return accounts
}
