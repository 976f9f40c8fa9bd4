// Package signer produces the detached Ed25519 signatures the incentive API
// expects during login. Keys and signatures are base58 encoded, Solana style.
package signer

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

// ErrInvalidKeyLength is returned when a private key does not decode to
// exactly ed25519.PrivateKeySize bytes (32-byte seed + 32-byte public key).
var ErrInvalidKeyLength = errors.New("invalid secret key length")

// Sign returns the base58 signature of message under the base58 private key.
func Sign(privateKeyBase58, message string) (string, error) {
	key, err := decodeKey(privateKeyBase58)
	if err != nil {
		return "", err
	}
	sig := ed25519.Sign(key, []byte(message))
	return base58.Encode(sig), nil
}

// PublicKey returns the base58 public half of the private key, which for a
// Solana keypair is the wallet address.
func PublicKey(privateKeyBase58 string) (string, error) {
	key, err := decodeKey(privateKeyBase58)
	if err != nil {
		return "", err
	}
	return base58.Encode(key.Public().(ed25519.PublicKey)), nil
}

// Verify checks a base58 signature against a base58 public key.
func Verify(publicKeyBase58, message, signatureBase58 string) bool {
	pub, err := base58.Decode(publicKeyBase58)
	if err != nil || len(pub) != ed25519.PublicKeySize {
		return false
	}
	sig, err := base58.Decode(signatureBase58)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub), []byte(message), sig)
}

func decodeKey(privateKeyBase58 string) (ed25519.PrivateKey, error) {
	raw, err := base58.Decode(privateKeyBase58)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyLength, err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: got %d bytes, expected %d", ErrInvalidKeyLength, len(raw), ed25519.PrivateKeySize)
	}
	return ed25519.PrivateKey(raw), nil
}
