/**
 * @description
 * Bearer Store: one access token per account, positionally aligned with wallets.json.
 *
 * @notes
 * - The table is always written wholesale, never patched per slot.
 * - RedisBearerStore mirrors the same table under a single key so other
 *   processes can read the current tokens.
 */

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/assr-bot/assr/internal/logger"
	"github.com/redis/go-redis/v9"
)

// BearerTable holds one token per account; "" marks an absent or failed login.
type BearerTable []string

// Present reports whether slot i holds a token
func (t BearerTable) Present(i int) bool {
	return i >= 0 && i < len(t) && t[i] != ""
}

// Get returns the token at slot i, or "" when out of range
func (t BearerTable) Get(i int) string {
	if i < 0 || i >= len(t) {
		return ""
	}
	return t[i]
}

// Aligned returns a copy resized to n slots, padding with "".
func (t BearerTable) Aligned(n int) BearerTable {
	out := make(BearerTable, n)
	copy(out, t)
	return out
}

// BearerStore persists the bearer table
type BearerStore interface {
	Load(ctx context.Context) (BearerTable, error)
	Save(ctx context.Context, table BearerTable) error
}

// FileBearerStore keeps the table in bearers.json
type FileBearerStore struct {
	Path string
}

func NewFileBearerStore(path string) *FileBearerStore {
	return &FileBearerStore{Path: path}
}

// Load reads the table; a missing file yields an empty table.
func (s *FileBearerStore) Load(ctx context.Context) (BearerTable, error) {
	var table BearerTable
	if err := readJSON(s.Path, &table); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return BearerTable{}, nil
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigLoad, s.Path, err)
	}
	return table, nil
}

// Save overwrites bearers.json with the full table
func (s *FileBearerStore) Save(ctx context.Context, table BearerTable) error {
	if table == nil {
		table = BearerTable{}
	}
	if err := writeJSON(s.Path, table, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.Path, err)
	}
	return nil
}

// RedisBearerKey is where RedisBearerStore keeps the JSON encoded table
const RedisBearerKey = "assr:bearers"

// RedisBearerStore keeps the table as a JSON array under RedisBearerKey
type RedisBearerStore struct {
	client *redis.Client
	key    string
}

func NewRedisBearerStore(client *redis.Client) *RedisBearerStore {
	return &RedisBearerStore{client: client, key: RedisBearerKey}
}

func (s *RedisBearerStore) Load(ctx context.Context) (BearerTable, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return BearerTable{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}

	var table BearerTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.key, err)
	}
	return table, nil
}

// Save replaces the stored table. Tokens expire roughly daily, so no TTL is set;
// the next authentication pass overwrites them.
func (s *RedisBearerStore) Save(ctx context.Context, table BearerTable) error {
	if table == nil {
		table = BearerTable{}
	}
	data, err := json.Marshal(table)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

// MultiBearerStore writes to a primary store and best-effort mirrors.
// Loads only consult the primary.
type MultiBearerStore struct {
	Primary BearerStore
	Mirrors []BearerStore
}

func (s *MultiBearerStore) Load(ctx context.Context) (BearerTable, error) {
	return s.Primary.Load(ctx)
}

func (s *MultiBearerStore) Save(ctx context.Context, table BearerTable) error {
	if err := s.Primary.Save(ctx, table); err != nil {
		return err
	}
	for _, m := range s.Mirrors {
		if err := m.Save(ctx, table); err != nil {
			logger.Warn("bearer mirror write failed: %v", err)
		}
	}
	return nil
}
