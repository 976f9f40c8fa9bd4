package store

import (
	"encoding/json"
	"fmt"
	"os"
)

// readJSON decodes the file at path into out. A missing file surfaces as
// os.ErrNotExist so callers can pick their own default.
func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// writeJSON replaces path with the two-space indented encoding of v. The bytes
// are staged in a sibling file and renamed over the target, so a crash leaves
// either the old table or the new one on disk.
func writeJSON(path string, v any, mode os.FileMode) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	data = append(data, '\n')

	staging := fmt.Sprintf("%s.%d.tmp", path, os.Getpid())
	_ = os.Remove(staging)
	if err := os.WriteFile(staging, data, mode); err != nil {
		_ = os.Remove(staging)
		return err
	}
	if err := os.Rename(staging, path); err != nil {
		_ = os.Remove(staging)
		return err
	}
	return nil
}
