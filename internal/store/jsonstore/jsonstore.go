package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/idilsaglam/todolist/internal/model"
)

// JSON seed file shared between CLI invocations. Single file, human-readable.
// No locking; fine for a local single-user CLI.

// DefaultFile is used when the config names no data file.
const DefaultFile = "todos.json"

// Load reads the entries at path. ok is false when the file does not exist.
func Load(path string) (entries []model.Entry, ok bool, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read file: %w", err)
	}
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, false, fmt.Errorf("json unmarshal %s: %w", path, err)
	}
	if entries == nil {
		entries = []model.Entry{}
	}
	return entries, true, nil
}

func Save(path string, entries []model.Entry) error {
	if entries == nil {
		entries = []model.Entry{}
	}
	b, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
