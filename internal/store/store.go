// Package store persists the catalog state as a JSON file.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Romz16/ProfitMAX/internal/catalog"
)

// Load reads the catalog state from path. A missing file yields the default
// state without error; a malformed file is an error rather than a silent
// reset, so stored catalogs are never dropped by accident. Products stored
// by older versions get their missing fields defaulted.
func Load(path string) (catalog.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return catalog.DefaultState(), nil
		}
		return catalog.State{}, fmt.Errorf("failed to read state file %s: %w", path, err)
	}

	var state catalog.State
	if err := json.Unmarshal(data, &state); err != nil {
		return catalog.State{}, fmt.Errorf("failed to parse state file %s: %w", path, err)
	}

	if state.Products == nil {
		state.Products = []catalog.Product{}
	}
	for i := range state.Products {
		state.Products[i].ApplyDefaults()
	}
	return state, nil
}

// Save writes the catalog state to path as indented JSON. The write goes
// through a temp file and rename so a crash mid-write cannot corrupt the
// stored state.
func Save(path string, state catalog.State) error {
	data, err := json.MarshalIndent(state, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close state file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace state file %s: %w", path, err)
	}
	return nil
}
