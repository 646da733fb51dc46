package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultFileName is the catalog file name readers look for next to the
// notes directory.
const DefaultFileName = "notes-index.json"

// Marshal encodes c as the pretty-printed catalog file format.
func Marshal(c Catalog) ([]byte, error) {
	if c == nil {
		c = Catalog{}
	}
	return json.MarshalIndent(c, "", "  ")
}

// Write stores c as a JSON catalog file at path, creating parent directories.
func Write(path string, c Catalog) error {
	data, err := Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating catalog directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing catalog %s: %w", path, err)
	}
	return nil
}

// Load reads a catalog file written by Write.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: catalog file %s: %w", ErrSourceUnavailable, path, err)
		}
		return nil, fmt.Errorf("%w: reading catalog %s: %w", ErrSourceUnavailable, path, err)
	}
	return Decode(data)
}

// Decode parses catalog file content.
func Decode(data []byte) (Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	return c, nil
}
