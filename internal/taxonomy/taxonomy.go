// Package taxonomy provides the expense category taxonomy: an ordered
// list of categories and their subcategories. The taxonomy is advisory
// only; the store never enforces it on ledger entries.
package taxonomy

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

//go:embed categories.json
var defaultDocument []byte

type Category struct {
	Name          string   `json:"name"`
	Subcategories []string `json:"subcategories"`
}

type Taxonomy struct {
	Categories []Category `json:"categories"`
}

// Load returns the serialized taxonomy document. When path is empty or
// the file does not exist it falls back to the compiled-in default; any
// other read failure is a real error.
func Load(path string) (string, error) {
	if path == "" {
		return string(defaultDocument), nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return string(defaultDocument), nil
	}
	if err != nil {
		return "", fmt.Errorf("read categories file: %w", err)
	}

	return string(data), nil
}

// Parse decodes a taxonomy document into its structured form.
func Parse(document string) (Taxonomy, error) {
	var t Taxonomy
	if err := json.Unmarshal([]byte(document), &t); err != nil {
		return Taxonomy{}, fmt.Errorf("decode taxonomy: %w", err)
	}
	return t, nil
}

// Default returns the compiled-in taxonomy document.
func Default() string {
	return string(defaultDocument)
}
