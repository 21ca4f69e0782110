package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/aliskhannn/auslan-bot/internal/domain/entities"
)

var ErrModuleNotInCatalog = errors.New("module not present in catalog file")

// FileCatalog serves catalogs bundled with the bot. It is used when no content
// API is configured.
type FileCatalog struct {
	modules map[entities.ModuleKey][]entities.CatalogEntry
}

type fileEntry struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Filename string `json:"filename"`
	MediaURL string `json:"media_url"`
}

// NewFileCatalog loads the catalog JSON at path.
func NewFileCatalog(path string) (*FileCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseFileCatalog(data)
}

// ParseFileCatalog decodes a {"modules": {"<module>": [...]}} document.
func ParseFileCatalog(data []byte) (*FileCatalog, error) {
	var wrapper struct {
		Modules map[string][]fileEntry `json:"modules"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog JSON: %w", err)
	}

	modules := make(map[entities.ModuleKey][]entities.CatalogEntry, len(wrapper.Modules))
	for raw, list := range wrapper.Modules {
		m, err := entities.ParseModule(raw)
		if err != nil {
			return nil, err
		}

		entries := make([]entities.CatalogEntry, 0, len(list))
		for _, e := range list {
			entries = append(entries, entities.CatalogEntry(e))
		}
		modules[m] = entries
	}

	return &FileCatalog{modules: modules}, nil
}

// Fetch returns a copy of the entries for module.
func (c *FileCatalog) Fetch(_ context.Context, module entities.ModuleKey) ([]entities.CatalogEntry, error) {
	entries, ok := c.modules[module]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModuleNotInCatalog, module)
	}

	out := make([]entities.CatalogEntry, len(entries))
	copy(out, entries)
	return out, nil
}
