// Package importer reads a YAML list of TMDB show ids for bulk
// subscription.
package importer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Entry is one show to subscribe to. The name is an optional label for
// log output only; the stored display title always comes from the
// provider.
type Entry struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name,omitempty"`
}

type importFile struct {
	Shows []Entry `yaml:"shows"`
}

// Load parses the import file and validates its entries
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}

	var file importFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse import file: %w", err)
	}

	if len(file.Shows) == 0 {
		return nil, fmt.Errorf("import file contains no shows")
	}

	for i, entry := range file.Shows {
		if entry.ID <= 0 {
			return nil, fmt.Errorf("invalid show id at entry %d: %d", i+1, entry.ID)
		}
	}

	return file.Shows, nil
}
