// Package config provides configuration loading for the classifier daemon.
package config

import (
	"fmt"
	"os"

	"github.com/shiftmash/shiftmash/pkg/services"
	"gopkg.in/yaml.v3"
)

// CoverageFile is the structure of the coverage.yaml file: required
// headcount per role, per store.
type CoverageFile struct {
	Stores []StoreCoverage `yaml:"stores"`
}

// StoreCoverage is one store's coverage table.
type StoreCoverage struct {
	ID    string         `yaml:"id"`
	Roles map[string]int `yaml:"roles"`
}

// LoadCoverage reads a coverage table from a YAML file. Stores and roles
// absent from the file fall back to the default headcount of one.
func LoadCoverage(path string) (map[string]services.Coverage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read coverage file %s: %w", path, err)
	}

	var file CoverageFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse coverage YAML: %w", err)
	}

	coverage := make(map[string]services.Coverage, len(file.Stores))

	for _, store := range file.Stores {
		if store.ID == "" {
			return nil, fmt.Errorf("coverage entry without a store id in %s", path)
		}

		for role, required := range store.Roles {
			if required < 1 {
				return nil, fmt.Errorf("store %s role %s: required headcount must be at least 1", store.ID, role)
			}
		}

		coverage[store.ID] = services.Coverage(store.Roles)
	}

	return coverage, nil
}
