// Package models defines data structures for configuration shared across
// commands.
package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TableSource describes one input table of a poll export.
type TableSource struct {
	// Path to a .csv file or .xlsx workbook.
	Path string `yaml:"path"`
	// Sheet selects a worksheet for xlsx sources; empty means the first.
	Sheet string `yaml:"sheet,omitempty"`
	// SkipHead drops rows before the header row.
	SkipHead int `yaml:"skip_head,omitempty"`
	// SkipFoot drops trailing rows.
	SkipFoot int `yaml:"skip_foot,omitempty"`
	// Delimiter for csv sources; empty means comma.
	Delimiter string `yaml:"delimiter,omitempty"`
}

// DatasetConfig describes a poll export: the four tables plus reporting
// defaults. Loaded from a YAML file next to the data.
type DatasetConfig struct {
	VariableInformation TableSource `yaml:"variable_information"`
	VariableValues      TableSource `yaml:"variable_values"`
	ClosedQuestions     TableSource `yaml:"closed_questions"`
	OpenQuestions       TableSource `yaml:"open_questions"`

	// DemographicCode is the default question for freq --by splits.
	DemographicCode string `yaml:"demographic_code,omitempty"`
	// Languages restrict the open-answer language detector.
	Languages []string `yaml:"languages,omitempty"`
}

// LoadDatasetConfig reads and validates a dataset config file. The usual
// panel export layout needs no skip settings beyond the defaults applied
// here: the variable-information tab carries one junk row at each end and
// the variable-values tab one leading junk row.
func LoadDatasetConfig(path string) (*DatasetConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &DatasetConfig{
		VariableInformation: TableSource{SkipHead: 1, SkipFoot: 1},
		VariableValues:      TableSource{SkipHead: 1},
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	for _, src := range []struct {
		name string
		ts   TableSource
	}{
		{"variable_information", cfg.VariableInformation},
		{"variable_values", cfg.VariableValues},
		{"closed_questions", cfg.ClosedQuestions},
		{"open_questions", cfg.OpenQuestions},
	} {
		if src.ts.Path == "" {
			return nil, fmt.Errorf("config %s: %s.path is required", path, src.name)
		}
	}
	if len(cfg.Languages) == 0 {
		cfg.Languages = []string{"english", "hebrew"}
	}
	return cfg, nil
}
