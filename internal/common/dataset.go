// Package common holds the glue shared by all commands: loading the
// dataset a config file describes, and rendering command output.
package common

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/pollscope/pollscope/models"
	"github.com/pollscope/pollscope/pkg/pollresults"
	"github.com/pollscope/pollscope/pkg/table"
)

// ReadSource materializes one configured table, choosing the reader by
// file extension.
func ReadSource(src models.TableSource) (table.Table, error) {
	opts := table.Options{
		SkipHead: src.SkipHead,
		SkipFoot: src.SkipFoot,
	}
	if src.Delimiter != "" {
		runes := []rune(src.Delimiter)
		if len(runes) != 1 {
			return table.Table{}, fmt.Errorf("%s: delimiter must be a single character, got %q", src.Path, src.Delimiter)
		}
		opts.Delimiter = runes[0]
	}

	switch strings.ToLower(filepath.Ext(src.Path)) {
	case ".xlsx", ".xlsm":
		return table.ReadSheet(src.Path, src.Sheet, opts)
	default:
		return table.ReadCSVFile(src.Path, opts)
	}
}

// LoadResults reads the four tables of a dataset config and builds the
// poll-results index.
func LoadResults(cfg *models.DatasetConfig, logger *slog.Logger) (*pollresults.Results, error) {
	varInfo, err := ReadSource(cfg.VariableInformation)
	if err != nil {
		return nil, fmt.Errorf("variable information: %w", err)
	}
	varValues, err := ReadSource(cfg.VariableValues)
	if err != nil {
		return nil, fmt.Errorf("variable values: %w", err)
	}
	closed, err := ReadSource(cfg.ClosedQuestions)
	if err != nil {
		return nil, fmt.Errorf("closed questions: %w", err)
	}
	open, err := ReadSource(cfg.OpenQuestions)
	if err != nil {
		return nil, fmt.Errorf("open questions: %w", err)
	}

	return pollresults.Load(varInfo, varValues, closed, open, pollresults.WithLogger(logger))
}
