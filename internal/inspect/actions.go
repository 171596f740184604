// Package inspect implements the catalog-browsing commands: describe
// (question and answer labels) and voter (one voter's answers).
package inspect

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/pollscope/pollscope/internal/common"
	"github.com/pollscope/pollscope/models"
	"github.com/pollscope/pollscope/pkg/pollresults"
)

type answerEntry struct {
	Code  string `json:"code" yaml:"code"`
	Label string `json:"label" yaml:"label"`
}

type questionEntry struct {
	Code    string        `json:"code" yaml:"code"`
	Label   string        `json:"label" yaml:"label"`
	Answers []answerEntry `json:"answers,omitempty" yaml:"answers,omitempty"`
}

// DescribeAction prints the question codes and labels and, for each
// labeled question, its answer codes and labels.
func DescribeAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	cfg, err := models.LoadDatasetConfig(c.String("config"))
	if err != nil {
		return err
	}
	results, err := common.LoadResults(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to load poll results: %w", err)
	}

	catalog := make([]questionEntry, 0, len(results.QuestionCodes()))
	for _, code := range results.QuestionCodes() {
		label, _ := results.QuestionLabel(code)
		entry := questionEntry{Code: code, Label: label}
		for _, al := range results.AnswerLabels(code) {
			entry.Answers = append(entry.Answers, answerEntry{Code: al.Code, Label: al.Label})
		}
		catalog = append(catalog, entry)
	}

	if format := c.String("format"); format != "text" {
		return common.WriteOutput(os.Stdout, catalog, format)
	}

	for _, q := range catalog {
		fmt.Printf("\n%s: %s\n", q.Code, q.Label)
		for _, a := range q.Answers {
			fmt.Printf("\t%s: %s\n", a.Code, a.Label)
		}
	}
	return nil
}

type voterOutput struct {
	VoterID int                        `json:"voter_id" yaml:"voter_id"`
	Entries []pollresults.ProfileEntry `json:"entries" yaml:"entries"`
}

// VoterAction prints the answers of one voter across every question. The
// voter comes from --id, or --index into load order (id wins).
func VoterAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	cfg, err := models.LoadDatasetConfig(c.String("config"))
	if err != nil {
		return err
	}
	results, err := common.LoadResults(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to load poll results: %w", err)
	}

	voterID, err := results.ResolveVoter(c.Int("index"), c.Int("id"))
	if err != nil {
		return err
	}
	entries, err := results.VoterProfile(voterID)
	if err != nil {
		return err
	}

	if format := c.String("format"); format != "text" {
		return common.WriteOutput(os.Stdout, voterOutput{VoterID: voterID, Entries: entries}, format)
	}

	fmt.Printf("voter %d:\n", voterID)
	for _, e := range entries {
		fmt.Printf("%s: %s\n", e.Code, e.Label)
		switch e.Kind {
		case pollresults.EntryText:
			fmt.Printf("\tTEXT: %s\n", e.Text)
		case pollresults.EntryCoded:
			fmt.Printf("\t%s: %s\n", e.AnswerCode, e.Answer)
		case pollresults.EntryData:
			fmt.Printf("\tDATA: %s\n", e.Raw)
		}
	}
	return nil
}
