// Package report implements the aggregate-reporting commands: freq
// (answer frequency tables, optionally filtered or split by a demographic
// question) and opentext (open-answer summaries).
package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/pollscope/pollscope/internal/common"
	"github.com/pollscope/pollscope/models"
	"github.com/pollscope/pollscope/pkg/freetext"
	"github.com/pollscope/pollscope/pkg/pollresults"
)

type frequencyRow struct {
	AnswerCode string  `json:"answer_code" yaml:"answer_code"`
	Label      string  `json:"label,omitempty" yaml:"label,omitempty"`
	Percent    float64 `json:"percent" yaml:"percent"`
}

type frequencyOutput struct {
	QuestionCode  string         `json:"question_code" yaml:"question_code"`
	QuestionLabel string         `json:"question_label,omitempty" yaml:"question_label,omitempty"`
	Filter        string         `json:"filter,omitempty" yaml:"filter,omitempty"`
	RowCount      int            `json:"row_count" yaml:"row_count"`
	Rows          []frequencyRow `json:"rows" yaml:"rows"`
	Median        float64        `json:"median" yaml:"median"`
	MedianLabel   string         `json:"median_label" yaml:"median_label"`
}

type splitRow struct {
	AnswerCode string  `json:"answer_code" yaml:"answer_code"`
	Label      string  `json:"label,omitempty" yaml:"label,omitempty"`
	All        float64 `json:"all" yaml:"all"`
	Group      float64 `json:"group" yaml:"group"`
	Rest       float64 `json:"rest" yaml:"rest"`
}

type splitOutput struct {
	QuestionCode    string     `json:"question_code" yaml:"question_code"`
	QuestionLabel   string     `json:"question_label,omitempty" yaml:"question_label,omitempty"`
	DemographicCode string     `json:"demographic_code" yaml:"demographic_code"`
	Rows            []splitRow `json:"rows" yaml:"rows"`
	MedianAll       string     `json:"median_all" yaml:"median_all"`
	MedianGroup     string     `json:"median_group" yaml:"median_group"`
	MedianRest      string     `json:"median_rest" yaml:"median_rest"`
}

// parseFilter turns a "code=value" flag into a row filter.
func parseFilter(expr string) (pollresults.RowFilter, error) {
	if expr == "" {
		return nil, nil
	}
	code, value, found := strings.Cut(expr, "=")
	if !found || code == "" || value == "" {
		return nil, fmt.Errorf("invalid filter %q, expected code=value", expr)
	}
	return pollresults.Eq(code, value), nil
}

// FreqAction prints the answer-frequency table of a single-answer
// question. --filter restricts the population; --by splits it by a
// demographic question instead.
func FreqAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	question := c.String("question")
	if question == "" {
		return fmt.Errorf("no question code provided via --question flag")
	}

	cfg, err := models.LoadDatasetConfig(c.String("config"))
	if err != nil {
		return err
	}
	results, err := common.LoadResults(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to load poll results: %w", err)
	}

	demographic := c.String("by")
	if demographic == "" && c.Bool("split") {
		demographic = cfg.DemographicCode
		if demographic == "" {
			return fmt.Errorf("--split needs demographic_code in the config or an explicit --by")
		}
	}

	if demographic != "" {
		if c.String("filter") != "" {
			return fmt.Errorf("--filter and --by are mutually exclusive")
		}
		report, err := results.FrequencySplit(question, demographic)
		if err != nil {
			return err
		}
		return writeSplit(c, report)
	}

	filter, err := parseFilter(c.String("filter"))
	if err != nil {
		return err
	}
	ft, err := results.FrequencyTable(question, filter)
	if err != nil {
		return err
	}

	out := frequencyOutput{
		QuestionCode:  ft.QuestionCode,
		QuestionLabel: ft.QuestionLabel,
		Filter:        c.String("filter"),
		RowCount:      ft.RowCount,
		Median:        ft.Median,
		MedianLabel:   ft.MedianLabel,
	}
	for _, row := range ft.Rows {
		out.Rows = append(out.Rows, frequencyRow{AnswerCode: row.AnswerCode, Label: row.Label, Percent: row.Percent})
	}

	if format := c.String("format"); format != "text" {
		return common.WriteOutput(os.Stdout, out, format)
	}

	fmt.Printf("%s: %s\n", out.QuestionCode, out.QuestionLabel)
	for _, row := range out.Rows {
		fmt.Printf("%s\t%s\t%.2f%%\n", row.AnswerCode, row.Label, row.Percent)
	}
	fmt.Printf("median\t%s\n", out.MedianLabel)
	return nil
}

func writeSplit(c *cli.Context, report *pollresults.SplitReport) error {
	out := splitOutput{
		QuestionCode:    report.QuestionCode,
		QuestionLabel:   report.QuestionLabel,
		DemographicCode: report.DemographicCode,
		MedianAll:       report.MedianAll,
		MedianGroup:     report.MedianGroup,
		MedianRest:      report.MedianRest,
	}
	for _, row := range report.Rows {
		out.Rows = append(out.Rows, splitRow{
			AnswerCode: row.AnswerCode,
			Label:      row.Label,
			All:        row.All,
			Group:      row.Group,
			Rest:       row.Rest,
		})
	}

	if format := c.String("format"); format != "text" {
		return common.WriteOutput(os.Stdout, out, format)
	}

	fmt.Printf("%s: %s (split by %s)\n", out.QuestionCode, out.QuestionLabel, out.DemographicCode)
	for _, row := range out.Rows {
		fmt.Printf("%s,%s,%.2f%%,%.2f%%,%.2f%%\n", row.AnswerCode, row.Label, row.All, row.Group, row.Rest)
	}
	fmt.Printf("median,,%s,%s,%s\n", out.MedianAll, out.MedianGroup, out.MedianRest)
	return nil
}

// OpenTextAction summarizes the free-text answers of every open question.
func OpenTextAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	cfg, err := models.LoadDatasetConfig(c.String("config"))
	if err != nil {
		return err
	}
	results, err := common.LoadResults(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to load poll results: %w", err)
	}

	languages, err := freetext.ParseLanguages(cfg.Languages)
	if err != nil {
		return fmt.Errorf("invalid languages in config: %w", err)
	}
	detector, err := freetext.NewDetector(languages)
	if err != nil {
		return err
	}

	summaries := freetext.NewSummarizer(detector, c.Int("top")).Summarize(results)

	if format := c.String("format"); format != "text" {
		return common.WriteOutput(os.Stdout, summaries, format)
	}

	for _, s := range summaries {
		fmt.Printf("\n%s: %s\n", s.Code, s.Label)
		fmt.Printf("\tanswered: %d, blank: %d\n", s.Answered, s.Blank)
		for lang, count := range s.Languages {
			fmt.Printf("\t%s: %d\n", lang, count)
		}
		if len(s.TopKeywords) > 0 {
			fmt.Printf("\tkeywords: %s\n", strings.Join(s.TopKeywords, ", "))
		}
	}
	return nil
}
