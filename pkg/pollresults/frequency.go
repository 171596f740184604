package pollresults

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// RowFilter restricts the closed-answers table before aggregation.
type RowFilter func(Row) bool

// Eq matches rows whose column equals the given coded value.
func Eq(code, value string) RowFilter {
	want := canonCode(value)
	return func(row Row) bool { return canonCode(row[code]) == want }
}

// Ne matches rows whose column differs from the given coded value.
func Ne(code, value string) RowFilter {
	want := canonCode(value)
	return func(row Row) bool { return canonCode(row[code]) != want }
}

// FrequencyRow is one answer code's share of the filtered population.
type FrequencyRow struct {
	AnswerCode string
	Label      string
	Percent    float64
}

// FrequencyTable is the answer-frequency breakdown of one single-answer
// question, with the median answer of the filtered population.
type FrequencyTable struct {
	QuestionCode  string
	QuestionLabel string
	Title         string
	RowCount      int
	Rows          []FrequencyRow
	Median        float64
	MedianLabel   string
}

// Percent returns the percentage for an answer code, or 0 when the code
// never occurs in the filtered rows.
func (t *FrequencyTable) Percent(answerCode string) float64 {
	for _, row := range t.Rows {
		if row.AnswerCode == answerCode {
			return row.Percent
		}
	}
	return 0
}

// FrequencyTable computes, per distinct answer code of a single-answer
// question, the percentage of filtered voters holding it (two decimals),
// plus the median answer and its label. A nil filter keeps every row.
func (r *Results) FrequencyTable(code string, filter RowFilter) (*FrequencyTable, error) {
	if !r.closedColumns[code] {
		return nil, fmt.Errorf("question %s has no closed-answer column: %w", code, ErrQuestionNotFound)
	}
	labels := r.answerLabels[code]

	var rows []Row
	for _, id := range r.voterIDs {
		row := r.closed[id]
		if filter == nil || filter(row) {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("question %s: %w", code, ErrNoMatchingRows)
	}

	counts := make(map[string]int)
	var values []float64
	for _, row := range rows {
		canon := canonCode(row[code])
		if canon == "" {
			continue
		}
		counts[canon]++
		if v, err := strconv.ParseFloat(canon, 64); err == nil {
			values = append(values, v)
		}
	}

	out := &FrequencyTable{
		QuestionCode:  code,
		QuestionLabel: r.questionLabels[code],
		RowCount:      len(rows),
	}
	for _, answerCode := range sortedAnswerCodes(counts) {
		pct := float64(counts[answerCode]) / float64(len(rows)) * 100
		out.Rows = append(out.Rows, FrequencyRow{
			AnswerCode: answerCode,
			Label:      labels[answerCode],
			Percent:    round2(pct),
		})
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("question %s has no numeric answers to take a median of", code)
	}
	out.Median = median(values)
	medianCode := strconv.FormatFloat(out.Median, 'f', -1, 64)
	label, ok := labels[medianCode]
	if !ok {
		return nil, fmt.Errorf("question %s has no answer label for median value %s", code, medianCode)
	}
	out.MedianLabel = label

	return out, nil
}

// SplitRow aligns one answer code across the three populations.
type SplitRow struct {
	AnswerCode string
	Label      string
	All        float64
	Group      float64
	Rest       float64
}

// SplitReport is a frequency table split by a demographic question:
// everyone, voters answering the demographic with code 1, and the rest.
type SplitReport struct {
	QuestionCode    string
	QuestionLabel   string
	DemographicCode string
	Rows            []SplitRow
	MedianAll       string
	MedianGroup     string
	MedianRest      string
}

// FrequencySplit computes the three frequency tables and aligns them on the
// answer codes present in the unfiltered table.
func (r *Results) FrequencySplit(code, demographicCode string) (*SplitReport, error) {
	all, err := r.FrequencyTable(code, nil)
	if err != nil {
		return nil, err
	}
	group, err := r.FrequencyTable(code, Eq(demographicCode, "1"))
	if err != nil {
		return nil, fmt.Errorf("%s==1: %w", demographicCode, err)
	}
	rest, err := r.FrequencyTable(code, Ne(demographicCode, "1"))
	if err != nil {
		return nil, fmt.Errorf("%s!=1: %w", demographicCode, err)
	}

	report := &SplitReport{
		QuestionCode:    code,
		QuestionLabel:   all.QuestionLabel,
		DemographicCode: demographicCode,
		MedianAll:       all.MedianLabel,
		MedianGroup:     group.MedianLabel,
		MedianRest:      rest.MedianLabel,
	}
	for _, row := range all.Rows {
		report.Rows = append(report.Rows, SplitRow{
			AnswerCode: row.AnswerCode,
			Label:      row.Label,
			All:        row.Percent,
			Group:      group.Percent(row.AnswerCode),
			Rest:       rest.Percent(row.AnswerCode),
		})
	}
	return report, nil
}

// sortedAnswerCodes orders codes ascending numerically, with any
// non-numeric codes after them in lexical order.
func sortedAnswerCodes(counts map[string]int) []string {
	codes := make([]string, 0, len(counts))
	for c := range counts {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool {
		fi, ei := strconv.ParseFloat(codes[i], 64)
		fj, ej := strconv.ParseFloat(codes[j], 64)
		switch {
		case ei == nil && ej == nil:
			return fi < fj
		case ei == nil:
			return true
		case ej == nil:
			return false
		default:
			return codes[i] < codes[j]
		}
	})
	return codes
}

// median of an unsorted slice: middle value, or the mean of the two middle
// values for even counts.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
