// Package pollresults builds a read-only in-memory index over the four
// tables of a poll panel export (question metadata, answer-code labels,
// closed-question answers, open-question answers) and answers lookup and
// frequency queries against it.
package pollresults

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/pollscope/pollscope/pkg/table"
)

var (
	// ErrVoterNotFound indicates a voter id absent from the answer indexes.
	ErrVoterNotFound = errors.New("voter not found")
	// ErrQuestionNotFound indicates a code that is neither a closed-answer
	// column nor a multi-part question.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrNoMatchingRows indicates a filter that matched zero voters.
	ErrNoMatchingRows = errors.New("no matching rows")
)

// Row is one voter's raw answers keyed by column name.
type Row map[string]string

// AnswerLabel pairs a coded answer value with its human label.
type AnswerLabel struct {
	Code  string
	Label string
}

// Results is the immutable index built from one export. Safe to share
// between goroutines once Load returns.
type Results struct {
	questionCodes  []string
	questionLabels map[string]string

	answerOrder  map[string][]string
	answerLabels map[string]map[string]string

	voterIDs      []int
	closed        map[int]Row
	closedColumns map[string]bool

	openCodes   []string
	open        map[int]Row
	openColumns map[string]bool

	log *slog.Logger
}

// Option configures Load.
type Option func(*Results)

// WithLogger installs a diagnostic sink; Load traces index sizes through it.
func WithLogger(l *slog.Logger) Option {
	return func(r *Results) { r.log = l }
}

// Load builds the index from the four export tables. Loading is
// all-or-nothing: any missing column or malformed key fails the whole load.
func Load(varInfo, varValues, closed, open table.Table, opts ...Option) (*Results, error) {
	r := &Results{
		questionLabels: make(map[string]string),
		answerOrder:    make(map[string][]string),
		answerLabels:   make(map[string]map[string]string),
		closed:         make(map[int]Row),
		closedColumns:  make(map[string]bool),
		open:           make(map[int]Row),
		openColumns:    make(map[string]bool),
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.loadQuestionLabels(varInfo); err != nil {
		return nil, fmt.Errorf("variable information: %w", err)
	}
	if err := r.loadAnswerLabels(varValues); err != nil {
		return nil, fmt.Errorf("variable values: %w", err)
	}
	if err := r.loadClosedAnswers(closed); err != nil {
		return nil, fmt.Errorf("closed questions: %w", err)
	}
	if err := r.loadOpenAnswers(open); err != nil {
		return nil, fmt.Errorf("open questions: %w", err)
	}

	if r.log != nil {
		r.log.Debug("poll results loaded",
			"questions", len(r.questionCodes),
			"labeled_questions", len(r.answerLabels),
			"voters", len(r.voterIDs),
			"open_questions", len(r.openCodes))
	}
	return r, nil
}

func (r *Results) loadQuestionLabels(t table.Table) error {
	varCol, ok := t.ColumnIndex("Variable")
	if !ok {
		return fmt.Errorf("missing %q column", "Variable")
	}
	labelCol, ok := t.ColumnIndex("Label")
	if !ok {
		return fmt.Errorf("missing %q column", "Label")
	}

	for i := range t.Rows {
		code := strings.TrimSpace(t.Cell(i, varCol))
		if code == "" {
			continue
		}
		if _, seen := r.questionLabels[code]; !seen {
			r.questionCodes = append(r.questionCodes, code)
		}
		r.questionLabels[code] = t.Cell(i, labelCol)
	}
	return nil
}

// loadAnswerLabels folds over the three positional columns of the values
// table. A blank leading cell continues the block of the most recently seen
// question code, reproducing the spreadsheet layout where the code appears
// only on the first row of each block.
func (r *Results) loadAnswerLabels(t table.Table) error {
	if len(t.Headers) < 3 {
		return fmt.Errorf("expected 3 columns, got %d", len(t.Headers))
	}

	current := ""
	for i := range t.Rows {
		codeCell := strings.TrimSpace(t.Cell(i, 0))
		answerCode := strings.TrimSpace(t.Cell(i, 1))
		answerLabel := t.Cell(i, 2)
		if codeCell == "" && answerCode == "" && strings.TrimSpace(answerLabel) == "" {
			continue
		}
		if codeCell != "" {
			current = codeCell
		}
		if current == "" {
			return fmt.Errorf("row %d has an answer code before any question code", i+1)
		}

		canon := canonCode(answerCode)
		if _, ok := r.answerLabels[current]; !ok {
			r.answerLabels[current] = make(map[string]string)
		}
		if _, seen := r.answerLabels[current][canon]; !seen {
			r.answerOrder[current] = append(r.answerOrder[current], canon)
		}
		r.answerLabels[current][canon] = answerLabel
	}
	return nil
}

func (r *Results) loadClosedAnswers(t table.Table) error {
	idCol, ok := t.ColumnIndex("id")
	if !ok {
		return fmt.Errorf("missing %q column", "id")
	}
	for _, h := range t.Headers {
		r.closedColumns[h] = true
	}

	for i := range t.Rows {
		id, err := parseVoterID(t.Cell(i, idCol))
		if err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
		row := make(Row, len(t.Headers))
		for col, h := range t.Headers {
			row[h] = t.Cell(i, col)
		}
		if _, seen := r.closed[id]; !seen {
			r.voterIDs = append(r.voterIDs, id)
		}
		r.closed[id] = row
	}
	return nil
}

func (r *Results) loadOpenAnswers(t table.Table) error {
	// Export headers are inconsistently formatted ("Q1: " vs "Q1");
	// strip colons and spaces before indexing.
	headers := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		headers[i] = normalizeHeader(h)
	}

	idCol := -1
	for i, h := range headers {
		if h == "user_ID" {
			idCol = i
			break
		}
	}
	if idCol == -1 {
		return fmt.Errorf("missing %q column", "user_ID")
	}

	for i, h := range headers {
		r.openColumns[h] = true
		if i != idCol {
			r.openCodes = append(r.openCodes, h)
		}
	}

	for i := range t.Rows {
		id, err := parseVoterID(t.Cell(i, idCol))
		if err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
		row := make(Row, len(headers))
		for col, h := range headers {
			row[h] = t.Cell(i, col)
		}
		r.open[id] = row
	}
	return nil
}

// QuestionCodes returns all question codes in catalog order.
func (r *Results) QuestionCodes() []string {
	out := make([]string, len(r.questionCodes))
	copy(out, r.questionCodes)
	return out
}

// QuestionLabel returns the human label of a question code.
func (r *Results) QuestionLabel(code string) (string, bool) {
	label, ok := r.questionLabels[code]
	return label, ok
}

// AnswerLabels returns the coded answers of a question in file order.
func (r *Results) AnswerLabels(code string) []AnswerLabel {
	order := r.answerOrder[code]
	out := make([]AnswerLabel, len(order))
	for i, c := range order {
		out[i] = AnswerLabel{Code: c, Label: r.answerLabels[code][c]}
	}
	return out
}

// VoterIDs returns every voter id in load order.
func (r *Results) VoterIDs() []int {
	out := make([]int, len(r.voterIDs))
	copy(out, r.voterIDs)
	return out
}

// OpenQuestionCodes returns the normalized open-question columns in file order.
func (r *Results) OpenQuestionCodes() []string {
	out := make([]string, len(r.openCodes))
	copy(out, r.openCodes)
	return out
}

// OpenAnswer returns a voter's free-text answer to an open question column.
func (r *Results) OpenAnswer(code string, voterID int) (string, bool) {
	row, ok := r.open[voterID]
	if !ok {
		return "", false
	}
	if !r.openColumns[code] {
		return "", false
	}
	return row[code], true
}

// parseVoterID accepts both "300" and the "300.0" some exports emit.
func parseVoterID(s string) (int, error) {
	s = strings.TrimSpace(s)
	if id, err := strconv.Atoi(s); err == nil {
		return id, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("invalid voter id %q", s)
	}
	return int(f), nil
}

// canonCode normalizes a coded answer value so that "1", "1.0" and " 1"
// compare equal, matching the float keys the export tooling produces.
func canonCode(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// normalizeHeader strips the colons and spaces that panel exports sprinkle
// into open-question column names.
func normalizeHeader(s string) string {
	s = strings.ReplaceAll(s, ":", "")
	return strings.ReplaceAll(s, " ", "")
}
