package pollresults

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// AnswerKind distinguishes the two question shapes.
type AnswerKind int

const (
	// AnswerSingle is a question with its own closed-answer column.
	AnswerSingle AnswerKind = iota
	// AnswerMulti is a question answered through sub-question columns
	// sharing its code as a prefix.
	AnswerMulti
)

// SubAnswer is one sub-question's value for a voter.
type SubAnswer struct {
	Label   string
	Raw     string
	Value   float64
	Numeric bool
}

// Answer is one voter's answer to one question: a translated label for a
// single-answer question, or the sub-question values for a multi-answer one.
type Answer struct {
	Kind  AnswerKind
	Label string
	Subs  []SubAnswer
}

// ResolveVoter returns the canonical voter id. A nonzero id takes
// precedence; otherwise the index-th voter in load order is used.
func (r *Results) ResolveVoter(index, id int) (int, error) {
	if id != 0 {
		if _, ok := r.closed[id]; !ok {
			return 0, fmt.Errorf("voter %d: %w", id, ErrVoterNotFound)
		}
		return id, nil
	}
	if index < 0 || index >= len(r.voterIDs) {
		return 0, fmt.Errorf("voter index %d out of range (%d voters): %w", index, len(r.voterIDs), ErrVoterNotFound)
	}
	return r.voterIDs[index], nil
}

// SubquestionCodes returns every question code sharing the given code as a
// string prefix, in catalog order. Matching is a plain prefix test, so a
// code that is a literal prefix of an unrelated one (Q1 vs Q10) matches
// both; the export layouts this mirrors avoid such codes.
func (r *Results) SubquestionCodes(code string) []string {
	var out []string
	for _, q := range r.questionCodes {
		if strings.HasPrefix(q, code) {
			out = append(out, q)
		}
	}
	return out
}

// Answer returns a voter's answer to a question, dispatching on shape: a
// direct closed-answer column is a single-answer question, a code with
// sub-questions is a multi-answer one.
func (r *Results) Answer(code string, voterID int) (Answer, error) {
	row, ok := r.closed[voterID]
	if !ok {
		return Answer{}, fmt.Errorf("voter %d: %w", voterID, ErrVoterNotFound)
	}

	if r.closedColumns[code] {
		raw := row[code]
		labels, ok := r.answerLabels[code]
		if !ok {
			return Answer{}, fmt.Errorf("question %s has no answer labels", code)
		}
		label, ok := labels[canonCode(raw)]
		if !ok {
			return Answer{}, fmt.Errorf("question %s has no label for answer code %q", code, raw)
		}
		return Answer{Kind: AnswerSingle, Label: label}, nil
	}

	subs := r.SubquestionCodes(code)
	if len(subs) > 0 {
		out := make([]SubAnswer, 0, len(subs))
		for _, sub := range subs {
			if !r.closedColumns[sub] {
				return Answer{}, fmt.Errorf("subquestion %s of %s has no closed-answer column", sub, code)
			}
			raw := row[sub]
			value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			out = append(out, SubAnswer{
				Label:   r.questionLabels[sub],
				Raw:     raw,
				Value:   value,
				Numeric: err == nil,
			})
		}
		return Answer{Kind: AnswerMulti, Subs: out}, nil
	}

	return Answer{}, fmt.Errorf("no answer of voter %d to question %s: %w", voterID, code, ErrQuestionNotFound)
}

// RankAnswer returns the sub-question labels of a ranking question ordered
// from highest ranked (lowest value) to lowest. Ties keep sub-question order.
func (r *Results) RankAnswer(code string, voterID int) ([]string, error) {
	ans, err := r.Answer(code, voterID)
	if err != nil {
		return nil, err
	}
	if ans.Kind != AnswerMulti {
		return nil, fmt.Errorf("question %s is not a multi-answer question", code)
	}

	subs := make([]SubAnswer, len(ans.Subs))
	copy(subs, ans.Subs)
	for _, s := range subs {
		if !s.Numeric {
			return nil, fmt.Errorf("question %s: rank value %q of %q is not numeric", code, s.Raw, s.Label)
		}
	}
	sort.SliceStable(subs, func(i, j int) bool { return subs[i].Value < subs[j].Value })

	labels := make([]string, len(subs))
	for i, s := range subs {
		labels[i] = s.Label
	}
	return labels, nil
}

// ApprovalAnswer returns the approved sub-question labels of a checkboxes
// question: those whose value is strictly positive.
func (r *Results) ApprovalAnswer(code string, voterID int) (map[string]bool, error) {
	ans, err := r.Answer(code, voterID)
	if err != nil {
		return nil, err
	}
	if ans.Kind != AnswerMulti {
		return nil, fmt.Errorf("question %s is not a multi-answer question", code)
	}

	approved := make(map[string]bool)
	for _, s := range ans.Subs {
		if !s.Numeric {
			return nil, fmt.Errorf("question %s: approval value %q of %q is not numeric", code, s.Raw, s.Label)
		}
		if s.Value > 0 {
			approved[s.Label] = true
		}
	}
	return approved, nil
}

// Answers returns every voter's answer to a question, in voter load order.
func (r *Results) Answers(code string) ([]Answer, error) {
	out := make([]Answer, 0, len(r.voterIDs))
	for _, id := range r.voterIDs {
		ans, err := r.Answer(code, id)
		if err != nil {
			return nil, err
		}
		out = append(out, ans)
	}
	return out, nil
}

// RankAnswers returns every voter's ranking, in voter load order.
func (r *Results) RankAnswers(code string) ([][]string, error) {
	out := make([][]string, 0, len(r.voterIDs))
	for _, id := range r.voterIDs {
		ranked, err := r.RankAnswer(code, id)
		if err != nil {
			return nil, err
		}
		out = append(out, ranked)
	}
	return out, nil
}

// ApprovalAnswers returns every voter's approval set, in voter load order.
func (r *Results) ApprovalAnswers(code string) ([]map[string]bool, error) {
	out := make([]map[string]bool, 0, len(r.voterIDs))
	for _, id := range r.voterIDs {
		approved, err := r.ApprovalAnswer(code, id)
		if err != nil {
			return nil, err
		}
		out = append(out, approved)
	}
	return out, nil
}

// EntryKind classifies one VoterProfile entry.
type EntryKind string

const (
	// EntryText is a free-text answer from the open-questions table.
	EntryText EntryKind = "text"
	// EntryCoded is a closed answer translated through the value map.
	EntryCoded EntryKind = "coded"
	// EntryData is a closed column with no value map (raw data, e.g. age).
	EntryData EntryKind = "data"
)

// ProfileEntry is one question's answer within a voter profile.
type ProfileEntry struct {
	Code       string    `json:"code" yaml:"code"`
	Label      string    `json:"label,omitempty" yaml:"label,omitempty"`
	Kind       EntryKind `json:"kind" yaml:"kind"`
	Text       string    `json:"text,omitempty" yaml:"text,omitempty"`
	AnswerCode string    `json:"answer_code,omitempty" yaml:"answer_code,omitempty"`
	Answer     string    `json:"answer,omitempty" yaml:"answer,omitempty"`
	Raw        string    `json:"raw,omitempty" yaml:"raw,omitempty"`
}

// VoterProfile walks the question catalog and returns one voter's answer to
// each question: free text where the open table has a column (directly or
// with the exporter's _1 suffix), a labeled or raw closed answer otherwise.
func (r *Results) VoterProfile(voterID int) ([]ProfileEntry, error) {
	closedRow, ok := r.closed[voterID]
	if !ok {
		return nil, fmt.Errorf("voter %d: %w", voterID, ErrVoterNotFound)
	}
	// Voters missing from the open-questions export still get a profile;
	// their free-text answers read as absent.
	openRow := r.open[voterID]

	var entries []ProfileEntry
	for _, code := range r.questionCodes {
		entry := ProfileEntry{Code: code, Label: r.questionLabels[code]}

		switch {
		case r.openColumns[code]:
			entry.Kind = EntryText
			entry.Text = openRow[code]
		case r.openColumns[code+"_1"]:
			entry.Kind = EntryText
			entry.Text = openRow[code+"_1"]
		case r.closedColumns[code]:
			raw := closedRow[code]
			if labels, labeled := r.answerLabels[code]; labeled {
				canon := canonCode(raw)
				label, ok := labels[canon]
				if !ok {
					return nil, fmt.Errorf("question %s has no label for answer code %q", code, raw)
				}
				entry.Kind = EntryCoded
				entry.AnswerCode = canon
				entry.Answer = label
			} else {
				entry.Kind = EntryData
				entry.Raw = raw
			}
		default:
			return nil, fmt.Errorf("question code %s appears in no results table: %w", code, ErrQuestionNotFound)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
