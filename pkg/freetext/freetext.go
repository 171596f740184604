// Package freetext summarizes open-ended (free text) survey answers:
// response counts, language distribution, and the most frequent keywords
// per open question.
package freetext

import (
	"fmt"
	"strings"

	"github.com/pemistahl/lingua-go"

	"github.com/pollscope/pollscope/pkg/analytics"
	"github.com/pollscope/pollscope/pkg/pollresults"
)

// Detector identifies the language of a text. Satisfied by
// lingua.LanguageDetector; tests substitute a fake.
type Detector interface {
	DetectLanguageOf(text string) (lingua.Language, bool)
}

// QuestionSummary describes the free-text answers to one open question.
type QuestionSummary struct {
	Code        string         `json:"code" yaml:"code"`
	Label       string         `json:"label,omitempty" yaml:"label,omitempty"`
	Answered    int            `json:"answered" yaml:"answered"`
	Blank       int            `json:"blank" yaml:"blank"`
	Languages   map[string]int `json:"languages,omitempty" yaml:"languages,omitempty"`
	TopKeywords []string       `json:"top_keywords,omitempty" yaml:"top_keywords,omitempty"`
}

// Summarizer aggregates open answers across all voters.
type Summarizer struct {
	detector Detector
	a        *analytics.Analytics
	topN     int
}

// NewSummarizer builds a summarizer around a language detector. A nil
// detector disables the language distribution.
func NewSummarizer(detector Detector, topN int) *Summarizer {
	if topN <= 0 {
		topN = 10
	}
	return &Summarizer{detector: detector, a: &analytics.Analytics{}, topN: topN}
}

// Summarize walks every open question of the loaded results in catalog
// order and summarizes the answers of all voters.
func (s *Summarizer) Summarize(res *pollresults.Results) []QuestionSummary {
	voters := res.VoterIDs()

	var summaries []QuestionSummary
	for _, code := range res.OpenQuestionCodes() {
		summary := QuestionSummary{Code: code}
		if label, ok := res.QuestionLabel(code); ok {
			summary.Label = label
		}

		var counts []map[string]int
		languages := make(map[string]int)
		for _, id := range voters {
			text, ok := res.OpenAnswer(code, id)
			if !ok || strings.TrimSpace(text) == "" {
				summary.Blank++
				continue
			}
			summary.Answered++
			counts = append(counts, s.a.WordFrequency(text))
			if s.detector != nil {
				if lang, detected := s.detector.DetectLanguageOf(text); detected {
					languages[lang.String()]++
				}
			}
		}

		if len(languages) > 0 {
			summary.Languages = languages
		}
		summary.TopKeywords = analytics.TopKeywords(analytics.MergeCounts(counts), s.topN)
		summaries = append(summaries, summary)
	}
	return summaries
}

// NewDetector builds a lingua detector restricted to the given languages.
// Restricting the candidate set keeps short answers classifiable.
func NewDetector(languages []lingua.Language) (Detector, error) {
	if len(languages) < 2 {
		return nil, fmt.Errorf("need at least two candidate languages, got %d", len(languages))
	}
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(languages...).
		Build()
	return detector, nil
}

// ParseLanguages maps configured language names ("english", "hebrew") to
// lingua languages.
func ParseLanguages(names []string) ([]lingua.Language, error) {
	out := make([]lingua.Language, 0, len(names))
	for _, name := range names {
		found := false
		for _, lang := range lingua.AllLanguages() {
			if strings.EqualFold(lang.String(), name) {
				out = append(out, lang)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown language %q", name)
		}
	}
	return out, nil
}
