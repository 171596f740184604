package pollresults

import (
	"errors"
	"reflect"
	"testing"
)

func TestResolveVoter(t *testing.T) {
	results := loadTestResults(t)

	tests := []struct {
		name    string
		index   int
		id      int
		want    int
		wantErr bool
	}{
		{name: "default index", index: 0, want: 300},
		{name: "second index", index: 1, want: 301},
		{name: "explicit id", id: 301, want: 301},
		{name: "id wins over index", index: 0, id: 301, want: 301},
		{name: "unknown id", id: 999, wantErr: true},
		{name: "index out of range", index: 2, wantErr: true},
		{name: "negative index", index: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := results.ResolveVoter(tt.index, tt.id)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ResolveVoter(%d, %d) succeeded, want error", tt.index, tt.id)
				}
				if !errors.Is(err, ErrVoterNotFound) {
					t.Errorf("ResolveVoter(%d, %d) error = %v, want ErrVoterNotFound", tt.index, tt.id, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveVoter(%d, %d) error = %v", tt.index, tt.id, err)
			}
			if got != tt.want {
				t.Errorf("ResolveVoter(%d, %d) = %d, want %d", tt.index, tt.id, got, tt.want)
			}
		})
	}
}

func TestSubquestionCodes(t *testing.T) {
	results := loadTestResults(t)

	got := results.SubquestionCodes("Q3")
	want := []string{"Q3_1", "Q3_2", "Q3_3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SubquestionCodes(Q3) = %v, want %v", got, want)
	}

	if got := results.SubquestionCodes("Q9"); len(got) != 0 {
		t.Errorf("SubquestionCodes(Q9) = %v, want none", got)
	}

	// Q2 is its own single column; the prefix match still reports it.
	got = results.SubquestionCodes("Q2")
	if !reflect.DeepEqual(got, []string{"Q2"}) {
		t.Errorf("SubquestionCodes(Q2) = %v, want [Q2]", got)
	}
}

func TestAnswer_SingleAnswerQuestion(t *testing.T) {
	results := loadTestResults(t)

	// Voter 300 stored code 2 for Q2; the value map says 2 is PartyB.
	ans, err := results.Answer("Q2", 300)
	if err != nil {
		t.Fatalf("Answer(Q2, 300) error = %v", err)
	}
	if ans.Kind != AnswerSingle {
		t.Errorf("Answer(Q2, 300).Kind = %v, want AnswerSingle", ans.Kind)
	}
	if ans.Label != "PartyB" {
		t.Errorf("Answer(Q2, 300).Label = %q, want %q", ans.Label, "PartyB")
	}
}

func TestAnswer_MultiAnswerQuestion(t *testing.T) {
	results := loadTestResults(t)

	ans, err := results.Answer("Q3", 300)
	if err != nil {
		t.Fatalf("Answer(Q3, 300) error = %v", err)
	}
	if ans.Kind != AnswerMulti {
		t.Fatalf("Answer(Q3, 300).Kind = %v, want AnswerMulti", ans.Kind)
	}

	wantLabels := []string{"X", "Y", "Z"}
	wantValues := []float64{0, 1, 1}
	if len(ans.Subs) != len(wantLabels) {
		t.Fatalf("Answer(Q3, 300) returned %d subs, want %d", len(ans.Subs), len(wantLabels))
	}
	for i, sub := range ans.Subs {
		if sub.Label != wantLabels[i] {
			t.Errorf("sub %d label = %q, want %q", i, sub.Label, wantLabels[i])
		}
		if !sub.Numeric || sub.Value != wantValues[i] {
			t.Errorf("sub %d value = %v (numeric=%v), want %v", i, sub.Value, sub.Numeric, wantValues[i])
		}
	}
}

func TestAnswer_UnknownQuestion(t *testing.T) {
	results := loadTestResults(t)

	_, err := results.Answer("Q9", 300)
	if !errors.Is(err, ErrQuestionNotFound) {
		t.Errorf("Answer(Q9, 300) error = %v, want ErrQuestionNotFound", err)
	}
}

func TestAnswer_UnknownVoter(t *testing.T) {
	results := loadTestResults(t)

	_, err := results.Answer("Q2", 999)
	if !errors.Is(err, ErrVoterNotFound) {
		t.Errorf("Answer(Q2, 999) error = %v, want ErrVoterNotFound", err)
	}
}

func TestRankAnswer(t *testing.T) {
	results := loadTestResults(t)

	// Q6 values for voter 300: X=2, Y=1, Z=3. Lowest value ranks first.
	got, err := results.RankAnswer("Q6", 300)
	if err != nil {
		t.Fatalf("RankAnswer(Q6, 300) error = %v", err)
	}
	want := []string{"Y", "X", "Z"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RankAnswer(Q6, 300) = %v, want %v", got, want)
	}
}

func TestRankAnswer_StableForTies(t *testing.T) {
	results := loadTestResults(t)

	// Q3 values for voter 300: X=0, Y=1, Z=1. Y and Z tie and must keep
	// sub-question order.
	got, err := results.RankAnswer("Q3", 300)
	if err != nil {
		t.Fatalf("RankAnswer(Q3, 300) error = %v", err)
	}
	want := []string{"X", "Y", "Z"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RankAnswer(Q3, 300) = %v, want %v", got, want)
	}
}

func TestRankAnswer_SingleAnswerQuestion(t *testing.T) {
	results := loadTestResults(t)

	if _, err := results.RankAnswer("Q2", 300); err == nil {
		t.Error("RankAnswer(Q2, 300) succeeded, want shape error")
	}
}

func TestApprovalAnswer(t *testing.T) {
	results := loadTestResults(t)

	got, err := results.ApprovalAnswer("Q3", 300)
	if err != nil {
		t.Fatalf("ApprovalAnswer(Q3, 300) error = %v", err)
	}
	want := map[string]bool{"Y": true, "Z": true}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ApprovalAnswer(Q3, 300) = %v, want %v", got, want)
	}

	// Recomputing yields the same set.
	again, err := results.ApprovalAnswer("Q3", 300)
	if err != nil {
		t.Fatalf("ApprovalAnswer(Q3, 300) second call error = %v", err)
	}
	if !reflect.DeepEqual(again, got) {
		t.Errorf("ApprovalAnswer(Q3, 300) not idempotent: %v vs %v", again, got)
	}
}

func TestBatchAnswers(t *testing.T) {
	results := loadTestResults(t)

	answers, err := results.Answers("Q2")
	if err != nil {
		t.Fatalf("Answers(Q2) error = %v", err)
	}
	if len(answers) != 2 {
		t.Fatalf("Answers(Q2) returned %d answers, want 2", len(answers))
	}
	// Voter order is load order: 300 then 301.
	if answers[0].Label != "PartyB" || answers[1].Label != "PartyA" {
		t.Errorf("Answers(Q2) labels = [%q %q], want [PartyB PartyA]", answers[0].Label, answers[1].Label)
	}

	ranks, err := results.RankAnswers("Q6")
	if err != nil {
		t.Fatalf("RankAnswers(Q6) error = %v", err)
	}
	if len(ranks) != 2 {
		t.Fatalf("RankAnswers(Q6) returned %d rankings, want 2", len(ranks))
	}
	if !reflect.DeepEqual(ranks[1], []string{"X", "Y", "Z"}) {
		t.Errorf("RankAnswers(Q6)[1] = %v, want [X Y Z]", ranks[1])
	}

	approvals, err := results.ApprovalAnswers("Q3")
	if err != nil {
		t.Fatalf("ApprovalAnswers(Q3) error = %v", err)
	}
	if len(approvals) != 2 {
		t.Fatalf("ApprovalAnswers(Q3) returned %d sets, want 2", len(approvals))
	}
	if !reflect.DeepEqual(approvals[1], map[string]bool{"X": true}) {
		t.Errorf("ApprovalAnswers(Q3)[1] = %v, want {X}", approvals[1])
	}
}

func TestVoterProfile(t *testing.T) {
	results := loadTestResults(t)

	entries, err := results.VoterProfile(300)
	if err != nil {
		t.Fatalf("VoterProfile(300) error = %v", err)
	}

	byCode := make(map[string]ProfileEntry, len(entries))
	for _, e := range entries {
		byCode[e.Code] = e
	}

	if e := byCode["Q2"]; e.Kind != EntryCoded || e.Answer != "PartyB" || e.AnswerCode != "2" {
		t.Errorf("profile Q2 = %+v, want coded PartyB (code 2)", e)
	}
	if e := byCode["age"]; e.Kind != EntryData || e.Raw != "55" {
		t.Errorf("profile age = %+v, want data 55", e)
	}
	if e := byCode["Q7"]; e.Kind != EntryText || e.Text != "more transparency please" {
		t.Errorf("profile Q7 = %+v, want the open answer", e)
	}
	// Q8 has no direct open column; the exporter suffixed it as Q8_1.
	if e := byCode["Q8"]; e.Kind != EntryText || e.Text != "PartyC" {
		t.Errorf("profile Q8 = %+v, want text PartyC via the _1 fallback", e)
	}
}

func TestVoterProfile_UnknownVoter(t *testing.T) {
	results := loadTestResults(t)

	if _, err := results.VoterProfile(999); !errors.Is(err, ErrVoterNotFound) {
		t.Errorf("VoterProfile(999) error = %v, want ErrVoterNotFound", err)
	}
}
