package entities

import (
	"encoding/json"
	"testing"
)

func snapshotOf(p *Progress) Snapshot { return BuildSnapshot(p) }

func TestEvaluateNumericOperators(t *testing.T) {
	p := NewProgress(1, testNow)
	p.WordsLearned = 50

	s := snapshotOf(p)

	tests := []struct {
		op    Operator
		value any
		want  bool
	}{
		{OpEqual, 50, true},
		{OpEqual, 49.0, false},
		{OpGreaterOrEqual, 50, true},
		{OpGreaterOrEqual, 51, false},
		{OpLessOrEqual, 50, true},
		{OpLessOrEqual, 49, false},
		{OpGreater, 49, true},
		{OpGreater, 50, false},
		{OpLess, 51, true},
		{OpLess, 50, false},
		{OpGreaterOrEqual, json.Number("50"), true},
		{OpGreaterOrEqual, "50", false},
		{Operator("~="), 50, false},
	}

	for _, tt := range tests {
		c := Condition{Key: MetricWordsLearned, Operator: tt.op, Value: tt.value}
		if got := Evaluate(c, s); got != tt.want {
			t.Errorf("wordsLearned %s %v = %v, want %v", tt.op, tt.value, got, tt.want)
		}
	}
}

func TestEvaluateInAndContains(t *testing.T) {
	p := NewProgress(1, testNow)
	p.Streak = 3
	p.LastCategory = CategoryVocab
	p.Vocab.Data = []string{"v1"}
	p.Grammar.Data = []string{"g1"}

	s := snapshotOf(p)

	tests := []struct {
		name string
		c    Condition
		want bool
	}{
		{"number in list", Condition{MetricStreak, OpIn, []any{1.0, 3.0, 7.0}}, true},
		{"number not in list", Condition{MetricStreak, OpIn, []any{1.0, 7.0}}, false},
		{"in with ints", Condition{MetricStreak, OpIn, []int{3}}, true},
		{"in needs list", Condition{MetricStreak, OpIn, 3}, false},
		{"contains started category", Condition{MetricCompletedCategories, OpContains, "grammar"}, true},
		{"contains missing category", Condition{MetricCompletedCategories, OpContains, "reading"}, false},
		{"contains on scalar", Condition{MetricStreak, OpContains, "3"}, false},
		{"numeric compare on list", Condition{MetricCompletedCategories, OpGreater, 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.c, s); got != tt.want {
				t.Errorf("Evaluate(%+v) = %v, want %v", tt.c, got, tt.want)
			}
		})
	}
}

func TestEvaluateCategoryIgnoresOperator(t *testing.T) {
	p := NewProgress(1, testNow)
	p.Reading.Data = []string{"r1"}
	s := snapshotOf(p)

	for _, op := range []Operator{OpEqual, OpLess, OpContains, OpIn} {
		if !Evaluate(Condition{MetricCategory, op, "reading"}, s) {
			t.Errorf("category %s reading = false, want true", op)
		}
		if Evaluate(Condition{MetricCategory, op, "listening"}, s) {
			t.Errorf("category %s listening = true, want false", op)
		}
	}
}

func TestEvaluateUnknownAndPlaceholderKeys(t *testing.T) {
	p := NewProgress(1, testNow)
	p.Streak = 10
	s := snapshotOf(p)

	tests := []Condition{
		{MetricKey("mystery"), OpGreaterOrEqual, 0},
		{MetricTimeBefore, OpLess, 10},
		{MetricTimeAfter, OpGreater, 0},
		// No completion yet, so lessonScore and completionTime are absent.
		{MetricLessonScore, OpGreaterOrEqual, 0},
		{MetricCompletionTime, OpLessOrEqual, 1000},
	}

	for _, c := range tests {
		if Evaluate(c, s) {
			t.Errorf("Evaluate(%+v) = true, want false", c)
		}
	}
}

func TestEvaluateAllConjunction(t *testing.T) {
	conditions := []Condition{
		{MetricWordsLearned, OpGreaterOrEqual, 50},
		{MetricCategory, OpEqual, "vocab"},
	}

	tests := []struct {
		name  string
		words int
		vocab []string
		want  bool
	}{
		{"both hold", 50, []string{"v1"}, true},
		{"words too low", 49, []string{"v1"}, false},
		{"no vocab progress", 60, nil, false},
		{"neither", 0, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProgress(1, testNow)
			p.WordsLearned = tt.words
			p.Vocab.Data = tt.vocab
			if got := EvaluateAll(conditions, snapshotOf(p)); got != tt.want {
				t.Errorf("EvaluateAll = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateAllEmptyNeverHolds(t *testing.T) {
	p := NewProgress(1, testNow)
	p.Streak = 100
	if EvaluateAll(nil, snapshotOf(p)) {
		t.Error("EvaluateAll(nil) = true, want false")
	}
	if EvaluateAll([]Condition{}, snapshotOf(p)) {
		t.Error("EvaluateAll([]) = true, want false")
	}
}

func TestEvaluateJSONDecodedConditions(t *testing.T) {
	raw := `[{"key":"totalLessons","operator":">=","value":1},
	         {"key":"streak","operator":"in","value":[1,2,3]},
	         {"key":"category","operator":"=","value":"reading"}]`

	var conditions []Condition
	if err := json.Unmarshal([]byte(raw), &conditions); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	p := NewProgress(1, testNow)
	p.Reading.Data = []string{"r1"}
	p.Streak = 1

	if !EvaluateAll(conditions, snapshotOf(p)) {
		t.Error("decoded conditions should hold")
	}
}
