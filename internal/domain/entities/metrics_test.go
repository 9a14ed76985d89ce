package entities

import (
	"reflect"
	"testing"
)

func TestBuildSnapshot(t *testing.T) {
	score := 92.0
	seconds := 45

	p := NewProgress(3, testNow)
	p.Reading.Data = []string{"r1", "r2"}
	p.Grammar.Data = []string{"g1"}
	p.WordsLearned = 30
	p.Streak = 4
	p.LessonsToday = 2
	p.AchievementsUnlocked = 1
	p.LastLessonScore = &score
	p.LastCompletionTime = &seconds
	p.LastCategory = CategoryGrammar

	got := BuildSnapshot(p).Flat()

	want := map[string]any{
		"totalLessons":         3.0,
		"wordsLearned":         30.0,
		"streak":               4.0,
		"lessonScore":          92.0,
		"lessonsToday":         2.0,
		"completionTime":       45.0,
		"achievementsUnlocked": 1.0,
		"category":             "grammar",
		"completedCategories":  []string{"reading", "grammar"},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("snapshot mismatch\n got: %v\nwant: %v", got, want)
	}
}

func TestBuildSnapshotAbsentMetrics(t *testing.T) {
	s := BuildSnapshot(NewProgress(3, testNow))

	for _, key := range []MetricKey{MetricLessonScore, MetricCompletionTime, MetricCategory} {
		if _, ok := s.Get(key); ok {
			t.Errorf("metric %s present on a fresh record", key)
		}
	}
	if v, ok := s.Get(MetricTotalLessons); !ok || v.Number != 0 {
		t.Errorf("totalLessons = %+v, %v; want 0, true", v, ok)
	}
	for _, c := range Categories {
		if s.Completed[c] != 0 {
			t.Errorf("Completed[%s] = %d, want 0", c, s.Completed[c])
		}
	}
}

func TestBuildSnapshotDoesNotMutate(t *testing.T) {
	p := NewProgress(3, testNow)
	p.Vocab.Data = []string{"v1"}
	before := *p

	BuildSnapshot(p)

	if !reflect.DeepEqual(before, *p) {
		t.Error("BuildSnapshot modified the progress record")
	}
}

func TestMetricKeyValid(t *testing.T) {
	for _, k := range []MetricKey{MetricTotalLessons, MetricCategory, MetricCompletedCategories, MetricTimeAfter} {
		if !k.Valid() {
			t.Errorf("%s.Valid() = false", k)
		}
	}
	if MetricKey("xp").Valid() {
		t.Error(`MetricKey("xp").Valid() = true`)
	}
}
