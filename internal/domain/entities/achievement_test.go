package entities

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func validAchievement() *Achievement {
	return &Achievement{
		Code:       "FIRST_STEP",
		Name:       "First step",
		Type:       AchievementFirst,
		Difficulty: DifficultyEasy,
		Conditions: []Condition{{Key: MetricTotalLessons, Operator: OpGreaterOrEqual, Value: 1.0}},
	}
}

func TestAchievementValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(a *Achievement)
		wantField string
	}{
		{"valid", func(a *Achievement) {}, ""},
		{"empty code", func(a *Achievement) { a.Code = "" }, "code"},
		{"empty name", func(a *Achievement) { a.Name = "" }, "name"},
		{"bad type", func(a *Achievement) { a.Type = "secret" }, "type"},
		{"bad difficulty", func(a *Achievement) { a.Difficulty = "legendary" }, "difficulty"},
		{"no conditions", func(a *Achievement) { a.Conditions = nil }, "conditions"},
		{"unknown key", func(a *Achievement) {
			a.Conditions = []Condition{{Key: "coins", Operator: OpGreater, Value: 1.0}}
		}, "conditions[0].key"},
		{"unknown operator", func(a *Achievement) {
			a.Conditions = []Condition{{Key: MetricStreak, Operator: "~=", Value: 1.0}}
		}, "conditions[0].operator"},
		{"null value", func(a *Achievement) {
			a.Conditions = []Condition{{Key: MetricStreak, Operator: OpEqual}}
		}, "conditions[0].value"},
		{"numeric operator on text", func(a *Achievement) {
			a.Conditions = []Condition{
				{Key: MetricStreak, Operator: OpGreater, Value: 1.0},
				{Key: MetricStreak, Operator: OpGreater, Value: "three"},
			}
		}, "conditions[1].value"},
		{"in without list", func(a *Achievement) {
			a.Conditions = []Condition{{Key: MetricStreak, Operator: OpIn, Value: 3.0}}
		}, "conditions[0].value"},
		{"category not a category", func(a *Achievement) {
			a.Conditions = []Condition{{Key: MetricCategory, Operator: OpEqual, Value: "math"}}
		}, "conditions[0].value"},
		{"placeholder accepted", func(a *Achievement) {
			a.Conditions = []Condition{{Key: MetricTimeBefore, Operator: OpLess, Value: "06:00"}}
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validAchievement()
			tt.mutate(a)

			err := a.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}

			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", ve.Field, tt.wantField)
			}
		})
	}
}

func TestValidateConditionsOperatorMessage(t *testing.T) {
	err := ValidateConditions([]Condition{{Key: MetricStreak, Operator: "~=", Value: 3.0}})
	if err == nil {
		t.Fatal("expected error for operator ~=")
	}
	if !strings.Contains(err.Error(), `unknown operator "~="`) {
		t.Errorf("error = %q, want it to name the operator", err)
	}
}

func TestNormalize(t *testing.T) {
	a := &Achievement{Code: "  STREAK_7 ", Name: " Week ", Icon: " 🔥 "}
	a.Normalize()
	if a.Code != "STREAK_7" || a.Name != "Week" || a.Icon != "🔥" {
		t.Errorf("Normalize() = %+v", a)
	}
}

func TestSortCatalog(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	catalog := []*Achievement{
		{ID: 1, Difficulty: DifficultyHard, CreatedAt: t0},
		{ID: 2, Difficulty: DifficultyEasy, CreatedAt: t0.Add(time.Hour)},
		{ID: 3, Difficulty: DifficultyNormal, CreatedAt: t0},
		{ID: 4, Difficulty: DifficultyEasy, CreatedAt: t0},
		{ID: 5, Difficulty: DifficultyEasy, CreatedAt: t0},
	}

	SortCatalog(catalog)

	want := []int64{4, 5, 2, 3, 1}
	for i, a := range catalog {
		if a.ID != want[i] {
			t.Fatalf("order[%d] = %d, want %d (full: %v)", i, a.ID, want[i], ids(catalog))
		}
	}
}

func ids(catalog []*Achievement) []int64 {
	out := make([]int64, len(catalog))
	for i, a := range catalog {
		out[i] = a.ID
	}
	return out
}
