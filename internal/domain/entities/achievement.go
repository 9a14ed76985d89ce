package entities

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// AchievementType classifies an achievement. It does not affect evaluation.
type AchievementType string

const (
	AchievementFirst    AchievementType = "first"
	AchievementProgress AchievementType = "progress"
	AchievementVocab    AchievementType = "vocab"
	AchievementStreak   AchievementType = "streak"
	AchievementGlobal   AchievementType = "global"
)

func (t AchievementType) Valid() bool {
	switch t {
	case AchievementFirst, AchievementProgress, AchievementVocab, AchievementStreak, AchievementGlobal:
		return true
	}
	return false
}

// Difficulty is used for display and catalog ordering only.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	return d.Rank() > 0
}

// Rank returns the sort position of the difficulty, 0 for unknown values.
func (d Difficulty) Rank() int {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyNormal:
		return 2
	case DifficultyHard:
		return 3
	}
	return 0
}

// Operator is a comparison applied by a condition.
type Operator string

const (
	OpEqual          Operator = "="
	OpGreaterOrEqual Operator = ">="
	OpLessOrEqual    Operator = "<="
	OpGreater        Operator = ">"
	OpLess           Operator = "<"
	OpIn             Operator = "in"
	OpContains       Operator = "contains"
)

func (o Operator) Valid() bool {
	switch o {
	case OpEqual, OpGreaterOrEqual, OpLessOrEqual, OpGreater, OpLess, OpIn, OpContains:
		return true
	}
	return false
}

func (o Operator) numericOnly() bool {
	switch o {
	case OpGreaterOrEqual, OpLessOrEqual, OpGreater, OpLess:
		return true
	}
	return false
}

// Condition is a single {key, operator, value} requirement.
type Condition struct {
	Key      MetricKey `json:"key"`
	Operator Operator  `json:"operator"`
	Value    any       `json:"value"`
}

// Achievement is a catalog entry. All conditions must hold for it to unlock.
type Achievement struct {
	ID          int64           `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Icon        string          `json:"icon"`
	Type        AchievementType `json:"type"`
	Difficulty  Difficulty      `json:"difficulty"`
	Conditions  []Condition     `json:"conditions"`
	Hidden      bool            `json:"hidden"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Normalize trims the free-text fields in place.
func (a *Achievement) Normalize() {
	a.Code = strings.TrimSpace(a.Code)
	a.Name = strings.TrimSpace(a.Name)
	a.Description = strings.TrimSpace(a.Description)
	a.Icon = strings.TrimSpace(a.Icon)
}

// Validate checks a catalog entry before it is persisted.
// Evaluation trusts whatever passed this check.
func (a *Achievement) Validate() error {
	if a.Code == "" {
		return newValidationError("code", "must not be empty")
	}
	if a.Name == "" {
		return newValidationError("name", "must not be empty")
	}
	if !a.Type.Valid() {
		return newValidationError("type", "unknown achievement type %q", a.Type)
	}
	if !a.Difficulty.Valid() {
		return newValidationError("difficulty", "unknown difficulty %q", a.Difficulty)
	}
	return ValidateConditions(a.Conditions)
}

// ValidateConditions rejects empty lists, unknown keys and operators,
// and values whose shape can never match the operator.
func ValidateConditions(conditions []Condition) error {
	if len(conditions) == 0 {
		return newValidationError("conditions", "at least one condition is required")
	}

	for i, c := range conditions {
		field := "conditions[" + strconv.Itoa(i) + "]"

		if !c.Key.Valid() {
			return newValidationError(field+".key", "unknown metric key %q", c.Key)
		}
		if !c.Operator.Valid() {
			return newValidationError(field+".operator", "unknown operator %q", c.Operator)
		}
		if c.Key.placeholder() {
			continue
		}
		if c.Value == nil {
			return newValidationError(field+".value", "must not be null")
		}

		switch {
		case c.Key == MetricCategory:
			name, ok := c.Value.(string)
			if !ok || !Category(name).Valid() {
				return newValidationError(field+".value", "must name a category (reading, vocab, listening, grammar)")
			}
		case c.Operator == OpIn:
			if _, ok := toList(c.Value); !ok {
				return newValidationError(field+".value", "operator %q needs an array value", c.Operator)
			}
		case c.Operator.numericOnly():
			if _, ok := toNumber(c.Value); !ok {
				return newValidationError(field+".value", "operator %q needs a numeric value", c.Operator)
			}
		}
	}

	return nil
}

// SortCatalog orders achievements by difficulty, then creation time, then id.
func SortCatalog(catalog []*Achievement) {
	sort.SliceStable(catalog, func(i, j int) bool {
		a, b := catalog[i], catalog[j]
		if a.Difficulty.Rank() != b.Difficulty.Rank() {
			return a.Difficulty.Rank() < b.Difficulty.Rank()
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}
