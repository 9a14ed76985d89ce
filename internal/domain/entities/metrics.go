package entities

// MetricKey names a value a condition can test.
type MetricKey string

const (
	MetricTotalLessons         MetricKey = "totalLessons"
	MetricWordsLearned         MetricKey = "wordsLearned"
	MetricStreak               MetricKey = "streak"
	MetricLessonScore          MetricKey = "lessonScore"
	MetricLessonsToday         MetricKey = "lessonsToday"
	MetricCompletionTime       MetricKey = "completionTime"
	MetricAchievementsUnlocked MetricKey = "achievementsUnlocked"
	MetricCategory             MetricKey = "category"
	MetricCompletedCategories  MetricKey = "completedCategories"

	// Wall-clock gates that are accepted by the catalog but not implemented.
	// Conditions on them never hold.
	MetricTimeBefore MetricKey = "timeBefore"
	MetricTimeAfter  MetricKey = "timeAfter"
)

// Valid reports whether the key belongs to the fixed key set.
func (k MetricKey) Valid() bool {
	if k.placeholder() {
		return true
	}
	_, ok := metricAccessors[k]
	return ok
}

func (k MetricKey) placeholder() bool {
	return k == MetricTimeBefore || k == MetricTimeAfter
}

// MetricKind tells which field of a MetricValue is meaningful.
type MetricKind int

const (
	KindNumber MetricKind = iota + 1
	KindText
	KindList
)

// MetricValue is a tagged metric: a number, a text or a list of texts.
type MetricValue struct {
	Kind   MetricKind
	Number float64
	Text   string
	List   []string
}

func NumberMetric(v float64) MetricValue { return MetricValue{Kind: KindNumber, Number: v} }
func TextMetric(s string) MetricValue    { return MetricValue{Kind: KindText, Text: s} }
func ListMetric(items []string) MetricValue {
	return MetricValue{Kind: KindList, List: items}
}

// Any returns the plain Go value of the metric.
func (m MetricValue) Any() any {
	switch m.Kind {
	case KindNumber:
		return m.Number
	case KindText:
		return m.Text
	case KindList:
		return m.List
	}
	return nil
}

type metricAccessor func(p *Progress) (MetricValue, bool)

// metricAccessors is the single place that defines how each key is read
// from a progress record. Adding a metric means adding a constant and an
// entry here. A false second result leaves the metric out of the snapshot.
var metricAccessors = map[MetricKey]metricAccessor{
	MetricTotalLessons: func(p *Progress) (MetricValue, bool) {
		return NumberMetric(float64(p.TotalLessons())), true
	},
	MetricWordsLearned: func(p *Progress) (MetricValue, bool) {
		return NumberMetric(float64(p.WordsLearned)), true
	},
	MetricStreak: func(p *Progress) (MetricValue, bool) {
		return NumberMetric(float64(p.Streak)), true
	},
	MetricLessonScore: func(p *Progress) (MetricValue, bool) {
		if p.LastLessonScore == nil {
			return MetricValue{}, false
		}
		return NumberMetric(*p.LastLessonScore), true
	},
	MetricLessonsToday: func(p *Progress) (MetricValue, bool) {
		return NumberMetric(float64(p.LessonsToday)), true
	},
	MetricCompletionTime: func(p *Progress) (MetricValue, bool) {
		if p.LastCompletionTime == nil {
			return MetricValue{}, false
		}
		return NumberMetric(float64(*p.LastCompletionTime)), true
	},
	MetricAchievementsUnlocked: func(p *Progress) (MetricValue, bool) {
		return NumberMetric(float64(p.AchievementsUnlocked)), true
	},
	MetricCategory: func(p *Progress) (MetricValue, bool) {
		if p.LastCategory == "" {
			return MetricValue{}, false
		}
		return TextMetric(string(p.LastCategory)), true
	},
	MetricCompletedCategories: func(p *Progress) (MetricValue, bool) {
		started := make([]string, 0, len(Categories))
		for _, c := range Categories {
			if len(p.Bucket(c).Data) > 0 {
				started = append(started, string(c))
			}
		}
		return ListMetric(started), true
	},
}

// Snapshot is the flat metric view of one progress record used as
// evaluation input.
type Snapshot struct {
	Metrics map[MetricKey]MetricValue
	// Completed lesson count per category bucket, read by the category rule.
	Completed map[Category]int
}

// BuildSnapshot reads every known metric from p. It does not modify p.
func BuildSnapshot(p *Progress) Snapshot {
	s := Snapshot{
		Metrics:   make(map[MetricKey]MetricValue, len(metricAccessors)),
		Completed: make(map[Category]int, len(Categories)),
	}

	for key, read := range metricAccessors {
		if v, ok := read(p); ok {
			s.Metrics[key] = v
		}
	}
	for _, c := range Categories {
		s.Completed[c] = len(p.Bucket(c).Data)
	}

	return s
}

// Get returns the metric stored under key.
func (s Snapshot) Get(key MetricKey) (MetricValue, bool) {
	v, ok := s.Metrics[key]
	return v, ok
}

// Flat returns the snapshot as plain name -> value pairs.
func (s Snapshot) Flat() map[string]any {
	out := make(map[string]any, len(s.Metrics))
	for k, v := range s.Metrics {
		out[string(k)] = v.Any()
	}
	return out
}
