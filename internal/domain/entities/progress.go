package entities

import (
	"slices"
	"time"
)

// Category is one of the four lesson buckets tracked per user.
type Category string

const (
	CategoryReading   Category = "reading"
	CategoryVocab     Category = "vocab"
	CategoryListening Category = "listening"
	CategoryGrammar   Category = "grammar"
)

// Categories lists the buckets in display order.
var Categories = []Category{CategoryReading, CategoryVocab, CategoryListening, CategoryGrammar}

func (c Category) Valid() bool {
	return slices.Contains(Categories, c)
}

// CategoryBucket holds the completed lesson ids of one category.
type CategoryBucket struct {
	Data             []string `json:"data"`             // completed lesson ids, no duplicates
	CompletedPercent float64  `json:"completedPercent"` // display value, recomputed on each completion
}

// CurrentLesson is the lesson a user is mid-way through.
type CurrentLesson struct {
	LessonID string   `json:"lessonId"`
	Category Category `json:"category"`
	Percent  float64  `json:"percent"`
}

// Progress is the per-user progress record. It is created lazily and
// mutated on every lesson completion.
type Progress struct {
	UserID int64 `json:"userId"`

	Reading   CategoryBucket `json:"reading"`
	Vocab     CategoryBucket `json:"vocab"`
	Listening CategoryBucket `json:"listening"`
	Grammar   CategoryBucket `json:"grammar"`

	WordsLearned  int        `json:"wordsLearned"`
	Streak        int        `json:"streak"`
	LastStudyDate *time.Time `json:"lastStudyDate,omitempty"`
	LessonsToday  int        `json:"lessonsToday"`

	// Inputs for the next reconciliation only, overwritten on each completion.
	LastLessonScore    *float64 `json:"lastLessonScore,omitempty"`
	LastCategory       Category `json:"lastCategory,omitempty"`
	LastCompletionTime *int     `json:"lastCompletionTime,omitempty"` // seconds

	AchievementsUnlocked int            `json:"achievementsUnlocked"` // mirrors the unlock ledger count
	CurrentLesson        *CurrentLesson `json:"currentLesson,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewProgress returns an empty progress record for userID.
func NewProgress(userID int64, now time.Time) *Progress {
	return &Progress{
		UserID:    userID,
		Reading:   CategoryBucket{Data: []string{}},
		Vocab:     CategoryBucket{Data: []string{}},
		Listening: CategoryBucket{Data: []string{}},
		Grammar:   CategoryBucket{Data: []string{}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Bucket returns the bucket for c, or nil for an unknown category.
func (p *Progress) Bucket(c Category) *CategoryBucket {
	switch c {
	case CategoryReading:
		return &p.Reading
	case CategoryVocab:
		return &p.Vocab
	case CategoryListening:
		return &p.Listening
	case CategoryGrammar:
		return &p.Grammar
	}
	return nil
}

// TotalLessons is the number of completed lessons across all buckets.
func (p *Progress) TotalLessons() int {
	total := 0
	for _, c := range Categories {
		total += len(p.Bucket(c).Data)
	}
	return total
}

// LessonCompletion describes one completed lesson.
type LessonCompletion struct {
	LessonID       string
	Category       Category
	Score          *float64
	CompletionTime *int // seconds
}

// Validate checks the completion before it touches a progress record.
func (lc LessonCompletion) Validate() error {
	if lc.LessonID == "" {
		return newValidationError("lessonId", "must not be empty")
	}
	if !lc.Category.Valid() {
		return newValidationError("category", "unknown category %q", lc.Category)
	}
	if lc.CompletionTime != nil && *lc.CompletionTime < 0 {
		return newValidationError("completionTime", "must not be negative")
	}
	return nil
}

// CompleteLesson applies a lesson completion to the record.
//
// The lesson id is added to its bucket unless already present, the bucket
// percentage is recomputed against totalInCategory, the vocab word counter
// grows by wordsPerVocabLesson for a first-time vocab completion, the streak
// state machine runs, and the last-completion inputs are overwritten.
func (p *Progress) CompleteLesson(lc LessonCompletion, totalInCategory, wordsPerVocabLesson int, now time.Time, loc *time.Location) {
	bucket := p.Bucket(lc.Category)

	if !slices.Contains(bucket.Data, lc.LessonID) {
		bucket.Data = append(bucket.Data, lc.LessonID)
		if lc.Category == CategoryVocab {
			p.WordsLearned += wordsPerVocabLesson
		}
	}
	bucket.CompletedPercent = completedPercent(len(bucket.Data), totalInCategory)

	p.RecordStudy(now, loc)

	p.LastLessonScore = lc.Score
	p.LastCategory = lc.Category
	p.LastCompletionTime = lc.CompletionTime
	p.UpdatedAt = now
}

// RecordStudy runs the streak and daily-activity transitions for a study
// event at now. The day difference is taken against the previous
// LastStudyDate before it is overwritten.
//
//	no previous study  -> streak 1, lessonsToday 1
//	same calendar day  -> streak kept, lessonsToday+1
//	next calendar day  -> streak+1, lessonsToday 1
//	gap of 2+ days     -> streak 1, lessonsToday 1
func (p *Progress) RecordStudy(now time.Time, loc *time.Location) {
	if p.LastStudyDate == nil {
		p.Streak = 1
		p.LessonsToday = 1
	} else {
		switch diff := CalendarDaysBetween(*p.LastStudyDate, now, loc); {
		case diff <= 0:
			// Same day. A clock that went backwards counts as the same day too.
			p.LessonsToday++
		case diff == 1:
			p.Streak++
			p.LessonsToday = 1
		default:
			p.Streak = 1
			p.LessonsToday = 1
		}
	}

	studied := now
	p.LastStudyDate = &studied
}

// SetCurrentLesson records the lesson the user is working on.
func (p *Progress) SetCurrentLesson(cl CurrentLesson, now time.Time) error {
	if cl.LessonID == "" {
		return newValidationError("lessonId", "must not be empty")
	}
	if !cl.Category.Valid() {
		return newValidationError("category", "unknown category %q", cl.Category)
	}
	cl.Percent = min(100, max(0, cl.Percent))

	p.CurrentLesson = &cl
	p.UpdatedAt = now
	return nil
}

func completedPercent(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return min(100, float64(completed)/float64(total)*100)
}
