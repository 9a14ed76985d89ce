package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/lingua-progress/internal/domain/entities"
	"github.com/aliskhannn/lingua-progress/internal/infra/postgres"
)

// ProgressRepository provides access to user progress data in the database.
type ProgressRepository struct {
	db postgres.DBTX
}

// NewProgressRepository creates a new ProgressRepository with the provided database pool.
func NewProgressRepository(db postgres.DBTX) *ProgressRepository {
	return &ProgressRepository{db: db}
}

const progressColumns = `
	user_id, reading, vocab, listening, grammar,
	words_learned, streak, last_study_date, lessons_today,
	last_lesson_score, last_category, last_completion_time,
	achievements_unlocked, current_lesson, created_at, updated_at`

// Get retrieves the progress record of userID.
func (r *ProgressRepository) Get(ctx context.Context, userID int64) (*entities.Progress, error) {
	query := `SELECT ` + progressColumns + ` FROM user_progress WHERE user_id = $1`

	var p entities.Progress
	var lastCategory string

	err := postgres.Conn(ctx, r.db).QueryRow(ctx, query, userID).Scan(
		&p.UserID,
		&p.Reading,
		&p.Vocab,
		&p.Listening,
		&p.Grammar,
		&p.WordsLearned,
		&p.Streak,
		&p.LastStudyDate,
		&p.LessonsToday,
		&p.LastLessonScore,
		&lastCategory,
		&p.LastCompletionTime,
		&p.AchievementsUnlocked,
		&p.CurrentLesson,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrProgressNotFound
		}
		return nil, fmt.Errorf("get progress: %w", err)
	}

	p.LastCategory = entities.Category(lastCategory)
	return &p, nil
}

// Create inserts an empty record for p.UserID. An existing record is left
// untouched, so concurrent first reads are safe.
func (r *ProgressRepository) Create(ctx context.Context, p *entities.Progress) error {
	query := `
		INSERT INTO user_progress (user_id, reading, vocab, listening, grammar, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO NOTHING
	`

	_, err := postgres.Conn(ctx, r.db).Exec(ctx, query,
		p.UserID, p.Reading, p.Vocab, p.Listening, p.Grammar, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create progress: %w", err)
	}

	return nil
}

// Save writes every field a lesson completion may change. The unlock
// counter is owned by IncrementAchievementsUnlocked and is not written here.
func (r *ProgressRepository) Save(ctx context.Context, p *entities.Progress) error {
	query := `
		UPDATE user_progress SET
			reading = $2,
			vocab = $3,
			listening = $4,
			grammar = $5,
			words_learned = $6,
			streak = $7,
			last_study_date = $8,
			lessons_today = $9,
			last_lesson_score = $10,
			last_category = $11,
			last_completion_time = $12,
			current_lesson = $13,
			updated_at = $14
		WHERE user_id = $1
	`

	tag, err := postgres.Conn(ctx, r.db).Exec(ctx, query,
		p.UserID,
		p.Reading,
		p.Vocab,
		p.Listening,
		p.Grammar,
		p.WordsLearned,
		p.Streak,
		p.LastStudyDate,
		p.LessonsToday,
		p.LastLessonScore,
		string(p.LastCategory),
		p.LastCompletionTime,
		p.CurrentLesson,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrProgressNotFound
	}

	return nil
}

// IncrementAchievementsUnlocked adds n to the unlock counter in one statement.
func (r *ProgressRepository) IncrementAchievementsUnlocked(ctx context.Context, userID int64, n int) error {
	query := `
		UPDATE user_progress
		SET achievements_unlocked = achievements_unlocked + $2, updated_at = NOW()
		WHERE user_id = $1
	`

	tag, err := postgres.Conn(ctx, r.db).Exec(ctx, query, userID, n)
	if err != nil {
		return fmt.Errorf("increment achievements unlocked: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrProgressNotFound
	}

	return nil
}

// ResyncAchievementCounters sets the unlock counter of every user whose
// counter differs from the ledger count and returns how many were fixed.
func (r *ProgressRepository) ResyncAchievementCounters(ctx context.Context) (int64, error) {
	query := `
		UPDATE user_progress AS up
		SET achievements_unlocked = counts.unlocked, updated_at = NOW()
		FROM (
			SELECT p.user_id, COUNT(ua.achievement_id) AS unlocked
			FROM user_progress p
			LEFT JOIN user_achievements ua ON ua.user_id = p.user_id
			GROUP BY p.user_id
		) AS counts
		WHERE counts.user_id = up.user_id
		  AND up.achievements_unlocked <> counts.unlocked
	`

	tag, err := postgres.Conn(ctx, r.db).Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("resync achievement counters: %w", err)
	}

	return tag.RowsAffected(), nil
}
