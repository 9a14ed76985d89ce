package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/lingua-progress/internal/domain/entities"
	"github.com/aliskhannn/lingua-progress/internal/infra/postgres"
)

// UnlockRepository is the unlock ledger. The primary key on
// (user_id, achievement_id) keeps every pair unique.
type UnlockRepository struct {
	db postgres.DBTX
}

func NewUnlockRepository(db postgres.DBTX) *UnlockRepository {
	return &UnlockRepository{db: db}
}

// Insert records that userID earned achievementID. It returns
// entities.ErrAlreadyUnlocked when the pair is already in the ledger.
func (r *UnlockRepository) Insert(ctx context.Context, userID, achievementID int64, at time.Time) (*entities.Unlock, error) {
	query := `
		INSERT INTO user_achievements (user_id, achievement_id, unlocked_at, notified)
		VALUES ($1, $2, $3, FALSE)
		ON CONFLICT (user_id, achievement_id) DO NOTHING
		RETURNING user_id, achievement_id, unlocked_at, notified
	`

	var u entities.Unlock
	err := postgres.Conn(ctx, r.db).QueryRow(ctx, query, userID, achievementID, at).Scan(
		&u.UserID, &u.AchievementID, &u.UnlockedAt, &u.Notified,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrAlreadyUnlocked
		}
		return nil, fmt.Errorf("insert unlock: %w", err)
	}

	return &u, nil
}

// UnlockedIDs returns the set of achievement ids userID has unlocked.
func (r *UnlockRepository) UnlockedIDs(ctx context.Context, userID int64) (map[int64]struct{}, error) {
	rows, err := postgres.Conn(ctx, r.db).Query(ctx,
		`SELECT achievement_id FROM user_achievements WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("get unlocked ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[int64]struct{})
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan unlocked id: %w", err)
		}
		ids[id] = struct{}{}
	}

	return ids, rows.Err()
}

// ListByUser returns the unlocks of userID joined with their achievements,
// most recent first.
func (r *UnlockRepository) ListByUser(ctx context.Context, userID int64) ([]entities.UnlockWithAchievement, error) {
	query := `
		SELECT ua.user_id, ua.achievement_id, ua.unlocked_at, ua.notified,
		       a.id, a.code, a.name, a.description, a.icon, a.type, a.difficulty,
		       a.conditions, a.hidden, a.created_at, a.updated_at
		FROM user_achievements ua
		JOIN achievements a ON a.id = ua.achievement_id
		WHERE ua.user_id = $1
		ORDER BY ua.unlocked_at DESC, ua.achievement_id DESC
	`

	rows, err := postgres.Conn(ctx, r.db).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list unlocks: %w", err)
	}
	defer rows.Close()

	var unlocks []entities.UnlockWithAchievement
	for rows.Next() {
		var u entities.UnlockWithAchievement
		var typ, difficulty string

		err := rows.Scan(
			&u.UserID, &u.AchievementID, &u.UnlockedAt, &u.Notified,
			&u.Achievement.ID,
			&u.Achievement.Code,
			&u.Achievement.Name,
			&u.Achievement.Description,
			&u.Achievement.Icon,
			&typ,
			&difficulty,
			&u.Achievement.Conditions,
			&u.Achievement.Hidden,
			&u.Achievement.CreatedAt,
			&u.Achievement.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan unlock: %w", err)
		}

		u.Achievement.Type = entities.AchievementType(typ)
		u.Achievement.Difficulty = entities.Difficulty(difficulty)
		unlocks = append(unlocks, u)
	}

	return unlocks, rows.Err()
}

// DeleteByAchievement removes every unlock of achievementID.
func (r *UnlockRepository) DeleteByAchievement(ctx context.Context, achievementID int64) (int64, error) {
	tag, err := postgres.Conn(ctx, r.db).Exec(ctx,
		`DELETE FROM user_achievements WHERE achievement_id = $1`, achievementID)
	if err != nil {
		return 0, fmt.Errorf("delete unlocks: %w", err)
	}

	return tag.RowsAffected(), nil
}

// MarkNotified flags an unlock as shown to the user.
func (r *UnlockRepository) MarkNotified(ctx context.Context, userID, achievementID int64) error {
	tag, err := postgres.Conn(ctx, r.db).Exec(ctx, `
		UPDATE user_achievements SET notified = TRUE
		WHERE user_id = $1 AND achievement_id = $2
	`, userID, achievementID)
	if err != nil {
		return fmt.Errorf("mark notified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrUnlockNotFound
	}

	return nil
}
