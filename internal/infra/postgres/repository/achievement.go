package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aliskhannn/lingua-progress/internal/domain/entities"
	"github.com/aliskhannn/lingua-progress/internal/infra/postgres"
)

const uniqueViolation = "23505"

// AchievementRepository stores the achievement catalog.
type AchievementRepository struct {
	db postgres.DBTX
}

func NewAchievementRepository(db postgres.DBTX) *AchievementRepository {
	return &AchievementRepository{db: db}
}

const achievementColumns = `
	id, code, name, description, icon, type, difficulty, conditions, hidden, created_at, updated_at`

// Catalog order: easy, normal, hard, then oldest first.
const catalogOrder = `
	ORDER BY CASE difficulty WHEN 'easy' THEN 1 WHEN 'normal' THEN 2 WHEN 'hard' THEN 3 ELSE 4 END,
	         created_at, id`

// Create inserts a catalog entry and fills in its id and timestamps.
func (r *AchievementRepository) Create(ctx context.Context, a *entities.Achievement) error {
	query := `
		INSERT INTO achievements (code, name, description, icon, type, difficulty, conditions, hidden)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := postgres.Conn(ctx, r.db).QueryRow(ctx, query,
		a.Code, a.Name, a.Description, a.Icon,
		string(a.Type), string(a.Difficulty), a.Conditions, a.Hidden,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return entities.ErrAchievementCodeExists
		}
		return fmt.Errorf("create achievement: %w", err)
	}

	return nil
}

// Update replaces the editable fields of the entry with a.ID.
func (r *AchievementRepository) Update(ctx context.Context, a *entities.Achievement) error {
	query := `
		UPDATE achievements SET
			code = $2,
			name = $3,
			description = $4,
			icon = $5,
			type = $6,
			difficulty = $7,
			conditions = $8,
			hidden = $9,
			updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`

	err := postgres.Conn(ctx, r.db).QueryRow(ctx, query,
		a.ID, a.Code, a.Name, a.Description, a.Icon,
		string(a.Type), string(a.Difficulty), a.Conditions, a.Hidden,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.ErrAchievementNotFound
		}
		if isUniqueViolation(err) {
			return entities.ErrAchievementCodeExists
		}
		return fmt.Errorf("update achievement: %w", err)
	}

	return nil
}

// Delete removes the entry with id.
func (r *AchievementRepository) Delete(ctx context.Context, id int64) error {
	tag, err := postgres.Conn(ctx, r.db).Exec(ctx, `DELETE FROM achievements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete achievement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrAchievementNotFound
	}

	return nil
}

// Get retrieves a single entry by id.
func (r *AchievementRepository) Get(ctx context.Context, id int64) (*entities.Achievement, error) {
	query := `SELECT ` + achievementColumns + ` FROM achievements WHERE id = $1`

	a, err := scanAchievement(postgres.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrAchievementNotFound
		}
		return nil, fmt.Errorf("get achievement: %w", err)
	}

	return a, nil
}

// List returns the whole catalog in catalog order.
func (r *AchievementRepository) List(ctx context.Context) ([]*entities.Achievement, error) {
	query := `SELECT ` + achievementColumns + ` FROM achievements` + catalogOrder

	rows, err := postgres.Conn(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	defer rows.Close()

	var catalog []*entities.Achievement
	for rows.Next() {
		a, err := scanAchievement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan achievement: %w", err)
		}
		catalog = append(catalog, a)
	}

	return catalog, rows.Err()
}

func scanAchievement(row pgx.Row) (*entities.Achievement, error) {
	var a entities.Achievement
	var typ, difficulty string

	err := row.Scan(
		&a.ID,
		&a.Code,
		&a.Name,
		&a.Description,
		&a.Icon,
		&typ,
		&difficulty,
		&a.Conditions,
		&a.Hidden,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Type = entities.AchievementType(typ)
	a.Difficulty = entities.Difficulty(difficulty)
	return &a, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
