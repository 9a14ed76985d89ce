package repository

import (
	"context"
	"fmt"

	"github.com/aliskhannn/lingua-progress/internal/domain/entities"
	"github.com/aliskhannn/lingua-progress/internal/infra/postgres"
)

// LessonRepository reads the lesson catalog of the content store.
type LessonRepository struct {
	db postgres.DBTX
}

func NewLessonRepository(db postgres.DBTX) *LessonRepository {
	return &LessonRepository{db: db}
}

// CountByCategory returns the number of lessons published in category.
func (r *LessonRepository) CountByCategory(ctx context.Context, category entities.Category) (int, error) {
	var n int
	err := postgres.Conn(ctx, r.db).QueryRow(ctx,
		`SELECT COUNT(*) FROM lessons WHERE category = $1`, string(category),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count lessons: %w", err)
	}

	return n, nil
}
