package rest

import (
	"context"

	"github.com/aliskhannn/lingua-progress/internal/domain/entities"
)

type ProgressService interface {
	GetOrCreate(ctx context.Context, userID int64) (*entities.Progress, error)
	CompleteLesson(ctx context.Context, userID int64, lc entities.LessonCompletion) (*entities.Progress, error)
	SetCurrentLesson(ctx context.Context, userID int64, cl entities.CurrentLesson) (*entities.Progress, error)
}

type AchievementService interface {
	CheckAndUnlock(ctx context.Context, userID int64) ([]*entities.Achievement, error)
	GetUserAchievements(ctx context.Context, userID int64) ([]entities.UserAchievement, error)
	GetUserAchievementStats(ctx context.Context, userID int64) (*entities.AchievementStats, error)
	MarkNotified(ctx context.Context, userID, achievementID int64) error
}

type CatalogService interface {
	Create(ctx context.Context, a *entities.Achievement) (*entities.Achievement, error)
	Update(ctx context.Context, id int64, a *entities.Achievement) (*entities.Achievement, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*entities.Achievement, error)
	List(ctx context.Context, includeHidden bool) ([]*entities.Achievement, error)
}
