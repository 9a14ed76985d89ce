package service

import (
	"context"
	"time"

	"github.com/aliskhannn/lingua-progress/internal/domain/entities"
)

// Transactor runs fn in a single database transaction carried by ctx.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type ProgressRepository interface {
	Get(ctx context.Context, userID int64) (*entities.Progress, error)
	Create(ctx context.Context, p *entities.Progress) error
	Save(ctx context.Context, p *entities.Progress) error
	IncrementAchievementsUnlocked(ctx context.Context, userID int64, n int) error
}

type AchievementRepository interface {
	Create(ctx context.Context, a *entities.Achievement) error
	Update(ctx context.Context, a *entities.Achievement) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*entities.Achievement, error)
	List(ctx context.Context) ([]*entities.Achievement, error)
}

// UnlockRepository is the unlock ledger. Insert returns
// entities.ErrAlreadyUnlocked for a pair that already exists.
type UnlockRepository interface {
	Insert(ctx context.Context, userID, achievementID int64, at time.Time) (*entities.Unlock, error)
	UnlockedIDs(ctx context.Context, userID int64) (map[int64]struct{}, error)
	ListByUser(ctx context.Context, userID int64) ([]entities.UnlockWithAchievement, error)
	DeleteByAchievement(ctx context.Context, achievementID int64) (int64, error)
	MarkNotified(ctx context.Context, userID, achievementID int64) error
}

// LessonCatalog reports how many lessons the content store publishes per category.
type LessonCatalog interface {
	CountByCategory(ctx context.Context, category entities.Category) (int, error)
}

// CounterResyncer repairs denormalized unlock counters from the ledger.
type CounterResyncer interface {
	ResyncAchievementCounters(ctx context.Context) (int64, error)
}
