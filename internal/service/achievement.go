package service

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/lingua-progress/internal/domain/entities"
)

const recentUnlocksLimit = 5

// AchievementService runs the reconciliation sweep and serves a user's
// achievement views.
type AchievementService struct {
	progress ProgressRepository
	catalog  AchievementRepository
	unlocks  UnlockRepository
	now      func() time.Time
	logger   *zap.Logger
}

func NewAchievementService(
	progress ProgressRepository,
	catalog AchievementRepository,
	unlocks UnlockRepository,
	logger *zap.Logger,
) *AchievementService {
	return &AchievementService{
		progress: progress,
		catalog:  catalog,
		unlocks:  unlocks,
		now:      time.Now,
		logger:   logger,
	}
}

// CheckAndUnlock grants every catalog entry whose conditions all hold for
// the user's current progress and returns the newly granted entries.
//
// The sweep is idempotent: an entry is granted at most once per user even
// when sweeps for the same user run concurrently. A grant lost to a
// concurrent sweep is dropped from the result, not reported as an error.
func (s *AchievementService) CheckAndUnlock(ctx context.Context, userID int64) ([]*entities.Achievement, error) {
	p, err := s.progress.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	snapshot := entities.BuildSnapshot(p)

	catalog, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	entities.SortCatalog(catalog)

	unlocked, err := s.unlocks.UnlockedIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	granted := make([]*entities.Achievement, 0)

	for _, a := range catalog {
		if _, ok := unlocked[a.ID]; ok {
			continue
		}
		if len(a.Conditions) == 0 || !entities.EvaluateAll(a.Conditions, snapshot) {
			continue
		}

		if _, err := s.unlocks.Insert(ctx, userID, a.ID, now); err != nil {
			if errors.Is(err, entities.ErrAlreadyUnlocked) {
				s.logger.Debug("achievement granted by a concurrent sweep",
					zap.Int64("user_id", userID),
					zap.String("code", a.Code),
				)
				continue
			}
			s.addToCounter(ctx, userID, len(granted))
			return nil, err
		}

		granted = append(granted, a)
	}

	s.addToCounter(ctx, userID, len(granted))

	if len(granted) > 0 {
		s.logger.Info("achievements unlocked",
			zap.Int64("user_id", userID),
			zap.Strings("codes", codes(granted)),
		)
	}

	return granted, nil
}

// addToCounter persists n new grants. The ledger rows already exist, so a
// failure here only leaves the counter behind until the next resync.
func (s *AchievementService) addToCounter(ctx context.Context, userID int64, n int) {
	if n == 0 {
		return
	}
	if err := s.progress.IncrementAchievementsUnlocked(ctx, userID, n); err != nil {
		s.logger.Error("failed to update achievements counter",
			zap.Int64("user_id", userID),
			zap.Int("grants", n),
			zap.Error(err),
		)
	}
}

// GetUserAchievements lists every visible catalog entry with the user's
// unlock state. Hidden entries appear once unlocked.
func (s *AchievementService) GetUserAchievements(ctx context.Context, userID int64) ([]entities.UserAchievement, error) {
	catalog, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	entities.SortCatalog(catalog)

	unlocks, err := s.unlocks.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]entities.UnlockWithAchievement, len(unlocks))
	for _, u := range unlocks {
		byID[u.AchievementID] = u
	}

	out := make([]entities.UserAchievement, 0, len(catalog))
	for _, a := range catalog {
		u, ok := byID[a.ID]
		if a.Hidden && !ok {
			continue
		}

		ua := entities.UserAchievement{Achievement: *a}
		if ok {
			unlockedAt := u.UnlockedAt
			ua.Unlocked = true
			ua.UnlockedAt = &unlockedAt
			ua.Notified = u.Notified
			ua.Progress = 100
		}
		out = append(out, ua)
	}

	return out, nil
}

// GetUserAchievementStats summarizes the user's achievements.
func (s *AchievementService) GetUserAchievementStats(ctx context.Context, userID int64) (*entities.AchievementStats, error) {
	list, err := s.GetUserAchievements(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &entities.AchievementStats{
		Total:          len(list),
		RecentUnlocked: []entities.UnlockWithAchievement{},
	}
	for _, ua := range list {
		if ua.Unlocked {
			stats.Unlocked++
		}
	}
	if stats.Total > 0 {
		stats.Percentage = math.Round(float64(stats.Unlocked)/float64(stats.Total)*1000) / 10
	}

	unlocks, err := s.unlocks.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(unlocks) > recentUnlocksLimit {
		unlocks = unlocks[:recentUnlocksLimit]
	}
	stats.RecentUnlocked = append(stats.RecentUnlocked, unlocks...)

	return stats, nil
}

// MarkNotified records that the user has been shown an unlock.
func (s *AchievementService) MarkNotified(ctx context.Context, userID, achievementID int64) error {
	return s.unlocks.MarkNotified(ctx, userID, achievementID)
}

func codes(list []*entities.Achievement) []string {
	out := make([]string, len(list))
	for i, a := range list {
		out[i] = a.Code
	}
	return out
}
