package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/lingua-progress/internal/domain/entities"
)

type ProgressService interface {
	GetOrCreate(ctx context.Context, userID int64) (*entities.Progress, error)
}

type AchievementService interface {
	CheckAndUnlock(ctx context.Context, userID int64) ([]*entities.Achievement, error)
	GetUserAchievements(ctx context.Context, userID int64) ([]entities.UserAchievement, error)
	GetUserAchievementStats(ctx context.Context, userID int64) (*entities.AchievementStats, error)
	MarkNotified(ctx context.Context, userID, achievementID int64) error
}

// Sender is the part of *tgbotapi.BotAPI the handler talks to.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}
