package telegram

import (
	"context"

	"go.uber.org/zap"

	"github.com/aliskhannn/lingua-progress/internal/domain/entities"
)

func (h *Handler) progressHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		p, err := h.progressService.GetOrCreate(ctx, userID)
		if err != nil {
			return err
		}

		msg := newMessage(chatID, renderProgress(p))
		msg.ReplyMarkup = buildProgressKeyboard()
		h.send(msg)
		return nil
	}
}

func (h *Handler) achievementsHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		list, err := h.achievementService.GetUserAchievements(ctx, userID)
		if err != nil {
			return err
		}

		msg := newMessage(chatID, renderAchievements(list))
		msg.ReplyMarkup = buildAchievementsKeyboard()
		h.send(msg)
		return nil
	}
}

func (h *Handler) statsHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		stats, err := h.achievementService.GetUserAchievementStats(ctx, userID)
		if err != nil {
			return err
		}

		h.send(newMessage(chatID, renderStats(stats)))
		return nil
	}
}

// checkHandler runs the reconciliation sweep and announces every unlock the
// user has not been shown yet, including ones granted through the API.
func (h *Handler) checkHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		// The sweep needs a progress record.
		if _, err := h.progressService.GetOrCreate(ctx, userID); err != nil {
			return err
		}

		if _, err := h.achievementService.CheckAndUnlock(ctx, userID); err != nil {
			return err
		}

		list, err := h.achievementService.GetUserAchievements(ctx, userID)
		if err != nil {
			return err
		}

		var fresh []entities.Achievement
		for _, ua := range list {
			if ua.Unlocked && !ua.Notified {
				fresh = append(fresh, ua.Achievement)
			}
		}

		if len(fresh) == 0 {
			h.send(newMessage(chatID, md(msgNoNewAchievements)))
			return nil
		}

		h.send(newMessage(chatID, renderUnlocked(fresh)))

		for _, a := range fresh {
			if err := h.achievementService.MarkNotified(ctx, userID, a.ID); err != nil {
				h.logger.Warn("failed to mark unlock notified",
					zap.Int64("user_id", userID),
					zap.Int64("achievement_id", a.ID),
					zap.Error(err),
				)
			}
		}

		return nil
	}
}
