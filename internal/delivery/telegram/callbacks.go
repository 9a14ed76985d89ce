package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}

	chatID := cb.Message.Chat.ID
	userID := cb.From.ID

	switch cb.Data {
	case actionProgress:
		p, err := h.progressService.GetOrCreate(ctx, userID)
		if err != nil {
			h.logger.Error("callback progress", zap.Int64("user_id", userID), zap.Error(err))
			h.sendError(chatID, msgInternalError)
			break
		}
		edit := tgbotapi.NewEditMessageText(chatID, cb.Message.MessageID, renderProgress(p))
		edit.ParseMode = tgbotapi.ModeMarkdownV2
		kb := buildProgressKeyboard()
		edit.ReplyMarkup = &kb
		h.send(edit)

	case actionAchievements:
		_ = h.withErrorHandling(h.achievementsHandler(userID))(ctx, chatID)

	case actionCheck:
		_ = h.withErrorHandling(h.checkHandler(userID))(ctx, chatID)

	default:
		h.logger.Debug("unknown callback", zap.String("data", cb.Data))
	}

	// Remove the user's "clock".
	if _, err := h.bot.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		h.logger.Warn("callback answer error", zap.Error(err))
	}
}
