package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Commands lists the bot menu.
var Commands = []tgbotapi.BotCommand{
	{Command: "start", Description: "Запустить бота"},
	{Command: "progress", Description: "Показать прогресс"},
	{Command: "achievements", Description: "Мои достижения"},
	{Command: "stats", Description: "Статистика достижений"},
	{Command: "check", Description: "Проверить новые достижения"},
	{Command: "help", Description: "Помощь"},
}

type Handler struct {
	bot                Sender
	logger             *zap.Logger
	progressService    ProgressService
	achievementService AchievementService
}

func NewHandler(
	bot Sender,
	logger *zap.Logger,
	progressService ProgressService,
	achievementService AchievementService,
) *Handler {
	return &Handler{
		bot:                bot,
		logger:             logger,
		progressService:    progressService,
		achievementService: achievementService,
	}
}

// Run handles updates until ctx is cancelled.
func (h *Handler) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	if !update.Message.IsCommand() {
		h.send(newMessage(chatID, md(msgUseCommands)))
		return
	}

	switch update.Message.Command() {
	case "start":
		h.send(newMessage(chatID, md(msgWelcome)))

	case "help":
		h.send(newMessage(chatID, md(msgHelp)))

	case "progress":
		_ = h.withErrorHandling(h.progressHandler(userID))(ctx, chatID)

	case "achievements":
		_ = h.withErrorHandling(h.achievementsHandler(userID))(ctx, chatID)

	case "stats":
		_ = h.withErrorHandling(h.statsHandler(userID))(ctx, chatID)

	case "check":
		_ = h.withErrorHandling(h.checkHandler(userID))(ctx, chatID)

	default:
		h.send(newMessage(chatID, md(msgUnknownCommand)))
	}
}

func (h *Handler) sendError(chatID int64, text string) {
	h.send(newMessage(chatID, md(text)))
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}
