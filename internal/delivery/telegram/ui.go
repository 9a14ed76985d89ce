package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// buildProgressKeyboard builds keyboard for progress screen.
func buildProgressKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Обновить", actionProgress),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏆 Достижения", actionAchievements),
			tgbotapi.NewInlineKeyboardButtonData("✨ Проверить", actionCheck),
		),
	)
}

// buildAchievementsKeyboard builds keyboard for the achievements list.
func buildAchievementsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Прогресс", actionProgress),
			tgbotapi.NewInlineKeyboardButtonData("✨ Проверить", actionCheck),
		),
	)
}
