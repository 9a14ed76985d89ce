package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	msgWelcome = "Привет! Я слежу за твоими занятиями: уроками, серией дней подряд и достижениями.\n\n" +
		"/progress — прогресс по разделам\n/achievements — достижения\n/stats — статистика\n/check — проверить новые достижения"
	msgHelp = "Проходи уроки в приложении, а здесь смотри прогресс.\n\n" +
		"/progress — прогресс по разделам\n/achievements — все достижения\n/stats — статистика достижений\n/check — проверить новые достижения"
	msgUseCommands       = "Я понимаю только команды. Список: /help"
	msgUnknownCommand    = "Неизвестная команда. Список доступных команд: /help"
	msgInternalError     = "Что‑то пошло не так. Попробуйте позже."
	msgNoProgress        = "Прогресс пока пуст. Пройдите первый урок в приложении."
	msgNoNewAchievements = "Новых достижений пока нет. Продолжайте заниматься!"
	msgNoAchievements    = "Каталог достижений пока пуст."
)

var categoryTitles = map[string]string{
	"reading":   "📖 Чтение",
	"vocab":     "🔤 Слова",
	"listening": "🎧 Аудирование",
	"grammar":   "📐 Грамматика",
}

var difficultyTitles = map[string]string{
	"easy":   "лёгкое",
	"normal": "среднее",
	"hard":   "сложное",
}

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}
