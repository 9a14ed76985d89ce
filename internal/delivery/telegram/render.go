package telegram

import (
	"fmt"
	"strings"

	"github.com/aliskhannn/lingua-progress/internal/domain/entities"
)

const progressBarLength = 10

// renderProgress renders the progress screen.
func renderProgress(p *entities.Progress) string {
	if p.TotalLessons() == 0 {
		return md(msgNoProgress)
	}

	var b strings.Builder
	b.WriteString(bold("📊 Ваш прогресс"))
	b.WriteString("\n\n")

	for _, c := range entities.Categories {
		bucket := p.Bucket(c)
		b.WriteString(md(fmt.Sprintf("%s: %d уроков %s %.0f%%",
			categoryTitles[string(c)],
			len(bucket.Data),
			buildProgressBar(bucket.CompletedPercent, progressBarLength),
			bucket.CompletedPercent,
		)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(md(fmt.Sprintf("✅ Всего уроков: %d", p.TotalLessons())))
	b.WriteString("\n")
	b.WriteString(md(fmt.Sprintf("🔤 Выучено слов: %d", p.WordsLearned)))
	b.WriteString("\n")
	b.WriteString(md(fmt.Sprintf("🔥 Дней подряд: %d", p.Streak)))
	b.WriteString("\n")
	b.WriteString(md(fmt.Sprintf("📅 Уроков сегодня: %d", p.LessonsToday)))
	b.WriteString("\n")
	b.WriteString(md(fmt.Sprintf("🏆 Достижений: %d", p.AchievementsUnlocked)))

	if cl := p.CurrentLesson; cl != nil {
		b.WriteString("\n\n")
		b.WriteString(italic(fmt.Sprintf("Сейчас: %s, урок %s (%.0f%%)",
			categoryTitles[string(cl.Category)], cl.LessonID, cl.Percent)))
	}

	return b.String()
}

// renderAchievements renders the catalog with unlock marks.
func renderAchievements(list []entities.UserAchievement) string {
	if len(list) == 0 {
		return md(msgNoAchievements)
	}

	var b strings.Builder
	b.WriteString(bold("🏆 Достижения"))
	b.WriteString("\n")

	for _, ua := range list {
		mark := "🔒"
		if ua.Unlocked {
			mark = "✅"
		}
		b.WriteString("\n")
		b.WriteString(md(mark + " "))
		b.WriteString(bold(strings.TrimSpace(ua.Achievement.Icon + " " + ua.Achievement.Name)))
		b.WriteString(md(fmt.Sprintf(" (%s)", difficultyTitles[string(ua.Achievement.Difficulty)])))
		if ua.Achievement.Description != "" {
			b.WriteString("\n")
			b.WriteString(md(ua.Achievement.Description))
		}
		if ua.Unlocked && ua.UnlockedAt != nil {
			b.WriteString("\n")
			b.WriteString(italic("получено " + ua.UnlockedAt.Format("02.01.2006")))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// renderStats renders achievement statistics.
func renderStats(s *entities.AchievementStats) string {
	var b strings.Builder
	b.WriteString(bold("📈 Статистика достижений"))
	b.WriteString("\n\n")
	b.WriteString(md(fmt.Sprintf("%s %d / %d (%.1f%%)",
		buildProgressBar(s.Percentage, progressBarLength), s.Unlocked, s.Total, s.Percentage)))

	if len(s.RecentUnlocked) > 0 {
		b.WriteString("\n\n")
		b.WriteString(bold("Последние:"))
		for _, u := range s.RecentUnlocked {
			b.WriteString("\n")
			b.WriteString(md(fmt.Sprintf("%s %s — %s",
				u.Achievement.Icon, u.Achievement.Name, u.UnlockedAt.Format("02.01.2006"))))
		}
	}

	return b.String()
}

// renderUnlocked renders the announcement of freshly unlocked achievements.
func renderUnlocked(list []entities.Achievement) string {
	var b strings.Builder
	b.WriteString(bold("🎉 Новые достижения!"))
	b.WriteString("\n")

	for _, a := range list {
		b.WriteString("\n")
		b.WriteString(bold(strings.TrimSpace(a.Icon + " " + a.Name)))
		if a.Description != "" {
			b.WriteString("\n")
			b.WriteString(md(a.Description))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// buildProgressBar creates a text progress bar for percent in 0..100.
func buildProgressBar(percent float64, length int) string {
	filled := int(percent / 100 * float64(length))
	filled = min(length, max(0, filled))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
	return fmt.Sprintf("[%s]", bar)
}
