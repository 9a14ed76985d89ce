package telegram

import (
	"strings"
	"testing"
	"time"

	"github.com/aliskhannn/lingua-progress/internal/domain/entities"
)

func TestBuildProgressBar(t *testing.T) {
	tests := []struct {
		percent float64
		want    string
	}{
		{0, "[░░░░░░░░░░]"},
		{25, "[██░░░░░░░░]"},
		{100, "[██████████]"},
		{140, "[██████████]"},
		{-3, "[░░░░░░░░░░]"},
	}

	for _, tt := range tests {
		if got := buildProgressBar(tt.percent, 10); got != tt.want {
			t.Errorf("buildProgressBar(%v) = %q, want %q", tt.percent, got, tt.want)
		}
	}
}

func TestRenderProgress(t *testing.T) {
	p := entities.NewProgress(1, time.Now())
	if got := renderProgress(p); got != md(msgNoProgress) {
		t.Errorf("empty progress = %q", got)
	}

	p.Vocab.Data = []string{"v1", "v2"}
	p.Vocab.CompletedPercent = 10
	p.WordsLearned = 20
	p.Streak = 3

	got := renderProgress(p)
	for _, want := range []string{"Всего уроков: 2", "Выучено слов: 20", "Дней подряд: 3"} {
		if !strings.Contains(got, md(want)) {
			t.Errorf("progress text misses %q:\n%s", want, got)
		}
	}
}

func TestRenderAchievementsEscapesMarkdown(t *testing.T) {
	at := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	got := renderAchievements([]entities.UserAchievement{
		{Achievement: entities.Achievement{Name: "Top-10 (wow!)", Difficulty: entities.DifficultyHard}, Unlocked: true, UnlockedAt: &at},
	})

	if !strings.Contains(got, `Top\-10 \(wow\!\)`) {
		t.Errorf("name not escaped:\n%s", got)
	}
	if !strings.Contains(got, md("10.01.2024")) {
		t.Errorf("unlock date missing:\n%s", got)
	}
}
