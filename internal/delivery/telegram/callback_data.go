package telegram

// Callback actions.
const (
	actionProgress     = "progress"
	actionAchievements = "achievements"
	actionCheck        = "check"
)
