package entities

import "time"

// Unlock is a ledger entry: userID earned achievementID at UnlockedAt.
// A (UserID, AchievementID) pair exists at most once.
type Unlock struct {
	UserID        int64     `json:"userId"`
	AchievementID int64     `json:"achievementId"`
	UnlockedAt    time.Time `json:"unlockedAt"`
	Notified      bool      `json:"notified"` // set once the client has shown the unlock
}

// UnlockWithAchievement joins an unlock with its catalog entry.
type UnlockWithAchievement struct {
	Unlock
	Achievement Achievement `json:"achievement"`
}

// UserAchievement is one catalog row of a user's achievement listing.
type UserAchievement struct {
	Achievement Achievement `json:"achievement"`
	Unlocked    bool        `json:"unlocked"`
	UnlockedAt  *time.Time  `json:"unlockedAt,omitempty"`
	Notified    bool        `json:"notified"`
	Progress    int         `json:"progress"` // 0 or 100
}

// AchievementStats summarizes a user's achievements.
type AchievementStats struct {
	Total          int                     `json:"total"`
	Unlocked       int                     `json:"unlocked"`
	Percentage     float64                 `json:"percentage"`
	RecentUnlocked []UnlockWithAchievement `json:"recentUnlocked"`
}
