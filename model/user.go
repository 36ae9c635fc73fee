package model

import (
	"encoding/json"
	"time"
)

// User is the aggregate the progression engine mutates: course progress,
// quests, badges and achievements live as embedded JSON columns so one row
// write commits all of them together. Version backs the optimistic
// concurrency check in SaveUserVersioned.
type User struct {
	ID       string `json:"id" gorm:"primaryKey"`
	Email    string `json:"email" gorm:"unique"`
	Username string `json:"username" gorm:"unique;not null"`
	Password string `json:"-"`
	Language string `json:"language" gorm:"default:turkish"`

	CourseProgress json.RawMessage `json:"course_progress" gorm:"type:text"`
	Quests         json.RawMessage `json:"quests" gorm:"type:text"`
	Badges         json.RawMessage `json:"badges" gorm:"type:text"`
	Achievements   json.RawMessage `json:"achievements" gorm:"type:text"`

	StreakCount             int        `json:"streak_count" gorm:"default:0"`
	LastCompletedCourseDate *time.Time `json:"last_completed_course_date"`
	TotalPoints             int        `json:"total_points" gorm:"default:0"`
	UnreadNotifications     int        `json:"unread_notifications" gorm:"default:0"`

	Version   int64     `json:"-" gorm:"default:0"`
	LastLogin time.Time `json:"last_login"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CourseProgressEntry is one per-user course record. IsLocked never goes back
// to true once false.
type CourseProgressEntry struct {
	CourseID     string     `json:"course_id"`
	IsLocked     bool       `json:"is_locked"`
	Progress     int        `json:"progress"`
	Completed    bool       `json:"completed"`
	LastAccessed *time.Time `json:"last_accessed"`
	UnlockDate   *time.Time `json:"unlock_date"`
}

// UserQuest tracks a quest's per-user lifecycle. Collected implies the status
// is completed.
type UserQuest struct {
	QuestID       string     `json:"quest_id"`
	Status        string     `json:"status"`
	DateAssigned  time.Time  `json:"date_assigned"`
	DateCompleted *time.Time `json:"date_completed"`
	Collected     bool       `json:"collected"`
}

type UserBadge struct {
	BadgeID    string    `json:"badge_id"`
	DateEarned time.Time `json:"date_earned"`
}

type UserAchievement struct {
	AchievementID string    `json:"achievement_id"`
	DateEarned    time.Time `json:"date_earned"`
	Collected     bool      `json:"collected"`
}

// Typed accessors for the embedded columns. Malformed stored JSON degrades to
// an empty slice rather than failing the request.

func (u *User) GetCourseProgress() []CourseProgressEntry {
	var entries []CourseProgressEntry
	if len(u.CourseProgress) > 0 {
		if err := json.Unmarshal(u.CourseProgress, &entries); err != nil {
			entries = []CourseProgressEntry{}
		}
	}
	return entries
}

func (u *User) SetCourseProgress(entries []CourseProgressEntry) {
	u.CourseProgress = mustMarshalList(entries)
}

func (u *User) GetQuests() []UserQuest {
	var quests []UserQuest
	if len(u.Quests) > 0 {
		if err := json.Unmarshal(u.Quests, &quests); err != nil {
			quests = []UserQuest{}
		}
	}
	return quests
}

func (u *User) SetQuests(quests []UserQuest) {
	u.Quests = mustMarshalList(quests)
}

func (u *User) GetBadges() []UserBadge {
	var badges []UserBadge
	if len(u.Badges) > 0 {
		if err := json.Unmarshal(u.Badges, &badges); err != nil {
			badges = []UserBadge{}
		}
	}
	return badges
}

func (u *User) SetBadges(badges []UserBadge) {
	u.Badges = mustMarshalList(badges)
}

func (u *User) GetAchievements() []UserAchievement {
	var achievements []UserAchievement
	if len(u.Achievements) > 0 {
		if err := json.Unmarshal(u.Achievements, &achievements); err != nil {
			achievements = []UserAchievement{}
		}
	}
	return achievements
}

func (u *User) SetAchievements(achievements []UserAchievement) {
	u.Achievements = mustMarshalList(achievements)
}

func (u *User) HasBadge(badgeID string) bool {
	for _, b := range u.GetBadges() {
		if b.BadgeID == badgeID {
			return true
		}
	}
	return false
}

func (u *User) FindQuest(questID string) (UserQuest, bool) {
	for _, q := range u.GetQuests() {
		if q.QuestID == questID {
			return q, true
		}
	}
	return UserQuest{}, false
}

func (u *User) FindCourseProgress(courseID string) (CourseProgressEntry, bool) {
	for _, e := range u.GetCourseProgress() {
		if e.CourseID == courseID {
			return e, true
		}
	}
	return CourseProgressEntry{}, false
}

func (u *User) CompletedCourseCount() int {
	count := 0
	for _, e := range u.GetCourseProgress() {
		if e.Completed {
			count++
		}
	}
	return count
}

func (u *User) CollectedQuestCount() int {
	count := 0
	for _, q := range u.GetQuests() {
		if q.Collected {
			count++
		}
	}
	return count
}

func mustMarshalList(v interface{}) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage("[]")
	}
	return b
}
