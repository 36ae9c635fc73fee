package shared

import "strings"

const (
	UserID = "user_id"

	QuestTypeDaily  = "daily"
	QuestTypeFriend = "friend"

	QuestStatusActive    = "active"
	QuestStatusCompleted = "completed"

	QuestKeyQuizMaster = "quiz_master"

	// Minimum score on a passing completion that triggers automatic
	// quest completion.
	QuizMasterMinProgress = 80

	NotificationTypeStreak = "streak"
	NotificationTypeBadge  = "badge"
	NotificationTypeQuest  = "quest"
	NotificationTypeCourse = "course"

	EventCourseCompleted = "courseCompleted"
	EventQuestCollected  = "questCollected"

	BadgeRuleFirstSignMaster = "firstSignMaster"
	BadgeRuleStreakWarrior   = "streakWarrior"
	BadgeRuleQuestConqueror  = "questConqueror"
	BadgeRulePointCollector  = "pointCollector"
	BadgeRuleSectionScholar  = "sectionScholar"

	LanguageTurkish  = "turkish"
	LanguageAmerican = "american"
)

// NormalizeLanguage folds the two spellings of the Turkish variant the mobile
// clients send into one key for comparison.
func NormalizeLanguage(lang string) string {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "turkish", "türkçe", "turkce":
		return LanguageTurkish
	default:
		return strings.ToLower(strings.TrimSpace(lang))
	}
}
