package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signa-learn/signa_api/model"
	"github.com/signa-learn/signa_api/shared"
)

func testBadgeCatalog() []model.Badge {
	return []model.Badge{
		{ID: "badge_first", Name: "First Sign Master", Rule: shared.BadgeRuleFirstSignMaster, IsActive: true},
		{ID: "badge_streak", Name: "Streak Warrior", Rule: shared.BadgeRuleStreakWarrior, IsActive: true},
		{ID: "badge_quests", Name: "Quest Conqueror", Rule: shared.BadgeRuleQuestConqueror, IsActive: true},
		{ID: "badge_points", Name: "Point Collector", Rule: shared.BadgeRulePointCollector, IsActive: true},
		{ID: "badge_section", Name: "Section Scholar", Rule: shared.BadgeRuleSectionScholar, IsActive: true},
	}
}

func TestEvaluateBadges_FirstCompletion(t *testing.T) {
	user := newTestUser()
	markCompleted(t, user, "c_greetings")

	awarded := EvaluateBadges(user, testBadgeCatalog(), testSections(), time.Now())

	require.Len(t, awarded, 1)
	assert.Equal(t, "badge_first", awarded[0].ID)
	assert.True(t, user.HasBadge("badge_first"))
}

func TestEvaluateBadges_Idempotent(t *testing.T) {
	user := newTestUser()
	markCompleted(t, user, "c_greetings")
	now := time.Now()

	first := EvaluateBadges(user, testBadgeCatalog(), testSections(), now)
	require.Len(t, first, 1)

	// Re-evaluating the same state awards nothing and keeps one entry.
	second := EvaluateBadges(user, testBadgeCatalog(), testSections(), now)
	assert.Empty(t, second)
	assert.Len(t, user.GetBadges(), 1)
}

func TestEvaluateBadges_StreakRule(t *testing.T) {
	user := newTestUser()
	user.StreakCount = 7

	awarded := EvaluateBadges(user, testBadgeCatalog(), testSections(), time.Now())

	require.Len(t, awarded, 1)
	assert.Equal(t, "badge_streak", awarded[0].ID)
}

func TestEvaluateBadges_QuestAndPointRules(t *testing.T) {
	user := newTestUser()
	user.TotalPoints = 500

	now := time.Now()
	quests := make([]model.UserQuest, 5)
	for i := range quests {
		quests[i] = model.UserQuest{
			QuestID:       string(rune('a' + i)),
			Status:        shared.QuestStatusCompleted,
			DateAssigned:  now,
			DateCompleted: &now,
			Collected:     true,
		}
	}
	user.SetQuests(quests)

	awarded := EvaluateBadges(user, testBadgeCatalog(), testSections(), now)

	ids := make([]string, len(awarded))
	for i, b := range awarded {
		ids[i] = b.ID
	}
	assert.ElementsMatch(t, []string{"badge_quests", "badge_points"}, ids)
}

func TestEvaluateBadges_SectionScholarIgnoresPremium(t *testing.T) {
	// sec_basics has a premium course; completing only the non-premium
	// courses still earns Section Scholar.
	user := newTestUser()
	markCompleted(t, user, "c_greetings", "c_alphabet")

	awarded := EvaluateBadges(user, testBadgeCatalog(), testSections(), time.Now())

	ids := make([]string, len(awarded))
	for i, b := range awarded {
		ids[i] = b.ID
	}
	assert.Contains(t, ids, "badge_section")
}

func TestEvaluateBadges_UnknownRuleSkipped(t *testing.T) {
	user := newTestUser()
	markCompleted(t, user, "c_greetings")
	catalog := []model.Badge{
		{ID: "badge_mystery", Name: "Mystery", Rule: "unregisteredRule", IsActive: true},
	}

	awarded := EvaluateBadges(user, catalog, testSections(), time.Now())

	assert.Empty(t, awarded)
	assert.False(t, user.HasBadge("badge_mystery"))
}
