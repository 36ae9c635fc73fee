package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signa-learn/signa_api/model"
	"github.com/signa-learn/signa_api/shared"
)

func testQuest() model.Quest {
	return model.Quest{
		ID:           "quest_1",
		Key:          "daily_practice",
		QuestType:    shared.QuestTypeDaily,
		Language:     shared.LanguageTurkish,
		Title:        "Daily Practice",
		RewardPoints: 10,
		IsActive:     true,
	}
}

func TestQuestVisible_TypeFilter(t *testing.T) {
	user := newTestUser()
	quest := testQuest()
	now := time.Now()

	assert.True(t, QuestVisible(quest, user, "", now))
	assert.True(t, QuestVisible(quest, user, shared.QuestTypeDaily, now))
	assert.False(t, QuestVisible(quest, user, shared.QuestTypeFriend, now))
}

func TestQuestVisible_LanguageSpellingsFolded(t *testing.T) {
	quest := testQuest()
	now := time.Now()

	for _, lang := range []string{"turkish", "Türkçe", "turkce", "TURKISH"} {
		user := newTestUser()
		user.Language = lang
		assert.True(t, QuestVisible(quest, user, "", now), "language %q should match", lang)
	}

	other := newTestUser()
	other.Language = shared.LanguageAmerican
	assert.False(t, QuestVisible(quest, other, "", now))
}

func TestQuestVisible_TimeWindow(t *testing.T) {
	user := newTestUser()
	quest := testQuest()

	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	deadline := time.Date(2025, 5, 8, 0, 0, 0, 0, time.UTC)
	quest.StartDate = &start
	quest.Deadline = &deadline

	assert.False(t, QuestVisible(quest, user, "", start.Add(-time.Hour)))
	assert.True(t, QuestVisible(quest, user, "", start.Add(time.Hour)))
	assert.True(t, QuestVisible(quest, user, "", deadline.Add(-time.Minute)))
	assert.False(t, QuestVisible(quest, user, "", deadline.Add(time.Minute)))
}

func TestQuestVisible_CollectedHidden(t *testing.T) {
	user := newTestUser()
	quest := testQuest()
	now := time.Now()

	completed := now.Add(-time.Hour)
	user.SetQuests([]model.UserQuest{{
		QuestID:       quest.ID,
		Status:        shared.QuestStatusCompleted,
		DateAssigned:  completed,
		DateCompleted: &completed,
		Collected:     true,
	}})

	assert.False(t, QuestVisible(quest, user, "", now))
}

func TestCompleteQuestEntry_CreatesCompletedEntry(t *testing.T) {
	user := newTestUser()
	now := time.Now()

	require.NoError(t, CompleteQuestEntry(user, "quest_1", now))

	entry, ok := user.FindQuest("quest_1")
	require.True(t, ok)
	assert.Equal(t, shared.QuestStatusCompleted, entry.Status)
	require.NotNil(t, entry.DateCompleted)
	assert.False(t, entry.Collected)
}

func TestCompleteQuestEntry_ActiveToCompleted(t *testing.T) {
	user := newTestUser()
	now := time.Now()
	user.SetQuests([]model.UserQuest{{
		QuestID:      "quest_1",
		Status:       shared.QuestStatusActive,
		DateAssigned: now.Add(-24 * time.Hour),
	}})

	require.NoError(t, CompleteQuestEntry(user, "quest_1", now))

	entry, _ := user.FindQuest("quest_1")
	assert.Equal(t, shared.QuestStatusCompleted, entry.Status)
}

func TestCompleteQuestEntry_AlreadyCompleted(t *testing.T) {
	user := newTestUser()
	now := time.Now()
	require.NoError(t, CompleteQuestEntry(user, "quest_1", now))

	err := CompleteQuestEntry(user, "quest_1", now)
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.StatusCode)
}

func TestCollectRewardEntry_CreditsOnce(t *testing.T) {
	user := newTestUser()
	quest := testQuest()
	now := time.Now()

	require.NoError(t, CompleteQuestEntry(user, quest.ID, now))
	require.NoError(t, CollectRewardEntry(user, &quest))

	assert.Equal(t, 10, user.TotalPoints)
	entry, _ := user.FindQuest(quest.ID)
	assert.True(t, entry.Collected)

	// The second collection must fail and must not credit again.
	err := CollectRewardEntry(user, &quest)
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.StatusCode)
	assert.Equal(t, 10, user.TotalPoints)
}

func TestCollectRewardEntry_RequiresCompletion(t *testing.T) {
	user := newTestUser()
	quest := testQuest()
	user.SetQuests([]model.UserQuest{{
		QuestID:      quest.ID,
		Status:       shared.QuestStatusActive,
		DateAssigned: time.Now(),
	}})

	err := CollectRewardEntry(user, &quest)
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.StatusCode)
	assert.Zero(t, user.TotalPoints)
}

func TestCollectRewardEntry_NotStarted(t *testing.T) {
	user := newTestUser()
	quest := testQuest()

	err := CollectRewardEntry(user, &quest)
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode)
}
