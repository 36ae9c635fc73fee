package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signa-learn/signa_api/dto"
	"github.com/signa-learn/signa_api/model"
	"github.com/signa-learn/signa_api/shared"
)

func testQuestCatalog() []model.Quest {
	return []model.Quest{
		{
			ID:           "quest_quiz_master",
			Key:          shared.QuestKeyQuizMaster,
			QuestType:    shared.QuestTypeDaily,
			Language:     shared.LanguageTurkish,
			Title:        "Quiz Master",
			RewardPoints: 25,
			IsActive:     true,
		},
	}
}

func passingRequest(userID string, progress int) dto.FinishCourseRequest {
	return dto.FinishCourseRequest{
		UserID:    userID,
		IsPassed:  true,
		Completed: true,
		Progress:  progress,
	}
}

func courseByID(t *testing.T, sections []model.Section, courseID string) *model.Course {
	t.Helper()
	for i := range sections {
		for j := range sections[i].Courses {
			if sections[i].Courses[j].ID == courseID {
				return &sections[i].Courses[j]
			}
		}
	}
	t.Fatalf("course %s not in fixture", courseID)
	return nil
}

func TestCourseCompletion_NewUserFirstPass(t *testing.T) {
	user := newTestUser()
	sections := testSections()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	outcome := applyCourseCompletionCore(user, courseByID(t, sections, "c_greetings"), sections,
		testQuestCatalog(), testBadgeCatalog(), passingRequest(user.ID, 70), now)

	assert.Equal(t, 1, user.StreakCount)
	assert.True(t, outcome.entry.Completed)
	assert.Equal(t, []string{"c_alphabet"}, outcome.unlockedCourseIDs)
	assert.True(t, outcome.shouldShowNotification)
	assert.NotEmpty(t, outcome.notifications)
	// The unread counter is maintained per recorded row with atomic SQL
	// increments, never written through the versioned aggregate save.
	assert.Zero(t, user.UnreadNotifications)
}

func TestCourseCompletion_SecondCourseSameDay(t *testing.T) {
	user := newTestUser()
	sections := testSections()
	catalog := testQuestCatalog()
	badges := testBadgeCatalog()
	morning := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)

	applyCourseCompletionCore(user, courseByID(t, sections, "c_greetings"), sections, catalog, badges,
		passingRequest(user.ID, 70), morning)
	outcome := applyCourseCompletionCore(user, courseByID(t, sections, "c_alphabet"), sections, catalog, badges,
		passingRequest(user.ID, 70), evening)

	assert.Equal(t, 1, user.StreakCount)
	assert.Equal(t, "Keep going, you already practiced today!", outcome.streakMessage)
	assert.False(t, outcome.shouldShowNotification)
}

func TestCourseCompletion_NextDayExtendsStreak(t *testing.T) {
	user := newTestUser()
	sections := testSections()
	catalog := testQuestCatalog()
	badges := testBadgeCatalog()
	day1 := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 11, 12, 0, 0, 0, time.UTC)

	applyCourseCompletionCore(user, courseByID(t, sections, "c_greetings"), sections, catalog, badges,
		passingRequest(user.ID, 70), day1)
	applyCourseCompletionCore(user, courseByID(t, sections, "c_alphabet"), sections, catalog, badges,
		passingRequest(user.ID, 70), day2)

	assert.Equal(t, 2, user.StreakCount)
}

func TestCourseCompletion_GapResetsStreak(t *testing.T) {
	user := newTestUser()
	sections := testSections()
	catalog := testQuestCatalog()
	badges := testBadgeCatalog()
	day1 := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	day5 := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	applyCourseCompletionCore(user, courseByID(t, sections, "c_greetings"), sections, catalog, badges,
		passingRequest(user.ID, 70), day1)
	applyCourseCompletionCore(user, courseByID(t, sections, "c_alphabet"), sections, catalog, badges,
		passingRequest(user.ID, 70), day5)

	assert.Equal(t, 1, user.StreakCount)
}

func TestCourseCompletion_RepeatPassDoesNotTouchStreak(t *testing.T) {
	user := newTestUser()
	sections := testSections()
	catalog := testQuestCatalog()
	badges := testBadgeCatalog()
	day1 := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	day3 := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)

	applyCourseCompletionCore(user, courseByID(t, sections, "c_greetings"), sections, catalog, badges,
		passingRequest(user.ID, 70), day1)
	// Re-finishing an already-completed course days later must not reset
	// or extend the streak.
	outcome := applyCourseCompletionCore(user, courseByID(t, sections, "c_greetings"), sections, catalog, badges,
		passingRequest(user.ID, 90), day3)

	assert.Equal(t, 1, user.StreakCount)
	assert.Empty(t, outcome.streakMessage)
	assert.Equal(t, 90, outcome.entry.Progress)
}

func TestCourseCompletion_FailedAttemptUpdatesProgressOnly(t *testing.T) {
	user := newTestUser()
	sections := testSections()

	req := dto.FinishCourseRequest{UserID: user.ID, IsPassed: false, Completed: true, Progress: 45}
	outcome := applyCourseCompletionCore(user, courseByID(t, sections, "c_greetings"), sections,
		testQuestCatalog(), testBadgeCatalog(), req, time.Now())

	assert.False(t, outcome.entry.Completed)
	assert.Equal(t, 45, outcome.entry.Progress)
	assert.Zero(t, user.StreakCount)
	assert.Empty(t, outcome.unlockedCourseIDs)
	assert.Empty(t, outcome.notifications)
}

func TestCourseCompletion_CompletionNeverRegresses(t *testing.T) {
	user := newTestUser()
	sections := testSections()
	catalog := testQuestCatalog()
	badges := testBadgeCatalog()
	now := time.Now()

	applyCourseCompletionCore(user, courseByID(t, sections, "c_greetings"), sections, catalog, badges,
		passingRequest(user.ID, 70), now)
	// A later failed attempt lowers progress but keeps completion.
	req := dto.FinishCourseRequest{UserID: user.ID, IsPassed: false, Completed: true, Progress: 30}
	outcome := applyCourseCompletionCore(user, courseByID(t, sections, "c_greetings"), sections, catalog, badges,
		req, now)

	assert.True(t, outcome.entry.Completed)
	assert.Equal(t, 30, outcome.entry.Progress)
}

func TestCourseCompletion_QuizMasterAutoQuest(t *testing.T) {
	user := newTestUser()
	sections := testSections()

	outcome := applyCourseCompletionCore(user, courseByID(t, sections, "c_greetings"), sections,
		testQuestCatalog(), testBadgeCatalog(), passingRequest(user.ID, 85), time.Now())

	require.NotNil(t, outcome.questCompletion)
	assert.Equal(t, "quest_quiz_master", outcome.questCompletion.QuestID)
	assert.Equal(t, 25, outcome.questCompletion.RewardPoints)

	entry, ok := user.FindQuest("quest_quiz_master")
	require.True(t, ok)
	assert.Equal(t, shared.QuestStatusCompleted, entry.Status)
	// Points flow later through explicit collection, never from completion.
	assert.Zero(t, user.TotalPoints)
}

func TestCourseCompletion_QuizMasterBelowThreshold(t *testing.T) {
	user := newTestUser()
	sections := testSections()

	outcome := applyCourseCompletionCore(user, courseByID(t, sections, "c_greetings"), sections,
		testQuestCatalog(), testBadgeCatalog(), passingRequest(user.ID, 79), time.Now())

	assert.Nil(t, outcome.questCompletion)
	_, ok := user.FindQuest("quest_quiz_master")
	assert.False(t, ok)
}

func TestCourseCompletion_QuizMasterNotReassigned(t *testing.T) {
	user := newTestUser()
	sections := testSections()
	catalog := testQuestCatalog()
	badges := testBadgeCatalog()
	now := time.Now()

	first := applyCourseCompletionCore(user, courseByID(t, sections, "c_greetings"), sections, catalog, badges,
		passingRequest(user.ID, 90), now)
	require.NotNil(t, first.questCompletion)

	second := applyCourseCompletionCore(user, courseByID(t, sections, "c_alphabet"), sections, catalog, badges,
		passingRequest(user.ID, 95), now.Add(24*time.Hour))

	assert.Nil(t, second.questCompletion)
	assert.Len(t, user.GetQuests(), 1)
}

func TestCourseCompletion_SectionRolloverUnlocksNext(t *testing.T) {
	user := newTestUser()
	sections := testSections()
	markCompleted(t, user, "c_greetings")

	outcome := applyCourseCompletionCore(user, courseByID(t, sections, "c_alphabet"), sections,
		testQuestCatalog(), testBadgeCatalog(), passingRequest(user.ID, 70), time.Now())

	// c_alphabet is the last non-premium course of sec_basics; its premium
	// sibling does not gate the section, but the successor course in the
	// section is still the one that unlocks here.
	assert.Equal(t, []string{"c_travel"}, outcome.unlockedCourseIDs)

	outcome = applyCourseCompletionCore(user, courseByID(t, sections, "c_travel"), sections,
		testQuestCatalog(), testBadgeCatalog(), passingRequest(user.ID, 70), time.Now())
	assert.Equal(t, []string{"c_family"}, outcome.unlockedCourseIDs)

	entry, ok := user.FindCourseProgress("c_family")
	require.True(t, ok)
	assert.False(t, entry.IsLocked)
}

func TestCourseCompletion_PointsAccounting(t *testing.T) {
	user := newTestUser()
	sections := testSections()
	catalog := testQuestCatalog()
	now := time.Now()

	applyCourseCompletionCore(user, courseByID(t, sections, "c_greetings"), sections, catalog,
		testBadgeCatalog(), passingRequest(user.ID, 90), now)

	quest := catalog[0]
	require.NoError(t, CollectRewardEntry(user, &quest))
	assert.Equal(t, 25, user.TotalPoints)

	err := CollectRewardEntry(user, &quest)
	require.Error(t, err)
	assert.Equal(t, 25, user.TotalPoints)
}
