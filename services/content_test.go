package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signa-learn/signa_api/model"
	"github.com/signa-learn/signa_api/shared"
)

func testSections() []model.Section {
	return []model.Section{
		{
			ID:       "sec_basics",
			Language: shared.LanguageTurkish,
			Order:    1,
			Courses: []model.Course{
				{ID: "c_greetings", SectionID: "sec_basics", Order: 1, IsActive: true},
				{ID: "c_alphabet", SectionID: "sec_basics", Order: 2, IsActive: true},
				{ID: "c_travel", SectionID: "sec_basics", Order: 3, IsPremium: true, IsActive: true},
			},
		},
		{
			ID:       "sec_daily",
			Language: shared.LanguageTurkish,
			Order:    2,
			Courses: []model.Course{
				{ID: "c_family", SectionID: "sec_daily", Order: 1, IsActive: true},
				{ID: "c_food", SectionID: "sec_daily", Order: 2, IsActive: true},
			},
		},
	}
}

func newTestUser() *model.User {
	return &model.User{
		ID:       "user_1",
		Language: shared.LanguageTurkish,
	}
}

func markCompleted(t *testing.T, user *model.User, courseIDs ...string) {
	t.Helper()
	entries := user.GetCourseProgress()
	for _, id := range courseIDs {
		entries = append(entries, model.CourseProgressEntry{
			CourseID:  id,
			IsLocked:  false,
			Progress:  100,
			Completed: true,
		})
	}
	user.SetCourseProgress(entries)
}

func TestFindSectionForCourse(t *testing.T) {
	sections := testSections()

	section, idx, err := FindSectionForCourse(sections, "c_alphabet")
	require.NoError(t, err)
	assert.Equal(t, "sec_basics", section.ID)
	assert.Equal(t, 1, idx)

	_, _, err = FindSectionForCourse(sections, "c_missing")
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode)
}

func TestDefaultLockState_FirstCourseOfFirstSection(t *testing.T) {
	user := newTestUser()

	assert.False(t, DefaultLockState(user, testSections(), "c_greetings"))
}

func TestDefaultLockState_FirstCourseOfLaterSectionLocked(t *testing.T) {
	user := newTestUser()

	assert.True(t, DefaultLockState(user, testSections(), "c_family"))
}

func TestDefaultLockState_FollowsPredecessorCompletion(t *testing.T) {
	user := newTestUser()

	assert.True(t, DefaultLockState(user, testSections(), "c_alphabet"))

	markCompleted(t, user, "c_greetings")
	assert.False(t, DefaultLockState(user, testSections(), "c_alphabet"))
}

func TestUnlockNext_MidSection(t *testing.T) {
	user := newTestUser()
	markCompleted(t, user, "c_greetings")
	now := time.Now()

	unlocked, err := UnlockNext(user, testSections(), "c_greetings", now)
	require.NoError(t, err)
	assert.Equal(t, []string{"c_alphabet"}, unlocked)

	entry, ok := user.FindCourseProgress("c_alphabet")
	require.True(t, ok)
	assert.False(t, entry.IsLocked)
	require.NotNil(t, entry.UnlockDate)
}

func TestUnlockNext_SectionGateExcludesPremium(t *testing.T) {
	// c_travel is premium and unfinished; the section still counts as
	// complete once the non-premium courses are done.
	user := newTestUser()
	markCompleted(t, user, "c_greetings", "c_alphabet")
	now := time.Now()

	unlocked, err := UnlockNext(user, testSections(), "c_alphabet", now)
	require.NoError(t, err)
	assert.Equal(t, []string{"c_travel"}, unlocked)

	// Finishing the last course of the section opens the next section.
	unlocked, err = UnlockNext(user, testSections(), "c_travel", now)
	require.NoError(t, err)
	assert.Equal(t, []string{"c_family"}, unlocked)
}

func TestUnlockNext_SectionIncompleteKeepsNextLocked(t *testing.T) {
	user := newTestUser()
	markCompleted(t, user, "c_alphabet")
	now := time.Now()

	unlocked, err := UnlockNext(user, testSections(), "c_travel", now)
	require.NoError(t, err)
	assert.Empty(t, unlocked)

	_, ok := user.FindCourseProgress("c_family")
	assert.False(t, ok)
}

func TestUnlockNext_NeverRelocks(t *testing.T) {
	user := newTestUser()
	markCompleted(t, user, "c_greetings")
	now := time.Now()

	unlocked, err := UnlockNext(user, testSections(), "c_greetings", now)
	require.NoError(t, err)
	require.Equal(t, []string{"c_alphabet"}, unlocked)

	// Second run is a no-op: already unlocked entries are not reported
	// again and never flip back.
	unlocked, err = UnlockNext(user, testSections(), "c_greetings", now)
	require.NoError(t, err)
	assert.Empty(t, unlocked)

	entry, ok := user.FindCourseProgress("c_alphabet")
	require.True(t, ok)
	assert.False(t, entry.IsLocked)
}

func TestUnlockNext_UnknownCourse(t *testing.T) {
	user := newTestUser()

	_, err := UnlockNext(user, testSections(), "c_missing", time.Now())
	assert.Error(t, err)
}

func TestUnlockNext_LastSectionHasNoSuccessor(t *testing.T) {
	user := newTestUser()
	markCompleted(t, user, "c_family", "c_food")

	unlocked, err := UnlockNext(user, testSections(), "c_food", time.Now())
	require.NoError(t, err)
	assert.Empty(t, unlocked)
}
