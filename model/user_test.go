package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_CourseProgressRoundTrip(t *testing.T) {
	user := &User{ID: "u1"}
	now := time.Now().UTC().Truncate(time.Second)

	user.SetCourseProgress([]CourseProgressEntry{
		{CourseID: "c1", IsLocked: false, Progress: 80, Completed: true, LastAccessed: &now},
		{CourseID: "c2", IsLocked: true},
	})

	entries := user.GetCourseProgress()
	require.Len(t, entries, 2)
	assert.Equal(t, "c1", entries[0].CourseID)
	assert.True(t, entries[0].Completed)
	assert.True(t, entries[1].IsLocked)
}

func TestUser_EmptyColumnsDegradeToEmptySlices(t *testing.T) {
	user := &User{ID: "u1"}

	assert.Empty(t, user.GetCourseProgress())
	assert.Empty(t, user.GetQuests())
	assert.Empty(t, user.GetBadges())
	assert.Empty(t, user.GetAchievements())
}

func TestUser_MalformedColumnDegradesToEmptySlice(t *testing.T) {
	user := &User{ID: "u1", Quests: json.RawMessage(`{"not":"a list"`)}

	assert.Empty(t, user.GetQuests())
}

func TestUser_HasBadge(t *testing.T) {
	user := &User{ID: "u1"}
	user.SetBadges([]UserBadge{{BadgeID: "b1", DateEarned: time.Now()}})

	assert.True(t, user.HasBadge("b1"))
	assert.False(t, user.HasBadge("b2"))
}

func TestUser_FindQuest(t *testing.T) {
	user := &User{ID: "u1"}
	user.SetQuests([]UserQuest{{QuestID: "q1", Status: "active", DateAssigned: time.Now()}})

	entry, ok := user.FindQuest("q1")
	require.True(t, ok)
	assert.Equal(t, "active", entry.Status)

	_, ok = user.FindQuest("q2")
	assert.False(t, ok)
}

func TestUser_Counters(t *testing.T) {
	user := &User{ID: "u1"}
	now := time.Now()

	user.SetCourseProgress([]CourseProgressEntry{
		{CourseID: "c1", Completed: true},
		{CourseID: "c2", Completed: false},
		{CourseID: "c3", Completed: true},
	})
	user.SetQuests([]UserQuest{
		{QuestID: "q1", Status: "completed", DateCompleted: &now, Collected: true},
		{QuestID: "q2", Status: "completed", DateCompleted: &now},
	})

	assert.Equal(t, 2, user.CompletedCourseCount())
	assert.Equal(t, 1, user.CollectedQuestCount())
}
