// services/progression.go
package services

import (
	"fmt"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/signa-learn/signa_api/dto"
	"github.com/signa-learn/signa_api/model"
	"github.com/signa-learn/signa_api/shared"
)

// ProgressionService orchestrates course completion: streak, unlock graph,
// automatic quest completion and badge evaluation run over one loaded
// aggregate, and everything commits in a single versioned write.
type ProgressionService struct {
	appContext.DefaultService
	sqlSvc          *PostgresService
	contentSvc      *ContentService
	userSvc         *UserService
	notificationSvc *NotificationService
}

const PROGRESSION_SVC = "progression_svc"

func (svc ProgressionService) Id() string {
	return PROGRESSION_SVC
}

func (svc *ProgressionService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ProgressionService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.contentSvc = svc.Service(CONTENT_SVC).(*ContentService)
	svc.userSvc = svc.Service(USER_SVC).(*UserService)
	svc.notificationSvc = svc.Service(NOTIFICATION_SVC).(*NotificationService)
	return nil
}

// completionOutcome is everything one core run produced besides the mutated
// aggregate itself.
type completionOutcome struct {
	entry                  model.CourseProgressEntry
	streakMessage          string
	shouldShowNotification bool
	questCompletion        *dto.QuestCompletionData
	unlockedCourseIDs      []string
	notifications          []model.Notification
}

// applyCourseCompletionCore runs the full completion state machine on the
// aggregate in memory. It is deliberately free of I/O so the engine can re-run
// it on a freshly loaded aggregate after a version conflict, and so it can be
// tested without a database.
func applyCourseCompletionCore(user *model.User, course *model.Course, sections []model.Section,
	questCatalog []model.Quest, badgeCatalog []model.Badge, req dto.FinishCourseRequest, now time.Time) *completionOutcome {

	outcome := &completionOutcome{}

	entry, exists := user.FindCourseProgress(course.ID)
	if !exists {
		entry = model.CourseProgressEntry{
			CourseID: course.ID,
			IsLocked: DefaultLockState(user, sections, course.ID),
		}
	}
	wasCompleted := entry.Completed

	// Always applied, rewards or not: finishing implies the course was
	// accessible, and completion never regresses.
	lastAccessed := now
	entry.Progress = req.Progress
	entry.LastAccessed = &lastAccessed
	if entry.IsLocked {
		entry.IsLocked = false
		unlockDate := now
		entry.UnlockDate = &unlockDate
	}
	if req.Completed && req.IsPassed {
		entry.Completed = true
	}
	upsertProgressEntry(user, entry)

	firstPassing := req.Completed && req.IsPassed && !wasCompleted
	if !firstPassing {
		outcome.entry = entry
		return outcome
	}

	// Streak only moves on the first passing completion of a course.
	streak := CalculateStreak(now, user.LastCompletedCourseDate, user.StreakCount)
	user.StreakCount = streak.Streak
	completedAt := now
	user.LastCompletedCourseDate = &completedAt
	outcome.streakMessage = streak.Message
	outcome.shouldShowNotification = streak.Notify
	if streak.Notify {
		outcome.notifications = append(outcome.notifications, model.Notification{
			UserID:  user.ID,
			Type:    shared.NotificationTypeStreak,
			Title:   "Streak update",
			Message: streak.Message,
			Date:    now,
		})
	}

	// Unlock is best-effort relative to the streak/quest/badge outcomes:
	// a catalog inconsistency must not void the rest of the completion.
	unlocked, err := UnlockNext(user, sections, course.ID, now)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"userID":   user.ID,
			"courseID": course.ID,
		}).Warn("Course unlock skipped")
	}
	outcome.unlockedCourseIDs = unlocked
	for range unlocked {
		outcome.notifications = append(outcome.notifications, model.Notification{
			UserID:  user.ID,
			Type:    shared.NotificationTypeCourse,
			Title:   "New course unlocked",
			Message: "You unlocked a new course. Keep learning!",
			Date:    now,
		})
	}

	// Automatic quest completion from the rule registry.
	for _, rule := range AutoCompletionRules() {
		if req.Progress < rule.MinProgress {
			continue
		}
		quest := findQuestByKey(questCatalog, rule.QuestKey)
		if quest == nil {
			continue
		}
		if _, started := user.FindQuest(quest.ID); started {
			continue
		}
		if err := CompleteQuestEntry(user, quest.ID, now); err != nil {
			continue
		}
		outcome.questCompletion = &dto.QuestCompletionData{
			QuestID:      quest.ID,
			Title:        quest.Title,
			RewardPoints: quest.RewardPoints,
			Message:      fmt.Sprintf("Quest \"%s\" completed! Collect your %d points.", quest.Title, quest.RewardPoints),
		}
		outcome.notifications = append(outcome.notifications, model.Notification{
			UserID:  user.ID,
			Type:    shared.NotificationTypeQuest,
			Title:   "Quest completed",
			Message: outcome.questCompletion.Message,
			Date:    now,
		})
	}

	// Badge evaluation for the courseCompleted event.
	for _, badge := range EvaluateBadges(user, badgeCatalog, sections, now) {
		outcome.notifications = append(outcome.notifications, model.Notification{
			UserID:  user.ID,
			Type:    shared.NotificationTypeBadge,
			Title:   "New badge earned",
			Message: fmt.Sprintf("Congratulations! You earned the \"%s\" badge.", badge.Name),
			Date:    now,
		})
	}

	entry, _ = user.FindCourseProgress(course.ID)
	outcome.entry = entry
	return outcome
}

func findQuestByKey(catalog []model.Quest, key string) *model.Quest {
	for i := range catalog {
		if catalog[i].Key == key {
			return &catalog[i]
		}
	}
	return nil
}

func upsertProgressEntry(user *model.User, entry model.CourseProgressEntry) {
	entries := user.GetCourseProgress()
	for i := range entries {
		if entries[i].CourseID == entry.CourseID {
			entries[i] = entry
			user.SetCourseProgress(entries)
			return
		}
	}
	entries = append(entries, entry)
	user.SetCourseProgress(entries)
}

// ApplyCourseCompletion handles POST /courses/:courseId/finish.
func (svc *ProgressionService) ApplyCourseCompletion(courseID string, req dto.FinishCourseRequest) (*dto.FinishCourseResponse, error) {
	course, err := svc.contentSvc.GetCourse(courseID)
	if err != nil {
		return nil, err
	}

	sections, err := svc.contentSvc.ListSections()
	if err != nil {
		// Unlock and the missing-entry lock policy degrade without the
		// graph; the completion itself still counts.
		log.WithError(err).Warn("Section catalog unavailable, unlock skipped")
		sections = nil
	}

	questCatalog, err := svc.sqlSvc.GetQuestCatalog()
	if err != nil {
		log.WithError(err).Warn("Quest catalog unavailable, auto-completion skipped")
		questCatalog = nil
	}

	badgeCatalog, err := svc.sqlSvc.GetBadgeCatalog()
	if err != nil {
		log.WithError(err).Warn("Badge catalog unavailable, badge check skipped")
		badgeCatalog = nil
	}

	var outcome *completionOutcome
	err = svc.userSvc.MutateUser(req.UserID, func(user *model.User) error {
		outcome = applyCourseCompletionCore(user, course, sections, questCatalog, badgeCatalog, req, time.Now())
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The aggregate is committed; notification rows and their unread
	// increments are best-effort now.
	for i := range outcome.notifications {
		svc.notificationSvc.Record(&outcome.notifications[i])
	}

	ObserveCourseCompletion(req.IsPassed)

	log.WithFields(log.Fields{
		"userID":   req.UserID,
		"courseID": courseID,
		"passed":   req.IsPassed,
		"unlocked": outcome.unlockedCourseIDs,
	}).Info("Course completion applied")

	return &dto.FinishCourseResponse{
		Message:                "Course completion recorded",
		Course:                 course,
		IsPassed:               req.IsPassed,
		Progress:               &outcome.entry,
		StreakMessage:          outcome.streakMessage,
		ShouldShowNotification: outcome.shouldShowNotification,
		QuestCompletionData:    outcome.questCompletion,
	}, nil
}

// UpdateCourseProgress handles POST /courses/:courseId/progress, the plain
// progress write with no rewards path.
func (svc *ProgressionService) UpdateCourseProgress(courseID string, req dto.UpdateProgressRequest) (*dto.UpdateProgressResponse, error) {
	course, err := svc.contentSvc.GetCourse(courseID)
	if err != nil {
		return nil, err
	}

	sections, err := svc.contentSvc.ListSections()
	if err != nil {
		log.WithError(err).Warn("Section catalog unavailable for lock policy")
		sections = nil
	}

	var entry model.CourseProgressEntry
	err = svc.userSvc.MutateUser(req.UserID, func(user *model.User) error {
		var exists bool
		entry, exists = user.FindCourseProgress(course.ID)
		if !exists {
			entry = model.CourseProgressEntry{
				CourseID: course.ID,
				IsLocked: DefaultLockState(user, sections, course.ID),
			}
		}
		now := time.Now()
		entry.Progress = req.Progress
		entry.LastAccessed = &now
		upsertProgressEntry(user, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.UpdateProgressResponse{
		Message:  "Progress updated",
		Progress: &entry,
	}, nil
}
