// services/quest.go
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

// QuestService is the per-user quest ledger: eligibility filtering of the
// catalog, explicit and automatic completion, and exactly-once reward
// collection.
type QuestService struct {
	appContext.DefaultService
	sqlSvc          *PostgresService
	userSvc         *UserService
	notificationSvc *NotificationService
}

const QUEST_SVC = "quest_svc"

func (svc QuestService) Id() string {
	return QUEST_SVC
}

func (svc *QuestService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *QuestService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.userSvc = svc.Service(USER_SVC).(*UserService)
	svc.notificationSvc = svc.Service(NOTIFICATION_SVC).(*NotificationService)
	return nil
}

// ==================== AUTO-COMPLETION RULES ====================

// AutoCompletionRule binds a quest key to the completion condition the engine
// checks. Rules are configuration: completion logic never names a quest row
// directly.
type AutoCompletionRule struct {
	QuestKey    string
	MinProgress int
}

var autoCompletionRules = []AutoCompletionRule{
	{QuestKey: shared.QuestKeyQuizMaster, MinProgress: shared.QuizMasterMinProgress},
}

// AutoCompletionRules exposes the registry to the progression engine.
func AutoCompletionRules() []AutoCompletionRule {
	return autoCompletionRules
}

// ==================== ELIGIBILITY ====================

// QuestVisible reports whether a catalog quest should be listed for the user:
// matching type bucket, matching language (Turkish spelling variants folded),
// inside the [start, deadline] window, and not already collected.
func QuestVisible(quest model.Quest, user *model.User, questType string, now time.Time) bool {
	if questType != "" && quest.QuestType != questType {
		return false
	}
	if shared.NormalizeLanguage(quest.Language) != shared.NormalizeLanguage(user.Language) {
		return false
	}
	if quest.StartDate != nil && now.Before(*quest.StartDate) {
		return false
	}
	if quest.Deadline != nil && now.After(*quest.Deadline) {
		return false
	}
	if entry, ok := user.FindQuest(quest.ID); ok && entry.Collected {
		return false
	}
	return true
}

func (svc *QuestService) ListQuests(userID, questType string) (*dto.QuestListResponse, error) {
	user, err := svc.sqlSvc.GetUser(userID)
	if err != nil {
		return nil, err
	}

	catalog, err := svc.sqlSvc.GetQuestCatalog()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	quests := make([]dto.QuestResponse, 0, len(catalog))
	for _, quest := range catalog {
		if !QuestVisible(quest, user, questType, now) {
			continue
		}

		resp := dto.QuestResponse{
			ID:           quest.ID,
			Key:          quest.Key,
			QuestType:    quest.QuestType,
			Language:     quest.Language,
			Title:        quest.Title,
			Description:  quest.Description,
			StartDate:    quest.StartDate,
			Deadline:     quest.Deadline,
			RewardPoints: quest.RewardPoints,
		}
		if entry, ok := user.FindQuest(quest.ID); ok {
			resp.Status = entry.Status
			resp.DateCompleted = entry.DateCompleted
			resp.Collected = entry.Collected
		}
		quests = append(quests, resp)
	}

	return &dto.QuestListResponse{Quests: quests, Total: len(quests)}, nil
}

// ==================== LIFECYCLE TRANSITIONS ====================

// CompleteQuestEntry applies the explicit completion transition on the
// aggregate: create-if-absent straight to completed, active→completed
// otherwise. Already-completed entries are an InvalidState.
func CompleteQuestEntry(user *model.User, questID string, now time.Time) error {
	quests := user.GetQuests()
	for i := range quests {
		if quests[i].QuestID != questID {
			continue
		}
		if quests[i].Status == shared.QuestStatusCompleted {
			return shared.NewInvalidStateError(fmt.Errorf("quest %s already completed", questID), "Quest already completed")
		}
		completed := now
		quests[i].Status = shared.QuestStatusCompleted
		quests[i].DateCompleted = &completed
		user.SetQuests(quests)
		return nil
	}

	completed := now
	quests = append(quests, model.UserQuest{
		QuestID:       questID,
		Status:        shared.QuestStatusCompleted,
		DateAssigned:  now,
		DateCompleted: &completed,
	})
	user.SetQuests(quests)
	return nil
}

// CollectRewardEntry flips the collected flag and credits the reward points in
// one mutation, so the invariant "collected implies completed" and the points
// accounting commit together.
func CollectRewardEntry(user *model.User, quest *model.Quest) error {
	quests := user.GetQuests()
	for i := range quests {
		if quests[i].QuestID != quest.ID {
			continue
		}
		if quests[i].Status != shared.QuestStatusCompleted {
			return shared.NewInvalidStateError(fmt.Errorf("quest %s not completed", quest.ID), "Quest is not completed yet")
		}
		if quests[i].Collected {
			return shared.NewInvalidStateError(fmt.Errorf("quest %s already collected", quest.ID), "Reward already collected")
		}
		quests[i].Collected = true
		user.SetQuests(quests)
		user.TotalPoints += quest.RewardPoints
		return nil
	}
	return shared.NewNotFoundError(fmt.Errorf("no quest entry %s", quest.ID), "Quest not started")
}

// CompleteQuest handles POST /quests/:questId/complete.
func (svc *QuestService) CompleteQuest(questID, userID string) (*dto.CompleteQuestResponse, error) {
	quest, err := svc.sqlSvc.GetQuest(questID)
	if err != nil {
		return nil, err
	}

	var updated *model.User
	err = svc.userSvc.MutateUser(userID, func(user *model.User) error {
		if err := CompleteQuestEntry(user, quest.ID, time.Now()); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	svc.notificationSvc.Emit(userID, shared.NotificationTypeQuest, "Quest completed",
		fmt.Sprintf("You completed the quest \"%s\". Collect your reward!", quest.Title))

	return &dto.CompleteQuestResponse{
		Message: "Quest completed",
		User:    svc.userSvc.MapUserToResponse(updated),
		Quests:  updated.GetQuests(),
	}, nil
}

// CollectReward handles POST /quests/:questId/collect-reward.
func (svc *QuestService) CollectReward(questID, userID string) (*dto.CollectRewardResponse, error) {
	quest, err := svc.sqlSvc.GetQuest(questID)
	if err != nil {
		return nil, err
	}

	var totalPoints int
	err = svc.userSvc.MutateUser(userID, func(user *model.User) error {
		if err := CollectRewardEntry(user, quest); err != nil {
			return err
		}
		totalPoints = user.TotalPoints
		return nil
	})
	if err != nil {
		return nil, err
	}

	ObserveQuestRewardCollected()
	log.WithFields(log.Fields{
		"userID":  userID,
		"questID": questID,
		"points":  quest.RewardPoints,
	}).Info("Quest reward collected")

	return &dto.CollectRewardResponse{
		Message:       "Reward collected",
		PointsAwarded: quest.RewardPoints,
		TotalPoints:   totalPoints,
	}, nil
}
