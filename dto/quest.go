package dto

import (
	"time"

	"github.com/signa-learn/signa_api/model"
)

type CompleteQuestRequest struct {
	UserID string `json:"userId" validate:"required"`
}

func (r CompleteQuestRequest) Validate() error {
	return validate.Struct(r)
}

type CompleteQuestResponse struct {
	Message string            `json:"message"`
	User    *UserResponse     `json:"user"`
	Quests  []model.UserQuest `json:"quests"`
}

type CollectRewardRequest struct {
	UserID string `json:"userId" validate:"required"`
}

func (r CollectRewardRequest) Validate() error {
	return validate.Struct(r)
}

type CollectRewardResponse struct {
	Message       string `json:"message"`
	PointsAwarded int    `json:"pointsAwarded"`
	TotalPoints   int    `json:"totalPoints"`
}

// QuestResponse merges a catalog quest with the caller's lifecycle state.
type QuestResponse struct {
	ID            string     `json:"id"`
	Key           string     `json:"key"`
	QuestType     string     `json:"questType"`
	Language      string     `json:"language"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	StartDate     *time.Time `json:"startDate,omitempty"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	RewardPoints  int        `json:"rewardPoints"`
	Status        string     `json:"status,omitempty"`
	DateCompleted *time.Time `json:"dateCompleted,omitempty"`
	Collected     bool       `json:"collected"`
}

type QuestListResponse struct {
	Quests []QuestResponse `json:"quests"`
	Total  int             `json:"total"`
}
