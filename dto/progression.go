package dto

import "github.com/signa-learn/signa_api/model"

type FinishCourseRequest struct {
	UserID    string `json:"userId" validate:"required"`
	IsPassed  bool   `json:"isPassed"`
	Completed bool   `json:"completed"`
	Progress  int    `json:"progress" validate:"gte=0,lte=100"`
}

func (r FinishCourseRequest) Validate() error {
	return validate.Struct(r)
}

type QuestCompletionData struct {
	QuestID      string `json:"questId"`
	Title        string `json:"title"`
	RewardPoints int    `json:"rewardPoints"`
	Message      string `json:"message"`
}

type FinishCourseResponse struct {
	Message                string                     `json:"message"`
	Course                 *model.Course              `json:"course,omitempty"`
	IsPassed               bool                       `json:"isPassed"`
	Progress               *model.CourseProgressEntry `json:"progress"`
	StreakMessage          string                     `json:"streakMessage"`
	ShouldShowNotification bool                       `json:"shouldShowNotification"`
	QuestCompletionData    *QuestCompletionData       `json:"questCompletionData,omitempty"`
}

type UpdateProgressRequest struct {
	UserID   string `json:"userId" validate:"required"`
	Progress int    `json:"progress" validate:"gte=0,lte=100"`
}

func (r UpdateProgressRequest) Validate() error {
	return validate.Struct(r)
}

type UpdateProgressResponse struct {
	Message  string                     `json:"message"`
	Progress *model.CourseProgressEntry `json:"progress"`
}
