package dto

import (
	"time"

	"github.com/signa-learn/signa_api/model"
)

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=30"`
	Password string `json:"password" validate:"required,strong_password"`
	Language string `json:"language" validate:"omitempty"`
}

func (r CreateUserRequest) Validate() error {
	return validate.Struct(r)
}

type UpdateUserRequest struct {
	Username string `json:"username" validate:"omitempty,min=3,max=30"`
	Language string `json:"language"`
}

func (r UpdateUserRequest) Validate() error {
	return validate.Struct(r)
}

type UserResponse struct {
	ID                      string                      `json:"id"`
	Email                   string                      `json:"email"`
	Username                string                      `json:"username"`
	Language                string                      `json:"language"`
	StreakCount             int                         `json:"streakCount"`
	LastCompletedCourseDate *time.Time                  `json:"lastCompletedCourseDate,omitempty"`
	TotalPoints             int                         `json:"totalPoints"`
	UnreadNotifications     int                         `json:"unreadNotifications"`
	CourseProgress          []model.CourseProgressEntry `json:"courseProgress"`
	Quests                  []model.UserQuest           `json:"quests"`
	Badges                  []model.UserBadge           `json:"badges"`
	Achievements            []model.UserAchievement     `json:"achievements"`
	CreatedAt               time.Time                   `json:"createdAt"`
}

type NotificationResponse struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	IsRead  bool      `json:"isRead"`
	Date    time.Time `json:"date"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Unread        int                    `json:"unread"`
	Total         int                    `json:"total"`
}
