package handlers

import (
	"mime/multipart"

	"github.com/signa-learn/signa_api/dto"
	"github.com/signa-learn/signa_api/model"
)

type ProgressionServiceInterface interface {
	ApplyCourseCompletion(courseID string, req dto.FinishCourseRequest) (*dto.FinishCourseResponse, error)
	UpdateCourseProgress(courseID string, req dto.UpdateProgressRequest) (*dto.UpdateProgressResponse, error)
}

type QuestServiceInterface interface {
	ListQuests(userID, questType string) (*dto.QuestListResponse, error)
	CompleteQuest(questID, userID string) (*dto.CompleteQuestResponse, error)
	CollectReward(questID, userID string) (*dto.CollectRewardResponse, error)
}

type BadgeServiceInterface interface {
	CheckAndAward(userID, eventType string) (*dto.CheckBadgesResponse, error)
	ListBadges(userID string) (*dto.BadgeListResponse, error)
}

type UserServiceInterface interface {
	CreateUser(req dto.CreateUserRequest) (*dto.UserResponse, error)
	GetUser(userID string) (*dto.UserResponse, error)
	UpdateUser(userID string, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeleteUser(userID string) error
}

type ContentServiceInterface interface {
	GetSectionsForUser(user *model.User) (*dto.SectionListResponse, error)
	ListWords(language string) (*dto.WordListResponse, error)
	GetWord(wordID string) (*dto.WordResponse, error)
	CreateWord(req dto.CreateWordRequest) (*dto.WordResponse, error)
	DeleteWord(wordID string) error
}

type NotificationServiceInterface interface {
	List(userID string, limit int) (*dto.NotificationListResponse, error)
	MarkAllRead(userID string) error
}

type MediaServiceInterface interface {
	UploadWordVideo(wordID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error)
	UploadWordThumbnail(wordID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error)
}

// UserLoader resolves the raw aggregate for handlers that need the model, not
// the response shape.
type UserLoader interface {
	GetUser(userID string) (*model.User, error)
}
