// services/user.go
package services

import (
	"encoding/json"
	"fmt"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/signa-learn/signa_api/dto"
	"github.com/signa-learn/signa_api/model"
	"github.com/signa-learn/signa_api/shared"
)

// userStore is the slice of the persistence layer MutateUser needs. Kept
// narrow so the read-modify-write loop can be exercised against a stub.
type userStore interface {
	GetUser(userID string) (*model.User, error)
	SaveUserVersioned(user *model.User) error
}

type UserService struct {
	appContext.DefaultService
	sqlSvc *PostgresService
	store  userStore
}

const USER_SVC = "user_svc"

// Bounded retry for optimistic-concurrency conflicts on the aggregate.
const maxMutateAttempts = 3

func (svc UserService) Id() string {
	return USER_SVC
}

func (svc *UserService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *UserService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.store = svc.sqlSvc
	return nil
}

// MutateUser serializes a read-modify-write on the user aggregate: load,
// apply fn, save with the version check, retry on conflict with a fresh load.
// fn must be safe to re-run; it sees a freshly loaded aggregate each attempt.
func (svc *UserService) MutateUser(userID string, fn func(user *model.User) error) error {
	var lastErr error

	for attempt := 1; attempt <= maxMutateAttempts; attempt++ {
		user, err := svc.store.GetUser(userID)
		if err != nil {
			return err
		}

		if err := fn(user); err != nil {
			return err
		}

		err = svc.store.SaveUserVersioned(user)
		if err == nil {
			return nil
		}
		if !shared.IsConflict(err) {
			return err
		}

		lastErr = err
		ObserveAggregateConflict()
		log.WithFields(log.Fields{
			"userID":  userID,
			"attempt": attempt,
		}).Warn("Concurrent user mutation, retrying")
	}

	return lastErr
}

// ==================== CRUD ====================

func (svc *UserService) CreateUser(req dto.CreateUserRequest) (*dto.UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to hash password")
	}

	language := shared.NormalizeLanguage(req.Language)
	if language == "" {
		language = shared.LanguageTurkish
	}

	id, _ := uuid.NewV7()
	user := &model.User{
		ID:             id.String(),
		Email:          req.Email,
		Username:       req.Username,
		Password:       string(hash),
		Language:       language,
		CourseProgress: json.RawMessage("[]"),
		Quests:         json.RawMessage("[]"),
		Badges:         json.RawMessage("[]"),
		Achievements:   json.RawMessage("[]"),
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := svc.sqlSvc.CreateUser(user); err != nil {
		return nil, err
	}

	log.WithField("userID", user.ID).Info("User created")
	return svc.MapUserToResponse(user), nil
}

func (svc *UserService) GetUser(userID string) (*dto.UserResponse, error) {
	user, err := svc.sqlSvc.GetUser(userID)
	if err != nil {
		return nil, err
	}
	return svc.MapUserToResponse(user), nil
}

func (svc *UserService) UpdateUser(userID string, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	var updated *model.User
	err := svc.MutateUser(userID, func(user *model.User) error {
		if req.Username != "" {
			existing, err := svc.sqlSvc.GetUserByUsername(req.Username)
			if err == nil && existing.ID != userID {
				return shared.NewBadRequestError(fmt.Errorf("username taken"), "Username is already taken")
			}
			user.Username = req.Username
		}
		if req.Language != "" {
			user.Language = shared.NormalizeLanguage(req.Language)
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return svc.MapUserToResponse(updated), nil
}

func (svc *UserService) DeleteUser(userID string) error {
	return svc.sqlSvc.DeleteUser(userID)
}

func (svc *UserService) MapUserToResponse(user *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:                      user.ID,
		Email:                   user.Email,
		Username:                user.Username,
		Language:                user.Language,
		StreakCount:             user.StreakCount,
		LastCompletedCourseDate: user.LastCompletedCourseDate,
		TotalPoints:             user.TotalPoints,
		UnreadNotifications:     user.UnreadNotifications,
		CourseProgress:          user.GetCourseProgress(),
		Quests:                  user.GetQuests(),
		Badges:                  user.GetBadges(),
		Achievements:            user.GetAchievements(),
		CreatedAt:               user.CreatedAt,
	}
}
