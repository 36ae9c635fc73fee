// services/notification.go
package services

import (
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/signa-learn/signa_api/dto"
	"github.com/signa-learn/signa_api/model"
)

// NotificationService records notifications and maintains the per-user unread
// counter. Delivery is fire-and-forget relative to whatever operation emitted
// the notification: failures are logged, never propagated.
type NotificationService struct {
	appContext.DefaultService
	sqlSvc *PostgresService
}

const NOTIFICATION_SVC = "notification_svc"

func (svc NotificationService) Id() string {
	return NOTIFICATION_SVC
}

func (svc *NotificationService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *NotificationService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	return nil
}

// Create persists a notification row and bumps the unread counter on the user
// row.
func (svc *NotificationService) Create(notificationType, title, message, userID string) (*model.Notification, error) {
	id, _ := uuid.NewV7()
	notification := &model.Notification{
		ID:      id.String(),
		UserID:  userID,
		Type:    notificationType,
		Title:   title,
		Message: message,
		Date:    time.Now(),
	}

	if err := svc.sqlSvc.CreateNotification(notification); err != nil {
		return nil, err
	}

	svc.bumpUnread(userID)
	return notification, nil
}

// bumpUnread increments the unread counter in place. The counter lives
// outside the versioned aggregate write, so every change to it must go
// through an atomic SQL expression rather than a loaded snapshot.
func (svc *NotificationService) bumpUnread(userID string) {
	err := svc.sqlSvc.Db().Model(&model.User{}).
		Where("id = ?", userID).
		UpdateColumn("unread_notifications", gorm.Expr("unread_notifications + 1")).Error
	if err != nil {
		log.WithError(err).WithField("userID", userID).Error("Failed to bump unread counter")
	}
}

// Emit is Create with the failure swallowed, for callers that must not fail on
// notification problems.
func (svc *NotificationService) Emit(userID, notificationType, title, message string) {
	if _, err := svc.Create(notificationType, title, message, userID); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"userID": userID,
			"type":   notificationType,
		}).Error("Failed to create notification")
	}
}

// Record persists a notification built elsewhere, such as the ones the
// progression engine collects during a course completion, and bumps the
// unread counter for it. Failures are logged only.
func (svc *NotificationService) Record(n *model.Notification) {
	if n.ID == "" {
		id, _ := uuid.NewV7()
		n.ID = id.String()
	}
	if n.Date.IsZero() {
		n.Date = time.Now()
	}
	if err := svc.sqlSvc.CreateNotification(n); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"userID": n.UserID,
			"type":   n.Type,
		}).Error("Failed to record notification")
		return
	}
	svc.bumpUnread(n.UserID)
}

func (svc *NotificationService) List(userID string, limit int) (*dto.NotificationListResponse, error) {
	notifications, err := svc.sqlSvc.GetNotifications(userID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.NotificationResponse, len(notifications))
	unread := 0
	for i, n := range notifications {
		responses[i] = dto.NotificationResponse{
			ID:      n.ID,
			Type:    n.Type,
			Title:   n.Title,
			Message: n.Message,
			IsRead:  n.IsRead,
			Date:    n.Date,
		}
		if !n.IsRead {
			unread++
		}
	}

	return &dto.NotificationListResponse{
		Notifications: responses,
		Unread:        unread,
		Total:         len(responses),
	}, nil
}

// MarkAllRead flips stored rows and decrements the counter by exactly the
// number of rows flipped. Decrementing instead of zeroing keeps a
// notification created between the two statements counted.
func (svc *NotificationService) MarkAllRead(userID string) error {
	flipped, err := svc.sqlSvc.MarkNotificationsRead(userID)
	if err != nil {
		return err
	}
	if flipped == 0 {
		return nil
	}

	err = svc.sqlSvc.Db().Model(&model.User{}).
		Where("id = ?", userID).
		UpdateColumn("unread_notifications", gorm.Expr("GREATEST(unread_notifications - ?, 0)", flipped)).Error
	if err != nil {
		log.WithError(err).WithField("userID", userID).Error("Failed to reset unread counter")
	}
	return nil
}
