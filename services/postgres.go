package services

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/signa-learn/signa_api/model"
	"github.com/signa-learn/signa_api/shared"
)

type PostgresService struct {
	context.DefaultService
	db *gorm.DB

	database string
}

const POSTGRES_SVC = "postgres_svc"

func (ds PostgresService) Id() string {
	return POSTGRES_SVC
}

func (ds PostgresService) Db() *gorm.DB {
	return ds.db
}

func (ds *PostgresService) Configure(ctx *context.Context) error {
	ds.database = os.Getenv("DATABASE_URL")
	if ds.database == "" {
		host := getenv("DB_HOST", "localhost")
		port := getenv("DB_PORT", "5432")
		user := getenv("DB_USER", "postgres")
		password := getenv("DB_PASSWORD", "postgres")
		dbname := getenv("DB_NAME", "signa_api")
		sslmode := getenv("DB_SSLMODE", "disable")
		timezone := getenv("DB_TIMEZONE", "UTC")

		ds.database = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
			host, user, password, dbname, port, sslmode, timezone)
	}

	return ds.DefaultService.Configure(ctx)
}

func (ds *PostgresService) Start() (err error) {
	maxRetries := 10
	retryDelay := time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		log.Printf("Attempting to connect to database (attempt %d/%d)...", attempt, maxRetries)

		ds.db, err = gorm.Open(postgres.Open(ds.database), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Error),
		})
		if err == nil {
			break
		}

		log.Printf("Database connection failed: %v", err)
		time.Sleep(retryDelay)
		retryDelay *= 2
	}
	if err != nil {
		return fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
	}

	return ds.db.AutoMigrate(
		&model.User{},
		&model.Section{},
		&model.Course{},
		&model.Word{},
		&model.Quest{},
		&model.Badge{},
		&model.Notification{},
	)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ==================== USER AGGREGATE ====================

func (ds *PostgresService) GetUser(userID string) (*model.User, error) {
	var user model.User
	if err := ds.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "User not found")
		}
		return nil, shared.NewInternalError(err, "Failed to load user")
	}
	return &user, nil
}

func (ds *PostgresService) GetUserByUsername(username string) (*model.User, error) {
	var user model.User
	if err := ds.db.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "User not found")
		}
		return nil, shared.NewInternalError(err, "Failed to load user")
	}
	return &user, nil
}

func (ds *PostgresService) CreateUser(user *model.User) error {
	if err := ds.db.Create(user).Error; err != nil {
		return shared.NewInternalError(err, "Failed to create user")
	}
	return nil
}

// SaveUserVersioned writes the whole aggregate in one conditional UPDATE.
// The WHERE clause on the version column makes the read-modify-write a
// compare-and-swap: zero affected rows means another writer got there first
// and the caller must reload and retry.
//
// unread_notifications is deliberately absent from the column list: the
// counter is maintained with atomic increments by NotificationService, and
// writing a loaded snapshot back here would erase increments that landed
// between the load and this save.
func (ds *PostgresService) SaveUserVersioned(user *model.User) error {
	expected := user.Version
	user.Version = expected + 1
	user.UpdatedAt = time.Now()

	res := ds.db.Model(&model.User{}).
		Where("id = ? AND version = ?", user.ID, expected).
		Select("course_progress", "quests", "badges", "achievements",
			"streak_count", "last_completed_course_date", "total_points",
			"language", "username", "version", "updated_at").
		Updates(user)
	if res.Error != nil {
		user.Version = expected
		return shared.NewInternalError(res.Error, "Failed to save user")
	}
	if res.RowsAffected == 0 {
		user.Version = expected
		return shared.NewConflictError(shared.ErrVersionConflict, "User was modified concurrently")
	}
	return nil
}

// DeleteUser removes the user row together with their notification rows, so
// nothing is left pointing at a dead user id.
func (ds *PostgresService) DeleteUser(userID string) error {
	return ds.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Notification{}, "user_id = ?", userID).Error; err != nil {
			return shared.NewInternalError(err, "Failed to delete user notifications")
		}
		res := tx.Delete(&model.User{}, "id = ?", userID)
		if res.Error != nil {
			return shared.NewInternalError(res.Error, "Failed to delete user")
		}
		if res.RowsAffected == 0 {
			return shared.NewNotFoundError(gorm.ErrRecordNotFound, "User not found")
		}
		return nil
	})
}

// ==================== CATALOG ====================

func (ds *PostgresService) GetCourse(courseID string) (*model.Course, error) {
	var course model.Course
	if err := ds.db.First(&course, "id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Course not found")
		}
		return nil, shared.NewInternalError(err, "Failed to load course")
	}
	return &course, nil
}

// ListSections returns sections ordered by position, each with its courses
// ordered within the section.
func (ds *PostgresService) ListSections() ([]model.Section, error) {
	var sections []model.Section
	err := ds.db.
		Preload("Courses", func(db *gorm.DB) *gorm.DB {
			return db.Order("courses.\"order\" ASC")
		}).
		Order("\"order\" ASC").
		Find(&sections).Error
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to load sections")
	}
	return sections, nil
}

func (ds *PostgresService) GetQuestCatalog() ([]model.Quest, error) {
	var quests []model.Quest
	if err := ds.db.Where("is_active = ?", true).Find(&quests).Error; err != nil {
		return nil, shared.NewInternalError(err, "Failed to load quests")
	}
	return quests, nil
}

func (ds *PostgresService) GetQuest(questID string) (*model.Quest, error) {
	var quest model.Quest
	if err := ds.db.First(&quest, "id = ?", questID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Quest not found")
		}
		return nil, shared.NewInternalError(err, "Failed to load quest")
	}
	return &quest, nil
}

func (ds *PostgresService) GetQuestByKey(key string) (*model.Quest, error) {
	var quest model.Quest
	if err := ds.db.First(&quest, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Quest not found")
		}
		return nil, shared.NewInternalError(err, "Failed to load quest")
	}
	return &quest, nil
}

func (ds *PostgresService) GetBadgeCatalog() ([]model.Badge, error) {
	var badges []model.Badge
	if err := ds.db.Where("is_active = ?", true).Find(&badges).Error; err != nil {
		return nil, shared.NewInternalError(err, "Failed to load badges")
	}
	return badges, nil
}

// ==================== NOTIFICATIONS ====================

func (ds *PostgresService) CreateNotification(n *model.Notification) error {
	if err := ds.db.Create(n).Error; err != nil {
		return shared.NewInternalError(err, "Failed to create notification")
	}
	return nil
}

func (ds *PostgresService) GetNotifications(userID string, limit int) ([]model.Notification, error) {
	var notifications []model.Notification
	q := ds.db.Where("user_id = ?", userID).Order("date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&notifications).Error; err != nil {
		return nil, shared.NewInternalError(err, "Failed to load notifications")
	}
	return notifications, nil
}

// MarkNotificationsRead flips all unread rows for the user and reports how
// many it flipped, so the caller can decrement the unread counter by exactly
// that amount.
func (ds *PostgresService) MarkNotificationsRead(userID string) (int64, error) {
	res := ds.db.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, shared.NewInternalError(res.Error, "Failed to mark notifications read")
	}
	return res.RowsAffected, nil
}

// ==================== WORDS ====================

func (ds *PostgresService) GetWord(wordID string) (*model.Word, error) {
	var word model.Word
	if err := ds.db.First(&word, "id = ?", wordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Word not found")
		}
		return nil, shared.NewInternalError(err, "Failed to load word")
	}
	return &word, nil
}

func (ds *PostgresService) ListWords(language string) ([]model.Word, error) {
	var words []model.Word
	q := ds.db.Order("text ASC")
	if language != "" {
		q = q.Where("language = ?", language)
	}
	if err := q.Find(&words).Error; err != nil {
		return nil, shared.NewInternalError(err, "Failed to load words")
	}
	return words, nil
}

func (ds *PostgresService) CreateWord(word *model.Word) error {
	if err := ds.db.Create(word).Error; err != nil {
		return shared.NewInternalError(err, "Failed to create word")
	}
	return nil
}

func (ds *PostgresService) UpdateWord(word *model.Word) error {
	if err := ds.db.Save(word).Error; err != nil {
		return shared.NewInternalError(err, "Failed to update word")
	}
	return nil
}

func (ds *PostgresService) DeleteWord(wordID string) error {
	res := ds.db.Delete(&model.Word{}, "id = ?", wordID)
	if res.Error != nil {
		return shared.NewInternalError(res.Error, "Failed to delete word")
	}
	if res.RowsAffected == 0 {
		return shared.NewNotFoundError(gorm.ErrRecordNotFound, "Word not found")
	}
	return nil
}
