package services

import (
	"fmt"
	"os"
	"strconv"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	log "github.com/sirupsen/logrus"

	"github.com/signa-learn/signa_api/docs"
	"github.com/signa-learn/signa_api/services/handlers"
	"github.com/signa-learn/signa_api/shared"
)

type HttpService struct {
	appContext.DefaultService

	progressionSvc  *ProgressionService
	questSvc        *QuestService
	badgeSvc        *BadgeService
	userSvc         *UserService
	contentSvc      *ContentService
	notificationSvc *NotificationService
	mediaSvc        *MediaService
	sqlSvc          *PostgresService
	rateLimitSvc    *RateLimitService

	port int
	app  *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *appContext.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	svc.progressionSvc = ctx.Service(PROGRESSION_SVC).(*ProgressionService)
	svc.questSvc = ctx.Service(QUEST_SVC).(*QuestService)
	svc.badgeSvc = ctx.Service(BADGE_SVC).(*BadgeService)
	svc.userSvc = ctx.Service(USER_SVC).(*UserService)
	svc.contentSvc = ctx.Service(CONTENT_SVC).(*ContentService)
	svc.notificationSvc = ctx.Service(NOTIFICATION_SVC).(*NotificationService)
	svc.mediaSvc = ctx.Service(MEDIA_SVC).(*MediaService)
	svc.sqlSvc = ctx.Service(POSTGRES_SVC).(*PostgresService)
	svc.rateLimitSvc = ctx.Service(RATE_LIMIT_SVC).(*RateLimitService)

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	docs.SwaggerInfo.BasePath = ""

	svc.app = fiber.New(fiber.Config{
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: svc.handleError,
		BodyLimit:    60 * 1024 * 1024,
	})

	svc.app.Use(recover.New())
	svc.app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
	}))
	svc.app.Use(svc.metrics)

	svc.app.Get("/ping", svc.ping)
	svc.app.Get("/swagger/*", swagger.HandlerDefault)

	svc.registerRoutes()

	log.WithField("port", svc.port).Info("http service listening")
	return svc.app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) registerRoutes() {
	progressionHandler := handlers.NewProgressionHandler(svc.progressionSvc)
	questHandler := handlers.NewQuestHandler(svc.questSvc)
	badgeHandler := handlers.NewBadgeHandler(svc.badgeSvc)
	userHandler := handlers.NewUserHandler(svc.userSvc, svc.notificationSvc)
	contentHandler := handlers.NewContentHandler(svc.contentSvc, svc.mediaSvc, svc.sqlSvc)

	v1 := svc.app.Group("/api/v1")
	v1.Get("/ping", svc.ping)

	courses := v1.Group("/courses")
	courses.Post("/:courseId/finish", svc.rateLimitSvc.Limit("course_finish"), progressionHandler.FinishCourse)
	courses.Post("/:courseId/progress", progressionHandler.UpdateProgress)

	quests := v1.Group("/quests")
	quests.Get("/", questHandler.ListQuests)
	quests.Post("/:questId/complete", svc.rateLimitSvc.Limit("quest_action"), questHandler.CompleteQuest)
	quests.Post("/:questId/collect-reward", svc.rateLimitSvc.Limit("quest_action"), questHandler.CollectReward)

	badges := v1.Group("/badges")
	badges.Get("/", badgeHandler.ListBadges)
	badges.Post("/check", badgeHandler.CheckBadges)

	users := v1.Group("/users")
	users.Post("/", userHandler.CreateUser)
	users.Get("/:userId", userHandler.GetUser)
	users.Put("/:userId", userHandler.UpdateUser)
	users.Delete("/:userId", userHandler.DeleteUser)
	users.Get("/:userId/badges", badgeHandler.ListUserBadges)
	users.Get("/:userId/notifications", userHandler.ListNotifications)
	users.Post("/:userId/notifications/read", userHandler.MarkNotificationsRead)

	v1.Get("/sections", contentHandler.ListSections)

	words := v1.Group("/words")
	words.Get("/", contentHandler.ListWords)
	words.Post("/", contentHandler.CreateWord)
	words.Get("/:wordId", contentHandler.GetWord)
	words.Delete("/:wordId", contentHandler.DeleteWord)
	words.Post("/:wordId/video", svc.rateLimitSvc.Limit("media_upload"), contentHandler.UploadWordVideo)
	words.Post("/:wordId/thumbnail", svc.rateLimitSvc.Limit("media_upload"), contentHandler.UploadWordThumbnail)
}

func (svc *HttpService) Shutdown() {
	if svc.app != nil {
		_ = svc.app.Shutdown()
	}
}

func (svc *HttpService) metrics(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		if appErr, ok := shared.GetAppError(err); ok {
			status = appErr.StatusCode
		} else if fiberErr, ok := err.(*fiber.Error); ok {
			status = fiberErr.Code
		} else {
			status = fiber.StatusInternalServerError
		}
	}

	ObserveHTTPRequest(c.Route().Path, c.Method(), strconv.Itoa(status), time.Since(start))
	return err
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", "pong")
}

func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		if appErr.StatusCode >= fiber.StatusInternalServerError {
			log.WithError(appErr.Err).WithField("path", c.Path()).Error(appErr.Message)
		}
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	if fiberErr, ok := err.(*fiber.Error); ok {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.WithError(err).WithField("path", c.Path()).Error("unhandled error")
	return shared.ResponseInternalError(c, err)
}
