package main

import (
	"github.com/signa-learn/signa_api/services"

	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Err(err).Msg("No .env file loaded, using environment")
	}

	ctx, err := context.NewCtx(
		&services.PostgresService{},
		&services.RedisService{},
		&services.MinIOService{},
		&services.MonitoringService{},

		&services.UserService{},
		&services.ContentService{},
		&services.NotificationService{},
		&services.QuestService{},
		&services.BadgeService{},
		&services.ProgressionService{},
		&services.MediaService{},
		&services.RateLimitService{},

		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err)
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err)
		return
	}
}
