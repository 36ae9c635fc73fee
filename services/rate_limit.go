package services

import (
	"fmt"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/signa-learn/signa_api/shared"
)

// RateLimitService enforces fixed-window per-IP limits backed by redis
// counters. When redis is unavailable requests pass through.
type RateLimitService struct {
	appContext.DefaultService

	configs  map[string]rateLimitConfig
	redisSvc *RedisService
}

type rateLimitConfig struct {
	MaxRequests int64
	WindowSize  time.Duration
}

const RATE_LIMIT_SVC = "rate_limit_svc"

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func (svc *RateLimitService) Configure(ctx *appContext.Context) error {
	svc.redisSvc = ctx.Service(REDIS_SVC).(*RedisService)
	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	svc.configs = map[string]rateLimitConfig{
		"course_finish": {
			MaxRequests: 30,
			WindowSize:  time.Hour,
		},
		"quest_action": {
			MaxRequests: 60,
			WindowSize:  time.Hour,
		},
		"media_upload": {
			MaxRequests: 20,
			WindowSize:  time.Hour,
		},
		"api_general": {
			MaxRequests: 1000,
			WindowSize:  time.Hour,
		},
	}
	return nil
}

// Limit returns a fiber handler enforcing the named endpoint limit.
func (svc *RateLimitService) Limit(endpointType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cfg, ok := svc.configs[endpointType]
		if !ok {
			cfg = svc.configs["api_general"]
		}

		key := fmt.Sprintf("ratelimit:%s:%s", endpointType, c.IP())
		count, err := svc.redisSvc.Incr(c.Context(), key, cfg.WindowSize)
		if err != nil {
			log.WithError(err).Warn("rate limit counter unavailable, allowing request")
			return c.Next()
		}

		if count > cfg.MaxRequests {
			return shared.ResponseJSON(c, fiber.StatusTooManyRequests, "Rate limit exceeded, try again later", nil)
		}

		return c.Next()
	}
}
