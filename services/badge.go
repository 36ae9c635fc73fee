// services/badge.go
package services

import (
	"fmt"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/signa-learn/signa_api/dto"
	"github.com/signa-learn/signa_api/model"
	"github.com/signa-learn/signa_api/shared"
)

// BadgeService evaluates award rules against the user aggregate. Awards are
// idempotent: the membership check and the append happen inside the same
// versioned aggregate write, so repeated or concurrent triggers cannot
// double-award.
type BadgeService struct {
	appContext.DefaultService
	sqlSvc          *PostgresService
	userSvc         *UserService
	notificationSvc *NotificationService
}

const BADGE_SVC = "badge_svc"

func (svc BadgeService) Id() string {
	return BADGE_SVC
}

func (svc *BadgeService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *BadgeService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.userSvc = svc.Service(USER_SVC).(*UserService)
	svc.notificationSvc = svc.Service(NOTIFICATION_SVC).(*NotificationService)
	return nil
}

// BadgePredicate decides whether the user's current state satisfies a rule.
type BadgePredicate func(user *model.User, sections []model.Section) bool

var badgeRules = map[string]BadgePredicate{
	shared.BadgeRuleFirstSignMaster: func(user *model.User, _ []model.Section) bool {
		return user.CompletedCourseCount() >= 1
	},
	shared.BadgeRuleStreakWarrior: func(user *model.User, _ []model.Section) bool {
		return user.StreakCount >= 7
	},
	shared.BadgeRuleQuestConqueror: func(user *model.User, _ []model.Section) bool {
		return user.CollectedQuestCount() >= 5
	},
	shared.BadgeRulePointCollector: func(user *model.User, _ []model.Section) bool {
		return user.TotalPoints >= 500
	},
	shared.BadgeRuleSectionScholar: func(user *model.User, sections []model.Section) bool {
		for _, section := range sections {
			if sectionCompleted(user, section) {
				return true
			}
		}
		return false
	},
}

func sectionCompleted(user *model.User, section model.Section) bool {
	seen := false
	for _, course := range section.Courses {
		if course.IsPremium {
			continue
		}
		seen = true
		entry, ok := user.FindCourseProgress(course.ID)
		if !ok || !entry.Completed {
			return false
		}
	}
	return seen
}

// EvaluateBadges runs every catalog rule against the aggregate and appends the
// newly earned badges, returning them. Already-held badges are skipped, which
// makes re-evaluation for the same underlying event a no-op.
func EvaluateBadges(user *model.User, catalog []model.Badge, sections []model.Section, now time.Time) []model.Badge {
	var awarded []model.Badge

	for _, badge := range catalog {
		if user.HasBadge(badge.ID) {
			continue
		}
		predicate, ok := badgeRules[badge.Rule]
		if !ok {
			continue
		}
		if !predicate(user, sections) {
			continue
		}

		badges := user.GetBadges()
		badges = append(badges, model.UserBadge{BadgeID: badge.ID, DateEarned: now})
		user.SetBadges(badges)
		awarded = append(awarded, badge)
	}

	return awarded
}

// CheckAndAward handles POST /badges/check: re-evaluates all rules for the
// user and awards anything newly satisfied. Safe to call any number of times
// for the same trigger.
func (svc *BadgeService) CheckAndAward(userID, eventType string) (*dto.CheckBadgesResponse, error) {
	catalog, err := svc.sqlSvc.GetBadgeCatalog()
	if err != nil {
		return nil, err
	}
	sections, err := svc.sqlSvc.ListSections()
	if err != nil {
		return nil, err
	}

	var awarded []model.Badge
	err = svc.userSvc.MutateUser(userID, func(user *model.User) error {
		awarded = EvaluateBadges(user, catalog, sections, time.Now())
		return nil
	})
	if err != nil {
		return nil, err
	}

	names := make([]string, len(awarded))
	for i, badge := range awarded {
		names[i] = badge.Name
		svc.notificationSvc.Emit(userID, shared.NotificationTypeBadge, "New badge earned",
			fmt.Sprintf("Congratulations! You earned the \"%s\" badge.", badge.Name))
	}

	if len(awarded) > 0 {
		ObserveBadgesAwarded(len(awarded))
		log.WithFields(log.Fields{
			"userID": userID,
			"event":  eventType,
			"badges": names,
		}).Info("Badges awarded")
	}

	message := "No new badges"
	if len(awarded) > 0 {
		message = fmt.Sprintf("%d new badge(s) awarded", len(awarded))
	}

	return &dto.CheckBadgesResponse{Message: message, Awarded: names}, nil
}

// ListBadges returns the badge catalog, optionally annotated with the user's
// earned dates.
func (svc *BadgeService) ListBadges(userID string) (*dto.BadgeListResponse, error) {
	catalog, err := svc.sqlSvc.GetBadgeCatalog()
	if err != nil {
		return nil, err
	}

	var user *model.User
	if userID != "" {
		if user, err = svc.sqlSvc.GetUser(userID); err != nil {
			return nil, err
		}
	}

	badges := make([]dto.BadgeResponse, len(catalog))
	for i, badge := range catalog {
		badges[i] = dto.BadgeResponse{
			ID:          badge.ID,
			Name:        badge.Name,
			Rule:        badge.Rule,
			Description: badge.Description,
			ImageURL:    badge.ImageURL,
		}
		if user != nil {
			for _, earned := range user.GetBadges() {
				if earned.BadgeID == badge.ID {
					dateEarned := earned.DateEarned
					badges[i].DateEarned = &dateEarned
					break
				}
			}
		}
	}

	return &dto.BadgeListResponse{Badges: badges, Total: len(badges)}, nil
}
