package seeders

import (
	"log"

	"gorm.io/gorm"

	"github.com/signa-learn/signa_api/model"
	"github.com/signa-learn/signa_api/shared"
)

// BadgeSeeder seeds the badge catalog. Rule values must match the badge rule
// registry or the badge is never awarded.
type BadgeSeeder struct {
	db *gorm.DB
}

func NewBadgeSeeder(db *gorm.DB) *BadgeSeeder {
	return &BadgeSeeder{db: db}
}

func (s *BadgeSeeder) SeedBadges() error {
	for _, badge := range s.getBadges() {
		var existing model.Badge
		err := s.db.Where("id = ?", badge.ID).First(&existing).Error
		if err == nil {
			log.Printf("Badge %s already exists, skipping", badge.Name)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		if err := s.db.Create(&badge).Error; err != nil {
			log.Printf("Error creating badge %s: %v", badge.Name, err)
			return err
		}
		log.Printf("Created badge: %s", badge.Name)
	}

	log.Println("Badge seeding completed")
	return nil
}

func (s *BadgeSeeder) getBadges() []model.Badge {
	return []model.Badge{
		{
			ID:          "badge_first_sign_master",
			Name:        "First Sign Master",
			Rule:        shared.BadgeRuleFirstSignMaster,
			Description: "Complete your first course",
			IsActive:    true,
		},
		{
			ID:          "badge_streak_warrior",
			Name:        "Streak Warrior",
			Rule:        shared.BadgeRuleStreakWarrior,
			Description: "Practice seven days in a row",
			IsActive:    true,
		},
		{
			ID:          "badge_quest_conqueror",
			Name:        "Quest Conqueror",
			Rule:        shared.BadgeRuleQuestConqueror,
			Description: "Collect the rewards of five quests",
			IsActive:    true,
		},
		{
			ID:          "badge_point_collector",
			Name:        "Point Collector",
			Rule:        shared.BadgeRulePointCollector,
			Description: "Earn 500 points",
			IsActive:    true,
		},
		{
			ID:          "badge_section_scholar",
			Name:        "Section Scholar",
			Rule:        shared.BadgeRuleSectionScholar,
			Description: "Complete every course in a section",
			IsActive:    true,
		},
	}
}
