package seeders

import (
	"log"

	"gorm.io/gorm"

	"github.com/signa-learn/signa_api/model"
	"github.com/signa-learn/signa_api/shared"
)

// QuestSeeder seeds the quest catalog.
type QuestSeeder struct {
	db *gorm.DB
}

func NewQuestSeeder(db *gorm.DB) *QuestSeeder {
	return &QuestSeeder{db: db}
}

func (s *QuestSeeder) SeedQuests() error {
	for _, quest := range s.getQuests() {
		var existing model.Quest
		err := s.db.Where("key = ?", quest.Key).First(&existing).Error
		if err == nil {
			log.Printf("Quest %s already exists, skipping", quest.Key)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		if err := s.db.Create(&quest).Error; err != nil {
			log.Printf("Error creating quest %s: %v", quest.Key, err)
			return err
		}
		log.Printf("Created quest: %s", quest.Title)
	}

	log.Println("Quest seeding completed")
	return nil
}

func (s *QuestSeeder) getQuests() []model.Quest {
	return []model.Quest{
		{
			ID:           "quest_daily_practice",
			Key:          "daily_practice",
			QuestType:    shared.QuestTypeDaily,
			Language:     shared.LanguageTurkish,
			Title:        "Daily Practice",
			Description:  "Complete one course today",
			RewardPoints: 10,
			IsActive:     true,
		},
		{
			ID:           "quest_quiz_master",
			Key:          shared.QuestKeyQuizMaster,
			QuestType:    shared.QuestTypeDaily,
			Language:     shared.LanguageTurkish,
			Title:        "Quiz Master",
			Description:  "Pass a course quiz with a score of 80 or higher",
			RewardPoints: 25,
			IsActive:     true,
		},
		{
			ID:           "quest_invite_friend",
			Key:          "invite_friend",
			QuestType:    shared.QuestTypeFriend,
			Language:     shared.LanguageTurkish,
			Title:        "Sign Together",
			Description:  "Invite a friend to learn sign language with you",
			RewardPoints: 50,
			IsActive:     true,
		},
		{
			ID:           "quest_practice_partner",
			Key:          "practice_partner",
			QuestType:    shared.QuestTypeFriend,
			Language:     shared.LanguageTurkish,
			Title:        "Practice Partner",
			Description:  "Finish a practice session with a friend",
			RewardPoints: 30,
			IsActive:     true,
		},
	}
}
