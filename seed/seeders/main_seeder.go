package seeders

import (
	"log"

	"gorm.io/gorm"
)

// MainSeeder coordinates all catalog seeding operations.
type MainSeeder struct {
	db *gorm.DB
}

func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{db: db}
}

// SeedAll runs all seeders in dependency order.
func (s *MainSeeder) SeedAll() error {
	contentSeeder := NewContentSeeder(s.db)
	if err := contentSeeder.SeedContent(); err != nil {
		log.Printf("Content seeding failed: %v", err)
		return err
	}

	questSeeder := NewQuestSeeder(s.db)
	if err := questSeeder.SeedQuests(); err != nil {
		log.Printf("Quest seeding failed: %v", err)
		return err
	}

	badgeSeeder := NewBadgeSeeder(s.db)
	if err := badgeSeeder.SeedBadges(); err != nil {
		log.Printf("Badge seeding failed: %v", err)
		return err
	}

	wordSeeder := NewWordSeeder(s.db)
	if err := wordSeeder.SeedWords(); err != nil {
		log.Printf("Word seeding failed: %v", err)
		return err
	}

	return nil
}

func (s *MainSeeder) SeedContentOnly() error {
	return NewContentSeeder(s.db).SeedContent()
}

func (s *MainSeeder) SeedQuestsOnly() error {
	return NewQuestSeeder(s.db).SeedQuests()
}

func (s *MainSeeder) SeedBadgesOnly() error {
	return NewBadgeSeeder(s.db).SeedBadges()
}

func (s *MainSeeder) SeedWordsOnly() error {
	return NewWordSeeder(s.db).SeedWords()
}
