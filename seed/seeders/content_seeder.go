package seeders

import (
	"log"

	"gorm.io/gorm"

	"github.com/signa-learn/signa_api/model"
	"github.com/signa-learn/signa_api/shared"
)

// ContentSeeder seeds the section and course catalog.
type ContentSeeder struct {
	db *gorm.DB
}

func NewContentSeeder(db *gorm.DB) *ContentSeeder {
	return &ContentSeeder{db: db}
}

func (s *ContentSeeder) SeedContent() error {
	for _, section := range s.getSections() {
		var existing model.Section
		err := s.db.Where("id = ?", section.ID).First(&existing).Error
		if err == nil {
			log.Printf("Section %s already exists, skipping", section.Title)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		if err := s.db.Create(&section).Error; err != nil {
			log.Printf("Error creating section %s: %v", section.Title, err)
			return err
		}
		log.Printf("Created section: %s (%d courses)", section.Title, len(section.Courses))
	}

	log.Println("Content seeding completed")
	return nil
}

func (s *ContentSeeder) getSections() []model.Section {
	return []model.Section{
		{
			ID:          "section_tr_basics",
			Language:    shared.LanguageTurkish,
			Title:       "Temel İşaretler",
			Description: "Everyday greetings and the signing alphabet",
			Order:       1,
			Courses: []model.Course{
				{
					ID:          "course_tr_greetings",
					SectionID:   "section_tr_basics",
					Title:       "Greetings",
					Description: "Hello, goodbye, please and thank you",
					Order:       1,
					IsActive:    true,
				},
				{
					ID:          "course_tr_alphabet",
					SectionID:   "section_tr_basics",
					Title:       "Fingerspelling Alphabet",
					Description: "The full fingerspelling alphabet, letter by letter",
					Order:       2,
					IsActive:    true,
				},
				{
					ID:          "course_tr_numbers",
					SectionID:   "section_tr_basics",
					Title:       "Numbers",
					Description: "Counting from zero to one hundred",
					Order:       3,
					IsActive:    true,
				},
			},
		},
		{
			ID:          "section_tr_daily_life",
			Language:    shared.LanguageTurkish,
			Title:       "Günlük Hayat",
			Description: "Signs for family, food and getting around",
			Order:       2,
			Courses: []model.Course{
				{
					ID:          "course_tr_family",
					SectionID:   "section_tr_daily_life",
					Title:       "Family",
					Description: "Family members and relationships",
					Order:       1,
					IsActive:    true,
				},
				{
					ID:          "course_tr_food",
					SectionID:   "section_tr_daily_life",
					Title:       "Food and Drink",
					Description: "Ordering and talking about meals",
					Order:       2,
					IsActive:    true,
				},
				{
					ID:          "course_tr_travel",
					SectionID:   "section_tr_daily_life",
					Title:       "Travel",
					Description: "Directions, transport and places",
					Order:       3,
					IsPremium:   true,
					IsActive:    true,
				},
			},
		},
		{
			ID:          "section_tr_conversation",
			Language:    shared.LanguageTurkish,
			Title:       "Sohbet",
			Description: "Holding a full signed conversation",
			Order:       3,
			Courses: []model.Course{
				{
					ID:          "course_tr_smalltalk",
					SectionID:   "section_tr_conversation",
					Title:       "Small Talk",
					Description: "Weather, feelings and daily plans",
					Order:       1,
					IsActive:    true,
				},
				{
					ID:          "course_tr_storytelling",
					SectionID:   "section_tr_conversation",
					Title:       "Storytelling",
					Description: "Telling a story with classifiers and role shift",
					Order:       2,
					IsPremium:   true,
					IsActive:    true,
				},
			},
		},
	}
}
