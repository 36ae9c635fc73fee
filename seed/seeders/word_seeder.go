package seeders

import (
	"log"

	"gorm.io/gorm"

	"github.com/signa-learn/signa_api/model"
	"github.com/signa-learn/signa_api/shared"
)

// WordSeeder seeds the starter sign dictionary. Video and thumbnail URLs are
// attached later through the media upload endpoints.
type WordSeeder struct {
	db *gorm.DB
}

func NewWordSeeder(db *gorm.DB) *WordSeeder {
	return &WordSeeder{db: db}
}

func (s *WordSeeder) SeedWords() error {
	for _, word := range s.getWords() {
		var existing model.Word
		err := s.db.Where("id = ?", word.ID).First(&existing).Error
		if err == nil {
			log.Printf("Word %s already exists, skipping", word.Text)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		if err := s.db.Create(&word).Error; err != nil {
			log.Printf("Error creating word %s: %v", word.Text, err)
			return err
		}
		log.Printf("Created word: %s", word.Text)
	}

	log.Println("Word seeding completed")
	return nil
}

func (s *WordSeeder) getWords() []model.Word {
	return []model.Word{
		{
			ID:          "word_tr_merhaba",
			Language:    shared.LanguageTurkish,
			Text:        "Merhaba",
			Description: "Hello. Open hand raised beside the head, palm forward.",
		},
		{
			ID:          "word_tr_tesekkurler",
			Language:    shared.LanguageTurkish,
			Text:        "Teşekkürler",
			Description: "Thank you. Fingertips touch the chin, then move outward.",
		},
		{
			ID:          "word_tr_evet",
			Language:    shared.LanguageTurkish,
			Text:        "Evet",
			Description: "Yes. Fist nods at the wrist like a head nodding.",
		},
		{
			ID:          "word_tr_hayir",
			Language:    shared.LanguageTurkish,
			Text:        "Hayır",
			Description: "No. Index and middle finger close against the thumb.",
		},
		{
			ID:          "word_tr_aile",
			Language:    shared.LanguageTurkish,
			Text:        "Aile",
			Description: "Family. Both hands trace a circle, fingertips meeting.",
		},
		{
			ID:          "word_tr_su",
			Language:    shared.LanguageTurkish,
			Text:        "Su",
			Description: "Water. The W hand taps the chin twice.",
		},
	}
}
