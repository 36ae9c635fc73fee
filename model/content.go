// model/content.go
package model

import "time"

// Section is an ordered group of courses sharing a sign language.
type Section struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Language    string    `json:"language" gorm:"index"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	Order       int       `json:"order" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationship, ordered by Course.Order on load
	Courses []Course `json:"courses" gorm:"foreignKey:SectionID"`
}

// Course is a unit of learning content; belongs to exactly one section.
// Premium courses are excluded from the section-complete check and are
// unlocked by the entitlement flow, not the progression graph.
type Course struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	SectionID    string    `json:"section_id" gorm:"not null;index"`
	Title        string    `json:"title" gorm:"not null"`
	Description  string    `json:"description" gorm:"type:text"`
	Order        int       `json:"order" gorm:"not null"`
	IsPremium    bool      `json:"is_premium" gorm:"default:false"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	ThumbnailURL string    `json:"thumbnail_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Section Section `json:"-" gorm:"foreignKey:SectionID"`
}

// Word is a dictionary entry with its sign video assets.
type Word struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Language     string    `json:"language" gorm:"index"`
	Text         string    `json:"text" gorm:"not null;index"`
	Description  string    `json:"description" gorm:"type:text"`
	VideoURL     string    `json:"video_url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
