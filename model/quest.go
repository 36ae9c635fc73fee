package model

import "time"

// Quest is a catalog entry. Key identifies quests referenced from
// configuration (e.g. the automatic quiz-master completion) without coupling
// logic to a row ID. StartDate and Deadline bound visibility; either may be
// nil for an open-ended quest.
type Quest struct {
	ID           string     `json:"id" gorm:"primaryKey"`
	Key          string     `json:"key" gorm:"uniqueIndex"`
	QuestType    string     `json:"quest_type" gorm:"index"` // daily, friend
	Language     string     `json:"language" gorm:"index"`
	Title        string     `json:"title" gorm:"not null"`
	Description  string     `json:"description" gorm:"type:text"`
	StartDate    *time.Time `json:"start_date"`
	Deadline     *time.Time `json:"deadline"`
	RewardPoints int        `json:"reward_points" gorm:"default:0"`
	IsActive     bool       `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
