package model

import "time"

type Notification struct {
	ID      string    `json:"id" gorm:"primaryKey"`
	UserID  string    `json:"user_id" gorm:"not null;index"`
	Type    string    `json:"type"` // streak, badge, quest, course
	Title   string    `json:"title"`
	Message string    `json:"message" gorm:"type:text"`
	IsRead  bool      `json:"is_read" gorm:"default:false"`
	Date    time.Time `json:"date"`

	CreatedAt time.Time `json:"created_at"`
}
