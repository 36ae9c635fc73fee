package dto

import "time"

type CheckBadgesRequest struct {
	UserID    string                 `json:"userId" validate:"required"`
	EventType string                 `json:"eventType" validate:"required"`
	EventData map[string]interface{} `json:"eventData"`
}

func (r CheckBadgesRequest) Validate() error {
	return validate.Struct(r)
}

type CheckBadgesResponse struct {
	Message string   `json:"message"`
	Awarded []string `json:"awarded,omitempty"`
}

type BadgeResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Rule        string     `json:"rule"`
	Description string     `json:"description"`
	ImageURL    string     `json:"imageUrl"`
	DateEarned  *time.Time `json:"dateEarned,omitempty"`
}

type BadgeListResponse struct {
	Badges []BadgeResponse `json:"badges"`
	Total  int             `json:"total"`
}
