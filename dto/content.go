package dto

import "time"

// CourseResponse is a catalog course with the requesting user's lock and
// progress state overlaid. For anonymous catalog reads the overlay fields keep
// their zero values except IsLocked, which follows the default lock policy.
type CourseResponse struct {
	ID           string     `json:"id"`
	SectionID    string     `json:"sectionId"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Order        int        `json:"order"`
	IsPremium    bool       `json:"isPremium"`
	ThumbnailURL string     `json:"thumbnailUrl"`
	IsLocked     bool       `json:"isLocked"`
	Progress     int        `json:"progress"`
	Completed    bool       `json:"completed"`
	UnlockDate   *time.Time `json:"unlockDate,omitempty"`
}

type SectionResponse struct {
	ID          string           `json:"id"`
	Language    string           `json:"language"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Order       int              `json:"order"`
	Courses     []CourseResponse `json:"courses"`
}

type SectionListResponse struct {
	Sections []SectionResponse `json:"sections"`
	Total    int               `json:"total"`
}

type CreateWordRequest struct {
	Language    string `json:"language" validate:"required"`
	Text        string `json:"text" validate:"required"`
	Description string `json:"description"`
}

func (r CreateWordRequest) Validate() error {
	return validate.Struct(r)
}

type WordResponse struct {
	ID           string `json:"id"`
	Language     string `json:"language"`
	Text         string `json:"text"`
	Description  string `json:"description"`
	VideoURL     string `json:"videoUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

type WordListResponse struct {
	Words []WordResponse `json:"words"`
	Total int            `json:"total"`
}

type MediaUploadResponse struct {
	URL         string `json:"url"`
	ObjectName  string `json:"objectName"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}
