// services/content.go
package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/signa-learn/signa_api/dto"
	"github.com/signa-learn/signa_api/model"
	"github.com/signa-learn/signa_api/shared"
)

// ContentService owns the course graph reference data: ordered sections of
// ordered courses, plus the unlock policy evaluated against a user aggregate.
type ContentService struct {
	appContext.DefaultService
	sqlSvc   *PostgresService
	redisSvc *RedisService
}

const CONTENT_SVC = "content_svc"

const (
	sectionsCacheKey = "catalog:sections"
	catalogCacheTTL  = 5 * time.Minute
)

func (svc ContentService) Id() string {
	return CONTENT_SVC
}

func (svc *ContentService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ContentService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	return nil
}

// ==================== CATALOG READS ====================

// ListSections returns the full ordered course graph. Catalog data changes
// rarely, so reads go through a short-lived redis cache; a cache failure falls
// back to the database.
func (svc *ContentService) ListSections() ([]model.Section, error) {
	ctx := context.Background()

	var cached []model.Section
	if err := svc.redisSvc.GetJSON(ctx, sectionsCacheKey, &cached); err != nil {
		log.WithError(err).Debug("Section cache read failed")
	} else if len(cached) > 0 {
		return cached, nil
	}

	sections, err := svc.sqlSvc.ListSections()
	if err != nil {
		return nil, err
	}

	if err := svc.redisSvc.Set(ctx, sectionsCacheKey, sections, catalogCacheTTL); err != nil {
		log.WithError(err).Debug("Section cache write failed")
	}

	return sections, nil
}

func (svc *ContentService) GetCourse(courseID string) (*model.Course, error) {
	return svc.sqlSvc.GetCourse(courseID)
}

// GetSectionsForUser overlays the caller's lock and progress state on the
// catalog.
func (svc *ContentService) GetSectionsForUser(user *model.User) (*dto.SectionListResponse, error) {
	sections, err := svc.ListSections()
	if err != nil {
		return nil, err
	}

	sectionResponses := make([]dto.SectionResponse, len(sections))
	for i, section := range sections {
		courses := make([]dto.CourseResponse, len(section.Courses))
		for j, course := range section.Courses {
			courses[j] = dto.CourseResponse{
				ID:           course.ID,
				SectionID:    course.SectionID,
				Title:        course.Title,
				Description:  course.Description,
				Order:        course.Order,
				IsPremium:    course.IsPremium,
				ThumbnailURL: course.ThumbnailURL,
				IsLocked:     true,
			}

			if user == nil {
				courses[j].IsLocked = !(i == 0 && j == 0)
				continue
			}

			if entry, ok := user.FindCourseProgress(course.ID); ok {
				courses[j].IsLocked = entry.IsLocked
				courses[j].Progress = entry.Progress
				courses[j].Completed = entry.Completed
				courses[j].UnlockDate = entry.UnlockDate
			} else {
				courses[j].IsLocked = DefaultLockState(user, sections, course.ID)
			}
		}

		sectionResponses[i] = dto.SectionResponse{
			ID:          section.ID,
			Language:    section.Language,
			Title:       section.Title,
			Description: section.Description,
			Order:       section.Order,
			Courses:     courses,
		}
	}

	return &dto.SectionListResponse{
		Sections: sectionResponses,
		Total:    len(sectionResponses),
	}, nil
}

// ==================== WORDS ====================

func (svc *ContentService) ListWords(language string) (*dto.WordListResponse, error) {
	words, err := svc.sqlSvc.ListWords(shared.NormalizeLanguage(language))
	if err != nil {
		return nil, err
	}

	responses := make([]dto.WordResponse, len(words))
	for i, word := range words {
		responses[i] = mapWordToResponse(&word)
	}
	return &dto.WordListResponse{Words: responses, Total: len(responses)}, nil
}

func (svc *ContentService) GetWord(wordID string) (*dto.WordResponse, error) {
	word, err := svc.sqlSvc.GetWord(wordID)
	if err != nil {
		return nil, err
	}
	resp := mapWordToResponse(word)
	return &resp, nil
}

func (svc *ContentService) CreateWord(req dto.CreateWordRequest) (*dto.WordResponse, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to generate word id")
	}

	word := &model.Word{
		ID:          id.String(),
		Language:    shared.NormalizeLanguage(req.Language),
		Text:        req.Text,
		Description: req.Description,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := svc.sqlSvc.CreateWord(word); err != nil {
		return nil, err
	}

	resp := mapWordToResponse(word)
	return &resp, nil
}

func (svc *ContentService) DeleteWord(wordID string) error {
	return svc.sqlSvc.DeleteWord(wordID)
}

func mapWordToResponse(word *model.Word) dto.WordResponse {
	return dto.WordResponse{
		ID:           word.ID,
		Language:     word.Language,
		Text:         word.Text,
		Description:  word.Description,
		VideoURL:     word.VideoURL,
		ThumbnailURL: word.ThumbnailURL,
	}
}

// ==================== UNLOCK POLICY ====================

// FindSectionForCourse locates the section containing courseID together with
// the course's index within the section's ordered courses.
func FindSectionForCourse(sections []model.Section, courseID string) (*model.Section, int, error) {
	for i := range sections {
		for j, course := range sections[i].Courses {
			if course.ID == courseID {
				return &sections[i], j, nil
			}
		}
	}
	return nil, 0, shared.NewNotFoundError(fmt.Errorf("course %s not in any section", courseID), "Section not found")
}

// DefaultLockState computes the lock state of a course with no progress entry
// yet: unlocked iff it is the first course of its section or its predecessor
// is completed.
func DefaultLockState(user *model.User, sections []model.Section, courseID string) bool {
	section, idx, err := FindSectionForCourse(sections, courseID)
	if err != nil {
		return true
	}
	if idx == 0 {
		// First course of the first section starts unlocked; later sections
		// start locked until the previous section completes.
		return section.Order != minSectionOrder(sections)
	}

	prev := section.Courses[idx-1]
	if entry, ok := user.FindCourseProgress(prev.ID); ok && entry.Completed {
		return false
	}
	return true
}

func minSectionOrder(sections []model.Section) int {
	if len(sections) == 0 {
		return 0
	}
	min := sections[0].Order
	for _, s := range sections {
		if s.Order < min {
			min = s.Order
		}
	}
	return min
}

// UnlockNext advances the unlock graph after courseID was completed and
// passed. It mutates entries in place and returns the IDs of newly unlocked
// courses. Entries are only ever created or unlocked, never re-locked.
func UnlockNext(user *model.User, sections []model.Section, courseID string, now time.Time) ([]string, error) {
	section, idx, err := FindSectionForCourse(sections, courseID)
	if err != nil {
		return nil, err
	}

	if idx < len(section.Courses)-1 {
		next := section.Courses[idx+1]
		if unlockCourse(user, next.ID, now) {
			return []string{next.ID}, nil
		}
		return nil, nil
	}

	// Last course of the section: the next section opens once every
	// non-premium course here is completed. Premium courses are unlocked by
	// entitlement, not progression, so they don't gate the section.
	for _, course := range section.Courses {
		if course.IsPremium {
			continue
		}
		entry, ok := user.FindCourseProgress(course.ID)
		if !ok || !entry.Completed {
			return nil, nil
		}
	}

	next := nextSection(sections, section.Order)
	if next == nil || len(next.Courses) == 0 {
		return nil, nil
	}
	first := next.Courses[0]
	if unlockCourse(user, first.ID, now) {
		return []string{first.ID}, nil
	}
	return nil, nil
}

func nextSection(sections []model.Section, order int) *model.Section {
	sorted := make([]model.Section, len(sections))
	copy(sorted, sections)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	for i := range sorted {
		if sorted[i].Order == order+1 {
			return &sorted[i]
		}
	}
	return nil
}

// unlockCourse materializes or unlocks the progress entry for courseID,
// reporting whether a locked→unlocked transition happened.
func unlockCourse(user *model.User, courseID string, now time.Time) bool {
	entries := user.GetCourseProgress()
	for i := range entries {
		if entries[i].CourseID != courseID {
			continue
		}
		if !entries[i].IsLocked {
			return false
		}
		entries[i].IsLocked = false
		unlockDate := now
		entries[i].UnlockDate = &unlockDate
		user.SetCourseProgress(entries)
		return true
	}

	unlockDate := now
	entries = append(entries, model.CourseProgressEntry{
		CourseID:   courseID,
		IsLocked:   false,
		UnlockDate: &unlockDate,
	})
	user.SetCourseProgress(entries)
	return true
}
