package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/signa-learn/signa_api/dto"
	"github.com/signa-learn/signa_api/shared"
)

type ProgressionHandler struct {
	progressionSvc ProgressionServiceInterface
}

func NewProgressionHandler(progressionSvc ProgressionServiceInterface) *ProgressionHandler {
	return &ProgressionHandler{
		progressionSvc: progressionSvc,
	}
}

// @Summary Finish Course
// @Description Record a course completion and run the progression engine (streak, unlocks, quests, badges)
// @Tags courses
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Param finishRequest body dto.FinishCourseRequest true "Completion payload"
// @Success 200 {object} shared.Response{data=dto.FinishCourseResponse}
// @Router /api/v1/courses/{courseId}/finish [post]
func (h *ProgressionHandler) FinishCourse(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	var req dto.FinishCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	result, err := h.progressionSvc.ApplyCourseCompletion(courseID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Course completion recorded", result)
}

// @Summary Update Course Progress
// @Description Update the caller's percent progress on a course without triggering rewards
// @Tags courses
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Param progressRequest body dto.UpdateProgressRequest true "Progress payload"
// @Success 200 {object} shared.Response{data=dto.UpdateProgressResponse}
// @Router /api/v1/courses/{courseId}/progress [post]
func (h *ProgressionHandler) UpdateProgress(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	var req dto.UpdateProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	result, err := h.progressionSvc.UpdateCourseProgress(courseID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Progress updated", result)
}
