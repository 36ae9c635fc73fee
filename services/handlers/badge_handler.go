package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/signa-learn/signa_api/dto"
	"github.com/signa-learn/signa_api/shared"
)

type BadgeHandler struct {
	badgeSvc BadgeServiceInterface
}

func NewBadgeHandler(badgeSvc BadgeServiceInterface) *BadgeHandler {
	return &BadgeHandler{
		badgeSvc: badgeSvc,
	}
}

// @Summary List Badges
// @Description List the badge catalog with the user's earned dates
// @Tags badges
// @Accept json
// @Produce json
// @Param userId query string false "User ID for earned-date overlay"
// @Success 200 {object} shared.Response{data=dto.BadgeListResponse}
// @Router /api/v1/badges [get]
func (h *BadgeHandler) ListBadges(c *fiber.Ctx) error {
	badges, err := h.badgeSvc.ListBadges(c.Query("userId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", badges)
}

// @Summary List User Badges
// @Description List the badge catalog annotated with the user's earned dates
// @Tags badges
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} shared.Response{data=dto.BadgeListResponse}
// @Router /api/v1/users/{userId}/badges [get]
func (h *BadgeHandler) ListUserBadges(c *fiber.Ctx) error {
	badges, err := h.badgeSvc.ListBadges(c.Params("userId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", badges)
}

// @Summary Check Badges
// @Description Evaluate badge rules for the user after a progression event
// @Tags badges
// @Accept json
// @Produce json
// @Param checkRequest body dto.CheckBadgesRequest true "Event payload"
// @Success 200 {object} shared.Response{data=dto.CheckBadgesResponse}
// @Router /api/v1/badges/check [post]
func (h *BadgeHandler) CheckBadges(c *fiber.Ctx) error {
	var req dto.CheckBadgesRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	result, err := h.badgeSvc.CheckAndAward(req.UserID, req.EventType)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Badges evaluated", result)
}
