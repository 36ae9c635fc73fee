package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/signa-learn/signa_api/dto"
	"github.com/signa-learn/signa_api/shared"
)

type QuestHandler struct {
	questSvc QuestServiceInterface
}

func NewQuestHandler(questSvc QuestServiceInterface) *QuestHandler {
	return &QuestHandler{
		questSvc: questSvc,
	}
}

// @Summary List Quests
// @Description List catalog quests visible to the user (type, language and time-window filtered)
// @Tags quests
// @Accept json
// @Produce json
// @Param userId query string true "User ID"
// @Param type query string false "Quest type (daily, friend)"
// @Success 200 {object} shared.Response{data=dto.QuestListResponse}
// @Router /api/v1/quests [get]
func (h *QuestHandler) ListQuests(c *fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		return shared.NewBadRequestError(nil, "userId is required")
	}
	questType := c.Query("type")

	quests, err := h.questSvc.ListQuests(userID, questType)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", quests)
}

// @Summary Complete Quest
// @Description Mark a quest completed for the user
// @Tags quests
// @Accept json
// @Produce json
// @Param questId path string true "Quest ID"
// @Param completeRequest body dto.CompleteQuestRequest true "Completion payload"
// @Success 200 {object} shared.Response{data=dto.CompleteQuestResponse}
// @Router /api/v1/quests/{questId}/complete [post]
func (h *QuestHandler) CompleteQuest(c *fiber.Ctx) error {
	questID := c.Params("questId")

	var req dto.CompleteQuestRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	result, err := h.questSvc.CompleteQuest(questID, req.UserID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Quest completed", result)
}

// @Summary Collect Quest Reward
// @Description Collect the reward of a completed quest, exactly once
// @Tags quests
// @Accept json
// @Produce json
// @Param questId path string true "Quest ID"
// @Param collectRequest body dto.CollectRewardRequest true "Collection payload"
// @Success 200 {object} shared.Response{data=dto.CollectRewardResponse}
// @Router /api/v1/quests/{questId}/collect-reward [post]
func (h *QuestHandler) CollectReward(c *fiber.Ctx) error {
	questID := c.Params("questId")

	var req dto.CollectRewardRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	result, err := h.questSvc.CollectReward(questID, req.UserID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Reward collected", result)
}
