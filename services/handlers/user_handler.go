package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/signa-learn/signa_api/dto"
	"github.com/signa-learn/signa_api/shared"
)

type UserHandler struct {
	userSvc         UserServiceInterface
	notificationSvc NotificationServiceInterface
}

func NewUserHandler(userSvc UserServiceInterface, notificationSvc NotificationServiceInterface) *UserHandler {
	return &UserHandler{
		userSvc:         userSvc,
		notificationSvc: notificationSvc,
	}
}

// @Summary Create User
// @Description Register a new user with an empty progression aggregate
// @Tags users
// @Accept json
// @Produce json
// @Param createRequest body dto.CreateUserRequest true "User payload"
// @Success 201 {object} shared.Response{data=dto.UserResponse}
// @Router /api/v1/users [post]
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	user, err := h.userSvc.CreateUser(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "User created", user)
}

// @Summary Get User
// @Description Fetch a user with their full progression state
// @Tags users
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} shared.Response{data=dto.UserResponse}
// @Router /api/v1/users/{userId} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	userID := c.Params("userId")

	user, err := h.userSvc.GetUser(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", user)
}

// @Summary Update User
// @Description Update user profile fields
// @Tags users
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param updateRequest body dto.UpdateUserRequest true "Update payload"
// @Success 200 {object} shared.Response{data=dto.UserResponse}
// @Router /api/v1/users/{userId} [put]
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	user, err := h.userSvc.UpdateUser(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "User updated", user)
}

// @Summary Delete User
// @Description Delete a user and their notifications
// @Tags users
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} shared.Response
// @Router /api/v1/users/{userId} [delete]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	userID := c.Params("userId")

	if err := h.userSvc.DeleteUser(userID); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "User deleted", nil)
}

// @Summary List Notifications
// @Description List a user's notifications, newest first
// @Tags notifications
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param limit query int false "Max rows (default 50)"
// @Success 200 {object} shared.Response{data=dto.NotificationListResponse}
// @Router /api/v1/users/{userId}/notifications [get]
func (h *UserHandler) ListNotifications(c *fiber.Ctx) error {
	userID := c.Params("userId")

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return shared.NewBadRequestError(err, "limit must be a positive integer")
		}
		limit = parsed
	}

	notifications, err := h.notificationSvc.List(userID, limit)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", notifications)
}

// @Summary Mark Notifications Read
// @Description Mark all of a user's notifications as read and reset the unread counter
// @Tags notifications
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} shared.Response
// @Router /api/v1/users/{userId}/notifications/read [post]
func (h *UserHandler) MarkNotificationsRead(c *fiber.Ctx) error {
	userID := c.Params("userId")

	if err := h.notificationSvc.MarkAllRead(userID); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Notifications marked read", nil)
}
