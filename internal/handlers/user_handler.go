package handlers

import (
	"github.com/civicwatch-app/backend/internal/dto"
	"github.com/civicwatch-app/backend/internal/middleware"
	"github.com/civicwatch-app/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UserHandler struct {
	userService       *services.UserService
	moderationService *services.ModerationService
}

func NewUserHandler(userService *services.UserService, moderationService *services.ModerationService) *UserHandler {
	return &UserHandler{userService: userService, moderationService: moderationService}
}

// List returns every user; secrets never serialize.
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userService.List()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(users)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	user, err := h.userService.Get(id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.userService.UpdateProfile(userID, &req); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Profile updated"})
}

func (h *UserHandler) ToggleFollow(c *fiber.Ctx) error {
	actorID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	if err := h.userService.ToggleFollow(actorID, targetID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Follow toggled"})
}

func (h *UserHandler) SetRole(c *fiber.Ctx) error {
	actorID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	var req dto.SetRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.userService.SetRole(actorID, targetID, req.Role); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Role updated"})
}

func (h *UserHandler) Block(c *fiber.Ctx) error {
	actorID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.BlockUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	blockID, err := h.moderationService.BlockUser(actorID, req.UserID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.BlockUserResponse{BlockID: blockID})
}

func (h *UserHandler) RegenerateAPIKey(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	key, err := h.userService.RegenerateAPIKey(userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.APIKeyResponse{APIKey: key})
}
