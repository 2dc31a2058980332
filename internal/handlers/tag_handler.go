package handlers

import (
	"github.com/civicwatch-app/backend/internal/middleware"
	"github.com/civicwatch-app/backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type TagHandler struct {
	tagService *services.TagService
}

func NewTagHandler(tagService *services.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

func (h *TagHandler) List(c *fiber.Ctx) error {
	tags, err := h.tagService.List()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"tags": tags})
}

type tagRequest struct {
	Name string `json:"name"`
}

func (h *TagHandler) Add(c *fiber.Ctx) error {
	actorID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req tagRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.tagService.Add(actorID, req.Name); err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Tag added"})
}

func (h *TagHandler) Remove(c *fiber.Ctx) error {
	actorID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	// Tag names carry a '#' so they travel in the body, not the path.
	var req tagRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.tagService.Remove(actorID, req.Name); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Tag removed"})
}
