package handlers

import (
	"github.com/civicwatch-app/backend/internal/dto"
	"github.com/civicwatch-app/backend/internal/middleware"
	"github.com/civicwatch-app/backend/internal/models"
	"github.com/civicwatch-app/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ModerationHandler struct {
	moderationService *services.ModerationService
}

func NewModerationHandler(moderationService *services.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService}
}

func (h *ModerationHandler) FileAbuseReport(c *fiber.Ctx) error {
	reporterID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.FileAbuseReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	abuse, err := h.moderationService.FileAbuseReport(reporterID, req.TargetType, req.TargetID, req.Reason, req.IsAnonymous)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(abuse)
}

func (h *ModerationHandler) Assign(c *fiber.Ctx) error {
	actorID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}

	if err := h.moderationService.Assign(actorID, reportID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Report assigned"})
}

func (h *ModerationHandler) Resolve(c *fiber.Ctx) error {
	actorID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}

	var req dto.ResolveRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.moderationService.Resolve(actorID, reportID, req.Note); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Report resolved"})
}

// ReportedIssues lists issue reports carrying abuse reports. Admin only;
// reporter identities are fully visible here.
func (h *ModerationHandler) ReportedIssues(c *fiber.Ctx) error {
	reports, err := h.moderationService.ReportedIssues()
	if err != nil {
		return serviceError(c, err)
	}

	resp := make([]dto.IssueReportResponse, len(reports))
	for i := range reports {
		resp[i] = dto.NewIssueReportResponse(&reports[i], models.RoleAdmin)
	}
	return c.JSON(resp)
}

func (h *ModerationHandler) ReportedComments(c *fiber.Ctx) error {
	comments, err := h.moderationService.ReportedComments()
	if err != nil {
		return serviceError(c, err)
	}

	resp := make([]dto.CommentResponse, len(comments))
	for i := range comments {
		resp[i] = dto.NewCommentResponse(&comments[i], models.RoleAdmin)
	}
	return c.JSON(resp)
}
