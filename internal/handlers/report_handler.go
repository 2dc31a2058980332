package handlers

import (
	"github.com/civicwatch-app/backend/internal/dto"
	"github.com/civicwatch-app/backend/internal/middleware"
	"github.com/civicwatch-app/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportHandler struct {
	reportService *services.ReportService
	db            *gorm.DB
}

func NewReportHandler(reportService *services.ReportService, db *gorm.DB) *ReportHandler {
	return &ReportHandler{reportService: reportService, db: db}
}

func (h *ReportHandler) Submit(c *fiber.Ctx) error {
	authorID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.SubmitReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	report, err := h.reportService.Submit(authorID, &req)
	if err != nil {
		return serviceError(c, err)
	}

	viewerRole := middleware.ViewerRole(c, h.db)
	return c.Status(fiber.StatusCreated).JSON(dto.NewIssueReportResponse(report, viewerRole))
}

// List returns all reports newest-first, shaped for the caller's role.
func (h *ReportHandler) List(c *fiber.Ctx) error {
	reports, err := h.reportService.List()
	if err != nil {
		return serviceError(c, err)
	}

	viewerRole := middleware.ViewerRole(c, h.db)
	resp := make([]dto.IssueReportResponse, len(reports))
	for i := range reports {
		resp[i] = dto.NewIssueReportResponse(&reports[i], viewerRole)
	}
	return c.JSON(resp)
}

func (h *ReportHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}

	report, err := h.reportService.Get(id)
	if err != nil {
		return serviceError(c, err)
	}

	viewerRole := middleware.ViewerRole(c, h.db)
	return c.JSON(dto.NewIssueReportResponse(report, viewerRole))
}

func (h *ReportHandler) AddComment(c *fiber.Ctx) error {
	authorID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}

	var req dto.AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	comment, err := h.reportService.AddComment(authorID, reportID, req.Text)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *ReportHandler) ToggleReaction(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.ToggleReactionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.reportService.ToggleReaction(userID, req.TargetType, req.TargetID, req.Type); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Reaction toggled"})
}

// SuggestTags proxies the enrichment gateway; an unconfigured or failing
// gateway yields an empty list, never an error.
func (h *ReportHandler) SuggestTags(c *fiber.Ctx) error {
	var req dto.SuggestTagsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	tags := h.reportService.SuggestTags(c.Context(), req.Text)
	return c.JSON(dto.SuggestTagsResponse{Tags: tags})
}
