package handlers

import (
	"errors"
	"strconv"
	"time"

	"phd-timeoff/internal/core/domain"
	"phd-timeoff/internal/core/services"
	"phd-timeoff/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles document generation and reporting endpoints
type ReportHandler struct {
	reportService *services.ReportService
	authService   *services.AuthService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService, authService *services.AuthService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		authService:   authService,
	}
}

// GenerateDeanDocument handles Dean AP document generation (Admin only)
// @Summary Generate Dean AP document
// @Description Produce the printable Dean AP approval document for a dean-pending application (Admin only)
// @Tags Reports
// @Accept json
// @Produce plain
// @Security BearerAuth
// @Param id path string true "Leave ID"
// @Success 200 {string} string
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /reports/dean-document/{id} [get]
func (h *ReportHandler) GenerateDeanDocument(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c, h.authService)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	leaveID := c.Params("id")
	doc, err := h.reportService.GenerateDeanDocument(actor, leaveID)
	if err != nil {
		return leaveError(c, err, "Failed to generate dean document")
	}

	c.Set("Content-Type", "text/plain; charset=utf-8")
	c.Set("Content-Disposition", `attachment; filename="`+h.reportService.DeanDocumentFilename(leaveID)+`"`)
	return c.SendString(doc)
}

// GetMonthlyReport handles the monthly leave report (Admin only)
// @Summary Monthly leave report
// @Description Get per-student leave summaries for leaves overlapping the given month (Admin only)
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param month query int true "Month (1-12)"
// @Param year query int true "Year"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /reports/monthly [get]
func (h *ReportHandler) GetMonthlyReport(c *fiber.Ctx) error {
	actor, err := actorFromCtx(c, h.authService)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	now := time.Now()
	month, err := strconv.Atoi(c.Query("month", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		return response.BadRequest(c, "Invalid month, must be 1-12")
	}
	year, err := strconv.Atoi(c.Query("year", strconv.Itoa(now.Year())))
	if err != nil || year < 2000 {
		return response.BadRequest(c, "Invalid year")
	}

	report, err := h.reportService.GenerateMonthlyReport(actor, time.Month(month), year)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return response.Forbidden(c, "You don't have permission to perform this action")
		}
		return response.InternalServerError(c, "Failed to generate monthly report")
	}

	return response.Success(c, "Monthly report generated successfully", fiber.Map{
		"report": report,
	})
}
