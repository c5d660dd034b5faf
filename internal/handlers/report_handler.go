package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jakescarcare/valet-api/internal/httperr"
	"github.com/jakescarcare/valet-api/internal/usecase/report"
)

// ReportHandler serves the admin earnings calendar.
type ReportHandler struct {
	earnings *report.EarningsReport
}

func NewReportHandler(earnings *report.EarningsReport) *ReportHandler {
	return &ReportHandler{earnings: earnings}
}

func (h *ReportHandler) Calendar(c *gin.Context) {
	rep, err := h.earnings.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_build_report", "Could not build the earnings report.")
		return
	}

	c.JSON(http.StatusOK, rep)
}
