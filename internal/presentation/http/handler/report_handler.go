package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sulayman101/puntrms/internal/application/service"
	"github.com/sulayman101/puntrms/internal/domain/report"
	"github.com/sulayman101/puntrms/internal/presentation/http/dto/response"
)

// ReportHandler handles report and export HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// parseQuery builds a report query from the request's query string. The
// same parameters drive the JSON view and every export format.
func (h *ReportHandler) parseQuery(c *gin.Context) (*service.ReportQuery, bool) {
	mode, err := report.ParseMode(c.Query("mode"))
	if err != nil {
		response.BadRequest(c, "Invalid report mode")
		return nil, false
	}
	status, err := report.ParseStatusFilter(c.Query("status"))
	if err != nil {
		response.BadRequest(c, "Invalid status filter")
		return nil, false
	}

	q := &service.ReportQuery{Mode: mode, Status: status}

	if startStr := c.Query("start_date"); startStr != "" {
		start, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			response.BadRequest(c, "Invalid start date, use YYYY-MM-DD")
			return nil, false
		}
		q.Start = &start
	}
	if endStr := c.Query("end_date"); endStr != "" {
		end, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			response.BadRequest(c, "Invalid end date, use YYYY-MM-DD")
			return nil, false
		}
		q.End = &end
	}

	return q, true
}

// Get handles the JSON report view
func (h *ReportHandler) Get(c *gin.Context) {
	q, ok := h.parseQuery(c)
	if !ok {
		return
	}

	r, err := h.reportService.Build(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report generated successfully", r)
}

// ExportCSV handles the CSV download
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	q, ok := h.parseQuery(c)
	if !ok {
		return
	}

	csvText, err := h.reportService.CSV(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="report.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csvText))
}

// ExportXLSX handles the Excel download
func (h *ReportHandler) ExportXLSX(c *gin.Context) {
	q, ok := h.parseQuery(c)
	if !ok {
		return
	}

	data, err := h.reportService.XLSX(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="report.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// Printable handles the printer-friendly HTML view
func (h *ReportHandler) Printable(c *gin.Context) {
	q, ok := h.parseQuery(c)
	if !ok {
		return
	}

	html, err := h.reportService.Printable(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// Summary handles the dashboard summary view
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.reportService.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Summary generated successfully", summary)
}
