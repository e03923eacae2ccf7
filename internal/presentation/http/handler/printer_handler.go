package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sulayman101/puntrms/internal/application/service"
	"github.com/sulayman101/puntrms/internal/presentation/http/dto/response"
)

// PrinterHandler handles receipt printer HTTP requests
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// Status reports whether the printer is reachable
func (h *PrinterHandler) Status(c *gin.Context) {
	response.OK(c, "Printer status", h.printerService.Status())
}

// PrintReceipt prints an order receipt
func (h *PrinterHandler) PrintReceipt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.printerService.PrintOrderReceipt(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt sent to printer", nil)
}

// PrintTest prints a test slip
func (h *PrinterHandler) PrintTest(c *gin.Context) {
	if err := h.printerService.PrintTest(); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Test slip sent to printer", nil)
}
