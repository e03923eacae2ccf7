package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sulayman101/puntrms/internal/application/service"
	"github.com/sulayman101/puntrms/internal/presentation/http/dto/request"
	"github.com/sulayman101/puntrms/internal/presentation/http/dto/response"
	"github.com/sulayman101/puntrms/pkg/pagination"
)

// StaffHandler handles staff management HTTP requests
type StaffHandler struct {
	staffService *service.StaffService
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(staffService *service.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

// Create handles registering a staff member
func (h *StaffHandler) Create(c *gin.Context) {
	var req request.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	staff, err := h.staffService.CreateStaff(c.Request.Context(), &service.CreateStaffInput{
		Name:  req.Name,
		Phone: req.Phone,
		PIN:   req.PIN,
		Role:  req.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Staff created successfully", staff)
}

// Get handles retrieving a staff member
func (h *StaffHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid staff ID")
		return
	}

	staff, err := h.staffService.GetStaff(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Staff retrieved successfully", staff)
}

// List handles listing staff members
func (h *StaffHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{Page: page, PerPage: perPage}
	params.Validate()

	result, err := h.staffService.ListStaff(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Staff retrieved successfully", result)
}

// ResetPIN handles replacing a staff member's PIN
func (h *StaffHandler) ResetPIN(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid staff ID")
		return
	}

	var req request.ResetPINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.staffService.ResetPIN(c.Request.Context(), id, req.PIN); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "PIN reset successfully", nil)
}
