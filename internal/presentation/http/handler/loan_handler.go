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

// LoanHandler handles loan customer and ledger HTTP requests
type LoanHandler struct {
	loanService *service.LoanService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *service.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// CreateCustomer handles registering a loan customer
func (h *LoanHandler) CreateCustomer(c *gin.Context) {
	var req request.LoanCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.loanService.CreateCustomer(c.Request.Context(), req.Name, req.Phone)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Loan customer created successfully", customer)
}

// GetCustomer handles retrieving a customer with entries and total debt
func (h *LoanHandler) GetCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, total, err := h.loanService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	entries, err := h.loanService.ListEntries(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Loan customer retrieved successfully", gin.H{
		"customer": customer,
		"entries":  entries,
		"total":    total,
	})
}

// ListCustomers handles listing loan customers
func (h *LoanHandler) ListCustomers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{Page: page, PerPage: perPage}
	params.Validate()

	result, err := h.loanService.ListCustomers(c.Request.Context(), params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Loan customers retrieved successfully", result)
}
