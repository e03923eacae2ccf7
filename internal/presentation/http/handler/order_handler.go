package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sulayman101/puntrms/internal/application/service"
	"github.com/sulayman101/puntrms/internal/domain/enum"
	"github.com/sulayman101/puntrms/internal/domain/repository"
	"github.com/sulayman101/puntrms/internal/presentation/http/dto/request"
	"github.com/sulayman101/puntrms/internal/presentation/http/dto/response"
	"github.com/sulayman101/puntrms/pkg/pagination"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService      *service.OrderService
	settlementService *service.SettlementService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, settlementService *service.SettlementService) *OrderHandler {
	return &OrderHandler{
		orderService:      orderService,
		settlementService: settlementService,
	}
}

// Create handles creating a new pending order
func (h *OrderHandler) Create(c *gin.Context) {
	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateOrderInput{
		ServedBy: req.ServedBy,
		Lines:    make([]service.OrderLineInput, 0, len(req.Lines)),
	}
	for _, line := range req.Lines {
		input.Lines = append(input.Lines, service.OrderLineInput{
			ItemID: line.ItemID,
			Qty:    line.Qty,
		})
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created successfully", order)
}

// Get handles retrieving a single order with its running total
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, total, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", gin.H{
		"order": order,
		"total": total,
	})
}

// GetByNumber handles looking an order up by its display label
func (h *OrderHandler) GetByNumber(c *gin.Context) {
	order, total, err := h.orderService.GetOrderByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", gin.H{
		"order": order,
		"total": total,
	})
}

// List handles listing orders with status and date filters
func (h *OrderHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.OrderFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
	}
	params.Pagination.Validate()

	if statusStr := c.Query("status"); statusStr != "" {
		status, err := enum.ParseOrderStatus(statusStr)
		if err != nil {
			response.BadRequest(c, "Invalid status filter")
			return
		}
		params.Status = &status
	}

	if servedByStr := c.Query("served_by"); servedByStr != "" {
		if servedBy, err := uuid.Parse(servedByStr); err == nil {
			params.ServedBy = &servedBy
		}
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}
	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

// Settle moves an order between settlement statuses
func (h *OrderHandler) Settle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	from, err := enum.ParseOrderStatus(req.From)
	if err != nil {
		response.BadRequest(c, "Invalid from status")
		return
	}
	to, err := enum.ParseOrderStatus(req.To)
	if err != nil {
		response.BadRequest(c, "Invalid to status")
		return
	}

	actor := GetActor(c)
	if actor == nil {
		response.Unauthorized(c, "Staff not authenticated")
		return
	}

	order, err := h.settlementService.SetStatus(c.Request.Context(), &service.SettleInput{
		OrderID:        id,
		From:           from,
		To:             to,
		Actor:          *actor,
		LoanCustomerID: req.LoanCustomerID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order settled successfully", order)
}
