package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sulayman101/puntrms/internal/application/service"
	"github.com/sulayman101/puntrms/internal/presentation/http/dto/request"
	"github.com/sulayman101/puntrms/internal/presentation/http/dto/response"
	"github.com/sulayman101/puntrms/pkg/pagination"
)

// ItemHandler handles menu item HTTP requests
type ItemHandler struct {
	itemService *service.ItemService
}

// NewItemHandler creates a new item handler
func NewItemHandler(itemService *service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

func itemInput(req *request.ItemRequest) (*service.ItemInput, bool) {
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return nil, false
	}
	return &service.ItemInput{
		Name:  req.Name,
		Price: price,
		Stock: req.Stock,
	}, true
}

// Create handles creating a menu item
func (h *ItemHandler) Create(c *gin.Context) {
	var req request.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	input, ok := itemInput(&req)
	if !ok {
		response.BadRequest(c, "Invalid price")
		return
	}

	item, err := h.itemService.CreateItem(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Item created successfully", item)
}

// Get handles retrieving a single menu item
func (h *ItemHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	item, err := h.itemService.GetItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item retrieved successfully", item)
}

// List handles listing menu items
func (h *ItemHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{Page: page, PerPage: perPage}
	params.Validate()

	result, err := h.itemService.ListItems(c.Request.Context(), params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Items retrieved successfully", result)
}

// Update handles editing a menu item
func (h *ItemHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	var req request.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	input, ok := itemInput(&req)
	if !ok {
		response.BadRequest(c, "Invalid price")
		return
	}

	item, err := h.itemService.UpdateItem(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item updated successfully", item)
}

// Delete handles removing a menu item
func (h *ItemHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	if err := h.itemService.DeleteItem(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item deleted successfully", nil)
}
