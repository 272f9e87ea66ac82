package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Gunvolt24/orders_api/internal/domain"
	"github.com/Gunvolt24/orders_api/internal/ports"
	"github.com/Gunvolt24/orders_api/pkg/validate"
	"github.com/gin-gonic/gin"
)

// Handler — HTTP-обработчики поверх прикладного сервиса заказов.
type Handler struct {
	service ports.OrderService
	log     ports.Logger
}

func NewHandler(service ports.OrderService, log ports.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// serviceInfo — GET /: метаданные сервиса и карта эндпоинтов.
func (h *Handler) serviceInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "orders API is running",
		"version": "1.0.0",
		"endpoints": gin.H{
			"create": "POST /order",
			"get":    "GET /order/:orderId",
			"list":   "GET /order/list",
			"update": "PUT /order/:orderId",
			"delete": "DELETE /order/:orderId",
		},
	})
}

// createOrder — POST /order.
func (h *Handler) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	if !req.hasRequired() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "incomplete order data: orderId, totalValue and items are required",
		})
		return
	}
	if len(*req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order must have at least one item"})
		return
	}

	order, err := h.service.CreateOrder(c.Request.Context(), req.toDomain())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateOrder):
			c.JSON(http.StatusBadRequest, gin.H{"error": "order with this orderId already exists"})
		case errors.Is(err, validate.ErrInvalidOrder):
			c.JSON(http.StatusBadRequest, gin.H{"error": "order validation failed", "message": err.Error()})
		default:
			h.log.Errorf(c.Request.Context(), "CreateOrder failed err=%v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order", "message": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, order)
}

// getOrder — GET /order/:orderId.
func (h *Handler) getOrder(c *gin.Context) {
	orderID := c.Param("orderId")

	order, err := h.service.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		h.log.Errorf(c.Request.Context(), "GetOrder failed order_id=%s err=%v", orderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch order", "message": err.Error()})
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// listOrders — GET /order/list: все заказы, новые первыми.
func (h *Handler) listOrders(c *gin.Context) {
	orders, err := h.service.ListOrders(c.Request.Context())
	if err != nil {
		h.log.Errorf(c.Request.Context(), "ListOrders failed err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, orders)
}

// updateOrder — PUT /order/:orderId: частичное обновление.
func (h *Handler) updateOrder(c *gin.Context) {
	orderID := c.Param("orderId")

	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	patch := domain.OrderPatch{TotalValue: req.TotalValue}

	// items: отсутствие поля — не трогаем; null или не-массив — ошибка типа.
	if len(req.Items) > 0 {
		var payload []itemPayload
		if err := json.Unmarshal(req.Items, &payload); err != nil || string(req.Items) == "null" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "items must be an array"})
			return
		}
		items := mapItems(payload)
		patch.Items = &items
	}

	order, err := h.service.UpdateOrder(c.Request.Context(), orderID, patch)
	if err != nil {
		if errors.Is(err, validate.ErrInvalidOrder) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order validation failed", "message": err.Error()})
			return
		}
		h.log.Errorf(c.Request.Context(), "UpdateOrder failed order_id=%s err=%v", orderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order", "message": err.Error()})
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// deleteOrder — DELETE /order/:orderId: подтверждение содержит удалённый заказ.
func (h *Handler) deleteOrder(c *gin.Context) {
	orderID := c.Param("orderId")

	order, err := h.service.DeleteOrder(c.Request.Context(), orderID)
	if err != nil {
		h.log.Errorf(c.Request.Context(), "DeleteOrder failed order_id=%s err=%v", orderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete order", "message": err.Error()})
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "order deleted successfully",
		"deletedOrder": order,
	})
}

// noRoute — JSON 404 для любого несуществующего маршрута.
func (h *Handler) noRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"error":   "route not found",
		"message": fmt.Sprintf("route %s %s does not exist", c.Request.Method, c.Request.URL.Path),
	})
}
