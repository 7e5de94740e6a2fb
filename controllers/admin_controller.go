package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"backend/services"
	"backend/utils"
)

type AdminController struct {
	Orders *services.OrderService
	Stats  *services.StatsService
}

func NewAdminController(orders *services.OrderService, stats *services.StatsService) *AdminController {
	return &AdminController{Orders: orders, Stats: stats}
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// POST /admin/order/:id/status
func (ac *AdminController) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	if err := ac.Orders.UpdateStatus(uint(id), utils.CurrentRole(c), req.Status); err != nil {
		switch {
		case errors.Is(err, services.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		case errors.Is(err, services.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		case errors.Is(err, services.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		default:
			log.Printf("update order status failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GET /api/admin/orders/update?status=&date=YYYY-MM-DD
func (ac *AdminController) ListOrders(c *gin.Context) {
	status := c.DefaultQuery("status", "all")
	date := c.Query("date")

	orders, err := ac.Orders.ListFiltered(status, date, 50)
	if err != nil {
		log.Printf("list admin orders failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GET /api/admin/stats
func (ac *AdminController) GetStats(c *gin.Context) {
	stats, err := ac.Stats.Overview()
	if err != nil {
		log.Printf("load stats failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
