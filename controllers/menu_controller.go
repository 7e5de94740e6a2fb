package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/pkg/resp"
	"backend/services"
)

type MenuController struct {
	Service *services.CatalogService
}

func NewMenuController(service *services.CatalogService) *MenuController {
	return &MenuController{Service: service}
}

// GET /api/menu and GET /api/menu/update
//
// Returns the catalog grouped by category as a bare array; this is the
// contract the ordering frontend polls.
func (mc *MenuController) Menu(c *gin.Context) {
	groups, err := mc.Service.Grouped()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}
