// Package menu serves the catalog. Reads are public; mutations need an admin.
package menu

import (
	"fmt"
	"net/http"

	"foodorder/api/ctxutil"
	"foodorder/api/middleware"
	"foodorder/api/response"
	menuapp "foodorder/application/menu"
	"foodorder/domain/menu"
	"foodorder/domain/user"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	menuService *menuapp.ApplicationService
}

func NewController(menuService *menuapp.ApplicationService) *Controller {
	return &Controller{menuService: menuService}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	menuGroup := router.Group("/menus")
	{
		menuGroup.GET("", c.ListMenus)
		menuGroup.GET("/:id", c.GetMenu)

		admin := menuGroup.Group("", auth, middleware.RequireRole(user.RoleAdmin))
		admin.POST("", c.CreateMenu)
		admin.PUT("/:id", c.UpdateMenu)
		admin.DELETE("/:id", c.DeleteMenu)
	}
}

// ListMenus GET /api/v1/menus?maxPrice=&sort=&page[size]=&page[number]=
func (c *Controller) ListMenus(ctx *gin.Context) {
	raw := menu.RawQuery{
		MaxPrice:   ctx.Query("maxPrice"),
		Sort:       ctx.Query("sort"),
		PageSize:   ctx.Query("page[size]"),
		PageNumber: ctx.Query("page[number]"),
	}
	data, err := c.menuService.List(ctxutil.WithRequestID(ctx), raw)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, data, "Successfully retrieved menus")
}

// GetMenu GET /api/v1/menus/:id
func (c *Controller) GetMenu(ctx *gin.Context) {
	id, err := ctxutil.ParamID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	m, err := c.menuService.Get(ctxutil.WithRequestID(ctx), id)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, m, "Successfully retrieved menu")
}

// CreateMenu POST /api/v1/menus
func (c *Controller) CreateMenu(ctx *gin.Context) {
	var req menuapp.CreateMenuRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}
	m, err := c.menuService.Create(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, m, fmt.Sprintf("Successfully added %s menu!", m.Name))
}

// UpdateMenu PUT /api/v1/menus/:id
func (c *Controller) UpdateMenu(ctx *gin.Context) {
	id, err := ctxutil.ParamID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	var req menuapp.UpdateMenuRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}
	m, err := c.menuService.Update(ctxutil.WithRequestID(ctx), id, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, m, fmt.Sprintf("%s menu is successfully updated", m.Name))
}

// DeleteMenu DELETE /api/v1/menus/:id
func (c *Controller) DeleteMenu(ctx *gin.Context) {
	id, err := ctxutil.ParamID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	m, err := c.menuService.Delete(ctxutil.WithRequestID(ctx), id)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, nil, fmt.Sprintf("Successfully removed %s menu.", m.Name))
}
