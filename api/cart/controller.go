// Package cart serves the customer's open cart.
package cart

import (
	"fmt"
	"net/http"

	"foodorder/api/ctxutil"
	"foodorder/api/middleware"
	"foodorder/api/response"
	cartapp "foodorder/application/cart"
	"foodorder/domain/user"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	cartService *cartapp.ApplicationService
}

func NewController(cartService *cartapp.ApplicationService) *Controller {
	return &Controller{cartService: cartService}
}

// RegisterRoutes mounts the cart routes behind auth for customers.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	cartGroup := router.Group("/carts", auth, middleware.RequireRole(user.RoleCustomer))
	{
		cartGroup.GET("", c.ListCart)
		cartGroup.POST("/:id", c.AddItem)
		cartGroup.PUT("/:id", c.UpdateItem)
		cartGroup.DELETE("/:id", c.DeleteItem)
	}
}

// ListCart GET /api/v1/carts
func (c *Controller) ListCart(ctx *gin.Context) {
	id := ctxutil.Identity(ctx)
	data, err := c.cartService.List(ctxutil.WithRequestID(ctx), id.ID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, data, "Successfully retrieved your cart")
}

// AddItem POST /api/v1/carts/:id where id is the menu id
func (c *Controller) AddItem(ctx *gin.Context) {
	menuID, err := ctxutil.ParamID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	var req cartapp.AddItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}
	req.MenuID = menuID

	result, err := c.cartService.AddItem(ctxutil.WithRequestID(ctx), ctxutil.Identity(ctx).ID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, result,
		fmt.Sprintf("Successfully added %d %s to your cart.", result.Quantity, result.MenuName))
}

// UpdateItem PUT /api/v1/carts/:id where id is the cart item id
func (c *Controller) UpdateItem(ctx *gin.Context) {
	itemID, err := ctxutil.ParamID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	var req cartapp.UpdateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		response.HandleError(ctx, err, "Quantity is required!", http.StatusBadRequest)
		return
	}

	result, err := c.cartService.UpdateItem(ctxutil.WithRequestID(ctx), ctxutil.Identity(ctx).ID, itemID, *req.Quantity)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	var message string
	switch result.Outcome {
	case cartapp.Unchanged:
		message = fmt.Sprintf("No changes made to the quantity of %s item.", result.MenuName)
	case cartapp.Removed:
		message = fmt.Sprintf("Successfully deleted %s item from cart", result.MenuName)
	default:
		message = fmt.Sprintf("Successfully modified the quantity of %s item to %d.", result.MenuName, result.Quantity)
	}
	response.HandleSuccess(ctx, result.Cart, message)
}

// DeleteItem DELETE /api/v1/carts/:id where id is the cart item id
func (c *Controller) DeleteItem(ctx *gin.Context) {
	itemID, err := ctxutil.ParamID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	name, err := c.cartService.DeleteItem(ctxutil.WithRequestID(ctx), ctxutil.Identity(ctx).ID, itemID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, nil, fmt.Sprintf("Successfully deleted %s item from cart", name))
}
