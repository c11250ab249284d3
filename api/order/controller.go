/*
Package order - Order API controller

Bad path parameters return 400; business errors go through response.HandleAppError,
which maps them to a status code.
*/
package order

import (
	"foodorder/api/ctxutil"
	"foodorder/api/middleware"
	"foodorder/api/response"
	orderapp "foodorder/application/order"
	"foodorder/domain/user"

	"github.com/gin-gonic/gin"
)

// Controller Order controller
type Controller struct {
	orderService *orderapp.ApplicationService
}

// NewController Create order controller
func NewController(orderService *orderapp.ApplicationService) *Controller {
	return &Controller{
		orderService: orderService,
	}
}

// RegisterRoutes Register order routes
func (c *Controller) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	orderGroup := router.Group("/orders", auth, middleware.RequireRole(user.RoleCustomer))
	{
		orderGroup.GET("", c.ListOrders)
		orderGroup.POST("/:id", c.Checkout)
	}
}

// Checkout Check out a cart and create the order
// POST /api/v1/orders/:id where id is the cart id
func (c *Controller) Checkout(ctx *gin.Context) {
	cartID, err := ctxutil.ParamID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	if _, err := c.orderService.Checkout(ctxutil.WithRequestID(ctx), ctxutil.Identity(ctx).ID, cartID); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, nil, "The cart has been successfully checked out, and an order has been created.")
}

// ListOrders List the current customer's orders
// GET /api/v1/orders
func (c *Controller) ListOrders(ctx *gin.Context) {
	data, err := c.orderService.List(ctxutil.WithRequestID(ctx), ctxutil.Identity(ctx).ID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, data, "Successfully retrieved your orders")
}
