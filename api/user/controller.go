package user

import (
	"fmt"
	"net/http"

	"foodorder/api/ctxutil"
	"foodorder/api/response"
	userapp "foodorder/application/user"

	"github.com/gin-gonic/gin"
)

// Controller User controller
type Controller struct {
	userService *userapp.ApplicationService
}

// NewController Create user controller
func NewController(userService *userapp.ApplicationService) *Controller {
	return &Controller{
		userService: userService,
	}
}

// RegisterRoutes Register user routes. Register and login are public.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	userGroup := router.Group("/users")
	{
		userGroup.POST("/register", c.Register)
		userGroup.POST("/login", c.Login)

		private := userGroup.Group("", auth)
		private.GET("/profile", c.GetProfile)
		private.PUT("/profile", c.UpdateProfile)
		private.POST("/add-balance", c.AddBalance)
	}
}

// Register POST /api/v1/users/register
func (c *Controller) Register(ctx *gin.Context) {
	var req userapp.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	u, err := c.userService.Register(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, u,
		fmt.Sprintf("User with email %s and username %s is successfully registered", u.Email, u.Username))
}

// Login POST /api/v1/users/login
func (c *Controller) Login(ctx *gin.Context) {
	var req userapp.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	resp, err := c.userService.Login(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, resp, fmt.Sprintf("%s is successfully logged in", resp.Username))
}

// GetProfile GET /api/v1/users/profile
func (c *Controller) GetProfile(ctx *gin.Context) {
	p, err := c.userService.GetProfile(ctxutil.WithRequestID(ctx), ctxutil.Identity(ctx).ID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, p, "Successfully retrieved your profile")
}

// UpdateProfile PUT /api/v1/users/profile
func (c *Controller) UpdateProfile(ctx *gin.Context) {
	var req userapp.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	p, err := c.userService.UpdateProfile(ctxutil.WithRequestID(ctx), ctxutil.Identity(ctx).ID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, p, "Profile is successfully updated")
}

// AddBalance POST /api/v1/users/add-balance
func (c *Controller) AddBalance(ctx *gin.Context) {
	var req userapp.AddBalanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	p, err := c.userService.AddBalance(ctxutil.WithRequestID(ctx), ctxutil.Identity(ctx).ID, req.Amount)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, p, "Successfully added balance.")
}
