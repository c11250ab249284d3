// Package ctxutil moves request-scoped values between gin and context.Context.
package ctxutil

import (
	"context"
	"fmt"
	"strconv"

	"foodorder/api/response"
	userapp "foodorder/application/user"
	"foodorder/domain/shared"
	"foodorder/infrastructure/persistence"

	"github.com/gin-gonic/gin"
)

// IdentityKey is the gin context key of the authenticated caller.
const IdentityKey = "identity"

// WithRequestID returns the request context carrying the request id, for the store's
// query logs.
func WithRequestID(ctx *gin.Context) context.Context {
	requestID := response.GetRequestID(ctx)
	return persistence.ContextWithRequestID(ctx.Request.Context(), requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	return persistence.RequestIDFromContext(ctx)
}

func SetIdentity(ctx *gin.Context, id *userapp.Identity) {
	ctx.Set(IdentityKey, id)
}

// Identity returns the caller set by the auth middleware, or nil on public routes.
func Identity(ctx *gin.Context) *userapp.Identity {
	v, ok := ctx.Get(IdentityKey)
	if !ok {
		return nil
	}
	id, _ := v.(*userapp.Identity)
	return id
}

// ParamID parses a positive numeric route parameter.
func ParamID(ctx *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || v == 0 {
		return 0, shared.NewValidationError("request", name, fmt.Sprintf("%s must be a positive integer!", name))
	}
	return uint(v), nil
}
