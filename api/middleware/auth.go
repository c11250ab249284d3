package middleware

import (
	"context"
	"strings"

	"foodorder/api/ctxutil"
	"foodorder/api/response"
	userapp "foodorder/application/user"
	"foodorder/domain/shared"
	"foodorder/domain/user"

	"github.com/gin-gonic/gin"
)

// AccessTokenHeader is the legacy token header, accepted next to Authorization.
const AccessTokenHeader = "access_token"

// Authenticator resolves an access token to a caller.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*userapp.Identity, error)
}

// AuthMiddleware requires a valid access token and stores the caller identity.
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := auth.Authenticate(ctxutil.WithRequestID(c), bearerToken(c))
		if err != nil {
			response.HandleAppError(c, err)
			return
		}
		ctxutil.SetIdentity(c, id)
		c.Next()
	}
}

// RequireRole rejects callers whose role is not role. It must run after AuthMiddleware.
func RequireRole(role user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := ctxutil.Identity(c)
		if id == nil {
			response.HandleAppError(c, shared.NewError(shared.KindAccessTokenMissing, "user", ""))
			return
		}
		if id.Role != role {
			response.HandleAppError(c, shared.NewError(shared.KindForbidden, "user", forbiddenMessage(role)))
			return
		}
		c.Next()
	}
}

// bearerToken prefers a Bearer Authorization header, then the legacy header. Any other
// Authorization value is passed through as is so the token check rejects it.
func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if scheme, token, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	if legacy := c.GetHeader(AccessTokenHeader); legacy != "" {
		return legacy
	}
	return strings.TrimSpace(h)
}

// forbiddenMessage is empty for Admin, which keeps the default Forbidden text.
func forbiddenMessage(role user.Role) string {
	if role == user.RoleAdmin {
		return ""
	}
	return "Forbidden, " + string(role) + " Authentication required!."
}
