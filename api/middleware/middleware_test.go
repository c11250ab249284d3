package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"foodorder/api/ctxutil"
	userapp "foodorder/application/user"
	"foodorder/config"
	"foodorder/domain/shared"
	"foodorder/domain/user"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAuth map[string]*userapp.Identity

func (s stubAuth) Authenticate(_ context.Context, token string) (*userapp.Identity, error) {
	if token == "" {
		return nil, shared.NewError(shared.KindAccessTokenMissing, "user", "")
	}
	id, ok := s[token]
	if !ok {
		return nil, shared.NewError(shared.KindInvalidToken, "user", "")
	}
	return id, nil
}

func TestRequestIDIsEchoedOrGenerated(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "abc" {
		t.Errorf("echoed id = %q", got)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := rec.Header().Get(RequestIDHeader); len(got) != 36 {
		t.Errorf("generated id = %q", got)
	}
}

func TestAuthAndRoles(t *testing.T) {
	auth := stubAuth{
		"customer": {ID: 1, Role: user.RoleCustomer},
		"admin":    {ID: 2, Role: user.RoleAdmin},
	}
	r := gin.New()
	r.GET("/admin", AuthMiddleware(auth), RequireRole(user.RoleAdmin), func(c *gin.Context) {
		c.String(http.StatusOK, "%d", ctxutil.Identity(c).ID)
	})

	tests := []struct {
		name    string
		headers map[string]string
		status  int
	}{
		{"missing", nil, http.StatusBadRequest},
		{"unknown", map[string]string{"Authorization": "Bearer nope"}, http.StatusUnauthorized},
		{"customer", map[string]string{"Authorization": "Bearer customer"}, http.StatusForbidden},
		{"admin", map[string]string{"Authorization": "Bearer admin"}, http.StatusOK},
		{"legacy header", map[string]string{AccessTokenHeader: "admin"}, http.StatusOK},
		{"other scheme", map[string]string{"Authorization": "Basic admin"}, http.StatusUnauthorized},
		{"other scheme with legacy header", map[string]string{"Authorization": "Basic x", AccessTokenHeader: "admin"}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body.String())
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(&config.RateLimitConfig{Enabled: true, Rate: 0.001, Burst: 2}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 3)
	for i := range codes {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		codes[i] = rec.Code
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v", codes)
	}
}

func TestRateLimiterDropsIdleClients(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Unix(1000, 0)
	rl.now = func() time.Time { return now }
	rl.lastSweep.Store(now.UnixNano())

	if !rl.getLimiter("10.0.0.1").Allow() {
		t.Fatal("first request should pass")
	}
	now = now.Add(limiterIdleTTL / 2)
	rl.getLimiter("10.0.0.2")
	if _, ok := rl.visitors.Load("10.0.0.1"); !ok {
		t.Fatal("client swept before it was idle")
	}

	now = now.Add(limiterIdleTTL)
	rl.getLimiter("10.0.0.2")
	if _, ok := rl.visitors.Load("10.0.0.1"); ok {
		t.Error("idle client still tracked after sweep")
	}
	if _, ok := rl.visitors.Load("10.0.0.2"); !ok {
		t.Error("active client was swept")
	}
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RecoveryMiddleware())
	r.GET("/", func(c *gin.Context) { panic("boom") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}
