package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, userID uint, role string, expiresIn time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func protectedRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireRole(testSecret, roles...), func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"uid": UserID(ctx), "role": Role(ctx)})
	})
	return r
}

func doRequest(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireRole(t *testing.T) {
	router := protectedRouter(RoleStudent)

	tests := []struct {
		name          string
		authorization string
		wantStatus    int
	}{
		{
			name:          "valid student token",
			authorization: "Bearer " + signToken(t, testSecret, 42, RoleStudent, time.Hour),
			wantStatus:    http.StatusOK,
		},
		{
			name:          "missing header",
			authorization: "",
			wantStatus:    http.StatusUnauthorized,
		},
		{
			name:          "malformed header",
			authorization: "Token abc",
			wantStatus:    http.StatusUnauthorized,
		},
		{
			name:          "wrong secret",
			authorization: "Bearer " + signToken(t, "other-secret", 42, RoleStudent, time.Hour),
			wantStatus:    http.StatusUnauthorized,
		},
		{
			name:          "expired token",
			authorization: "Bearer " + signToken(t, testSecret, 42, RoleStudent, -time.Hour),
			wantStatus:    http.StatusUnauthorized,
		},
		{
			name:          "wrong role",
			authorization: "Bearer " + signToken(t, testSecret, 42, RoleAdmin, time.Hour),
			wantStatus:    http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, tt.authorization)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestRequireRoleAllowsAnyListedRole(t *testing.T) {
	router := protectedRouter(RoleAdmin, RoleInstructor)

	for _, role := range []string{RoleAdmin, RoleInstructor} {
		w := doRequest(router, "Bearer "+signToken(t, testSecret, 1, role, time.Hour))
		if w.Code != http.StatusOK {
			t.Fatalf("role %s: status = %d, want 200", role, w.Code)
		}
	}

	w := doRequest(router, "Bearer "+signToken(t, testSecret, 1, RoleStudent, time.Hour))
	if w.Code != http.StatusForbidden {
		t.Fatalf("student against admin group: status = %d, want 403", w.Code)
	}
}

func TestClaimsReachHandlers(t *testing.T) {
	router := protectedRouter(RoleStudent)

	w := doRequest(router, "Bearer "+signToken(t, testSecret, 77, RoleStudent, time.Hour))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if body != `{"role":"student","uid":77}` {
		t.Fatalf("body = %s", body)
	}
}
