package middlewares_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deepakpotluri/jobPortal-Backend/internal/auth"
	"github.com/deepakpotluri/jobPortal-Backend/internal/domain/user"
	"github.com/deepakpotluri/jobPortal-Backend/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeVerifier struct {
	claims *auth.Claims
	err    error
}

func (f *fakeVerifier) VerifyToken(token string) (*auth.Claims, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.claims, nil
}

func protectedRouter(v middlewares.TokenVerifier, roles ...user.Role) *gin.Engine {
	m := middlewares.NewAuthMiddleware(v)

	r := gin.New()

	chain := []gin.HandlerFunc{m.RequireAuth()}
	if len(roles) > 0 {
		chain = append(chain, m.RequireRole(roles...))
	}
	chain = append(chain, func(c *gin.Context) {
		id, _ := middlewares.UserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"userId": id})
	})

	r.GET("/protected", chain...)
	return r
}

func TestRequireAuth(t *testing.T) {
	goodClaims := &auth.Claims{UserID: "u-1", Email: "a@b.test", Role: "employer"}

	tests := []struct {
		name       string
		authHeader string
		verifier   *fakeVerifier
		wantStatus int
	}{
		{
			name:       "missing header",
			authHeader: "",
			verifier:   &fakeVerifier{claims: goodClaims},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "not a bearer header",
			authHeader: "Basic abc",
			verifier:   &fakeVerifier{claims: goodClaims},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty bearer token",
			authHeader: "Bearer ",
			verifier:   &fakeVerifier{claims: goodClaims},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "verifier rejects",
			authHeader: "Bearer sometoken",
			verifier:   &fakeVerifier{err: errors.New("expired")},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid token",
			authHeader: "Bearer sometoken",
			verifier:   &fakeVerifier{claims: goodClaims},
			wantStatus: http.StatusOK,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := protectedRouter(tc.verifier)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tc.wantStatus, w.Body.String())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		accepted   []user.Role
		wantStatus int
	}{
		{
			name:       "employer passes employer gate",
			role:       "employer",
			accepted:   []user.Role{user.RoleEmployer, user.RoleAdmin},
			wantStatus: http.StatusOK,
		},
		{
			name:       "admin passes employer gate",
			role:       "admin",
			accepted:   []user.Role{user.RoleEmployer, user.RoleAdmin},
			wantStatus: http.StatusOK,
		},
		{
			name:       "plain user is forbidden",
			role:       "user",
			accepted:   []user.Role{user.RoleEmployer, user.RoleAdmin},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "unknown role is forbidden",
			role:       "superuser",
			accepted:   []user.Role{user.RoleEmployer, user.RoleAdmin},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := &fakeVerifier{claims: &auth.Claims{UserID: "u-1", Email: "a@b.test", Role: tc.role}}
			r := protectedRouter(v, tc.accepted...)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer sometoken")

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tc.wantStatus, w.Body.String())
			}
		})
	}
}
