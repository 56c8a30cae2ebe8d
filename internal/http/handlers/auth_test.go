package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/deepakpotluri/jobPortal-Backend/internal/auth"
	"github.com/deepakpotluri/jobPortal-Backend/internal/domain/user"
	"github.com/deepakpotluri/jobPortal-Backend/internal/http/handlers"
	"github.com/deepakpotluri/jobPortal-Backend/internal/http/middlewares"
	"github.com/deepakpotluri/jobPortal-Backend/internal/security"
	"github.com/gin-gonic/gin"
)

// Make sure Gin does not spam the console during the tests

func init() {
	gin.SetMode(gin.TestMode)
}

// Fake store implementing the handlers.UserReader / handlers.UserWriter
// interfaces, backed by a map.

type fakeUsersStore struct {
	byEmail map[string]user.User
	byID    map[string]user.User
}

func newFakeUsersStore() *fakeUsersStore {
	return &fakeUsersStore{
		byEmail: map[string]user.User{},
		byID:    map[string]user.User{},
	}
}

func (f *fakeUsersStore) Create(ctx context.Context, u user.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return user.ErrEmailTaken
	}
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUsersStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func (f *fakeUsersStore) GetByEmail(ctx context.Context, email string) (user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsersStore) GetProfile(ctx context.Context, id string) (user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	u.PasswordHash = ""
	return u, nil
}

const testSecret = "test-secret"

func newAuthRouter(store *fakeUsersStore) (*gin.Engine, *auth.Manager) {
	manager := auth.NewManager(testSecret, 24*time.Hour)
	h := handlers.NewAuthHandler(store, store, manager)
	authMW := middlewares.NewAuthMiddleware(manager)

	r := gin.New()
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)
	r.GET("/api/auth/profile", authMW.RequireAuth(), h.Profile)

	return r, manager
}

func postJSON(r *gin.Engine, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type authResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
	User    struct {
		Email       string `json:"email"`
		Role        string `json:"role"`
		CompanyName string `json:"companyName"`
	} `json:"user"`
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		seed        func(*fakeUsersStore)
		wantStatus  int
		wantMessage string
	}{
		{
			name:       "employer with company",
			body:       `{"email":"e@acme.test","password":"pw123456","role":"employer","companyName":"Acme"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "plain user",
			body:       `{"email":"u@b.test","password":"pw123456","role":"user"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:        "employer without company",
			body:        `{"email":"e@acme.test","password":"pw123456","role":"employer"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Company name is required for employers",
		},
		{
			name:        "employer with empty company",
			body:        `{"email":"e@acme.test","password":"pw123456","role":"employer","companyName":""}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Company name is required for employers",
		},
		{
			name:        "invalid role",
			body:        `{"email":"e@acme.test","password":"pw123456","role":"wizard"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid role specified",
		},
		{
			name: "duplicate email",
			body: `{"email":"taken@b.test","password":"pw123456","role":"user"}`,
			seed: func(f *fakeUsersStore) {
				f.byEmail["taken@b.test"] = user.User{ID: "u-0", Email: "taken@b.test"}
			},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "User already exists",
		},
		{
			name:       "malformed email rejected by binding",
			body:       `{"email":"nope","password":"pw123456","role":"user"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeUsersStore()
			if tc.seed != nil {
				tc.seed(store)
			}
			r, manager := newAuthRouter(store)

			w := postJSON(r, "/api/auth/register", tc.body, nil)

			if w.Code != tc.wantStatus {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tc.wantStatus, w.Body.String())
			}

			var resp authResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("bad response body: %v", err)
			}

			if tc.wantStatus == http.StatusCreated {
				if !resp.Success || resp.Token == "" {
					t.Fatalf("expected success with token, got %s", w.Body.String())
				}

				claims, err := manager.VerifyToken(resp.Token)
				if err != nil {
					t.Fatalf("issued token does not verify: %v", err)
				}
				if claims.Email != resp.User.Email {
					t.Fatalf("token email %q != user email %q", claims.Email, resp.User.Email)
				}

				if bytes.Contains(w.Body.Bytes(), []byte("password")) {
					t.Fatalf("response leaks password material: %s", w.Body.String())
				}
				return
			}

			if resp.Success {
				t.Fatalf("failure response flagged success: %s", w.Body.String())
			}
			if tc.wantMessage != "" && resp.Message != tc.wantMessage {
				t.Fatalf("message %q, want %q", resp.Message, tc.wantMessage)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	store := newFakeUsersStore()

	hash, err := security.HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	seeded := user.User{
		ID:           "u-1",
		Email:        "e@acme.test",
		PasswordHash: hash,
		Role:         user.RoleEmployer,
		CompanyName:  "Acme",
	}
	store.byEmail[seeded.Email] = seeded
	store.byID[seeded.ID] = seeded

	r, manager := newAuthRouter(store)

	t.Run("valid credentials", func(t *testing.T) {
		w := postJSON(r, "/api/auth/login", `{"email":"e@acme.test","password":"correct-horse"}`, nil)

		if w.Code != http.StatusOK {
			t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
		}

		var resp authResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("bad response body: %v", err)
		}

		claims, err := manager.VerifyToken(resp.Token)
		if err != nil {
			t.Fatalf("issued token does not verify: %v", err)
		}
		if claims.Role != "employer" || claims.Email != "e@acme.test" {
			t.Fatalf("claims mismatch: %+v", claims)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		w := postJSON(r, "/api/auth/login", `{"email":"e@acme.test","password":"wrong"}`, nil)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("unknown email gets the same generic message", func(t *testing.T) {
		wrongPw := postJSON(r, "/api/auth/login", `{"email":"e@acme.test","password":"wrong"}`, nil)
		noUser := postJSON(r, "/api/auth/login", `{"email":"ghost@b.test","password":"whatever"}`, nil)

		if noUser.Code != http.StatusBadRequest {
			t.Fatalf("got status %d, body=%s", noUser.Code, noUser.Body.String())
		}

		var a, b authResponse
		_ = json.Unmarshal(wrongPw.Body.Bytes(), &a)
		_ = json.Unmarshal(noUser.Body.Bytes(), &b)

		if a.Message != b.Message {
			t.Fatalf("messages differ, enumeration possible: %q vs %q", a.Message, b.Message)
		}
	})
}

func TestProfile(t *testing.T) {
	store := newFakeUsersStore()

	seeded := user.User{ID: "u-1", Email: "e@acme.test", Role: user.RoleEmployer, CompanyName: "Acme"}
	store.byEmail[seeded.Email] = seeded
	store.byID[seeded.ID] = seeded

	r, manager := newAuthRouter(store)

	token, err := manager.GenerateToken("u-1", "e@acme.test", "employer")
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}

	t.Run("without token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("with token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
		}
		if bytes.Contains(w.Body.Bytes(), []byte("passwordHash")) {
			t.Fatalf("profile leaks password material: %s", w.Body.String())
		}
	})

	t.Run("identity no longer resolves", func(t *testing.T) {
		ghost, err := manager.GenerateToken("u-gone", "gone@b.test", "user")
		if err != nil {
			t.Fatalf("token generation failed: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
		req.Header.Set("Authorization", "Bearer "+ghost)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
		}
	})
}
