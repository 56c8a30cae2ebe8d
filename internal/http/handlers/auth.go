package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/deepakpotluri/jobPortal-Backend/internal/config"
	"github.com/deepakpotluri/jobPortal-Backend/internal/domain/user"
	"github.com/deepakpotluri/jobPortal-Backend/internal/http/middlewares"
	"github.com/deepakpotluri/jobPortal-Backend/internal/security"
	"github.com/gin-gonic/gin"
)

// Small interfaces so tests can fake the store easily.

type UserReader interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	GetProfile(ctx context.Context, id string) (user.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type UserWriter interface {
	Create(ctx context.Context, u user.User) error
}

type TokenIssuer interface {
	GenerateToken(userID, email, role string) (string, error)
}

type AuthHandler struct {
	users      UserReader
	userWriter UserWriter
	jwt        TokenIssuer
}

func NewAuthHandler(users UserReader, userWriter UserWriter, jwt TokenIssuer) *AuthHandler {
	return &AuthHandler{
		users:      users,
		userWriter: userWriter,
		jwt:        jwt,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/register
func (h *AuthHandler) Register(ctx *gin.Context) {
	var req user.RegisterRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	// Duplicate email wins over role validation, matching the documented
	// Conflict-before-InvalidInput ordering.
	exists, err := h.users.ExistsByEmail(cctx, req.Email)

	if err != nil {
		RespondInternal(ctx, "Registration failed", err)
		return
	}

	if exists {
		RespondBadRequest(ctx, "User already exists", nil)
		return
	}

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		RespondInternal(ctx, "Registration failed", err)
		return
	}

	u, err := user.NewFromRegistration(req, hash)

	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidRole):
			RespondBadRequest(ctx, "Invalid role specified", nil)
		case errors.Is(err, user.ErrCompanyNameMissing):
			RespondBadRequest(ctx, "Company name is required for employers", nil)
		default:
			RespondInternal(ctx, "Registration failed", err)
		}
		return
	}

	err = h.userWriter.Create(cctx, u)

	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			RespondBadRequest(ctx, "User already exists", nil)
			return
		}

		RespondInternal(ctx, "Registration failed", err)
		return
	}

	token, err := h.jwt.GenerateToken(u.ID, u.Email, string(u.Role))

	if err != nil {
		RespondInternal(ctx, "Registration failed", err)
		return
	}

	RespondFields(ctx, http.StatusCreated, gin.H{
		"token": token,
		"user":  u.Sanitized(),
	})
}

// POST /api/auth/login
func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	foundUser, err := h.users.GetByEmail(cctx, req.Email)

	// Same generic message for unknown email and wrong password, so callers
	// cannot enumerate accounts.
	if err != nil {
		RespondBadRequest(ctx, "Invalid credentials", nil)
		return
	}

	err = security.CheckPassword(foundUser.PasswordHash, req.Password)

	if err != nil {
		RespondBadRequest(ctx, "Invalid credentials", nil)
		return
	}

	token, err := h.jwt.GenerateToken(foundUser.ID, foundUser.Email, string(foundUser.Role))

	if err != nil {
		RespondInternal(ctx, "Login failed", err)
		return
	}

	RespondFields(ctx, http.StatusOK, gin.H{
		"token": token,
		"user":  foundUser.Sanitized(),
	})
}

// GET /api/auth/profile
func (h *AuthHandler) Profile(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnauthorized(ctx, "No authentication token, access denied")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	u, err := h.users.GetProfile(cctx, userID)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}

		RespondInternal(ctx, "Failed to fetch profile", err)
		return
	}

	RespondData(ctx, http.StatusOK, "", u)
}
