package handlers

import (
	"github.com/gin-gonic/gin"

	"tillpoint/internal/core/apperror"
	appctx "tillpoint/internal/core/context"
	"tillpoint/internal/core/id"
	"tillpoint/internal/domain/auth"
	"tillpoint/internal/infrastructure/http/v1/dto"
)

// AuthHandler handles registration, login and the current-user lookup.
type AuthHandler struct {
	BaseHandler
	service *auth.Service
}

func NewAuthHandler(service *auth.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	session, err := h.service.Register(c.Request.Context(), req.ToModel())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.NewSessionResponse(session))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	session, err := h.service.Login(c.Request.Context(), auth.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewSessionResponse(session))
}

// Verify handles GET /api/auth/verify: re-reads the account behind
// the presented token.
func (h *AuthHandler) Verify(c *gin.Context) {
	user := appctx.GetUser(c.Request.Context())
	if user == nil {
		h.Error(c, apperror.NewUnauthorized("You are not logged in"))
		return
	}

	userID, err := id.Parse(user.UserID)
	if err != nil {
		h.Error(c, apperror.NewUnauthorized("Invalid session"))
		return
	}

	account, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"user": account})
}
