package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mealbridge/mealbridge-api/internal/middleware"
	"github.com/mealbridge/mealbridge-api/internal/model"
	"github.com/mealbridge/mealbridge-api/internal/service/auth"
	apperrors "github.com/mealbridge/mealbridge-api/pkg/errors"
	"github.com/mealbridge/mealbridge-api/pkg/httputil"
)

type Handler struct {
	svc  *auth.Service
	auth *middleware.AuthMiddleware
}

func NewHandler(svc *auth.Service, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{svc: svc, auth: auth}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/auth")
	{
		group.POST("/register", h.Register)
		group.POST("/login", h.Login)
		group.GET("/me", h.auth.Authenticate(), h.Me)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewInvalidInput(err.Error(), err))
		return
	}

	resp, err := h.svc.Register(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusCreated, resp)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewInvalidInput(err.Error(), err))
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, resp)
}

func (h *Handler) Me(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	account, err := h.svc.GetAccount(c.Request.Context(), claims.AccountID)
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewUnauthorized(err))
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, account)
}
