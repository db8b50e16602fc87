package donation

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mealbridge/mealbridge-api/internal/middleware"
	"github.com/mealbridge/mealbridge-api/internal/model"
	"github.com/mealbridge/mealbridge-api/internal/service/donation"
	"github.com/mealbridge/mealbridge-api/internal/service/notification"
	"github.com/mealbridge/mealbridge-api/internal/service/rbac"
	apperrors "github.com/mealbridge/mealbridge-api/pkg/errors"
	"github.com/mealbridge/mealbridge-api/pkg/httputil"
)

type Handler struct {
	svc       *donation.Service
	notifySvc *notification.Service
	auth      *middleware.AuthMiddleware
}

func NewHandler(svc *donation.Service, notifySvc *notification.Service, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{svc: svc, notifySvc: notifySvc, auth: auth}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/donations")
	{
		group.GET("", h.List)
		group.POST("", h.auth.Authenticate(), h.auth.Require(rbac.OpSubmitDonation), h.Submit)
		group.POST("/:id/status", h.auth.Authenticate(), h.auth.Require(rbac.OpTransitionDonation), h.UpdateStatus)
		group.POST("/:id/notify", h.auth.Authenticate(), h.auth.Require(rbac.OpRequestPickup), h.RequestPickup)
	}
}

func (h *Handler) Submit(c *gin.Context) {
	var req model.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewInvalidInput(err.Error(), err))
		return
	}

	claims := middleware.ClaimsFrom(c)
	d, err := h.svc.Submit(c.Request.Context(), claims.AccountID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusCreated, d)
}

func (h *Handler) List(c *gin.Context) {
	donations, err := h.svc.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, donations)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewInvalidInput("invalid donation id", err))
		return
	}

	var req model.UpdateDonationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewInvalidInput(err.Error(), err))
		return
	}

	d, err := h.svc.Transition(c.Request.Context(), id, req.Status)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, d)
}

func (h *Handler) RequestPickup(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewInvalidInput("invalid donation id", err))
		return
	}

	n, err := h.notifySvc.RequestPickup(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusCreated, n)
}
