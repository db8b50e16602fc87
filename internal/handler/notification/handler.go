package notification

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mealbridge/mealbridge-api/internal/middleware"
	"github.com/mealbridge/mealbridge-api/internal/service/notification"
	"github.com/mealbridge/mealbridge-api/internal/service/rbac"
	apperrors "github.com/mealbridge/mealbridge-api/pkg/errors"
	"github.com/mealbridge/mealbridge-api/pkg/httputil"
)

type Handler struct {
	svc  *notification.Service
	auth *middleware.AuthMiddleware
}

func NewHandler(svc *notification.Service, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{svc: svc, auth: auth}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/notifications", h.auth.Authenticate())
	{
		group.GET("", h.auth.Require(rbac.OpListNotifications), h.List)
		group.POST("/:id/read", h.auth.Require(rbac.OpMarkNotificationRead), h.MarkRead)
	}
}

// List returns the caller's notifications: role-wide broadcasts plus
// narrowcasts addressed to their account.
func (h *Handler) List(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	notifications, err := h.svc.ListFor(c.Request.Context(), claims.Role, &claims.AccountID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, notifications)
}

func (h *Handler) MarkRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewInvalidInput("invalid notification id", err))
		return
	}

	claims := middleware.ClaimsFrom(c)
	n, err := h.svc.MarkRead(c.Request.Context(), id, claims.AccountID, claims.Role)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, n)
}
