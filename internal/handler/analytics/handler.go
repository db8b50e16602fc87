package analytics

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mealbridge/mealbridge-api/internal/middleware"
	"github.com/mealbridge/mealbridge-api/internal/service/analytics"
	"github.com/mealbridge/mealbridge-api/internal/service/rbac"
	"github.com/mealbridge/mealbridge-api/pkg/httputil"
)

const defaultLeaderboardLimit = 10

type Handler struct {
	svc  *analytics.Service
	auth *middleware.AuthMiddleware
}

func NewHandler(svc *analytics.Service, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{svc: svc, auth: auth}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/leaderboard", h.Leaderboard)
	r.GET("/analytics", h.Analytics)
	r.GET("/users/me/summary", h.auth.Authenticate(), h.auth.Require(rbac.OpViewSummary), h.MySummary)
}

func (h *Handler) Leaderboard(c *gin.Context) {
	limit := defaultLeaderboardLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	rows, err := h.svc.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, rows)
}

func (h *Handler) Analytics(c *gin.Context) {
	report, err := h.svc.Analytics(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, report)
}

func (h *Handler) MySummary(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	summary, err := h.svc.MySummary(c.Request.Context(), claims.AccountID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, summary)
}
