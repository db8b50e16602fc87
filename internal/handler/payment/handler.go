package payment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mealbridge/mealbridge-api/internal/model"
	"github.com/mealbridge/mealbridge-api/internal/service/payment"
	apperrors "github.com/mealbridge/mealbridge-api/pkg/errors"
	"github.com/mealbridge/mealbridge-api/pkg/httputil"
)

type Handler struct {
	svc *payment.Service
}

func NewHandler(svc *payment.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/payments")
	{
		// Anonymous monetary donations are allowed, so no auth gate.
		group.POST("/intent", h.CreateIntent)
	}
}

func (h *Handler) CreateIntent(c *gin.Context) {
	var req model.CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.NewInvalidInput(err.Error(), err))
		return
	}

	resp, err := h.svc.CreateIntent(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, resp)
}
