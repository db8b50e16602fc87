package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler serves operational endpoints
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
