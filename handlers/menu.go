package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"regal/services/menu"
)

// MenuHandler serves the cart menu catalog.
type MenuHandler struct {
	Menu   menu.Service
	Logger *zap.Logger
}

// NewMenuHandler builds a MenuHandler.
func NewMenuHandler(svc menu.Service, logger *zap.Logger) *MenuHandler {
	return &MenuHandler{Menu: svc, Logger: logger}
}

// GetMenu returns the menu grouped into stations.
func (h *MenuHandler) GetMenu(c *gin.Context) {
	stations, err := h.Menu.GetMenu(c.Request.Context())
	if err != nil {
		h.Logger.Error("menu: fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load menu"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stations": stations})
}
