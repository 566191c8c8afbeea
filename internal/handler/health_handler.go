package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check reports service liveness and database reachability
// @Summary Health check
// @Tags    Health
// @Produce json
// @Success 200
// @Router  /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	database := "up"
	if h.db != nil {
		if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			database = "down"
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": database})
}
