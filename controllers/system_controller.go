package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manjiriciklum/WellnessSage-sub000/storage"
)

type SystemController struct {
	Provider *storage.Provider
}

func NewSystemController(provider *storage.Provider) *SystemController {
	return &SystemController{Provider: provider}
}

// DBStatus reports which backend is currently serving reads and writes.
func (s *SystemController) DBStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.Provider.CurrentStatus(c.Request.Context()))
}

func (s *SystemController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
