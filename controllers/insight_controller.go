package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manjiriciklum/WellnessSage-sub000/services"
	"github.com/manjiriciklum/WellnessSage-sub000/storage"
)

type InsightController struct {
	Store    storage.Storage
	Insights *services.InsightService
}

func NewInsightController(store storage.Storage, insights *services.InsightService) *InsightController {
	return &InsightController{Store: store, Insights: insights}
}

func (i *InsightController) List(c *gin.Context) {
	insights, err := i.Store.GetAiInsightsByUserID(c.Request.Context(), c.GetUint("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"insights": insights})
}

// Generate runs insight derivation for the caller's recent data.
func (i *InsightController) Generate(c *gin.Context) {
	created, err := i.Insights.GenerateForUser(c.Request.Context(), c.GetUint("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"insights": created})
}

func (i *InsightController) MarkRead(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	insight, err := i.Store.MarkInsightRead(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"insight": insight})
}
