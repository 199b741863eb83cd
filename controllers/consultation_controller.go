package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manjiriciklum/WellnessSage-sub000/services"
)

type ConsultationController struct {
	Consultations *services.ConsultationService
}

func NewConsultationController(svc *services.ConsultationService) *ConsultationController {
	return &ConsultationController{Consultations: svc}
}

type AnalyzeInput struct {
	Symptoms string `json:"symptoms" binding:"required"`
}

func (cc *ConsultationController) Analyze(c *gin.Context) {
	var input AnalyzeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	consultation, err := cc.Consultations.AnalyzeSymptoms(c.Request.Context(), c.GetUint("userID"), input.Symptoms)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"consultation": consultation})
}

func (cc *ConsultationController) History(c *gin.Context) {
	consultations, err := cc.Consultations.History(c.Request.Context(), c.GetUint("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"consultations": consultations})
}
