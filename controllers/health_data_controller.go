package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manjiriciklum/WellnessSage-sub000/models"
	"github.com/manjiriciklum/WellnessSage-sub000/storage"
)

type HealthDataController struct {
	Store storage.Storage
}

func NewHealthDataController(store storage.Storage) *HealthDataController {
	return &HealthDataController{Store: store}
}

func (h *HealthDataController) List(c *gin.Context) {
	records, err := h.Store.GetHealthDataByUserID(c.Request.Context(), c.GetUint("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"healthData": records})
}

func (h *HealthDataController) Latest(c *gin.Context) {
	rec, err := h.Store.GetLatestHealthData(c.Request.Context(), c.GetUint("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"healthData": rec})
}

func (h *HealthDataController) Create(c *gin.Context) {
	var input models.HealthDataRecord
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.UserID = c.GetUint("userID")

	rec, err := h.Store.CreateHealthData(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"healthData": rec})
}

func (h *HealthDataController) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Store.DeleteHealthData(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "health data deleted"})
}
