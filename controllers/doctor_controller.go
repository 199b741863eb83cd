package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manjiriciklum/WellnessSage-sub000/models"
	"github.com/manjiriciklum/WellnessSage-sub000/storage"
)

type DoctorController struct {
	Store storage.Storage
}

func NewDoctorController(store storage.Storage) *DoctorController {
	return &DoctorController{Store: store}
}

// List returns the directory, optionally filtered by ?specialty= and
// ?location= (case-insensitive substring match).
func (d *DoctorController) List(c *gin.Context) {
	specialty := c.Query("specialty")
	location := c.Query("location")

	var doctors []models.Doctor
	var err error
	if specialty == "" && location == "" {
		doctors, err = d.Store.GetDoctors(c.Request.Context())
	} else {
		doctors, err = d.Store.FindDoctors(c.Request.Context(), specialty, location)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctors": doctors})
}

func (d *DoctorController) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	doctor, err := d.Store.GetDoctor(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctor": doctor})
}
