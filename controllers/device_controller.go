package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manjiriciklum/WellnessSage-sub000/models"
	"github.com/manjiriciklum/WellnessSage-sub000/services"
	"github.com/manjiriciklum/WellnessSage-sub000/storage"
)

type DeviceController struct {
	Store storage.Storage
	Sync  *services.SyncService
}

func NewDeviceController(store storage.Storage, sync *services.SyncService) *DeviceController {
	return &DeviceController{Store: store, Sync: sync}
}

func (dc *DeviceController) List(c *gin.Context) {
	devices, err := dc.Store.GetWearableDevicesByUserID(c.Request.Context(), c.GetUint("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"devices": devices})
}

func (dc *DeviceController) Create(c *gin.Context) {
	var input models.WearableDevice
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.UserID = c.GetUint("userID")
	input.IsConnected = false

	device, err := dc.Store.CreateWearableDevice(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"device": device})
}

func (dc *DeviceController) Connect(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	device, err := dc.Store.ConnectWearableDevice(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"device": device})
}

func (dc *DeviceController) Disconnect(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	device, err := dc.Store.DisconnectWearableDevice(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"device": device})
}

// SyncNow pulls a fresh reading from the device and stores it as a new
// health record.
func (dc *DeviceController) SyncNow(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	rec, err := dc.Sync.SyncDevice(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"healthData": rec})
}
