package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manjiriciklum/WellnessSage-sub000/models"
	"github.com/manjiriciklum/WellnessSage-sub000/storage"
	"github.com/manjiriciklum/WellnessSage-sub000/utils"
)

type UserController struct {
	Store    storage.Storage
	Uploader *utils.Uploader
}

func NewUserController(store storage.Storage, uploader *utils.Uploader) *UserController {
	return &UserController{Store: store, Uploader: uploader}
}

func (u *UserController) GetProfile(c *gin.Context) {
	user, err := u.Store.GetUser(c.Request.Context(), c.GetUint("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

type ProfileInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func (u *UserController) UpdateProfile(c *gin.Context) {
	var input ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := u.Store.UpdateUser(c.Request.Context(), c.GetUint("userID"), &models.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

type ProfileImageInput struct {
	Image string `json:"image" binding:"required"` // data:<mime>;base64,<data>
}

func (u *UserController) UploadProfileImage(c *gin.Context) {
	var input ProfileImageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid := c.GetUint("userID")
	user, err := u.Store.GetUser(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}

	key, err := u.Uploader.UploadBase64Image(c.Request.Context(), input.Image, user.Username)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := u.Store.UpdateUser(c.Request.Context(), uid, &models.User{ProfileImage: key})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": updated})
}
