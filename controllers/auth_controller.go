package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/manjiriciklum/WellnessSage-sub000/models"
	"github.com/manjiriciklum/WellnessSage-sub000/storage"
	"github.com/manjiriciklum/WellnessSage-sub000/utils"
)

type AuthController struct {
	Store  storage.Storage
	Mailer *utils.Mailer
}

func NewAuthController(store storage.Storage, mailer *utils.Mailer) *AuthController {
	return &AuthController{Store: store, Mailer: mailer}
}

type RegisterInput struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
}

func (a *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
		return
	}

	user, err := a.Store.CreateUser(c.Request.Context(), &models.User{
		Username:  input.Username,
		Password:  hash,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      "user",
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if a.Mailer != nil {
		_ = a.Mailer.SendWelcome(c.Request.Context(), user.Email, user.FirstName)
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (a *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := a.Store.GetUserByUsername(c.Request.Context(), input.Username)
	if err != nil || !utils.CheckPasswordHash(input.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	user.LastLogin = time.Now()
	_, _ = a.Store.UpdateUser(c.Request.Context(), user.ID, user)

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}
