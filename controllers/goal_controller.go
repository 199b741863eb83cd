package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manjiriciklum/WellnessSage-sub000/models"
	"github.com/manjiriciklum/WellnessSage-sub000/storage"
)

type GoalController struct {
	Store storage.Storage
}

func NewGoalController(store storage.Storage) *GoalController {
	return &GoalController{Store: store}
}

func (g *GoalController) List(c *gin.Context) {
	goals, err := g.Store.GetGoalsByUserID(c.Request.Context(), c.GetUint("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

func (g *GoalController) Create(c *gin.Context) {
	var input models.Goal
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.UserID = c.GetUint("userID")

	goal, err := g.Store.CreateGoal(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

type GoalProgressInput struct {
	Current float64 `json:"current" binding:"required"`
}

func (g *GoalController) UpdateProgress(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input GoalProgressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := g.Store.UpdateGoalProgress(c.Request.Context(), id, input.Current)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goal": goal})
}
