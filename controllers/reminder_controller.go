package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manjiriciklum/WellnessSage-sub000/models"
	"github.com/manjiriciklum/WellnessSage-sub000/services"
	"github.com/manjiriciklum/WellnessSage-sub000/storage"
	"github.com/manjiriciklum/WellnessSage-sub000/utils"
)

type ReminderController struct {
	Store  storage.Storage
	Hub    *services.RealtimeHub
	Mailer *utils.Mailer
}

func NewReminderController(store storage.Storage, hub *services.RealtimeHub, mailer *utils.Mailer) *ReminderController {
	return &ReminderController{Store: store, Hub: hub, Mailer: mailer}
}

func (r *ReminderController) List(c *gin.Context) {
	reminders, err := r.Store.GetRemindersByUserID(c.Request.Context(), c.GetUint("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminders": reminders})
}

func (r *ReminderController) Create(c *gin.Context) {
	var input models.Reminder
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.UserID = c.GetUint("userID")
	input.IsCompleted = false

	reminder, err := r.Store.CreateReminder(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	if r.Hub != nil {
		r.Hub.Broadcast(reminder.UserID, "reminder.created", reminder)
	}
	c.JSON(http.StatusCreated, gin.H{"reminder": reminder})
}

// EmailDigest mails the caller their open reminders.
func (r *ReminderController) EmailDigest(c *gin.Context) {
	uid := c.GetUint("userID")
	user, err := r.Store.GetUser(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	reminders, err := r.Store.GetRemindersByUserID(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	open := reminders[:0:0]
	for _, rem := range reminders {
		if !rem.IsCompleted {
			open = append(open, rem)
		}
	}
	if err := r.Mailer.SendReminderDigest(c.Request.Context(), user.Email, open); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not send digest"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "digest sent", "count": len(open)})
}

func (r *ReminderController) Complete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	reminder, err := r.Store.CompleteReminder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminder": reminder})
}
