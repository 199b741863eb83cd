package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/manjiriciklum/WellnessSage-sub000/audit"
	"github.com/manjiriciklum/WellnessSage-sub000/controllers"
	"github.com/manjiriciklum/WellnessSage-sub000/middlewares"
	"github.com/manjiriciklum/WellnessSage-sub000/storage"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Provider   *storage.Provider
	Auditor    *audit.Logger
	Production bool

	Auth          *controllers.AuthController
	Users         *controllers.UserController
	HealthData    *controllers.HealthDataController
	Devices       *controllers.DeviceController
	Reminders     *controllers.ReminderController
	Goals         *controllers.GoalController
	Insights      *controllers.InsightController
	Consultations *controllers.ConsultationController
	Doctors       *controllers.DoctorController
	Notifications *controllers.NotificationController
	Realtime      *controllers.RealtimeController
	System        *controllers.SystemController
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.Default()

	if d.Production {
		r.Use(middlewares.TLSRedirect())
	}

	r.GET("/healthz", d.System.Health)

	api := r.Group("/api")
	api.Use(middlewares.AuditMiddleware(d.Auditor))
	{
		api.POST("/auth/register", d.Auth.Register)
		api.POST("/auth/login", d.Auth.Login)

		api.GET("/system/db-status", d.System.DBStatus)
		api.GET("/doctors", d.Doctors.List)
		api.GET("/doctors/:id", d.Doctors.Get)
	}

	protected := api.Group("")
	protected.Use(middlewares.AuthMiddleware(d.Provider))
	{
		protected.GET("/users/profile", d.Users.GetProfile)
		protected.PUT("/users/profile", d.Users.UpdateProfile)
		protected.POST("/users/profile-image", d.Users.UploadProfileImage)

		protected.GET("/health-data", d.HealthData.List)
		protected.GET("/health-data/latest", d.HealthData.Latest)
		protected.POST("/health-data", d.HealthData.Create)
		protected.DELETE("/health-data/:id", d.HealthData.Delete)

		protected.GET("/devices", d.Devices.List)
		protected.POST("/devices", d.Devices.Create)
		protected.POST("/devices/:id/connect", d.Devices.Connect)
		protected.POST("/devices/:id/disconnect", d.Devices.Disconnect)
		protected.POST("/devices/:id/sync", d.Devices.SyncNow)

		protected.GET("/reminders", d.Reminders.List)
		protected.POST("/reminders", d.Reminders.Create)
		protected.POST("/reminders/:id/complete", d.Reminders.Complete)
		protected.POST("/reminders/email-digest", d.Reminders.EmailDigest)

		protected.GET("/goals", d.Goals.List)
		protected.POST("/goals", d.Goals.Create)
		protected.PUT("/goals/:id/progress", d.Goals.UpdateProgress)

		protected.GET("/insights", d.Insights.List)
		protected.POST("/insights/generate", d.Insights.Generate)
		protected.POST("/insights/:id/read", d.Insights.MarkRead)

		protected.POST("/consultations", d.Consultations.Analyze)
		protected.GET("/consultations", d.Consultations.History)

		protected.POST("/notifications/register", d.Notifications.RegisterDevice)

		protected.GET("/ws", d.Realtime.EventsWS)
	}

	return r
}
