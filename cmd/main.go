package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/manjiriciklum/WellnessSage-sub000/audit"
	"github.com/manjiriciklum/WellnessSage-sub000/config"
	"github.com/manjiriciklum/WellnessSage-sub000/controllers"
	"github.com/manjiriciklum/WellnessSage-sub000/crypto"
	"github.com/manjiriciklum/WellnessSage-sub000/routes"
	"github.com/manjiriciklum/WellnessSage-sub000/services"
	"github.com/manjiriciklum/WellnessSage-sub000/storage"
	"github.com/manjiriciklum/WellnessSage-sub000/utils"
)

func main() {
	cfg := config.Load()

	enc, err := crypto.NewFromEnv()
	if err != nil {
		log.Fatalf("encryption init failed: %v", err)
	}

	auditor, err := audit.New(cfg.AuditLogDir)
	if err != nil {
		log.Fatalf("audit log init failed: %v", err)
	}

	mem := storage.NewMemStore(enc)

	var primary storage.Primary
	if cfg.MongoURI != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		mongo, err := storage.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDBName, mem, enc)
		cancel()
		if err != nil {
			log.Printf("mongo unavailable at startup, serving from memory: %v", err)
		} else {
			primary = mongo
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = mongo.Disconnect(ctx)
			}()
		}
	} else {
		log.Println("MONGO_URI not set, serving from memory only")
	}

	provider := storage.NewProvider(mem, primary, enc, auditor)

	hub := services.NewRealtimeHub()
	push, err := services.NewPushService(provider, cfg.AWSRegion, cfg.SNSFcmARN)
	if err != nil {
		log.Fatalf("push service init failed: %v", err)
	}
	mailer, err := utils.NewMailer(cfg.AWSRegion, cfg.SESSender)
	if err != nil {
		log.Fatalf("mailer init failed: %v", err)
	}
	uploader, err := utils.NewUploader(cfg.AWSRegion, cfg.S3Bucket)
	if err != nil {
		log.Fatalf("uploader init failed: %v", err)
	}

	syncSvc := services.NewSyncService(provider)
	consultSvc := services.NewConsultationService(provider, nil)
	insightSvc := services.NewInsightService(provider, hub, push)

	r := routes.SetupRouter(routes.Deps{
		Provider:   provider,
		Auditor:    auditor,
		Production: cfg.IsProduction(),

		Auth:          controllers.NewAuthController(provider, mailer),
		Users:         controllers.NewUserController(provider, uploader),
		HealthData:    controllers.NewHealthDataController(provider),
		Devices:       controllers.NewDeviceController(provider, syncSvc),
		Reminders:     controllers.NewReminderController(provider, hub, mailer),
		Goals:         controllers.NewGoalController(provider),
		Insights:      controllers.NewInsightController(provider, insightSvc),
		Consultations: controllers.NewConsultationController(consultSvc),
		Doctors:       controllers.NewDoctorController(provider),
		Notifications: controllers.NewNotificationController(push),
		Realtime:      controllers.NewRealtimeController(hub),
		System:        controllers.NewSystemController(provider),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("listening on :%s (%s)", cfg.Port, cfg.AppEnv)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
