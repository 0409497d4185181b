// main.go
package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/akbrdhia/SAKO-Backend/config"
	"github.com/akbrdhia/SAKO-Backend/controllers"
	"github.com/akbrdhia/SAKO-Backend/middlewares"
	"github.com/akbrdhia/SAKO-Backend/models"
	"github.com/akbrdhia/SAKO-Backend/routes"
	"github.com/akbrdhia/SAKO-Backend/scheduler"
	"github.com/akbrdhia/SAKO-Backend/service"
	"github.com/akbrdhia/SAKO-Backend/utils"
)

func main() {
	// .env opsional (dev); di production semua dari env hosting
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if config.GetEnv("APP_ENV", "development") == "development" {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		utils.JWTSecret = []byte(secret)
	}

	config.ConnectDB()
	db := config.DB

	if err := db.AutoMigrate(
		&models.Koperasi{},
		&models.User{},
		&models.Simpanan{},
		&models.Pinjaman{},
		&models.JadwalCicilan{},
		&models.PembayaranCicilan{},
		&models.EmailLog{},
		&models.AuditLog{},
	); err != nil {
		log.WithError(err).Fatal("migrasi database gagal")
	}

	config.SeedKoperasi()

	cicilanCfg := config.LoadCicilanConfig()

	mailer := utils.NewMailer(
		os.Getenv("SMTP_HOST"),
		config.GetEnv("SMTP_PORT", "587"),
		os.Getenv("SMTP_USERNAME"),
		os.Getenv("SMTP_PASSWORD"),
		config.GetEnv("SMTP_FROM", "noreply@koperasi.local"),
		db, log,
	)

	pinjamanSvc := service.NewPinjamanService(db, log, mailer)
	cicilanSvc := service.NewCicilanService(db, log, cicilanCfg)

	sched := scheduler.New(db, log, cicilanSvc, mailer, cicilanCfg)
	if err := sched.Start(); err != nil {
		log.WithError(err).Fatal("gagal start scheduler")
	}
	defer sched.Stop()

	if config.GetEnv("APP_ENV", "development") != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))

	routes.SetupRoutes(r, routes.Controllers{
		Auth:     controllers.NewAuthController(db, log),
		User:     controllers.NewUserController(db, log),
		Simpanan: controllers.NewSimpananController(db, log),
		Pinjaman: controllers.NewPinjamanController(db, log, pinjamanSvc),
		Cicilan:  controllers.NewCicilanController(db, log, cicilanSvc),
	})

	port := config.GetEnv("PORT", "8080")
	log.WithField("port", port).Info("server koperasi jalan")
	if err := r.Run(":" + port); err != nil {
		log.WithError(err).Fatal("server berhenti")
	}
}
