package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/polyclinic/clinic-api/config"
	"github.com/polyclinic/clinic-api/internal/handler"
	appointmentHandler "github.com/polyclinic/clinic-api/internal/handler/appointment"
	cabinetHandler "github.com/polyclinic/clinic-api/internal/handler/cabinet"
	doctorHandler "github.com/polyclinic/clinic-api/internal/handler/doctor"
	patientHandler "github.com/polyclinic/clinic-api/internal/handler/patient"
	specializationHandler "github.com/polyclinic/clinic-api/internal/handler/specialization"
	"github.com/polyclinic/clinic-api/internal/middleware"
	"github.com/polyclinic/clinic-api/internal/repository/postgres"
	"github.com/polyclinic/clinic-api/internal/router"
	"github.com/polyclinic/clinic-api/internal/seed"
	appointmentService "github.com/polyclinic/clinic-api/internal/service/appointment"
	cabinetService "github.com/polyclinic/clinic-api/internal/service/cabinet"
	doctorService "github.com/polyclinic/clinic-api/internal/service/doctor"
	patientService "github.com/polyclinic/clinic-api/internal/service/patient"
	specializationService "github.com/polyclinic/clinic-api/internal/service/specialization"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx := context.Background()
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure database schema")
	}

	// Initialize repositories
	patientRepo := postgres.NewPatientRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	specializationRepo := postgres.NewSpecializationRepository(db)
	cabinetRepo := postgres.NewCabinetRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)

	if cfg.SeedData {
		if err := seed.Run(ctx, specializationRepo, cabinetRepo); err != nil {
			log.Fatal().Err(err).Msg("failed to seed reference data")
		}
	}

	// Initialize services
	patientSvc := patientService.NewService(patientRepo)
	doctorSvc := doctorService.NewService(doctorRepo, specializationRepo, cabinetRepo, appointmentRepo)
	specializationSvc := specializationService.NewService(specializationRepo, doctorRepo)
	cabinetSvc := cabinetService.NewService(cabinetRepo, doctorRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo, patientRepo, doctorRepo)

	// Setup router
	r := router.NewRouter(
		router.Config{
			RateLimitRPS:   cfg.RateLimit.RPS,
			RateLimitBurst: cfg.RateLimit.Burst,
			RequestTimeout: cfg.Server.RequestTimeout,
			CORS:           middleware.DefaultCORSConfig(),
			MetricsPrefix:  "clinic_api",
		},
		handler.NewHealthHandler(db),
		patientHandler.NewHandler(patientSvc),
		doctorHandler.NewHandler(doctorSvc),
		specializationHandler.NewHandler(specializationSvc),
		cabinetHandler.NewHandler(cabinetSvc),
		appointmentHandler.NewHandler(appointmentSvc),
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
