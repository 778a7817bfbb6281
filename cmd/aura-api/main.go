package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/aurasystem/aura-api/api/swagger"
	"github.com/aurasystem/aura-api/internal/handler"
	"github.com/aurasystem/aura-api/internal/middleware"
	"github.com/aurasystem/aura-api/internal/models"
	"github.com/aurasystem/aura-api/internal/repository"
	"github.com/aurasystem/aura-api/internal/service"
	"github.com/aurasystem/aura-api/pkg/cache"
	"github.com/aurasystem/aura-api/pkg/config"
	"github.com/aurasystem/aura-api/pkg/database"
	"github.com/aurasystem/aura-api/pkg/logger"
	corsmiddleware "github.com/aurasystem/aura-api/pkg/middleware/cors"
	reqidmiddleware "github.com/aurasystem/aura-api/pkg/middleware/requestid"
)

// @title Aura System API
// @version 1.0.0
// @description Scheduling and plan entitlement API for aesthetics clinics
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
		defer rdb.Close()
	}

	companyRepo := repository.NewCompanyRepository(db)
	planRepo := repository.NewPlanRepository(db)
	ruleRepo := repository.NewUnavailabilityRepository(db)
	apptRepo := repository.NewAppointmentRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	professionalRepo := repository.NewProfessionalRepository(db)

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	planCache := service.NewPlanCache(planRepo, cfg.Plans.CacheTTL, logr, nil)
	entitlementSvc := service.NewEntitlementService(planCache, logr, nil)
	availabilitySvc := service.NewAvailabilityService(logr)
	appointmentSvc := service.NewAppointmentService(
		apptRepo, ruleRepo, professionalRepo,
		availabilitySvc, entitlementSvc, validate, logr,
		service.AppointmentServiceConfig{DefaultDurationMin: cfg.Scheduling.DefaultDurationMin},
	)
	settingsSvc := service.NewSettingsService(companyRepo, ruleRepo, entitlementSvc, validate, logr)
	rosterSvc := service.NewRosterService(patientRepo, professionalRepo, entitlementSvc, validate, logr)
	planSvc := service.NewPlanService(planRepo, planCache, rdb, cfg.Plans.InvalidateChannel, logr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go planSvc.ListenInvalidations(ctx)

	appointmentHandler := handler.NewAppointmentHandler(appointmentSvc, metricsSvc)
	settingsHandler := handler.NewSettingsHandler(settingsSvc)
	rosterHandler := handler.NewRosterHandler(rosterSvc)
	planHandler := handler.NewPlanHandler(planSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	if cfg.Metrics.Enabled {
		r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	plans := api.Group("/plans")
	{
		plans.GET("", planHandler.List)
		plans.DELETE("/cache", planHandler.InvalidateCache)
	}

	tenant := api.Group("")
	tenant.Use(middleware.CompanyContext(companyRepo))

	appointments := tenant.Group("/appointments")
	appointments.Use(middleware.RequireModule(entitlementSvc, metricsSvc, models.ModuleScheduling))
	{
		appointments.GET("", appointmentHandler.List)
		appointments.GET("/availability", appointmentHandler.CheckAvailability)
		appointments.POST("", middleware.RequireWritable(entitlementSvc, metricsSvc), appointmentHandler.Create)
		appointments.DELETE("/:id", middleware.RequireWritable(entitlementSvc, metricsSvc), appointmentHandler.Cancel)
	}

	patients := tenant.Group("/patients")
	patients.Use(middleware.RequireModule(entitlementSvc, metricsSvc, models.ModulePatients))
	{
		patients.GET("", rosterHandler.ListPatients)
		patients.POST("", middleware.RequireWritable(entitlementSvc, metricsSvc), rosterHandler.CreatePatient)
	}

	professionals := tenant.Group("/professionals")
	{
		professionals.GET("", rosterHandler.ListProfessionals)
		professionals.POST("", middleware.RequireWritable(entitlementSvc, metricsSvc), rosterHandler.CreateProfessional)
	}

	settings := tenant.Group("/settings")
	{
		settings.GET("/business-hours", settingsHandler.GetBusinessHours)
		settings.PUT("/business-hours", middleware.RequireWritable(entitlementSvc, metricsSvc), settingsHandler.UpdateBusinessHours)
		settings.GET("/unavailability", settingsHandler.ListUnavailability)
		settings.POST("/unavailability", middleware.RequireWritable(entitlementSvc, metricsSvc), settingsHandler.CreateUnavailability)
		settings.DELETE("/unavailability/:id", middleware.RequireWritable(entitlementSvc, metricsSvc), settingsHandler.DeleteUnavailability)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
