package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/build-with-chris/pepe-api/api/swagger"
	"github.com/build-with-chris/pepe-api/internal/handler"
	"github.com/build-with-chris/pepe-api/internal/middleware"
	"github.com/build-with-chris/pepe-api/internal/repository"
	"github.com/build-with-chris/pepe-api/internal/service"
	"github.com/build-with-chris/pepe-api/pkg/cache"
	"github.com/build-with-chris/pepe-api/pkg/config"
	"github.com/build-with-chris/pepe-api/pkg/database"
	"github.com/build-with-chris/pepe-api/pkg/logger"
	"github.com/build-with-chris/pepe-api/pkg/mail"
	corsmiddleware "github.com/build-with-chris/pepe-api/pkg/middleware/cors"
	reqidmiddleware "github.com/build-with-chris/pepe-api/pkg/middleware/requestid"
)

// @title Pepe Booking API
// @version 0.1.0
// @description Artist agency backend: availability, bookings, gage
// @BasePath /api
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
		logr.Sugar().Fatalw("postgres connection failed", "error", err)
	}
	defer db.Close()

	// Redis is optional; the cache repository degrades to pass-through
	// when the client is nil.
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, gallery cache disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()

	artistRepo := repository.NewArtistRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	var mailer mail.Sender = mail.NopMailer{}
	if cfg.Mail.Enabled {
		mailer = mail.NewSMTPMailer(cfg.Mail)
	}

	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(artistRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	artistSvc := service.NewArtistService(artistRepo, cacheRepo, validate, logr, cfg.Gallery.CacheTTL)
	availabilitySvc := service.NewAvailabilityService(availabilityRepo, validate, logr)
	gageSvc := service.NewGageService(artistRepo, validate, logr, cfg.Gage.BaseMin, cfg.Gage.BaseMax)
	pricingSvc := service.NewPricingService(service.PricingConfig{
		PrivateMinFactor: cfg.Pricing.PrivateMinFactor,
		RatePerKm:        cfg.Pricing.RatePerKm,
		AgencyFeePct:     cfg.Pricing.AgencyFeePct,
	}, logr)
	bookingSvc := service.NewBookingService(bookingRepo, artistRepo, pricingSvc, mailer, validate, logr,
		cfg.Mail.AgencyTo, cfg.Gage.BaseMin, cfg.Gage.BaseMax)

	authHandler := handler.NewAuthHandler(authSvc)
	artistHandler := handler.NewArtistHandler(artistSvc, metricsSvc)
	availabilityHandler := handler.NewAvailabilityHandler(availabilitySvc, artistSvc, metricsSvc)
	gageHandler := handler.NewGageHandler(gageSvc, artistSvc)
	bookingHandler := handler.NewBookingHandler(bookingSvc, artistSvc, metricsSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/healthz", func(c *gin.Context) {
		var one int
		if err := db.GetContext(c.Request.Context(), &one, "SELECT 1"); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/auth/login", authHandler.Login)
		api.GET("/artists", artistHandler.List)
		api.GET("/artists/:id", artistHandler.Get)
		api.POST("/requests", bookingHandler.Create)
		api.POST("/requests/estimate", bookingHandler.Estimate)
	}

	authed := r.Group(cfg.APIPrefix)
	authed.Use(middleware.JWT(authSvc))
	{
		authed.GET("/artists/me", artistHandler.Me)
		authed.POST("/artists/me/ensure", artistHandler.Ensure)
		authed.PUT("/artists/me", artistHandler.UpdateMe)

		authed.GET("/availability", availabilityHandler.List)
		authed.POST("/availability", availabilityHandler.Add)
		authed.POST("/availability/range", availabilityHandler.AddRange)
		authed.POST("/availability/rule", availabilityHandler.AddRule)
		authed.DELETE("/availability/:id", availabilityHandler.Remove)
		authed.GET("/availability/export.csv", availabilityHandler.ExportCSV)
		authed.GET("/availability/calendar.ics", availabilityHandler.ICalFeed)

		authed.GET("/artists/me/gage-criteria", gageHandler.GetCriteria)
		authed.PUT("/artists/me/gage-criteria", gageHandler.UpdateCriteria)
		authed.GET("/artists/me/gage-calculation", gageHandler.Breakdown)
		authed.GET("/artists/me/gage-calculation.pdf", gageHandler.ExportBreakdownPDF)

		authed.GET("/requests", bookingHandler.ListMine)
	}

	admin := r.Group(cfg.APIPrefix)
	admin.Use(middleware.JWT(authSvc), middleware.AdminOnly())
	{
		admin.PUT("/artists/:id/approval", artistHandler.SetApproval)
		admin.PUT("/artists/:id/gage-override", gageHandler.SetOverride)
		admin.POST("/artists/gage-recalculate", gageHandler.RecalculateAll)
		admin.GET("/requests/all", bookingHandler.ListAll)
		admin.GET("/requests/:id", bookingHandler.Get)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
