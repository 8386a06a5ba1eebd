package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/sdevrieze/urenloop/config"
	"github.com/sdevrieze/urenloop/db"
	"github.com/sdevrieze/urenloop/handlers"
	applog "github.com/sdevrieze/urenloop/logger"
	"github.com/sdevrieze/urenloop/logos"
	"github.com/sdevrieze/urenloop/metrics"
	mw "github.com/sdevrieze/urenloop/middleware"
)

func main() {
	cfg := config.Load()
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	bdb := db.Setup(cfg)
	defer bdb.Close()

	if err := db.CreateTables(context.Background(), bdb); err != nil {
		logger.Fatal("create tables failed", zap.Error(err))
	}

	logoStore, err := logos.Open(context.Background(), cfg)
	if err != nil {
		logger.Fatal("open logo store failed", zap.Error(err))
	}

	h := handlers.New(bdb, cfg.JWTKey(), cfg.AllowedKringen, cfg.FinishHour, cfg.FinishMinute, logoStore)

	e := echo.New()
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.Int("status", v.Status),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			switch {
			case v.Status >= 500:
				logger.Error("http request", fields...)
			case v.Status >= 400:
				logger.Warn("http request", fields...)
			default:
				logger.Info("http request", fields...)
			}
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"*", "Authorization"},
		AllowCredentials: true,
	}))

	// Public – signin plus everything the dashboard screens poll.
	e.POST("/api/signin", h.Signin)
	e.GET("/api/leaderboard/individual", h.IndividualBoard)
	e.GET("/api/leaderboard/group", h.GroupBoard)
	e.GET("/api/leaderboard/kringen", h.KringenBoard)
	e.GET("/api/statistics", h.Statistics)
	e.GET("/api/global-state", h.GetGlobalState)
	e.GET("/api/competition", h.GetCompetition)
	e.GET("/api/groups", h.GetGroups)
	e.GET("/api/kringen", h.GetKringen)
	e.GET("/api/kringen/:name/logo", h.KringLogo)
	e.GET("/metrics", metrics.Handler())

	// Protected – registration desk and control room operations.
	api := e.Group("/api", mw.JWT(cfg.JWTKey()))
	api.GET("/runners/search", h.SearchRunners)
	api.GET("/controls", h.ControlsData)
	api.POST("/runners", h.CreateRunner)
	api.GET("/queue", h.GetQueue)
	api.POST("/queue", h.AddToQueue)
	api.DELETE("/queue", h.RemoveFromQueue)
	api.POST("/queue/reorder", h.ReorderQueue)
	api.POST("/laps/start", h.StartLap)
	api.POST("/laps/start-next", h.StartNextRunner)
	api.POST("/laps/stop", h.StopLap)
	api.POST("/laps/undo", h.UndoStart)
	api.POST("/global-state", h.UpdateGlobalState)
	api.POST("/competition", h.UpdateCompetition)
	api.POST("/groups", h.CreateGroup)

	if cfg.EnableDevReset {
		logger.Warn("dev-reset endpoint enabled")
		api.POST("/dev-reset", h.DevReset)
	}

	if cfg.Debug {
		logger.Info("starting server", zap.String("mode", "debug"), zap.String("addr", cfg.Port))
		if err := e.Start(cfg.Port); err != nil {
			logger.Fatal("server exited", zap.Error(err))
		}
		return
	}

	autoTLS := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		Cache:      autocert.DirCache(".cache"),
		HostPolicy: autocert.HostWhitelist(cfg.TLSDomains...),
	}

	s := &http.Server{
		Addr:         ":443",
		Handler:      e,
		TLSConfig:    autoTLS.TLSConfig(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	if err := s.ListenAndServeTLS("", ""); err != http.ErrServerClosed {
		logger.Error("tls server exited", zap.Error(err))
		os.Exit(1)
	}
}
