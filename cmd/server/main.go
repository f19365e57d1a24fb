package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/stridesense/stridesense-backend-go/internal/api"
	"github.com/stridesense/stridesense-backend-go/internal/config"
	"github.com/stridesense/stridesense-backend-go/internal/database"
	"github.com/stridesense/stridesense-backend-go/internal/handler"
	"github.com/stridesense/stridesense-backend-go/internal/influx"
	"github.com/stridesense/stridesense-backend-go/internal/logging"
	"github.com/stridesense/stridesense-backend-go/internal/repository"
	"github.com/stridesense/stridesense-backend-go/internal/service"
	"github.com/stridesense/stridesense-backend-go/internal/strava"
)

func main() {
	configDir := flag.String("config", ".", "directory containing stridesense.{json,yaml}")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(*configDir)
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("Failed to load config")
	}

	log := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)
	gin.SetMode(cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 初始化数据库
	if err := database.Init(database.Config{Path: cfg.DB.Path}, log); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer database.Close()
	db := database.GetDB()

	client := strava.New(strava.Options{
		APIURL:       cfg.Strava.APIURL,
		OAuthURL:     cfg.Strava.OAuthURL,
		ClientID:     cfg.Strava.ClientID,
		ClientSecret: cfg.Strava.ClientSecret,
		RedirectURI:  cfg.Strava.RedirectURI,
		Timeout:      cfg.Strava.Timeout,
	})
	if cfg.Strava.ClientID == "" {
		log.Warn().Msg("strava.client_id is not set, login will fail")
	}

	var sink service.ResultSink
	if cfg.Influx.Enabled {
		s, err := influx.NewSink(ctx, influx.Options{
			URL:    cfg.Influx.URL,
			Token:  cfg.Influx.Token,
			Org:    cfg.Influx.Org,
			Bucket: cfg.Influx.Bucket,
		}, log)
		if err != nil {
			log.Warn().Err(err).Msg("InfluxDB unavailable, analysis results will not be exported")
		} else {
			defer s.Close()
			sink = s
		}
	}

	authService := service.NewAuthService(client, cfg.JWT.Secret, cfg.JWT.TTL)
	activityService := service.NewActivityService(
		client,
		repository.NewActivityRepository(db),
		repository.NewStreamRepository(db),
		log,
	)
	viewService := service.NewViewService(activityService, sink, log)

	// 初始化路由
	router := api.SetupRouter(ctx, cfg, api.Handlers{
		Auth:     handler.NewAuthHandler(authService, cfg.Frontend.URL, log),
		Activity: handler.NewActivityHandler(activityService),
		View:     handler.NewViewHandler(viewService),
	}, authService, log)

	srv := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Server shutdown failed")
		}
	}()

	// 启动服务器
	log.Info().Str("port", cfg.Server.Port).Msg("Server starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
	log.Info().Msg("Server stopped")
}
