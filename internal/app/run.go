package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"shoresquad-server/internal/config"
	db "shoresquad-server/internal/db"
	httpapi "shoresquad-server/internal/httpapi"
	"shoresquad-server/internal/migrate"
	"shoresquad-server/internal/modules/beaches"
	"shoresquad-server/internal/modules/crews"
	crewservice "shoresquad-server/internal/modules/crews/service"
	"shoresquad-server/internal/modules/home"
	homecontroller "shoresquad-server/internal/modules/home/controller"
	"shoresquad-server/internal/modules/stats"
	"shoresquad-server/internal/modules/weather"
	weatherclient "shoresquad-server/internal/modules/weather/client"
	weatherservice "shoresquad-server/internal/modules/weather/service"
	"shoresquad-server/internal/mqtt"
	"shoresquad-server/internal/store"
	"shoresquad-server/internal/views"
)

func Run(ctx context.Context, cfg config.Config) error {
	logger := slog.Default()

	logger.Info("config loaded",
		"appEnv", cfg.AppEnv,
		"logLevel", cfg.LogLevel.String(),
		"httpAddr", cfg.HTTPAddr,
		"staticDir", cfg.StaticDir,
		"sqliteDriver", cfg.SQLiteDriver,
		"sqlitePath", cfg.SQLitePath,
		"sqliteMaxOpenConns", cfg.SQLiteMaxOpenConns,
		"sqliteMaxIdleConns", cfg.SQLiteMaxIdleConns,
		"sqliteConnMaxLifetime", cfg.SQLiteConnMaxLifetime,
		"weatherBaseURL", cfg.WeatherBaseURL,
		"weatherRefreshInterval", cfg.WeatherRefreshInterval,
		"mqttBroker", cfg.MQTTBroker,
		"mqttPort", cfg.MQTTPort,
		"mqttTopic", cfg.MQTTTopic,
		"corsAllowedOrigins", cfg.CORSAllowedOrigins,
	)

	dbConn, err := db.Open(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(dbConn); closeErr != nil {
			logger.Error("db close", "error", closeErr)
		}
	}()

	if err := migrate.Run(ctx, dbConn); err != nil {
		return err
	}

	repo := store.NewRepository(dbConn, logger.With("component", "store"))
	if err := repo.Seed(ctx); err != nil {
		return err
	}
	logger.Info("store ready")

	if err := views.LoadTemplates(); err != nil {
		return err
	}

	weatherClient := weatherclient.NewClient(cfg.WeatherBaseURL, cfg.WeatherHTTPTimeout, logger.With("component", "weather-client"))
	weatherService := weatherservice.NewService(weatherClient, logger.With("component", "weather"))
	weatherService.Start(ctx, cfg.WeatherRefreshInterval)
	defer weatherService.Stop()

	var publisher crewservice.Publisher
	if cfg.MQTTBroker != "" {
		mqttPublisher := mqtt.NewPublisher(cfg, logger.With("component", "mqtt"))
		// Short timeout so a missing broker does not hold up startup.
		connectCtx, connectCancel := context.WithTimeout(ctx, 5*time.Second)
		err := mqttPublisher.Connect(connectCtx)
		connectCancel()
		if err != nil {
			logger.Warn("mqtt connection failed (continuing without crew events)", "error", err)
		}
		defer func() {
			logger.Info("mqtt disconnecting")
			mqttPublisher.Disconnect()
		}()
		publisher = mqttPublisher
	} else {
		logger.Info("mqtt disabled (MQTT_BROKER not set)")
	}

	mux := httpapi.NewMux(dbConn, cfg.StaticDir)
	weather.RegisterFeature(mux, weatherService, logger)
	beachService, maps := beaches.RegisterFeature(mux, repo, logger)
	crewService := crews.RegisterFeature(mux, repo, publisher, logger)
	statsService := stats.RegisterFeature(mux, repo, logger)
	home.RegisterFeature(mux, homecontroller.Deps{
		Weather: weatherService,
		Beaches: beachService,
		Maps:    maps,
		Crews:   crewService,
		Stats:   statsService,
	}, logger)

	srv := httpapi.NewServer(cfg, mux)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http listening", "addr", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("http shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	err = <-errCh
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return ctx.Err()
}
