package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/skyaktech/tlq/internal/config"
	tlqhttp "github.com/skyaktech/tlq/internal/http"
	"github.com/skyaktech/tlq/internal/metrics"
	"github.com/skyaktech/tlq/internal/service"
	"github.com/skyaktech/tlq/internal/storage"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	cfg := config.Load()

	log := buildLogger(cfg.LogLevel)
	defer log.Sync()
	log = log.Named("main")

	rec := metrics.New(prometheus.DefaultRegisterer)

	store := storage.NewMemory(log, rec)
	msgSvc := service.New(log, store, cfg.MaxMessageSize)
	statsSvc := service.NewStatsService(store.Depths, 200*time.Millisecond)

	gin.SetMode(gin.ReleaseMode)
	r := tlqhttp.NewRouter(log, cfg, msgSvc, statsSvc)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,

		ReadTimeout:    10 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 15, // 32 KiB

		ErrorLog: zap.NewStdLog(log.Named("http").WithOptions(zap.AddCallerSkip(1))),
	}

	log.Info("running HTTP server", zap.Uint16("port", cfg.Port), zap.Int("max_message_size", cfg.MaxMessageSize))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("server failed", zap.Error(err))
	}
}

// buildLogger mirrors the teacher's zap setup in cmd/zmux-server and
// cmd/bulk-delete: color level encoder, no timestamp key, no stacktrace,
// no caller, level driven by TLQ_LOG_LEVEL.
func buildLogger(level string) *zap.Logger {
	logConfig := zap.NewDevelopmentConfig()
	logConfig.EncoderConfig.TimeKey = ""
	logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logConfig.DisableStacktrace = true
	logConfig.DisableCaller = true

	if level == "warning" {
		level = "warn" // zapcore.Level has no "warning" alias
	}
	if level == "trace" {
		level = "debug" // zapcore.Level has no trace level; debug is its most verbose
	}
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zap.InfoLevel
	}
	logConfig.Level.SetLevel(zapLevel)

	return zap.Must(logConfig.Build())
}
