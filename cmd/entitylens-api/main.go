// @title         entitylens API
// @version       1.0
// @description   Entity classification and line formatting over free text

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"entitylens/internal/platform/config"
	"entitylens/internal/platform/logger"
	phttp "entitylens/internal/platform/net/http"

	"entitylens/internal/services/api"
)

func main() {
	// .env first so both logger and config see it
	dotenvErr := config.LoadDotenv()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	l := logger.Get()
	if dotenvErr != nil {
		l.Warn().Err(dotenvErr).Msg("dotenv load failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// http server (reads CORE_API_API_PORT)
	srv := phttp.NewServer(apiCfg)

	mounted := api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			Token:          apiCfg.MayString("TOKEN", ""),
			Timeout:        apiCfg.MayDuration("TIMEOUT", 30*time.Second),
			CORSOrigins:    apiCfg.MayCSV("CORS_ORIGINS", nil),
			WarmTimeout:    apiCfg.MayDuration("WARM_TIMEOUT", 10*time.Second),
			MaxInFlight:    apiCfg.MayInt("MAX_INFLIGHT", 0),
		},
	)
	defer func() {
		if err := mounted.Close(); err != nil {
			l.Error().Err(err).Msg("failed to release model")
		}
	}()

	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
	}
}
