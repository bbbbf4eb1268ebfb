// Package api provides the HTTP API for the application
//
// @title       entitylens API
// @version     1.0
// @description Classifies free text into typed entities and renders one line per entity.
// @BasePath    /api/v1
package api

import (
	"time"

	"entitylens/internal/platform/config"
	"entitylens/internal/platform/logger"
	phttp "entitylens/internal/platform/net/http"

	"entitylens/internal/modkit"
	"entitylens/internal/modkit/httpkit"
	"entitylens/internal/modkit/module"
	"entitylens/internal/modkit/swaggerkit"

	annotatemod "entitylens/internal/services/annotate/module"
	metahttp "entitylens/internal/services/api/meta/http"
	metamod "entitylens/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
	// Token enables bearer auth on annotate routes when set
	Token string
	// Timeout bounds every API request
	Timeout     time.Duration
	CORSOrigins []string
	// WarmTimeout loads the model at mount when > 0
	WarmTimeout time.Duration
	// MaxInFlight caps concurrent API requests; 0 is unlimited
	MaxInFlight int
}

// Mounted is the running API; Close releases the model
type Mounted struct {
	annotate *annotatemod.Module
}

// Close releases resources held by mounted modules
func (m *Mounted) Close() error { return m.annotate.Close() }

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) *Mounted {
	deps := modkit.Deps{
		Log: opt.Logger,
		Cfg: opt.Config,
	}

	annotate := annotatemod.New(deps, modkit.WithTimeout(opt.Timeout)).(*annotatemod.Module)
	model := module.MustPortsOf[annotatemod.Ports](annotate).Model

	meta := metamod.New(deps, metamod.Options{
		Checks: []metahttp.Check{{Name: "model", Pinger: model}},
	})

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	stack := httpkit.CommonStack(httpkit.StackOptions{
		Timeout:     opt.Timeout,
		CORSOrigins: opt.CORSOrigins,
		MaxInFlight: opt.MaxInFlight,
	})
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		meta.MountRoutes(api)
		httpkit.Protected(api, httpkit.StaticToken(opt.Token, "token"), func(pr httpkit.Router) {
			annotate.MountRoutes(pr)
		})
	})

	if opt.WarmTimeout > 0 {
		annotate.Warm(opt.WarmTimeout)
	}
	deps.Logger("api").Info().
		Bool("swagger", opt.EnableSwagger).
		Bool("profiler", opt.EnableProfiler).
		Bool("auth", opt.Token != "").
		Msg("api mounted")
	return &Mounted{annotate: annotate}
}
