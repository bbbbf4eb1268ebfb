// Package modkit provides module wiring and core deps
package modkit

import (
	"entitylens/internal/platform/config"
	"entitylens/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// entities are never persisted, so there is no store here
type Deps struct {
	Log *logger.Logger
	Cfg config.Conf
}

// Logger returns Log or a component logger when Log is unset
func (d Deps) Logger(component string) *logger.Logger {
	if d.Log != nil {
		l := d.Log.With().Str("component", component).Logger()
		return &l
	}
	return logger.Named(component)
}
