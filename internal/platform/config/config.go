// Package config handles application configuration via environment variables
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"entitylens/internal/platform/logger"
)

// Conf is a namespaced view over environment variables, e.g. "CORE_API_" or "CORE_ANNOTATE_"
type Conf struct{ prefix string }

// New creates a root Conf (no prefix)
func New() Conf { return Conf{} }

// Prefix creates a child Conf with an additional prefix, e.g. cfg.Prefix("ANNOTATE_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

func (c Conf) lookup(k string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(c.key(k)))
	return v, v != ""
}

// must parses a required key; missing or invalid values panic through the logger
func must[T any](c Conf, key, kind string, parse func(string) (T, error)) T {
	s, ok := c.lookup(key)
	if !ok {
		logger.Get().Panic().Str("key", c.key(key)).Msg("missing required env")
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Panic().Err(err).Str("key", c.key(key)).Str("value", s).Msgf("invalid %s value", kind)
	}
	return v
}

// may parses an optional key; invalid values log a warning and fall back to def
func may[T any](c Conf, key, kind string, def T, parse func(string) (T, error)) T {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Err(err).Str("key", c.key(key)).Str("value", s).
			Interface("default", def).Msgf("invalid %s; using default", kind)
		return def
	}
	return v
}

func parseString(s string) (string, error) { return s, nil }

// parseAddr accepts "4000" or "host:port"
func parseAddr(s string) (string, error) {
	if !strings.Contains(s, ":") {
		p, err := strconv.Atoi(s)
		if err != nil || p < 1 || p > 65535 {
			return "", fmt.Errorf("port %q out of range 1..65535", s)
		}
		return ":" + s, nil
	}
	if _, _, err := net.SplitHostPort(s); err != nil {
		return "", err
	}
	return s, nil
}

// MustString panics if the key is missing or blank
func (c Conf) MustString(key string) string { return must(c, key, "string", parseString) }

// MustDuration panics if the key is missing or not a Go duration (250ms, 2s, 1h)
func (c Conf) MustDuration(key string) time.Duration {
	return must(c, key, "duration", time.ParseDuration)
}

// MayString returns the value or def if missing/empty
func (c Conf) MayString(key, def string) string { return may(c, key, "string", def, parseString) }

// MayInt returns the value or def if missing/empty; logs and returns def if invalid
func (c Conf) MayInt(key string, def int) int { return may(c, key, "int", def, strconv.Atoi) }

// MayBool returns the value or def if missing/empty; logs and returns def if invalid
func (c Conf) MayBool(key string, def bool) bool { return may(c, key, "bool", def, strconv.ParseBool) }

// MayDuration returns the value or def if missing/empty; logs and returns def if invalid
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, "duration", def, time.ParseDuration)
}

// MayAddr returns a listen address; a bare port becomes ":port"
func (c Conf) MayAddr(key, def string) string { return may(c, key, "listen address", def, parseAddr) }

// MayLocation resolves an IANA zone name; logs and returns def if unknown
func (c Conf) MayLocation(key string, def *time.Location) *time.Location {
	return may(c, key, "time zone", def, time.LoadLocation)
}

// MayCSV splits a comma separated value, dropping blanks; def when nothing remains
func (c Conf) MayCSV(key string, def []string) []string {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
