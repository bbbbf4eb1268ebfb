// Command entitylens annotates text given as arguments or on stdin
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"entitylens/internal/core/classifier"
	"entitylens/internal/core/extractor"
	"entitylens/internal/core/version"
	"entitylens/internal/platform/config"
	perr "entitylens/internal/platform/errors"
	"entitylens/internal/platform/logger"

	"entitylens/internal/services/annotate/domain"
	"entitylens/internal/services/annotate/service"
)

// exit codes
const (
	exitOK          = 0
	exitFailure     = 1
	exitUnavailable = 2
)

func mustSetEnv(k, v string) {
	if v != "" {
		_ = os.Setenv(k, v)
	}
}

func main() {
	if err := config.LoadDotenv(); err != nil {
		logger.Get().Warn().Err(err).Msg("dotenv load failed")
	}
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("entitylens", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		locale  = fs.String("locale", "", "output locale (BCP 47 or auto), default CORE_ANNOTATE_LOCALE or en")
		region  = fs.String("region", "", "home dialing region, default CORE_ANNOTATE_REGION or US")
		tz      = fs.String("tz", "", "IANA time zone for dates, default CORE_ANNOTATE_TIMEZONE or UTC")
		pack    = fs.String("pack", "", "rule pack file, default embedded pack")
		asJSON  = fs.Bool("json", false, "print the full run as JSON")
		timeout = fs.Duration("timeout", 10*time.Second, "overall deadline")
		showVer = fs.Bool("version", false, "print version and exit")
	)
	if err := fs.Parse(args); err != nil {
		return exitFailure
	}
	if *showVer {
		_, _ = fmt.Fprintln(stdout, version.Info())
		return exitOK
	}

	// push flags into CORE_ANNOTATE_* so the service reads one config surface
	mustSetEnv("CORE_ANNOTATE_LOCALE", *locale)
	mustSetEnv("CORE_ANNOTATE_REGION", *region)
	mustSetEnv("CORE_ANNOTATE_TIMEZONE", *tz)
	mustSetEnv("CORE_ANNOTATE_PACK_PATH", *pack)

	text := strings.Join(fs.Args(), " ")
	if fs.NArg() == 0 {
		b, err := io.ReadAll(stdin)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "entitylens: read stdin: %v\n", err)
			return exitFailure
		}
		text = strings.TrimRight(string(b), "\r\n")
	}

	cfg := config.New().Prefix("CORE_ANNOTATE_")
	opt := service.FromConfig(cfg)
	clf := classifier.New(extractor.Backend{
		PackPath: cfg.MayString("PACK_PATH", ""),
		Region:   opt.Region,
		Location: opt.Location,
	}, classifier.Options{})
	defer func() { _ = clf.Close() }()
	// the CLI has no per-run length cap beyond memory
	opt.MaxText = 0

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	out, err := service.New(clf, opt).Annotate(ctx, domain.AnnotateInput{Text: text, Locale: opt.Locale})
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "entitylens: %v\n", err)
		if perr.IsCode(err, perr.ErrorCodeModelUnavailable) {
			return exitUnavailable
		}
		return exitFailure
	}
	for _, d := range out.Diagnostics {
		_, _ = fmt.Fprintf(stderr, "entitylens: %s: %s\n", d.Stage, d.Message)
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			_, _ = fmt.Fprintf(stderr, "entitylens: encode: %v\n", err)
			return exitFailure
		}
		return exitOK
	}
	if out.Text != "" {
		_, _ = fmt.Fprintln(stdout, out.Text)
	}
	return exitOK
}
