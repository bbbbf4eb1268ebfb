// Package service implements the annotate API over the annotation pipeline
package service

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"entitylens/internal/core/classifier"
	"entitylens/internal/core/entity"
	"entitylens/internal/core/format"
	"entitylens/internal/core/langhint"
	"entitylens/internal/core/phone"
	"entitylens/internal/core/pipeline"
	"entitylens/internal/platform/config"
	perr "entitylens/internal/platform/errors"
	"entitylens/internal/platform/logger"
	pstrings "entitylens/internal/platform/strings"
	"entitylens/internal/services/annotate/domain"
)

// Options are the service defaults, read from CORE_ANNOTATE_*
type Options struct {
	Locale   string
	Region   string
	Location *time.Location
	// MaxText caps input length in runes, 0 disables the cap
	MaxText int
}

// FromConfig reads Options from a CORE_ANNOTATE_ prefixed view
func FromConfig(cfg config.Conf) Options {
	return Options{
		Locale:   cfg.MayString("LOCALE", format.DefaultLocale),
		Region:   cfg.MayString("REGION", phone.DefaultRegion),
		Location: cfg.MayLocation("TIMEZONE", time.UTC),
		MaxText:  cfg.MayInt("MAX_TEXT", domain.DefaultMaxText),
	}
}

// Service is the concrete implementation of domain.ServicePort
type Service struct {
	clf classifier.Classifier
	opt Options

	mu         sync.Mutex
	registries map[string]*format.Registry
}

var _ domain.ServicePort = (*Service)(nil)

// New constructs an annotate service over a shared classifier
func New(clf classifier.Classifier, opt Options) *Service {
	if clf == nil {
		panic("annotate.Service requires a non-nil classifier")
	}
	if opt.Location == nil {
		opt.Location = time.UTC
	}
	return &Service{clf: clf, opt: opt, registries: map[string]*format.Registry{}}
}

// Annotate classifies in.Text and renders one line per entity
func (s *Service) Annotate(ctx context.Context, in domain.AnnotateInput) (domain.AnnotateOutput, error) {
	if s.opt.MaxText > 0 && utf8.RuneCountInString(in.Text) > s.opt.MaxText {
		return domain.AnnotateOutput{}, perr.WithField(
			perr.Newf(perr.ErrorCodeValidation, "text must be at most %d characters", s.opt.MaxText), "text")
	}

	locale := langhint.Resolve(in.Locale, in.Text, s.opt.Locale)
	reg, err := s.registry(locale, pstrings.FirstNonBlank(in.Region, s.opt.Region))
	if err != nil {
		return domain.AnnotateOutput{}, err
	}

	lines, rep, err := pipeline.New(s.clf, reg).Collect(ctx, in.Text)
	if err != nil {
		return domain.AnnotateOutput{}, err
	}
	if lines == nil {
		lines = []string{}
	}
	logger.C(ctx).Debug().
		Str("locale", reg.Locale()).
		Int("entities", rep.Entities).
		Dur("elapsed", rep.Elapsed).
		Msg("annotated")

	return domain.AnnotateOutput{
		RunID:       rep.RunID,
		Locale:      reg.Locale(),
		Lines:       lines,
		Text:        strings.Join(lines, "\n"),
		Spans:       rep.Spans,
		Entities:    rep.Entities,
		Diagnostics: rep.Diagnostics,
	}, nil
}

// Kinds lists every kind with its template in the requested language
func (s *Service) Kinds(_ context.Context, in domain.KindsInput) (domain.KindsOutput, error) {
	reg, err := s.registry(pstrings.FirstNonBlank(in.Locale, s.opt.Locale), s.opt.Region)
	if err != nil {
		return domain.KindsOutput{}, err
	}
	kinds := entity.Kinds()
	out := domain.KindsOutput{Locale: reg.Locale(), Kinds: make([]domain.KindInfo, 0, len(kinds))}
	for _, k := range kinds {
		out.Kinds = append(out.Kinds, domain.KindInfo{
			Kind:     k.String(),
			Template: reg.Template(k),
			Payload:  k.CarriesPayload(),
		})
	}
	return out, nil
}

// registry returns a cached registry keyed by resolved locale and region
// keys are bounded by the supported locale and region sets
func (s *Service) registry(locale, region string) (*format.Registry, error) {
	locale = format.ResolveLocale(locale)
	plan := phone.New(region)
	key := locale + "|" + plan.Region()

	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.registries[key]; ok {
		return r, nil
	}
	r, err := format.New(format.Options{
		Locale:   locale,
		Location: s.opt.Location,
		Phone:    plan,
	})
	if err != nil {
		return nil, err
	}
	s.registries[key] = r
	return r, nil
}
