package service

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"entitylens/internal/core/classifier"
	"entitylens/internal/core/extractor"
	"entitylens/internal/platform/config"
	perr "entitylens/internal/platform/errors"
	"entitylens/internal/platform/testkit"
	"entitylens/internal/services/annotate/domain"
)

func newService(t *testing.T, opt Options) *Service {
	t.Helper()
	now := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	clf := classifier.New(extractor.Backend{Region: "US", Now: func() time.Time { return now }}, classifier.Options{})
	t.Cleanup(func() { _ = clf.Close() })
	return New(clf, opt)
}

func TestAnnotate_Scenario(t *testing.T) {
	s := newService(t, Options{Locale: "en", Region: "US"})

	out, err := s.Annotate(context.Background(), domain.AnnotateInput{Text: "Call me at 5551234567 tomorrow"})
	if err != nil {
		t.Fatalf("Annotate: %v", err)
	}
	if len(out.Lines) != 2 || out.Entities != 2 || out.RunID == "" || out.Locale != "en" {
		t.Fatalf("unexpected output %+v", out)
	}
	if !strings.HasPrefix(out.Lines[0], "Phone: 5551234567 (formatted: ") {
		t.Fatalf("first line = %q", out.Lines[0])
	}
	testkit.MustContain(t, out.Lines[1], "Date-time: tomorrow -> March 2, 2024")
	if out.Text != out.Lines[0]+"\n"+out.Lines[1] {
		t.Fatalf("joined text mismatch: %q", out.Text)
	}
}

func TestAnnotate_EmptyText(t *testing.T) {
	s := newService(t, Options{})
	out, err := s.Annotate(context.Background(), domain.AnnotateInput{})
	if err != nil {
		t.Fatalf("Annotate: %v", err)
	}
	if out.Lines == nil || len(out.Lines) != 0 || out.Text != "" {
		t.Fatalf("expected empty non-nil lines, got %+v", out)
	}
}

func TestAnnotate_MaxText(t *testing.T) {
	s := newService(t, Options{MaxText: 4})
	_, err := s.Annotate(context.Background(), domain.AnnotateInput{Text: "héllo"})
	e, ok := perr.As(err)
	if !ok || e.Code() != perr.ErrorCodeValidation || e.Field() != "text" {
		t.Fatalf("expected validation error on text, got %v", err)
	}
	if _, err := s.Annotate(context.Background(), domain.AnnotateInput{Text: "héll"}); err != nil {
		t.Fatalf("four runes should pass: %v", err)
	}
}

func TestAnnotate_MaxTextAboveDefaultFollowsConfig(t *testing.T) {
	t.Setenv("CORE_ANNOTATE_MAX_TEXT", strconv.Itoa(2*domain.DefaultMaxText))
	opt := FromConfig(configView())
	s := newService(t, opt)

	long := strings.Repeat("a ", domain.DefaultMaxText/2+1)
	if _, err := s.Annotate(context.Background(), domain.AnnotateInput{Text: long}); err != nil {
		t.Fatalf("text within the configured cap should pass: %v", err)
	}
	tooLong := strings.Repeat("a", 2*domain.DefaultMaxText+1)
	if _, err := s.Annotate(context.Background(), domain.AnnotateInput{Text: tooLong}); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("expected validation error past the configured cap, got %v", err)
	}
}

func TestFromConfig_DefaultMaxText(t *testing.T) {
	t.Setenv("CORE_ANNOTATE_MAX_TEXT", "")
	if got := FromConfig(configView()).MaxText; got != domain.DefaultMaxText {
		t.Fatalf("MaxText = %d, want %d", got, domain.DefaultMaxText)
	}
}

func TestAnnotate_LocaleSelection(t *testing.T) {
	s := newService(t, Options{Locale: "en"})
	cases := []struct {
		name   string
		in     domain.AnnotateInput
		locale string
	}{
		{"default", domain.AnnotateInput{Text: "mail a@b.io"}, "en"},
		{"explicit", domain.AnnotateInput{Text: "mail a@b.io", Locale: "de-DE"}, "de"},
		{"underscore", domain.AnnotateInput{Text: "mail a@b.io", Locale: "en_GB"}, "en_GB"},
		{"auto japanese", domain.AnnotateInput{Text: "こんにちは a@b.io", Locale: "auto"}, "ja"},
		{"unsupported falls back", domain.AnnotateInput{Text: "x", Locale: "zu"}, "en"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := s.Annotate(context.Background(), tc.in)
			if err != nil {
				t.Fatalf("Annotate: %v", err)
			}
			if out.Locale != tc.locale {
				t.Fatalf("locale = %s, want %s", out.Locale, tc.locale)
			}
		})
	}
}

func TestAnnotate_ModelUnavailable(t *testing.T) {
	clf := classifier.New(extractor.Backend{PackPath: "/does/not/exist.yaml"}, classifier.Options{})
	s := New(clf, Options{})
	_, err := s.Annotate(context.Background(), domain.AnnotateInput{Text: "a@b.io"})
	if !perr.IsCode(err, perr.ErrorCodeModelUnavailable) {
		t.Fatalf("expected model unavailable, got %v", err)
	}
}

func TestKinds(t *testing.T) {
	s := newService(t, Options{})
	out, err := s.Kinds(context.Background(), domain.KindsInput{Locale: "fr"})
	if err != nil {
		t.Fatalf("Kinds: %v", err)
	}
	if out.Locale != "fr" || len(out.Kinds) != 12 {
		t.Fatalf("unexpected kinds %+v", out)
	}
	if last := out.Kinds[len(out.Kinds)-1]; last.Kind != "unknown" || last.Payload {
		t.Fatalf("unknown should be last and payload-less: %+v", last)
	}
	for _, k := range out.Kinds {
		if k.Template == "" {
			t.Fatalf("%s has no template", k.Kind)
		}
	}
}

func TestRegistryCache(t *testing.T) {
	s := newService(t, Options{})
	a, err := s.registry("en-US", "us")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := s.registry("en", "US")
	c, _ := s.registry("de", "US")
	if a != b || a == c {
		t.Fatalf("cache keyed on resolved locale and region")
	}
}

func TestNew_NilClassifierPanics(t *testing.T) {
	testkit.MustPanic(t, func() { New(nil, Options{}) })
}

func TestFromConfig(t *testing.T) {
	t.Setenv("CORE_ANNOTATE_LOCALE", "fr")
	t.Setenv("CORE_ANNOTATE_REGION", "DE")
	t.Setenv("CORE_ANNOTATE_TIMEZONE", "Europe/Berlin")
	t.Setenv("CORE_ANNOTATE_MAX_TEXT", "10")

	o := FromConfig(configView())
	if o.Locale != "fr" || o.Region != "DE" || o.Location.String() != "Europe/Berlin" || o.MaxText != 10 {
		t.Fatalf("unexpected options %+v", o)
	}
}

func configView() config.Conf { return config.New().Prefix("CORE_ANNOTATE_") }
