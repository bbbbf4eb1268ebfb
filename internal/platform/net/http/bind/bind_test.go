package bind

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "entitylens/internal/platform/errors"
	"entitylens/internal/platform/testkit"
)

type annotateIn struct {
	Text   string `json:"text" validate:"max=16"`
	Locale string `json:"locale" validate:"omitempty,locale"`
	Region string `json:"region" validate:"omitempty,region"`
}

func post(body string) *http.Request {
	if body == "" {
		return httptest.NewRequest(http.MethodPost, "/", http.NoBody)
	}
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestParseJSON(t *testing.T) {
	lax := JSONOptions{MaxBytes: 1 << 10}
	cases := []struct {
		name  string
		req   *http.Request
		opts  []JSONOptions
		code  perr.ErrorCode // 0 means success
		field string
		want  annotateIn
	}{
		{name: "ok", req: post(`{"text":"call me","locale":"en_GB","region":"GB"}`),
			want: annotateIn{Text: "call me", Locale: "en_GB", Region: "GB"}},
		{name: "auto locale", req: post(`{"text":"x","locale":"AUTO"}`),
			want: annotateIn{Text: "x", Locale: "AUTO"}},
		{name: "empty body", req: post(""), code: perr.ErrorCodeJSON},
		{name: "empty body on GET", req: httptest.NewRequest(http.MethodGet, "/", http.NoBody)},
		{name: "empty body allowed", req: post(""), opts: []JSONOptions{{AllowEmptyBody: true}}},
		{name: "empty body allowed with limit", req: post(""), opts: []JSONOptions{{AllowEmptyBody: true, MaxBytes: 8}}},
		{name: "invalid json", req: post(`{`), code: perr.ErrorCodeJSON},
		{name: "unknown field strict", req: post(`{"text":"x","boom":1}`), code: perr.ErrorCodeJSON},
		{name: "unknown field lax", req: post(`{"text":"x","boom":1}`), opts: []JSONOptions{lax},
			want: annotateIn{Text: "x"}},
		{name: "over limit", req: post(`{"text":"call me maybe"}`), opts: []JSONOptions{{MaxBytes: 5}},
			code: perr.ErrorCodeJSON},
		{name: "no limit", req: post(`{"text":"x"}`), opts: []JSONOptions{{}}, want: annotateIn{Text: "x"}},
		{name: "text too long", req: post(`{"text":"this is far too long"}`),
			code: perr.ErrorCodeValidation, field: "text"},
		{name: "bad region", req: post(`{"region":"nowhere"}`), code: perr.ErrorCodeValidation, field: "region"},
		{name: "bad locale", req: post(`{"locale":"not a locale"}`), code: perr.ErrorCodeValidation, field: "locale"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ParseJSON[annotateIn](c.req, c.opts...)
			if c.code == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got != c.want {
					t.Fatalf("got %+v, want %+v", got, c.want)
				}
				return
			}
			e, ok := perr.As(err)
			if !ok || e.Code() != c.code || e.Field() != c.field {
				t.Fatalf("err = %v, want code %v field %q", err, c.code, c.field)
			}
		})
	}
}

func TestParseJSON_TrailingData(t *testing.T) {
	testkit.Serial(t, "bind")
	testkit.Swap(t, &jsonMore, func(*json.Decoder) bool { return true })

	_, err := ParseJSON[annotateIn](post(`{"text":"x"}`))
	if !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("expected JSON error for trailing data, got %v", err)
	}
}

func TestParseJSON_NonStructIsJSONError(t *testing.T) {
	_, err := ParseJSON[int](post(`5`))
	if !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("expected JSON-coded error, got %v", err)
	}
}

func TestMessages(t *testing.T) {
	type counts struct {
		Min    int    `json:"min" validate:"min=1"`
		Max    int    `json:"max" validate:"max=5"`
		Locale string `json:"locale" validate:"omitempty,locale"`
		Region string `json:"region" validate:"omitempty,region"`
	}
	ok := counts{Min: 1}
	cases := []struct {
		name string
		in   counts
		want string
	}{
		{"min", counts{}, "min must be at least 1"},
		{"max", counts{Min: 1, Max: 6}, "max must be at most 5"},
		{"locale", counts{Min: 1, Locale: "not a locale"}, "locale must be a BCP 47 language tag or auto"},
		{"region", counts{Min: 1, Region: "USA"}, "region must be a two letter region code"},
		{"ok", ok, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, msg := ValidationFieldAndMessage(Get().Validator.Struct(c.in))
			if msg != c.want {
				t.Fatalf("message = %q, want %q", msg, c.want)
			}
		})
	}
}

func TestJSONName(t *testing.T) {
	type s struct {
		Tagged int `json:"tagged,omitempty" validate:"min=1"`
		Hidden int `json:"-" validate:"min=1"`
		Plain  int `validate:"min=1"`
	}
	cases := []struct {
		in   s
		want string
	}{
		{s{Hidden: 1, Plain: 1}, "tagged"},
		{s{Tagged: 1, Plain: 1}, "Hidden"},
		{s{Tagged: 1, Hidden: 1}, "Plain"},
	}
	for _, c := range cases {
		field, _ := ValidationFieldAndMessage(Get().Validator.Struct(c.in))
		if field != c.want {
			t.Fatalf("field = %q, want %q", field, c.want)
		}
	}
}

func TestValidationFieldAndMessage_Passthrough(t *testing.T) {
	if f, m := ValidationFieldAndMessage(nil); f != "" || m != "" {
		t.Fatalf("nil = %q %q", f, m)
	}
	if f, m := ValidationFieldAndMessage(perr.New(perr.ErrorCodeUnknown, "boom")); f != "" || m != "boom" {
		t.Fatalf("generic = %q %q", f, m)
	}
}

func TestRegisterValidation_Overwrites(t *testing.T) {
	if err := RegisterValidation("flip", func(FieldLevel) bool { return false }); err != nil {
		t.Fatal(err)
	}
	if err := RegisterValidation("flip", func(FieldLevel) bool { return true }); err != nil {
		t.Fatal(err)
	}
	type s struct {
		N int `json:"n" validate:"flip"`
	}
	if err := Validate(s{}); err != nil {
		t.Fatalf("expected second registration to win, got %v", err)
	}
}

func TestValidate_QueryInput(t *testing.T) {
	type q struct {
		Locale string `json:"locale" validate:"omitempty,locale"`
	}
	if err := Validate(q{Locale: "fr"}); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	err := Validate(q{Locale: "not a locale"})
	e, ok := perr.As(err)
	if !ok || e.Code() != perr.ErrorCodeValidation || e.Field() != "locale" {
		t.Fatalf("expected validation error on locale, got %v", err)
	}
}
