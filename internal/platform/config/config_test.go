package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	kit "entitylens/internal/platform/testkit"
)

func TestPrefixAndKey(t *testing.T) {
	api := New().Prefix("CORE_").Prefix("API_")
	if got := api.key("PORT"); got != "CORE_API_PORT" {
		t.Fatalf("key() = %q, want %q", got, "CORE_API_PORT")
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("CORE_ANNOTATE_")
	t.Setenv("CORE_ANNOTATE_PACK_PATH", " /etc/pack.yaml ")
	if got := c.MustString("PACK_PATH"); got != "/etc/pack.yaml" {
		t.Fatalf("MustString = %q", got)
	}
	t.Setenv("CORE_ANNOTATE_BLANK", "   ")
	kit.MustPanic(t, func() { _ = c.MustString("BLANK") })
	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })
}

func TestMustDuration(t *testing.T) {
	c := New().Prefix("D_")
	t.Setenv("D_TIMEOUT", "250ms")
	if got := c.MustDuration("TIMEOUT"); got != 250*time.Millisecond {
		t.Fatalf("MustDuration = %v", got)
	}
	t.Setenv("D_BAD", "soon")
	kit.MustPanic(t, func() { _ = c.MustDuration("BAD") })
	kit.MustPanic(t, func() { _ = c.MustDuration("MISSING") })
}

func TestMay_Fallbacks(t *testing.T) {
	c := New().Prefix("M_")
	t.Setenv("M_NAME", "entitylens")
	t.Setenv("M_INT", "7")
	t.Setenv("M_INT_BAD", "seven")
	t.Setenv("M_BOOL", "true")
	t.Setenv("M_BOOL_BAD", "sometimes")
	t.Setenv("M_DUR", "150ms")
	t.Setenv("M_DUR_BAD", "later")

	cases := []struct {
		name string
		got  any
		want any
	}{
		{"string set", c.MayString("NAME", "x"), "entitylens"},
		{"string missing", c.MayString("MISSING", "def"), "def"},
		{"int set", c.MayInt("INT", 0), 7},
		{"int bad", c.MayInt("INT_BAD", 3), 3},
		{"int missing", c.MayInt("MISSING", 9), 9},
		{"bool set", c.MayBool("BOOL", false), true},
		{"bool bad", c.MayBool("BOOL_BAD", false), false},
		{"bool missing", c.MayBool("MISSING", true), true},
		{"duration set", c.MayDuration("DUR", time.Second), 150 * time.Millisecond},
		{"duration bad", c.MayDuration("DUR_BAD", time.Minute), time.Minute},
		{"duration missing", c.MayDuration("MISSING", 5*time.Second), 5 * time.Second},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Fatalf("got %v, want %v", tc.got, tc.want)
			}
		})
	}
}

func TestMayAddr(t *testing.T) {
	c := New().Prefix("A_")
	cases := []struct {
		val  string
		want string
	}{
		{"", ":4000"},
		{"8080", ":8080"},
		{"127.0.0.1:0", "127.0.0.1:0"},
		{":9000", ":9000"},
		{"70000", ":4000"},
		{"http", ":4000"},
		{"host:port:extra", ":4000"},
	}
	for _, tc := range cases {
		t.Run(tc.val, func(t *testing.T) {
			t.Setenv("A_PORT", tc.val)
			if got := c.MayAddr("PORT", ":4000"); got != tc.want {
				t.Fatalf("MayAddr(%q) = %q, want %q", tc.val, got, tc.want)
			}
		})
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("CSV_")
	def := []string{"a", "b"}
	if got := c.MayCSV("MISS", def); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("MayCSV default mismatch: %#v", got)
	}
	t.Setenv("CSV_VALS", " one, two , ,three ,, ")
	got := c.MayCSV("VALS", nil)
	want := []string{"one", "two", "three"}
	if len(got) != len(want) {
		t.Fatalf("MayCSV len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("MayCSV[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMayCSVAllEmptyFallsBackToDefault(t *testing.T) {
	c := New().Prefix("CSV_")
	def := []string{"fallback"}
	t.Setenv("CSV_VALS", " , ,  ,")
	got := c.MayCSV("VALS", def)
	if len(got) != 1 || got[0] != "fallback" {
		t.Fatalf("MayCSV all-empty -> default mismatch: %#v", got)
	}
}

func TestMayLocation(t *testing.T) {
	c := New().Prefix("TZ_")
	if got := c.MayLocation("MISSING", time.UTC); got != time.UTC {
		t.Fatalf("MayLocation missing = %v, want UTC", got)
	}
	t.Setenv("TZ_BAD", "Not/AZone")
	if got := c.MayLocation("BAD", time.UTC); got != time.UTC {
		t.Fatalf("MayLocation invalid = %v, want UTC", got)
	}
	t.Setenv("TZ_OK", "UTC")
	if got := c.MayLocation("OK", time.Local); got.String() != "UTC" {
		t.Fatalf("MayLocation ok = %v, want UTC", got)
	}
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("DOTENV_ONLY=from-file\nDOTENV_SET=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DOTENV_SET", "from-env")
	t.Setenv("DOTENV_ONLY", "")
	_ = os.Unsetenv("DOTENV_ONLY")

	if err := LoadDotenv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotenv: %v", err)
	}
	if got := os.Getenv("DOTENV_ONLY"); got != "from-file" {
		t.Fatalf("DOTENV_ONLY = %q, want from-file", got)
	}
	if got := os.Getenv("DOTENV_SET"); got != "from-env" {
		t.Fatalf("existing env should win, got %q", got)
	}
}
