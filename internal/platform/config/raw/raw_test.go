package raw

import (
	"testing"
)

func TestGet(t *testing.T) {
	t.Setenv("LOG_SERVICE", " entitylens ")
	t.Setenv("CORE_ANNOTATE_LOCALE", " ja ")

	root := New()
	annotate := root.Prefix("CORE_").Prefix("ANNOTATE_")

	cases := []struct {
		name string
		conf Conf
		key  string
		def  string
		want string
	}{
		{"root trimmed", root, "LOG_SERVICE", "x", "entitylens"},
		{"nested prefix", annotate, "LOCALE", "en", "ja"},
		{"unset", annotate, "REGION", "US", "US"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.conf.Get(c.key, c.def); got != c.want {
				t.Fatalf("Get(%q) = %q, want %q", c.key, got, c.want)
			}
		})
	}
}

func TestLookup_BlankIsUnset(t *testing.T) {
	t.Setenv("LOG_LEVEL", "   ")
	if v, ok := New().Prefix("LOG_").Lookup("LEVEL"); ok || v != "" {
		t.Fatalf("Lookup = %q,%v; want unset", v, ok)
	}
}

func TestGetBool(t *testing.T) {
	c := New().Prefix("LOG_")
	cases := []struct {
		val  string
		def  bool
		want bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"YES", false, true},
		{" on ", false, true},
		{"false", true, false},
		{"0", true, false},
		{"maybe", true, false},
		{"", true, true},
		{"", false, false},
	}
	for _, tc := range cases {
		t.Run(tc.val, func(t *testing.T) {
			t.Setenv("LOG_CALLER", tc.val)
			if got := c.GetBool("CALLER", tc.def); got != tc.want {
				t.Fatalf("GetBool(%q, %v) = %v, want %v", tc.val, tc.def, got, tc.want)
			}
		})
	}
}

func TestGetInt(t *testing.T) {
	c := New().Prefix("LOG_")
	cases := []struct {
		val  string
		want int
	}{
		{"42", 42},
		{"  7 ", 7},
		{"12x", 9},
		{"-5", 9},
		{"", 9},
	}
	for _, tc := range cases {
		t.Run(tc.val, func(t *testing.T) {
			t.Setenv("LOG_SAMPLE_EVERY", tc.val)
			if got := c.GetInt("SAMPLE_EVERY", 9); got != tc.want {
				t.Fatalf("GetInt(%q) = %d, want %d", tc.val, got, tc.want)
			}
		})
	}
}

func TestGetPairs(t *testing.T) {
	c := New().Prefix("LOG_")

	t.Setenv("LOG_FIELDS", "env=dev, region = eu ,broken,=nokey")
	got := c.GetPairs("FIELDS")
	if len(got) != 2 || got["env"] != "dev" || got["region"] != "eu" {
		t.Fatalf("GetPairs = %v", got)
	}

	t.Setenv("LOG_FIELDS", "broken")
	if got := c.GetPairs("FIELDS"); got != nil {
		t.Fatalf("expected nil for no valid pairs, got %v", got)
	}

	t.Setenv("LOG_FIELDS", "")
	if got := c.GetPairs("FIELDS"); got != nil {
		t.Fatalf("expected nil when unset, got %v", got)
	}
}
