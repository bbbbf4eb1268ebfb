package extractor

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"entitylens/internal/core/entity"
	perr "entitylens/internal/platform/errors"

	"gopkg.in/yaml.v3"
)

//go:embed pack.yaml
var embedded []byte

const packVersion = 1

type rawRule struct {
	Name    string `yaml:"name"`
	Kind    string `yaml:"kind"`
	Parser  string `yaml:"parser"`
	Carrier string `yaml:"carrier"`
	Pattern string `yaml:"pattern"`
}

type rawRelative struct {
	Years       int    `yaml:"years"`
	Months      int    `yaml:"months"`
	Days        int    `yaml:"days"`
	Granularity string `yaml:"granularity"`
}

type rawPack struct {
	Version  int                    `yaml:"version"`
	Slots    map[string][]string    `yaml:"slots"`
	Relative map[string]rawRelative `yaml:"relative"`
	Rules    []rawRule              `yaml:"rules"`
}

// Rule is one compiled pattern with the parser that turns a match into an entity
type Rule struct {
	Name    string
	Kind    entity.Kind
	Parser  string
	Carrier string
	re      *regexp.Regexp
	value   int // index of the "value" group, -1 when absent
}

// Offset is a calendar shift for a relative date phrase
type Offset struct {
	Years, Months, Days int
	Granularity         entity.Granularity
}

// Pack is a compiled rule set
type Pack struct {
	Version  int
	Rules    []Rule
	Relative map[string]Offset
	Slots    map[string][]string
}

// parser name -> kind it may produce
var parserKinds = map[string][]entity.Kind{
	"plain":             {entity.KindAddress, entity.KindEmail, entity.KindURL},
	"phone":             {entity.KindPhone},
	"iban":              {entity.KindIban},
	"isbn":              {entity.KindIsbn},
	"card":              {entity.KindPaymentCard},
	"flight":            {entity.KindFlightNumber},
	"money":             {entity.KindMoney},
	"tracking":          {entity.KindTrackingNumber},
	"iso_datetime":      {entity.KindDateTime},
	"relative_datetime": {entity.KindDateTime},
}

// LoadPack compiles the embedded rule pack
func LoadPack() (*Pack, error) { return ParsePack(embedded) }

// LoadPackFile compiles a rule pack from disk
func LoadPackFile(path string) (*Pack, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeModelUnavailable, "extractor: read pack %s", path)
	}
	return ParsePack(b)
}

// ParsePack compiles a YAML rule pack; any invalid rule fails the whole pack
func ParsePack(b []byte) (*Pack, error) {
	var rp rawPack
	if err := yaml.Unmarshal(b, &rp); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeModelUnavailable, "extractor: parse pack")
	}
	if rp.Version != packVersion {
		return nil, perr.ModelUnavailablef("extractor: unsupported pack version %d (want %d)", rp.Version, packVersion)
	}

	p := &Pack{
		Version:  rp.Version,
		Relative: make(map[string]Offset, len(rp.Relative)),
		Slots:    rp.Slots,
	}
	for phrase, r := range rp.Relative {
		g, ok := parseGranularity(r.Granularity)
		if !ok {
			return nil, perr.ModelUnavailablef("extractor: relative %q: unknown granularity %q", phrase, r.Granularity)
		}
		p.Relative[strings.ToLower(phrase)] = Offset{Years: r.Years, Months: r.Months, Days: r.Days, Granularity: g}
	}

	for _, r := range rp.Rules {
		rule, err := compileRule(r, rp.Slots)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeModelUnavailable, "extractor: rule %q", r.Name)
		}
		p.Rules = append(p.Rules, rule)
	}
	if len(p.Rules) == 0 {
		return nil, perr.ModelUnavailablef("extractor: pack has no rules")
	}
	return p, nil
}

func compileRule(r rawRule, slots map[string][]string) (Rule, error) {
	kind, ok := entity.ParseKind(r.Kind)
	if !ok || !kind.Known() {
		return Rule{}, fmt.Errorf("unknown kind %q", r.Kind)
	}
	kinds, ok := parserKinds[r.Parser]
	if !ok {
		return Rule{}, fmt.Errorf("unknown parser %q", r.Parser)
	}
	if !containsKind(kinds, kind) {
		return Rule{}, fmt.Errorf("parser %s cannot produce %s", r.Parser, kind)
	}
	if r.Parser == "tracking" && r.Carrier == "" {
		return Rule{}, fmt.Errorf("tracking rule needs a carrier")
	}
	re, err := regexp.Compile(expandSlots(r.Pattern, slots))
	if err != nil {
		return Rule{}, err
	}
	return Rule{
		Name:    r.Name,
		Kind:    kind,
		Parser:  r.Parser,
		Carrier: r.Carrier,
		re:      re,
		value:   re.SubexpIndex("value"),
	}, nil
}

var slotRef = regexp.MustCompile(`\{([A-Z][A-Z_]*)\}`)

// expandSlots replaces {NAME} with a non-capturing alternation of the slot's quoted values
// longer values come first so alternation prefers them; unknown slots stay literal
func expandSlots(pattern string, slots map[string][]string) string {
	return slotRef.ReplaceAllStringFunc(pattern, func(m string) string {
		values, ok := slots[m[1:len(m)-1]]
		if !ok || len(values) == 0 {
			return m
		}
		sorted := append([]string(nil), values...)
		sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
		parts := make([]string, len(sorted))
		for i, v := range sorted {
			parts[i] = regexp.QuoteMeta(v)
		}
		return "(?:" + strings.Join(parts, "|") + ")"
	})
}

func parseGranularity(s string) (entity.Granularity, bool) {
	for g := entity.GranularityYear; g <= entity.GranularitySecond; g++ {
		if g.String() == strings.ToLower(strings.TrimSpace(s)) {
			return g, true
		}
	}
	return entity.GranularityUnknown, false
}

func containsKind(ks []entity.Kind, k entity.Kind) bool {
	for _, x := range ks {
		if x == k {
			return true
		}
	}
	return false
}
