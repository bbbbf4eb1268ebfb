// Package phone normalizes raw phone text to a dialing-plan display form
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/text/width"
)

// Canonicalizer turns raw phone text into a display form
// it never fails: text it cannot read comes back unchanged
type Canonicalizer interface {
	Canonicalize(raw string) string
}

// Plan formats numbers for one home region
// numbers from the home region use national format, others international
type Plan struct {
	region      string
	countryCode int
}

// DefaultRegion is used when none is configured
const DefaultRegion = "US"

// New returns a Plan for an ISO 3166 region code; empty or unknown regions fall back to DefaultRegion
func New(region string) *Plan {
	region = strings.ToUpper(strings.TrimSpace(region))
	cc := phonenumbers.GetCountryCodeForRegion(region)
	if cc == 0 {
		region = DefaultRegion
		cc = phonenumbers.GetCountryCodeForRegion(region)
	}
	return &Plan{region: region, countryCode: cc}
}

// Region returns the home region
func (p *Plan) Region() string { return p.region }

// Canonicalize formats raw or returns it unchanged when it is not a possible number
func (p *Plan) Canonicalize(raw string) string {
	in := strings.TrimSpace(width.Fold.String(raw))
	if in == "" {
		return raw
	}
	num, err := phonenumbers.Parse(in, p.region)
	if err != nil || !phonenumbers.IsPossibleNumber(num) {
		return raw
	}
	f := phonenumbers.INTERNATIONAL
	if int(num.GetCountryCode()) == p.countryCode {
		f = phonenumbers.NATIONAL
	}
	return phonenumbers.Format(num, f)
}

// Func adapts a plain function to Canonicalizer
type Func func(raw string) string

// Canonicalize calls f
func (f Func) Canonicalize(raw string) string { return f(raw) }
