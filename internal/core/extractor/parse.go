package extractor

import (
	"math/big"
	"strconv"
	"strings"
	"time"

	"entitylens/internal/core/entity"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/text/currency"
)

// match is one regexp hit handed to a parser
type match struct {
	text   string
	groups map[string]string
}

// parse turns a match into an entity; ok=false rejects the candidate
type parseFunc func(h *handle, r Rule, m match) (entity.Entity, bool)

var parsers = map[string]parseFunc{
	"plain":             parsePlain,
	"phone":             parsePhone,
	"iban":              parseIban,
	"isbn":              parseIsbn,
	"card":              parseCard,
	"flight":            parseFlight,
	"money":             parseMoney,
	"tracking":          parseTracking,
	"iso_datetime":      parseISODateTime,
	"relative_datetime": parseRelative,
}

func parsePlain(_ *handle, r Rule, _ match) (entity.Entity, bool) {
	return entity.Plain(r.Kind), true
}

func parsePhone(h *handle, _ Rule, m match) (entity.Entity, bool) {
	num, err := phonenumbers.Parse(m.text, h.region)
	if err != nil {
		return entity.Entity{}, false
	}
	if phonenumbers.IsPossibleNumberWithReason(num) != phonenumbers.IS_POSSIBLE {
		return entity.Entity{}, false
	}
	return entity.Plain(entity.KindPhone), true
}

func parseIban(_ *handle, _ Rule, m match) (entity.Entity, bool) {
	iban := compact(m.text)
	if len(iban) < 15 || len(iban) > 34 || !ibanChecksum(iban) {
		return entity.Entity{}, false
	}
	return entity.Of(entity.Iban{Iban: iban, CountryCode: iban[:2]}), true
}

// ibanChecksum is the ISO 13616 mod-97 check
func ibanChecksum(iban string) bool {
	rearranged := iban[4:] + iban[:4]
	var digits strings.Builder
	for _, r := range rearranged {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			digits.WriteString(strconv.Itoa(int(r-'A') + 10))
		default:
			return false
		}
	}
	n, ok := new(big.Int).SetString(digits.String(), 10)
	if !ok {
		return false
	}
	return new(big.Int).Mod(n, big.NewInt(97)).Int64() == 1
}

func parseIsbn(_ *handle, _ Rule, m match) (entity.Entity, bool) {
	isbn := compact(m.text)
	switch len(isbn) {
	case 10:
		if !isbn10Checksum(isbn) {
			return entity.Entity{}, false
		}
	case 13:
		if !(strings.HasPrefix(isbn, "978") || strings.HasPrefix(isbn, "979")) || !ean13Checksum(isbn) {
			return entity.Entity{}, false
		}
	default:
		return entity.Entity{}, false
	}
	return entity.Of(entity.Isbn{Isbn: isbn}), true
}

func isbn10Checksum(s string) bool {
	sum := 0
	for i := 0; i < 10; i++ {
		c := s[i]
		var d int
		switch {
		case c >= '0' && c <= '9':
			d = int(c - '0')
		case c == 'X' && i == 9:
			d = 10
		default:
			return false
		}
		sum += d * (10 - i)
	}
	return sum%11 == 0
}

func ean13Checksum(s string) bool {
	sum := 0
	for i := 0; i < 13; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	return sum%10 == 0
}

func parseCard(_ *handle, _ Rule, m match) (entity.Entity, bool) {
	num := compact(m.text)
	if len(num) < 13 || len(num) > 19 || !luhn(num) {
		return entity.Entity{}, false
	}
	network := cardNetwork(num)
	if network == "" {
		return entity.Entity{}, false
	}
	return entity.Of(entity.PaymentCard{Network: network, Number: num}), true
}

func luhn(s string) bool {
	sum := 0
	double := false
	for i := len(s) - 1; i >= 0; i-- {
		c := s[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// cardNetwork maps an IIN prefix and length to a network name
func cardNetwork(num string) string {
	prefix := func(n int) int {
		v, _ := strconv.Atoi(num[:n])
		return v
	}
	l := len(num)
	switch {
	case num[0] == '4' && (l == 13 || l == 16 || l == 19):
		return "visa"
	case l == 15 && (prefix(2) == 34 || prefix(2) == 37):
		return "amex"
	case l == 16 && (between(prefix(2), 51, 55) || between(prefix(4), 2221, 2720)):
		return "mastercard"
	case l >= 16 && (prefix(4) == 6011 || prefix(2) == 65 || between(prefix(3), 644, 649)):
		return "discover"
	case l >= 16 && between(prefix(4), 3528, 3589):
		return "jcb"
	case l == 14 && (prefix(2) == 36 || prefix(2) == 38 || between(prefix(3), 300, 305)):
		return "diners"
	case l >= 16 && prefix(2) == 62:
		return "unionpay"
	}
	return ""
}

func between(v, lo, hi int) bool { return v >= lo && v <= hi }

func parseFlight(_ *handle, _ Rule, m match) (entity.Entity, bool) {
	airline, number := m.groups["airline"], m.groups["number"]
	if airline == "" || number == "" {
		return entity.Entity{}, false
	}
	return entity.Of(entity.FlightNumber{AirlineCode: airline, FlightNumber: number}), true
}

func parseMoney(h *handle, _ Rule, m match) (entity.Entity, bool) {
	cur := m.groups["currency"]
	if len(cur) == 3 && isUpperASCII(cur) {
		if _, err := currency.ParseISO(cur); err != nil {
			return entity.Entity{}, false
		}
	}
	intPart, err := strconv.Atoi(strings.ReplaceAll(m.groups["integer"], ",", ""))
	if err != nil {
		return entity.Entity{}, false
	}
	frac := 0
	if f := m.groups["fraction"]; f != "" {
		if frac, err = strconv.Atoi(f); err != nil {
			return entity.Entity{}, false
		}
	}
	return entity.Of(entity.Money{Currency: cur, IntegerPart: intPart, FractionalPart: frac}), true
}

func isUpperASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

func parseTracking(_ *handle, r Rule, m match) (entity.Entity, bool) {
	return entity.Of(entity.TrackingNumber{Carrier: r.Carrier, Number: compact(m.text)}), true
}

func parseISODateTime(h *handle, _ Rule, m match) (entity.Entity, bool) {
	num := func(k string) (int, bool) {
		s := m.groups[k]
		if s == "" {
			return 0, false
		}
		v, err := strconv.Atoi(s)
		return v, err == nil
	}
	y, _ := num("year")
	mo, _ := num("month")
	d, _ := num("day")
	hh, hasHour := num("hour")
	mm, _ := num("minute")
	ss, hasSec := num("second")

	g := entity.GranularityDay
	switch {
	case hasSec:
		g = entity.GranularitySecond
	case hasHour:
		g = entity.GranularityMinute
	}
	t := time.Date(y, time.Month(mo), d, hh, mm, ss, 0, h.loc)
	// reject normalized overflow such as 2024-02-30 or 25:00
	if t.Year() != y || int(t.Month()) != mo || t.Day() != d || t.Hour() != hh || t.Minute() != mm || t.Second() != ss {
		return entity.Entity{}, false
	}
	return entity.Of(entity.DateTime{TimestampMillis: t.UnixMilli(), Granularity: g}), true
}

func parseRelative(h *handle, _ Rule, m match) (entity.Entity, bool) {
	off, ok := h.pack.Relative[strings.ToLower(m.text)]
	if !ok {
		return entity.Entity{}, false
	}
	now := h.now().In(h.loc)
	base := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.loc)
	t := base.AddDate(off.Years, off.Months, off.Days)
	return entity.Of(entity.DateTime{TimestampMillis: t.UnixMilli(), Granularity: off.Granularity}), true
}

// compact strips separators and upper-cases
func compact(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case ' ', '-', '.':
			continue
		}
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
