// Package format renders classified entities as one human readable line each
package format

import (
	"strconv"
	"time"

	"entitylens/internal/core/entity"
	"entitylens/internal/core/phone"
	perr "entitylens/internal/platform/errors"

	"github.com/go-playground/locales"
	ut "github.com/go-playground/universal-translator"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Options configures a Registry; zero values fall back to en, US and UTC
type Options struct {
	Locale   string
	Region   string
	Location *time.Location
	Phone    phone.Canonicalizer
}

// Registry dispatches entities to per-kind templates
// it is immutable after New and safe for concurrent use
type Registry struct {
	locale localeDef
	dates  locales.Translator
	msgs   ut.Translator
	loc    *time.Location
	phone  phone.Canonicalizer
	table  map[entity.Kind]formatFunc
}

type formatFunc func(r *Registry, e entity.Entity, text string) (string, error)

var dispatch = map[entity.Kind]formatFunc{
	entity.KindAddress:        plain(entity.KindAddress),
	entity.KindEmail:          plain(entity.KindEmail),
	entity.KindURL:            plain(entity.KindURL),
	entity.KindPhone:          formatPhone,
	entity.KindDateTime:       formatDateTime,
	entity.KindFlightNumber:   formatFlight,
	entity.KindIban:           formatIban,
	entity.KindIsbn:           formatIsbn,
	entity.KindMoney:          formatMoney,
	entity.KindPaymentCard:    formatCard,
	entity.KindTrackingNumber: formatTracking,
}

// New builds a registry for the given options
func New(opts Options) (*Registry, error) {
	def := resolveLocale(opts.Locale)

	fallback := messageLocale(DefaultLocale)
	uni := ut.New(fallback, fallback)
	msgs, _ := uni.GetTranslator(fallback.Locale())
	if def.msgs != "en" {
		if err := uni.AddTranslator(messageLocale(def.msgs), true); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "format: add translator %s", def.msgs)
		}
		msgs, _ = uni.GetTranslator(def.msgs)
	}
	if err := addTemplates(msgs, def.msgs); err != nil {
		return nil, err
	}

	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	ph := opts.Phone
	if ph == nil {
		ph = phone.New(opts.Region)
	}
	return &Registry{
		locale: def,
		dates:  def.new(),
		msgs:   msgs,
		loc:    loc,
		phone:  ph,
		table:  dispatch,
	}, nil
}

func addTemplates(t ut.Translator, lang string) error {
	for kind, text := range templates[lang] {
		if err := t.Add(kind.String(), text, true); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeUnknown, "format: template %s/%s", lang, kind)
		}
	}
	labels := granularityLabels[lang]
	for g := entity.GranularityYear; g <= entity.GranularitySecond; g++ {
		if err := t.Add(granularityKey(g), labels[g], true); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeUnknown, "format: granularity %s/%s", lang, g)
		}
	}
	return t.Add(keyGranularityUnknown, labels[len(labels)-1], true)
}

// Locale returns the resolved locale key, e.g. en_GB
func (r *Registry) Locale() string { return r.locale.key }

// Location returns the time zone dates are rendered in
func (r *Registry) Location() *time.Location { return r.loc }

// Template returns the raw template used for kind in this registry's language
func (r *Registry) Template(k entity.Kind) string {
	if !k.Known() {
		k = entity.KindUnknown
	}
	return templates[r.locale.msgs][k]
}

// Format renders e over the text it annotates
// unknown kinds use the generic template; a kind/payload mismatch is a MalformedEntity error
func (r *Registry) Format(e entity.Entity, text string) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}
	fn, ok := r.table[e.Kind()]
	if !ok {
		return r.render(entity.KindUnknown, text)
	}
	return fn(r, e, text)
}

func (r *Registry) render(k entity.Kind, params ...string) (string, error) {
	s, err := r.msgs.T(k.String(), params...)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnknown, "format: render %s", k)
	}
	return s, nil
}

func plain(k entity.Kind) formatFunc {
	return func(r *Registry, _ entity.Entity, text string) (string, error) {
		return r.render(k, text)
	}
}

func formatPhone(r *Registry, _ entity.Entity, text string) (string, error) {
	return r.render(entity.KindPhone, text, r.phone.Canonicalize(text))
}

func formatDateTime(r *Registry, e entity.Entity, text string) (string, error) {
	p, err := e.DateTime()
	if err != nil {
		return "", err
	}
	t := time.UnixMilli(p.TimestampMillis).In(r.loc)
	when := r.dates.FmtDateLong(t) + " " + r.dates.FmtTimeLong(t)
	label, err := r.msgs.T(granularityKey(p.Granularity))
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnknown, "format: granularity label")
	}
	return r.render(entity.KindDateTime, text, when, label)
}

func formatFlight(r *Registry, e entity.Entity, text string) (string, error) {
	p, err := e.FlightNumber()
	if err != nil {
		return "", err
	}
	return r.render(entity.KindFlightNumber, text, p.AirlineCode, p.FlightNumber)
}

func formatIban(r *Registry, e entity.Entity, text string) (string, error) {
	p, err := e.Iban()
	if err != nil {
		return "", err
	}
	return r.render(entity.KindIban, text, p.Iban, p.CountryCode)
}

func formatIsbn(r *Registry, e entity.Entity, text string) (string, error) {
	p, err := e.Isbn()
	if err != nil {
		return "", err
	}
	return r.render(entity.KindIsbn, text, p.Isbn)
}

func formatMoney(r *Registry, e entity.Entity, text string) (string, error) {
	p, err := e.Money()
	if err != nil {
		return "", err
	}
	return r.render(entity.KindMoney, text, p.Currency,
		r.groupInt(p.IntegerPart), strconv.Itoa(p.FractionalPart))
}

// groupInt renders n with the locale's digit grouping without a float round trip
// printers are not safe for concurrent use, so one is built per call
func (r *Registry) groupInt(n int) string {
	return message.NewPrinter(r.locale.tag).Sprint(number.Decimal(n))
}

func formatCard(r *Registry, e entity.Entity, text string) (string, error) {
	p, err := e.PaymentCard()
	if err != nil {
		return "", err
	}
	return r.render(entity.KindPaymentCard, text, p.Network, p.Number)
}

func formatTracking(r *Registry, e entity.Entity, text string) (string, error) {
	p, err := e.TrackingNumber()
	if err != nil {
		return "", err
	}
	return r.render(entity.KindTrackingNumber, text, p.Carrier, p.Number)
}
