// Package entity holds the classified entity model: kinds, typed payloads and annotated spans
package entity

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind is the category of a classified entity
type Kind int

const (
	// KindUnknown is any kind the classifier reports that we do not model
	KindUnknown Kind = iota
	KindAddress
	KindDateTime
	KindEmail
	KindFlightNumber
	KindIban
	KindIsbn
	KindMoney
	KindPaymentCard
	KindPhone
	KindTrackingNumber
	KindURL
)

var kindNames = [...]string{
	KindUnknown:        "unknown",
	KindAddress:        "address",
	KindDateTime:       "date_time",
	KindEmail:          "email",
	KindFlightNumber:   "flight_number",
	KindIban:           "iban",
	KindIsbn:           "isbn",
	KindMoney:          "money",
	KindPaymentCard:    "payment_card",
	KindPhone:          "phone",
	KindTrackingNumber: "tracking_number",
	KindURL:            "url",
}

// Kinds returns every modelled kind in declaration order, unknown last
func Kinds() []Kind {
	out := make([]Kind, 0, len(kindNames))
	for k := KindAddress; k <= KindURL; k++ {
		out = append(out, k)
	}
	return append(out, KindUnknown)
}

// String returns the stable wire name of the kind
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// Known reports whether k is one of the modelled kinds other than unknown
func (k Kind) Known() bool { return k > KindUnknown && int(k) < len(kindNames) }

// ParseKind maps a wire name to a Kind; unrecognized names map to KindUnknown with ok=false
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range kindNames {
		if n == s {
			return Kind(i), true
		}
	}
	return KindUnknown, false
}

// MarshalJSON encodes the kind by name
func (k Kind) MarshalJSON() ([]byte, error) { return json.Marshal(k.String()) }

// UnmarshalJSON accepts the wire name
func (k *Kind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("entity kind: %w", err)
	}
	got, ok := ParseKind(s)
	if !ok {
		return fmt.Errorf("entity kind: unknown name %q", s)
	}
	*k = got
	return nil
}

// Granularity is the precision of a DateTime entity
type Granularity int

// Raw values mirror the extraction model's constants; anything outside 0..6 is unknown
const (
	GranularityYear Granularity = iota
	GranularityMonth
	GranularityWeek
	GranularityDay
	GranularityHour
	GranularityMinute
	GranularitySecond

	GranularityUnknown Granularity = -1
)

var granularityNames = [...]string{
	GranularityYear:   "year",
	GranularityMonth:  "month",
	GranularityWeek:   "week",
	GranularityDay:    "day",
	GranularityHour:   "hour",
	GranularityMinute: "minute",
	GranularitySecond: "second",
}

// Valid reports whether g is one of the seven modelled values
func (g Granularity) Valid() bool { return g >= GranularityYear && g <= GranularitySecond }

// String returns the lowercase name or "unknown"
func (g Granularity) String() string {
	if !g.Valid() {
		return "unknown"
	}
	return granularityNames[g]
}

// MarshalJSON encodes the granularity by name
func (g Granularity) MarshalJSON() ([]byte, error) { return json.Marshal(g.String()) }
