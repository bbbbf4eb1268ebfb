package entity

import (
	"encoding/json"

	perr "entitylens/internal/platform/errors"
)

// Entity is one classification of a span
// the payload variant must match the kind; accessors enforce this
type Entity struct {
	kind    Kind
	payload Payload
}

// New builds an entity from a kind and payload as reported by a classifier
// no check happens here so upstream contract breaches surface at access time
func New(kind Kind, payload Payload) Entity { return Entity{kind: kind, payload: payload} }

// Of builds a payload-carrying entity whose kind is taken from the payload
func Of(p Payload) Entity {
	if p == nil {
		return Entity{kind: KindUnknown}
	}
	return Entity{kind: p.payloadKind(), payload: p}
}

// Plain builds an entity for a kind that carries no payload (address, email, phone, url, unknown)
func Plain(kind Kind) Entity { return Entity{kind: kind} }

// Kind returns the entity kind
func (e Entity) Kind() Kind { return e.kind }

// Payload returns the raw payload, nil for payload-less kinds
func (e Entity) Payload() Payload { return e.payload }

// Validate reports a MalformedEntity error when the payload does not match the kind
func (e Entity) Validate() error {
	switch {
	case !e.kind.Known():
		// unknown kinds are rendered generically; any payload is ignored
		return nil
	case carriesPayload(e.kind):
		if e.payload == nil {
			return malformed(e.kind, "missing payload")
		}
		if e.payload.payloadKind() != e.kind {
			return malformed(e.kind, "payload is "+e.payload.payloadKind().String())
		}
	default:
		if e.payload != nil {
			return malformed(e.kind, "unexpected payload "+e.payload.payloadKind().String())
		}
	}
	return nil
}

// DateTime returns the date-time payload or a MalformedEntity error
func (e Entity) DateTime() (DateTime, error) { return payloadAs[DateTime](e, KindDateTime) }

// TrackingNumber returns the tracking payload or a MalformedEntity error
func (e Entity) TrackingNumber() (TrackingNumber, error) {
	return payloadAs[TrackingNumber](e, KindTrackingNumber)
}

// PaymentCard returns the card payload or a MalformedEntity error
func (e Entity) PaymentCard() (PaymentCard, error) { return payloadAs[PaymentCard](e, KindPaymentCard) }

// Isbn returns the isbn payload or a MalformedEntity error
func (e Entity) Isbn() (Isbn, error) { return payloadAs[Isbn](e, KindIsbn) }

// Iban returns the iban payload or a MalformedEntity error
func (e Entity) Iban() (Iban, error) { return payloadAs[Iban](e, KindIban) }

// FlightNumber returns the flight payload or a MalformedEntity error
func (e Entity) FlightNumber() (FlightNumber, error) {
	return payloadAs[FlightNumber](e, KindFlightNumber)
}

// Money returns the money payload or a MalformedEntity error
func (e Entity) Money() (Money, error) { return payloadAs[Money](e, KindMoney) }

func payloadAs[T Payload](e Entity, want Kind) (T, error) {
	var zero T
	if e.kind != want {
		return zero, malformed(want, "entity kind is "+e.kind.String())
	}
	p, ok := e.payload.(T)
	if !ok {
		if e.payload == nil {
			return zero, malformed(want, "missing payload")
		}
		return zero, malformed(want, "payload is "+e.payload.payloadKind().String())
	}
	return p, nil
}

func malformed(k Kind, detail string) error {
	return perr.Newf(perr.ErrorCodeMalformedEntity, "malformed %s entity: %s", k, detail)
}

// MarshalJSON renders {"kind": ..., "payload": ...}
func (e Entity) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind    Kind    `json:"kind"`
		Payload Payload `json:"payload,omitempty"`
	}{Kind: e.kind, Payload: e.payload})
}
