package entity

// Payload is the kind-specific data of an entity
// the set is closed; only types in this package implement it
type Payload interface {
	payloadKind() Kind
}

// DateTime is a resolved point in time with its precision
type DateTime struct {
	TimestampMillis int64       `json:"timestamp_millis"`
	Granularity     Granularity `json:"granularity"`
}

// TrackingNumber is a parcel tracking reference
type TrackingNumber struct {
	Carrier string `json:"carrier"`
	Number  string `json:"number"`
}

// PaymentCard is a card number with its detected network
type PaymentCard struct {
	Network string `json:"network"`
	Number  string `json:"number"`
}

// Isbn is a book identifier
type Isbn struct {
	Isbn string `json:"isbn"`
}

// Iban is an international bank account number
type Iban struct {
	Iban        string `json:"iban"`
	CountryCode string `json:"country_code"`
}

// FlightNumber is an airline code plus flight designator
type FlightNumber struct {
	AirlineCode  string `json:"airline_code"`
	FlightNumber string `json:"flight_number"`
}

// Money is an amount as written, split into integer and fractional parts
// Currency is the unnormalized currency text (symbol or code)
type Money struct {
	Currency       string `json:"currency"`
	IntegerPart    int    `json:"integer_part"`
	FractionalPart int    `json:"fractional_part"`
}

func (DateTime) payloadKind() Kind       { return KindDateTime }
func (TrackingNumber) payloadKind() Kind { return KindTrackingNumber }
func (PaymentCard) payloadKind() Kind    { return KindPaymentCard }
func (Isbn) payloadKind() Kind           { return KindIsbn }
func (Iban) payloadKind() Kind           { return KindIban }
func (FlightNumber) payloadKind() Kind   { return KindFlightNumber }
func (Money) payloadKind() Kind          { return KindMoney }

// carriesPayload reports whether entities of kind k must have a payload
func carriesPayload(k Kind) bool {
	switch k {
	case KindDateTime, KindTrackingNumber, KindPaymentCard, KindIsbn, KindIban, KindFlightNumber, KindMoney:
		return true
	}
	return false
}

// CarriesPayload reports whether entities of kind k must have a payload
func (k Kind) CarriesPayload() bool { return carriesPayload(k) }
