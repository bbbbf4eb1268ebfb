package format

import "entitylens/internal/core/entity"

// message keys for granularity labels; kinds use their wire name as key
const (
	keyGranularityPrefix  = "granularity."
	keyGranularityUnknown = keyGranularityPrefix + "unknown"
)

// template parameters: {0} is always the source text
var templates = map[string]map[entity.Kind]string{
	"en": {
		entity.KindAddress:        "Address: {0}",
		entity.KindDateTime:       "Date-time: {0} -> {1} (granularity: {2})",
		entity.KindEmail:          "Email: {0}",
		entity.KindFlightNumber:   "Flight number: {0} (airline: {1}, flight: {2})",
		entity.KindIban:           "IBAN: {0} (iban: {1}, country: {2})",
		entity.KindIsbn:           "ISBN: {0} (isbn: {1})",
		entity.KindMoney:          "Money: {0} (currency: {1}, integer part: {2}, fractional part: {3})",
		entity.KindPaymentCard:    "Payment card: {0} (network: {1}, number: {2})",
		entity.KindPhone:          "Phone: {0} (formatted: {1})",
		entity.KindTrackingNumber: "Tracking number: {0} (carrier: {1}, number: {2})",
		entity.KindURL:            "URL: {0}",
		entity.KindUnknown:        "Unknown entity: {0}",
	},
	"de": {
		entity.KindAddress:        "Adresse: {0}",
		entity.KindDateTime:       "Datum/Uhrzeit: {0} -> {1} (Genauigkeit: {2})",
		entity.KindEmail:          "E-Mail: {0}",
		entity.KindFlightNumber:   "Flugnummer: {0} (Fluggesellschaft: {1}, Flug: {2})",
		entity.KindIban:           "IBAN: {0} (IBAN: {1}, Land: {2})",
		entity.KindIsbn:           "ISBN: {0} (ISBN: {1})",
		entity.KindMoney:          "Geldbetrag: {0} (Währung: {1}, Ganzzahl: {2}, Nachkommastellen: {3})",
		entity.KindPaymentCard:    "Zahlungskarte: {0} (Netzwerk: {1}, Nummer: {2})",
		entity.KindPhone:          "Telefon: {0} (formatiert: {1})",
		entity.KindTrackingNumber: "Sendungsnummer: {0} (Zusteller: {1}, Nummer: {2})",
		entity.KindURL:            "URL: {0}",
		entity.KindUnknown:        "Unbekannte Entität: {0}",
	},
	"fr": {
		entity.KindAddress:        "Adresse : {0}",
		entity.KindDateTime:       "Date et heure : {0} -> {1} (granularité : {2})",
		entity.KindEmail:          "E-mail : {0}",
		entity.KindFlightNumber:   "Numéro de vol : {0} (compagnie : {1}, vol : {2})",
		entity.KindIban:           "IBAN : {0} (IBAN : {1}, pays : {2})",
		entity.KindIsbn:           "ISBN : {0} (ISBN : {1})",
		entity.KindMoney:          "Montant : {0} (devise : {1}, partie entière : {2}, partie décimale : {3})",
		entity.KindPaymentCard:    "Carte de paiement : {0} (réseau : {1}, numéro : {2})",
		entity.KindPhone:          "Téléphone : {0} (formaté : {1})",
		entity.KindTrackingNumber: "Numéro de suivi : {0} (transporteur : {1}, numéro : {2})",
		entity.KindURL:            "URL : {0}",
		entity.KindUnknown:        "Entité inconnue : {0}",
	},
	"es": {
		entity.KindAddress:        "Dirección: {0}",
		entity.KindDateTime:       "Fecha y hora: {0} -> {1} (granularidad: {2})",
		entity.KindEmail:          "Correo electrónico: {0}",
		entity.KindFlightNumber:   "Número de vuelo: {0} (aerolínea: {1}, vuelo: {2})",
		entity.KindIban:           "IBAN: {0} (IBAN: {1}, país: {2})",
		entity.KindIsbn:           "ISBN: {0} (ISBN: {1})",
		entity.KindMoney:          "Importe: {0} (moneda: {1}, parte entera: {2}, parte decimal: {3})",
		entity.KindPaymentCard:    "Tarjeta de pago: {0} (red: {1}, número: {2})",
		entity.KindPhone:          "Teléfono: {0} (formateado: {1})",
		entity.KindTrackingNumber: "Número de seguimiento: {0} (transportista: {1}, número: {2})",
		entity.KindURL:            "URL: {0}",
		entity.KindUnknown:        "Entidad desconocida: {0}",
	},
}

// granularity labels indexed by entity.Granularity, unknown last
var granularityLabels = map[string][8]string{
	"en": {"year", "month", "week", "day", "hour", "minute", "second", "unknown"},
	"de": {"Jahr", "Monat", "Woche", "Tag", "Stunde", "Minute", "Sekunde", "unbekannt"},
	"fr": {"année", "mois", "semaine", "jour", "heure", "minute", "seconde", "inconnue"},
	"es": {"año", "mes", "semana", "día", "hora", "minuto", "segundo", "desconocida"},
}

func granularityKey(g entity.Granularity) string {
	if !g.Valid() {
		return keyGranularityUnknown
	}
	return keyGranularityPrefix + g.String()
}
