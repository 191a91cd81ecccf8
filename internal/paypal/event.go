// Package paypal models inbound PayPal webhook events and verifies their
// authenticity through the provider's verify-webhook-signature endpoint.
package paypal

import "net/http"

// Amount is the monetary portion of a sale resource.
type Amount struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

// Payer identifies the buyer on a completed sale.
type Payer struct {
	EmailAddress string `json:"email_address"`
}

// Resource is the payload of a payment webhook event.
type Resource struct {
	ID       string `json:"id"`
	State    string `json:"state"`
	Amount   Amount `json:"amount"`
	Custom   string `json:"custom"`
	CustomID string `json:"custom_id"`
	Payer    Payer  `json:"payer"`
}

// Event is a PayPal webhook notification. ID is the provider event
// identifier and serves as the dedup key across redeliveries.
type Event struct {
	ID        string   `json:"id"`
	EventType string   `json:"event_type"`
	Resource  Resource `json:"resource"`
}

// StateCompleted is the sale state that triggers delivery.
const StateCompleted = "completed"

// Headers carries the transmission headers PayPal attaches to every
// webhook delivery. All five are required for verification.
type Headers struct {
	TransmissionID   string
	TransmissionTime string
	CertURL          string
	TransmissionSig  string
	AuthAlgo         string
}

// HeadersFromRequest extracts the PayPal transmission headers from an
// inbound HTTP request.
func HeadersFromRequest(h http.Header) Headers {
	return Headers{
		TransmissionID:   h.Get("PAYPAL-TRANSMISSION-ID"),
		TransmissionTime: h.Get("PAYPAL-TRANSMISSION-TIME"),
		CertURL:          h.Get("PAYPAL-CERT-URL"),
		TransmissionSig:  h.Get("PAYPAL-TRANSMISSION-SIG"),
		AuthAlgo:         h.Get("PAYPAL-AUTH-ALGO"),
	}
}
