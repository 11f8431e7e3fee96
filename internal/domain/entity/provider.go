package entity

// PaymentProvider represents a payment.provider record (e.g. Stripe).
type PaymentProvider struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	State string `json:"state"`
}

// ProviderEnabled is the state of an active payment provider.
const ProviderEnabled = "enabled"
