package enum

// PaymentState represents the payment status of an account.move in Odoo.
type PaymentState string

const (
	PaymentStateNotPaid   PaymentState = "not_paid"
	PaymentStateInPayment PaymentState = "in_payment"
	PaymentStatePartial   PaymentState = "partial"
	PaymentStatePaid      PaymentState = "paid"
	PaymentStateReversed  PaymentState = "reversed"
)

func (s PaymentState) String() string {
	return string(s)
}

// IsPaid reports whether the invoice is fully settled.
func (s PaymentState) IsPaid() bool {
	return s == PaymentStatePaid
}
