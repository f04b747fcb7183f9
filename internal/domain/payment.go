package domain

import "fmt"

// PaymentKind enumerates the closed set of supported payment methods.
type PaymentKind string

const (
	PaymentUPI  PaymentKind = "upi"
	PaymentQR   PaymentKind = "qr"
	PaymentCard PaymentKind = "card"
	PaymentCash PaymentKind = "cash"
)

// ParsePaymentKind validates a raw method string against the closed set.
func ParsePaymentKind(s string) (PaymentKind, error) {
	switch PaymentKind(s) {
	case PaymentUPI, PaymentQR, PaymentCard, PaymentCash:
		return PaymentKind(s), nil
	}
	return "", fmt.Errorf("unsupported payment method %q", s)
}

// PaymentMethod is the chosen payment variant. UPI carries the provider app
// picked by the customer; the other kinds carry no extra data.
type PaymentMethod struct {
	Kind   PaymentKind
	UPIApp string
}

// Label resolves the human-readable label stored on the booking record.
func (m PaymentMethod) Label() string {
	switch m.Kind {
	case PaymentCash:
		return "Cash at Venue"
	case PaymentQR:
		return "QR Scan"
	case PaymentUPI:
		if m.UPIApp != "" {
			return m.UPIApp
		}
		return "UPI ID"
	default:
		return "Card"
	}
}
