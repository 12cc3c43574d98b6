package appointment

type PaymentStatus string

const (
	PaymentNone    PaymentStatus = ""
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

const PaymentMethodPix = "pix"

// PaymentStatusFromGateway maps a Mercado Pago payment status. ok is false
// for intermediate states that should not change the appointment.
func PaymentStatusFromGateway(status string) (PaymentStatus, bool) {
	switch status {
	case "approved":
		return PaymentPaid, true
	case "rejected", "cancelled", "refunded", "charged_back":
		return PaymentFailed, true
	default:
		return PaymentNone, false
	}
}
