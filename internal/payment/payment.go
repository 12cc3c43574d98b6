// Package payment creates PIX charges for bookings and reads them back when
// the gateway notifies a status change.
package payment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/agenda-scheduler/internal/httperr"
)

var (
	ErrPixUnavailable = httperr.ErrBusiness("pix_unavailable")
	ErrGateway        = httperr.ErrBusiness("payment_gateway_error")
)

type PixRequest struct {
	AmountCents       int
	Description       string
	PayerName         string
	PayerEmail        string
	ExternalReference string
	ExpiresAt         time.Time
}

// Charge is the gateway's view of one payment.
type Charge struct {
	ID                string
	Status            string
	StatusDetail      string
	ExternalReference string
	QRCode            string
	QRCodeBase64      string
	TicketURL         string
}

type Gateway interface {
	CreatePix(ctx context.Context, req PixRequest) (*Charge, error)
	GetPayment(ctx context.Context, id string) (*Charge, error)
}
