package payment

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mercadopago/sdk-go/pkg/config"
	mppayment "github.com/mercadopago/sdk-go/pkg/payment"
)

const fallbackPayerEmail = "cliente@example.com"

type MercadoPago struct {
	client          mppayment.Client
	notificationURL string
}

func NewMercadoPago(accessToken, notificationURL string) (*MercadoPago, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPago{
		client:          mppayment.NewClient(cfg),
		notificationURL: notificationURL,
	}, nil
}

func (m *MercadoPago) CreatePix(ctx context.Context, req PixRequest) (*Charge, error) {
	res, err := m.client.Create(ctx, pixRequest(req, m.notificationURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	charge := chargeFromResponse(res)
	if charge.QRCode == "" {
		return nil, fmt.Errorf("%w: payment %s without qr code", ErrGateway, charge.ID)
	}
	return charge, nil
}

func (m *MercadoPago) GetPayment(ctx context.Context, id string) (*Charge, error) {
	n, err := strconv.Atoi(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid payment id %q", ErrGateway, id)
	}

	res, err := m.client.Get(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	return chargeFromResponse(res), nil
}

func pixRequest(req PixRequest, notificationURL string) mppayment.Request {
	email := req.PayerEmail
	if email == "" {
		email = fallbackPayerEmail
	}

	first, last, _ := strings.Cut(strings.TrimSpace(req.PayerName), " ")

	out := mppayment.Request{
		TransactionAmount: centsToReais(req.AmountCents),
		Description:       req.Description,
		PaymentMethodID:   "pix",
		ExternalReference: req.ExternalReference,
		NotificationURL:   notificationURL,
		Payer: &mppayment.PayerRequest{
			Email:     email,
			FirstName: first,
			LastName:  last,
		},
	}
	if !req.ExpiresAt.IsZero() {
		expires := req.ExpiresAt
		out.DateOfExpiration = &expires
	}
	return out
}

func chargeFromResponse(res *mppayment.Response) *Charge {
	if res == nil {
		return &Charge{}
	}

	td := res.PointOfInteraction.TransactionData
	return &Charge{
		ID:                strconv.Itoa(res.ID),
		Status:            res.Status,
		StatusDetail:      res.StatusDetail,
		ExternalReference: res.ExternalReference,
		QRCode:            td.QRCode,
		QRCodeBase64:      td.QRCodeBase64,
		TicketURL:         td.TicketURL,
	}
}

func centsToReais(cents int) float64 {
	return float64(cents) / 100
}

var _ Gateway = (*MercadoPago)(nil)
