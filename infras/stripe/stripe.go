package stripe

//go:generate go run go.uber.org/mock/mockgen -source=./stripe.go -destination=./mocks/stripe_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/shared/constant"
	"math"
	"strings"

	"github.com/rs/zerolog/log"
	stripeGo "github.com/stripe/stripe-go/v82"
)

const (
	metadataBookingID = "booking_id"
	sessionIDTemplate = "{CHECKOUT_SESSION_ID}"
	otelAttrSessionID = "checkout.session_id"
	otelAttrBookingID = "checkout.booking_id"
	centsPerUnit      = 100
)

var ErrMissingSecretKey = errors.New("stripe secret key is not configured")

// CheckoutRequest describes the single line item charged for a booking.
type CheckoutRequest struct {
	BookingID     string
	Description   string
	Amount        float64
	CustomerEmail string
}

type CheckoutSession struct {
	ID            string
	URL           string
	Status        string
	PaymentStatus string
	AmountTotal   int64
	BookingID     string
}

func (c CheckoutSession) IsPaid() bool {
	return c.PaymentStatus == string(stripeGo.CheckoutSessionPaymentStatusPaid) ||
		c.PaymentStatus == string(stripeGo.CheckoutSessionPaymentStatusNoPaymentRequired)
}

func (c CheckoutSession) IsExpired() bool {
	return c.Status == string(stripeGo.CheckoutSessionStatusExpired)
}

type Payment interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (CheckoutSession, error)
}

type checkoutSessions interface {
	Create(ctx context.Context, params *stripeGo.CheckoutSessionCreateParams) (*stripeGo.CheckoutSession, error)
	Retrieve(ctx context.Context, id string, params *stripeGo.CheckoutSessionRetrieveParams) (*stripeGo.CheckoutSession, error)
}

type paymentImpl struct {
	sessions checkoutSessions
	cfg      *config.Config
	otel     otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) Payment {
	if cfg.External.Stripe.SecretKey == "" {
		log.Warn().Msg("Stripe secret key is empty, checkout sessions will fail")
	}

	return &paymentImpl{
		sessions: stripeGo.NewClient(cfg.External.Stripe.SecretKey).V1CheckoutSessions,
		cfg:      cfg,
		otel:     otl,
	}
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * centsPerUnit))
}

func withSessionID(url string) string {
	if url == "" || strings.Contains(url, sessionIDTemplate) {
		return url
	}

	separator := "?"
	if strings.Contains(url, "?") {
		separator = "&"
	}

	return url + separator + "session_id=" + sessionIDTemplate
}

func (p *paymentImpl) createParams(req CheckoutRequest) *stripeGo.CheckoutSessionCreateParams {
	stripeCfg := p.cfg.External.Stripe

	params := &stripeGo.CheckoutSessionCreateParams{
		Mode:              stripeGo.String(string(stripeGo.CheckoutSessionModePayment)),
		SuccessURL:        stripeGo.String(withSessionID(stripeCfg.SuccessURL)),
		ClientReferenceID: stripeGo.String(req.BookingID),
		LineItems: []*stripeGo.CheckoutSessionCreateLineItemParams{
			{
				PriceData: &stripeGo.CheckoutSessionCreateLineItemPriceDataParams{
					Currency:   stripeGo.String(stripeCfg.Currency),
					UnitAmount: stripeGo.Int64(toCents(req.Amount)),
					ProductData: &stripeGo.CheckoutSessionCreateLineItemPriceDataProductDataParams{
						Name: stripeGo.String(req.Description),
					},
				},
				Quantity: stripeGo.Int64(1),
			},
		},
		Metadata: map[string]string{metadataBookingID: req.BookingID},
	}

	if stripeCfg.CancelURL != "" {
		params.CancelURL = stripeGo.String(stripeCfg.CancelURL)
	}

	if req.CustomerEmail != "" {
		params.CustomerEmail = stripeGo.String(req.CustomerEmail)
	}

	return params
}

func toSession(session *stripeGo.CheckoutSession) CheckoutSession {
	bookingID := session.ClientReferenceID
	if bookingID == "" {
		bookingID = session.Metadata[metadataBookingID]
	}

	return CheckoutSession{
		ID:            session.ID,
		URL:           session.URL,
		Status:        string(session.Status),
		PaymentStatus: string(session.PaymentStatus),
		AmountTotal:   session.AmountTotal,
		BookingID:     bookingID,
	}
}

func (p *paymentImpl) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (res CheckoutSession, err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelStripeScopeName, constant.OtelStripeScopeName+".CreateCheckoutSession")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelAttrBookingID, req.BookingID)

	if p.cfg.External.Stripe.SecretKey == "" {
		return res, ErrMissingSecretKey
	}

	session, err := p.sessions.Create(ctx, p.createParams(req))
	if err != nil {
		log.Error().Err(err).Str("booking_id", req.BookingID).Msg("failed to create checkout session")

		return res, fmt.Errorf("failed to create checkout session: %w", err)
	}

	scope.SetAttribute(otelAttrSessionID, session.ID)

	return toSession(session), nil
}

func (p *paymentImpl) GetCheckoutSession(ctx context.Context, sessionID string) (res CheckoutSession, err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelStripeScopeName, constant.OtelStripeScopeName+".GetCheckoutSession")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelAttrSessionID, sessionID)

	session, err := p.sessions.Retrieve(ctx, sessionID, &stripeGo.CheckoutSessionRetrieveParams{})
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("failed to retrieve checkout session")

		return res, fmt.Errorf("failed to retrieve checkout session: %w", err)
	}

	return toSession(session), nil
}
