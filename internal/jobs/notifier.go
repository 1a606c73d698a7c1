package jobs

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/mailer"
	"hotel/infras/otel"
	"hotel/infras/s3"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	bookingRepo "hotel/internal/domains/booking/repository"
	"hotel/shared"
	"hotel/shared/constant"
	"hotel/shared/timezone"
	"strings"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// Notifier reacts to booking status changes: confirmed guests get an e-mail and completed
// stays are archived as a JSON folio.
type Notifier struct {
	repo    bookingRepo.Booking
	mailer  mailer.Mailer
	storage s3.S3
	cfg     *config.Config
	otel    otel.Otel
}

func NewNotifier(repo bookingRepo.Booking, mailer mailer.Mailer, storage s3.S3, cfg *config.Config, otel otel.Otel) *Notifier {
	return &Notifier{
		repo:    repo,
		mailer:  mailer,
		storage: storage,
		cfg:     cfg,
		otel:    otel,
	}
}

// Handle is a kafka.Handler for the booking events topic.
func (n *Notifier) Handle(ctx context.Context, message kafkaGo.Message) (err error) {
	ctx, scope := n.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".booking.Notify")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if kafka.EventType(message) != model.EventStatusChanged {
		return nil
	}

	event, err := kafka.Decode[model.Event](message)
	if err != nil {
		return err //nolint:wrapcheck
	}

	scope.SetAttributes(map[string]any{
		"booking.id":     event.BookingID,
		"booking.status": event.Status,
	})

	switch event.Status {
	case model.StatusConfirmed.String():
		// Only the payment paths confirm as the system; a staff check-in moves no money.
		if event.Actor != constant.ContextSystem {
			return nil
		}

		return n.sendConfirmation(ctx, event)
	case model.StatusCompleted.String():
		return n.archiveFolio(ctx, event)
	default:
		return nil
	}
}

func (n *Notifier) load(ctx context.Context, id string) (model.Booking, error) {
	booking, err := n.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		log.Warn().Str("booking_id", id).Msg("booking gone before its event was handled")
	}

	return booking, nil
}

func (n *Notifier) sendConfirmation(ctx context.Context, event model.Event) error {
	booking, err := n.load(ctx, event.BookingID)
	if err != nil || booking.ID == constant.Empty {
		return err
	}

	message := mailer.Message{
		To:      []string{booking.UserEmail},
		Subject: fmt.Sprintf("Booking confirmed: room %s", booking.RoomNumber),
		Body:    confirmationBody(booking),
	}

	if err = n.mailer.Send(ctx, message); err != nil {
		return fmt.Errorf("failed to send confirmation: %w", err)
	}

	log.Info().Str("booking_id", booking.ID).Msg("booking confirmation sent")

	return nil
}

func (n *Notifier) archiveFolio(ctx context.Context, event model.Event) error {
	booking, err := n.load(ctx, event.BookingID)
	if err != nil || booking.ID == constant.Empty {
		return err
	}

	var folio dto.Folio
	folio.FromModel(booking, timezone.Now())

	url, err := n.storage.UploadJSON(ctx, n.cfg.Booking.FolioDirectory, booking.ID+".json", folio)
	if err != nil {
		return fmt.Errorf("failed to archive folio: %w", err)
	}

	log.Info().Str("booking_id", booking.ID).Str("url", url).Msg("stay folio archived")

	return nil
}

func confirmationBody(booking model.Booking) string {
	var body strings.Builder

	fmt.Fprintf(&body, "Hello %s,\n\n", booking.GuestName())
	body.WriteString("Your payment was received and your stay is confirmed.\n\n")
	fmt.Fprintf(&body, "Booking: %s\n", booking.ID)
	fmt.Fprintf(&body, "Room: %s (%s)\n", booking.RoomNumber, booking.RoomCategory)
	fmt.Fprintf(&body, "Check-in: %s\n", booking.CheckInDate.Format(constant.DateOnlyFormat))
	fmt.Fprintf(&body, "Check-out: %s\n", booking.CheckOutDate.Format(constant.DateOnlyFormat))
	fmt.Fprintf(&body, "Guests: %d\n", booking.NumberOfGuests)
	fmt.Fprintf(&body, "Total: %.2f\n", booking.TotalAmount)

	return body.String()
}
