package jobs_test

import (
	"context"
	"errors"
	"hotel/config"
	"hotel/infras/kafka"
	kafkaMocks "hotel/infras/kafka/mocks"
	"hotel/infras/mailer"
	mailerMocks "hotel/infras/mailer/mocks"
	"hotel/infras/otel/mocks"
	s3Mocks "hotel/infras/s3/mocks"
	"hotel/infras/scheduler"
	schedulerMocks "hotel/infras/scheduler/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	serviceMocks "hotel/internal/domains/booking/service/mocks"
	"hotel/internal/jobs"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Booking.ReconcileIntervalSeconds = 300
	cfg.Booking.FolioDirectory = "folios"
	cfg.Kafka.ConsumerGroup = "hotel-worker"
	cfg.Kafka.Topics.BookingEvents = "booking.events"

	return cfg
}

func TestReconciler_Register(t *testing.T) {
	ctrl := gomock.NewController(t)

	bookings := serviceMocks.NewMockBooking(ctrl)
	sched := schedulerMocks.NewMockScheduler(ctrl)

	var task scheduler.Task

	sched.EXPECT().Every("booking-payment-reconciler", 5*time.Minute, gomock.Any()).
		DoAndReturn(func(_ string, _ time.Duration, registered scheduler.Task) error {
			task = registered

			return nil
		})

	reconciler := jobs.NewReconciler(bookings, newConfig(), mocks.NewOtel())
	require.NoError(t, reconciler.Register(sched))
	require.NotNil(t, task)

	bookings.EXPECT().ReconcilePayments(gomock.Any()).Return(nil)
	task(context.Background())

	bookings.EXPECT().ReconcilePayments(gomock.Any()).Return(errors.New("booking booking-4: rate limited"))
	assert.NotPanics(t, func() { task(context.Background()) })
}

func statusChanged(t *testing.T, status model.Status, actor string) kafka.Message {
	t.Helper()

	return kafka.Message{
		Key:  "booking-1",
		Type: model.EventStatusChanged,
		Value: model.Event{
			Type:      model.EventStatusChanged,
			BookingID: "booking-1",
			UserID:    "guest-1",
			Status:    status.String(),
			Actor:     actor,
		},
	}
}

func TestNotifier_Handle(t *testing.T) {
	checkIn := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	stored := model.Booking{
		ID:             "booking-1",
		UserID:         "guest-1",
		CheckInDate:    checkIn,
		CheckOutDate:   checkIn.AddDate(0, 0, 2),
		StatusID:       model.StatusConfirmed,
		TotalAmount:    200,
		NumberOfGuests: 2,
		UserFirstName:  "Jane",
		UserLastName:   "Doe",
		UserEmail:      "jane@example.com",
		RoomNumber:     "R101",
		RoomPrice:      100,
		RoomCategory:   "Standard",
	}

	tests := []struct {
		name      string
		message   kafka.Message
		setupMock func(repo *bookingMocks.MockBooking, mail *mailerMocks.MockMailer, storage *s3Mocks.MockS3)
		wantErr   bool
	}{
		{
			name:      "other event types are ignored",
			message:   kafka.Message{Key: "booking-1", Type: model.EventCreated, Value: model.Event{BookingID: "booking-1"}},
			setupMock: func(_ *bookingMocks.MockBooking, _ *mailerMocks.MockMailer, _ *s3Mocks.MockS3) {},
		},
		{
			name:    "confirmed stays are e-mailed",
			message: statusChanged(t, model.StatusConfirmed, constant.ContextSystem),
			setupMock: func(repo *bookingMocks.MockBooking, mail *mailerMocks.MockMailer, _ *s3Mocks.MockS3) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
				mail.EXPECT().Send(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, message mailer.Message) error {
						assert.Equal(t, []string{"jane@example.com"}, message.To)
						assert.Equal(t, "Booking confirmed: room R101", message.Subject)
						assert.Contains(t, message.Body, "Hello Jane Doe")
						assert.Contains(t, message.Body, "Check-in: 2025-03-01")
						assert.Contains(t, message.Body, "Total: 200.00")

						return nil
					})
			},
		},
		{
			name:      "front desk check-in sends no payment mail",
			message:   statusChanged(t, model.StatusConfirmed, "staff-1"),
			setupMock: func(_ *bookingMocks.MockBooking, _ *mailerMocks.MockMailer, _ *s3Mocks.MockS3) {},
		},
		{
			name:    "completed stays are archived",
			message: statusChanged(t, model.StatusCompleted, constant.ContextSystem),
			setupMock: func(repo *bookingMocks.MockBooking, _ *mailerMocks.MockMailer, storage *s3Mocks.MockS3) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.Booking, error) {
						_, args := filter.GetWhereClause()
						assert.Equal(t, "booking-1", args["id"])

						return stored, nil
					})
				storage.EXPECT().UploadJSON(gomock.Any(), "folios", "booking-1.json", gomock.Any()).
					DoAndReturn(func(_ context.Context, _, _ string, payload any) (string, error) {
						folio, ok := payload.(dto.Folio)
						require.True(t, ok)
						assert.Equal(t, "Jane Doe", folio.GuestName)
						assert.Equal(t, 2, folio.Nights)

						return "https://bucket.s3.amazonaws.com/folios/booking-1.json", nil
					})
			},
		},
		{
			name:      "cancellations need no follow-up",
			message:   statusChanged(t, model.StatusCancelled, constant.ContextSystem),
			setupMock: func(_ *bookingMocks.MockBooking, _ *mailerMocks.MockMailer, _ *s3Mocks.MockS3) {},
		},
		{
			name:    "deleted booking is skipped",
			message: statusChanged(t, model.StatusConfirmed, constant.ContextSystem),
			setupMock: func(repo *bookingMocks.MockBooking, _ *mailerMocks.MockMailer, _ *s3Mocks.MockS3) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
		},
		{
			name:    "mail failure is reported",
			message: statusChanged(t, model.StatusConfirmed, constant.ContextSystem),
			setupMock: func(repo *bookingMocks.MockBooking, mail *mailerMocks.MockMailer, _ *s3Mocks.MockS3) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
				mail.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("smtp refused"))
			},
			wantErr: true,
		},
		{
			name:    "database failure is reported",
			message: statusChanged(t, model.StatusCompleted, constant.ContextSystem),
			setupMock: func(repo *bookingMocks.MockBooking, _ *mailerMocks.MockMailer, _ *s3Mocks.MockS3) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := bookingMocks.NewMockBooking(ctrl)
			mail := mailerMocks.NewMockMailer(ctrl)
			storage := s3Mocks.NewMockS3(ctrl)
			tt.setupMock(repo, mail, storage)

			notifier := jobs.NewNotifier(repo, mail, storage, newConfig(), mocks.NewOtel())

			message, err := tt.message.ToKafkaMessage("booking.events")
			require.NoError(t, err)

			err = notifier.Handle(context.Background(), message)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}

	t.Run("malformed payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		notifier := jobs.NewNotifier(bookingMocks.NewMockBooking(ctrl), mailerMocks.NewMockMailer(ctrl), s3Mocks.NewMockS3(ctrl), newConfig(), mocks.NewOtel())

		source := statusChanged(t, model.StatusConfirmed, constant.ContextSystem)
		message, err := source.ToKafkaMessage("booking.events")
		require.NoError(t, err)

		message.Value = []byte("{")

		assert.Error(t, notifier.Handle(context.Background(), message))
	})
}

func TestWorker_Run(t *testing.T) {
	t.Run("schedules the reconciler and consumes events", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		client := kafkaMocks.NewMockClient(ctrl)
		sched := schedulerMocks.NewMockScheduler(ctrl)
		cfg := newConfig()

		reconciler := jobs.NewReconciler(serviceMocks.NewMockBooking(ctrl), cfg, mocks.NewOtel())
		notifier := jobs.NewNotifier(bookingMocks.NewMockBooking(ctrl), mailerMocks.NewMockMailer(ctrl), s3Mocks.NewMockS3(ctrl), cfg, mocks.NewOtel())

		gomock.InOrder(
			sched.EXPECT().Every("booking-payment-reconciler", gomock.Any(), gomock.Any()).Return(nil),
			sched.EXPECT().Start(),
			client.EXPECT().Consume(gomock.Any(), "hotel-worker", "booking.events", gomock.Any()).Return(nil),
			sched.EXPECT().Shutdown().Return(nil),
			client.EXPECT().Close().Return(nil),
		)

		worker := jobs.NewWorker(client, sched, reconciler, notifier, cfg)
		assert.NoError(t, worker.Run(context.Background()))
	})

	t.Run("does not start when the job cannot be registered", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		sched := schedulerMocks.NewMockScheduler(ctrl)
		cfg := newConfig()

		sched.EXPECT().Every(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("invalid interval"))

		reconciler := jobs.NewReconciler(serviceMocks.NewMockBooking(ctrl), cfg, mocks.NewOtel())
		worker := jobs.NewWorker(kafkaMocks.NewMockClient(ctrl), sched, reconciler, nil, cfg)

		assert.Error(t, worker.Run(context.Background()))
	})
}
