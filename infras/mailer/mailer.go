package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/shared/constant"

	"github.com/rs/zerolog/log"
	"github.com/wneessen/go-mail"
)

var ErrNotConfigured = errors.New("mail host is not configured")

type Message struct {
	To      []string
	Subject string
	Body    string
	HTML    bool
}

type Mailer interface {
	Send(ctx context.Context, message Message) error
}

type mailerImpl struct {
	client   *mail.Client
	from     string
	fromName string
	otel     otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) Mailer {
	mailCfg := cfg.External.Mail

	impl := &mailerImpl{
		from:     mailCfg.From,
		fromName: mailCfg.FromName,
		otel:     otl,
	}

	if mailCfg.Host == "" {
		log.Warn().Msg("No SMTP host configured, guest emails are disabled")

		return impl
	}

	options := []mail.Option{mail.WithPort(mailCfg.Port)}
	if mailCfg.Username != "" {
		options = append(options,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(mailCfg.Username),
			mail.WithPassword(mailCfg.Password),
		)
	}

	client, err := mail.NewClient(mailCfg.Host, options...)
	if err != nil {
		log.Error().Err(err).Str("host", mailCfg.Host).Msg("Could not initialize smtp client")

		return impl
	}

	impl.client = client

	return impl
}

// BuildMessage renders a go-mail message with the configured sender.
func BuildMessage(from, fromName string, message Message) (*mail.Msg, error) {
	msg := mail.NewMsg()

	if err := msg.FromFormat(fromName, from); err != nil {
		return nil, fmt.Errorf("failed to set from address: %w", err)
	}

	if err := msg.To(message.To...); err != nil {
		return nil, fmt.Errorf("failed to set to address: %w", err)
	}

	msg.Subject(message.Subject)

	if message.HTML {
		msg.SetBodyString(mail.TypeTextHTML, message.Body)
	} else {
		msg.SetBodyString(mail.TypeTextPlain, message.Body)
	}

	return msg, nil
}

func (m *mailerImpl) Send(ctx context.Context, message Message) (err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelMailScopeName, constant.OtelMailScopeName+".Send")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("mail.subject", message.Subject)

	if m.client == nil {
		return ErrNotConfigured
	}

	msg, err := BuildMessage(m.from, m.fromName, message)
	if err != nil {
		return err
	}

	if err = m.client.DialAndSendWithContext(ctx, msg); err != nil {
		log.Error().Err(err).Strs("to", message.To).Msg("Failed to send email")

		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
