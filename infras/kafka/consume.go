package kafka

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const fetchBackoff = time.Second

// messageReader is the part of *kafkaGo.Reader the consume loop drives.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafkaGo.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkaGo.Message) error
}

// consume hands each fetched message to handler and commits it, even when handling failed.
// Fetch errors are retried after backoff; a closed reader ends the loop.
func consume(ctx context.Context, reader messageReader, topic string, handler Handler, backoff time.Duration) error {
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info().Str("topic", topic).Msg("Consumer context done.")

				return nil
			}

			if errors.Is(err, io.EOF) {
				return fmt.Errorf("kafka reader closed: %w", err)
			}

			log.Error().Err(err).Str("topic", topic).Dur("backoff", backoff).Msg("Failed to read message from Kafka.")

			select {
			case <-ctx.Done():
				log.Info().Str("topic", topic).Msg("Consumer context done.")

				return nil
			case <-time.After(backoff):
			}

			continue
		}

		if err = handler(ctx, msg); err != nil {
			log.Error().
				Err(err).
				Str("topic", topic).
				Str("key", string(msg.Key)).
				Int64("offset", msg.Offset).
				Msg("Failed to handle Kafka message, skipping.")
		}

		if err = reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Str("topic", topic).Msg("Failed to commit Kafka offset.")
		}
	}
}
