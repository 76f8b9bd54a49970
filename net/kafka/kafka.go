package kafka

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"gitlab.com/tierpass-exchange/ledger_api/data"
)

// Config structure
type Config struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// Publisher pushes ledger signals on the configured topic
type Publisher struct {
	writer *kafkaGo.Writer
}

// NewPublisher connects a new writer to the configured brokers
func NewPublisher(cfg Config) *Publisher {
	return &Publisher{
		writer: &kafkaGo.Writer{
			Addr:         kafkaGo.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafkaGo.LeastBytes{},
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

// Publish sends one event on the topic. Delivery failures are logged, not
// propagated: the ledgers have already committed by the time signals fan out.
func (p *Publisher) Publish(ev data.Event) {
	msg, err := data.ToBinary(ev)
	if err != nil {
		log.Error().Err(err).Str("package", "kafka").Str("func", "Publish").
			Str("event", string(ev.Type())).Msg("Unable to encode event")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.writer.WriteMessages(ctx, kafkaGo.Message{
		Key:   []byte(ev.Type()),
		Value: msg,
	}); err != nil {
		log.Error().Err(err).Str("package", "kafka").Str("func", "Publish").
			Str("event", string(ev.Type())).Msg("Unable to publish event")
	}
}

// Close flushes and closes the underlying writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}
