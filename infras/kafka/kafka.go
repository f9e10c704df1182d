package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"frontdesk/config"
	"frontdesk/infras/otel"
	"frontdesk/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

type Message struct {
	Key   string
	Value any
}

func (m *Message) ToKafkaMessage() (kafkaGo.Message, error) {
	jsonValue, err := json.Marshal(m.Value)
	if err != nil {
		return kafkaGo.Message{}, fmt.Errorf("failed to marshal message value to JSON: %w", err)
	}

	return kafkaGo.Message{
		Key:   []byte(m.Key),
		Value: jsonValue,
	}, nil
}

type Publisher interface {
	Publish(ctx context.Context, messages ...Message) (err error)
}

type publisherImpl struct {
	writer *kafkaGo.Writer
	otel   otel.Otel
}

// New returns a nil Publisher when no brokers are configured. The cleanup
// flushes messages still buffered by the async writer.
func New(config *config.Config, otel otel.Otel) (Publisher, func()) {
	if !config.KafkaEnabled() {
		return nil, func() {}
	}

	mechanism := plain.Mechanism{
		Username: config.External.Kafka.SASL.Username,
		Password: config.External.Kafka.SASL.Password,
	}

	transport := &kafkaGo.Transport{}
	if mechanism.Username != "" {
		transport.SASL = mechanism
	}

	writer := &kafkaGo.Writer{
		Addr:                   kafkaGo.TCP(config.External.Kafka.Brokers...),
		Topic:                  config.External.Kafka.Topic,
		Transport:              transport,
		AllowAutoTopicCreation: true,
		Async:                  true,
		Completion: func(messages []kafkaGo.Message, err error) {
			if err != nil {
				log.Warn().Err(err).Int("count", len(messages)).Msg("Failed to deliver activity events")
			}
		},
	}

	log.Info().Strs("brokers", config.External.Kafka.Brokers).Str("topic", writer.Topic).Msg("Activity events will be published to Kafka")

	cleanup := func() {
		if err := writer.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Kafka writer")
		}
	}

	return &publisherImpl{writer: writer, otel: otel}, cleanup
}

func (p *publisherImpl) Publish(ctx context.Context, messages ...Message) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelKafkaScopeName, constant.OtelKafkaScopeName+".Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	msgs := make([]kafkaGo.Message, 0, len(messages))

	for _, message := range messages {
		msg, err := message.ToKafkaMessage()
		if err != nil {
			return err
		}

		msgs = append(msgs, msg)
	}

	err = p.writer.WriteMessages(ctx, msgs...)
	if err != nil {
		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	return nil
}
