package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

type Producer struct {
	l     *slog.Logger
	w     *kafka.Writer
	topic string
}

func NewProducer(l *slog.Logger, brokers []string, topic string) *Producer {
	l = l.WithGroup("kafka").With("topic", topic)

	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "",
		Balancer:               &kafka.LeastBytes{},
		Async:                  true,
		Compression:            0,
		Logger:                 &infoLogger{l: l},
		ErrorLogger:            &errorLogger{l: l},
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		l:     l,
		w:     w,
		topic: topic,
	}
}

type DonationConfirmedEvent struct {
	Type        string    `json:"type"`
	DonationID  string    `json:"donationId"`
	Reference   string    `json:"reference"`
	Amount      string    `json:"amount"`
	Currency    string    `json:"currency"`
	DonorEmail  string    `json:"donorEmail,omitempty"`
	ConfirmedAt time.Time `json:"confirmedAt"`
}

// SendDonationConfirmed publishes the internal alert for a freshly
// reconciled donation. Delivery is async and best-effort: a broker failure is
// logged and never reaches the payer-facing response.
func (p *Producer) SendDonationConfirmed(
	ctx context.Context,
	donationID uuid.UUID,
	reference string,
	amount decimal.Decimal,
	currency string,
	donorEmail string,
) {
	event := DonationConfirmedEvent{
		Type:        "donation.confirmed",
		DonationID:  donationID.String(),
		Reference:   reference,
		Amount:      amount.StringFixed(2),
		Currency:    currency,
		DonorEmail:  donorEmail,
		ConfirmedAt: time.Now().UTC(),
	}

	b, err := json.Marshal(event)
	if err != nil {
		p.l.Error(fmt.Sprintf("marshal event: %s", err))
		return
	}

	err = p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(reference),
		Value: b,
		Topic: p.topic,
	})
	if err != nil {
		p.l.Error(fmt.Sprintf("write kafka message: %s", err))
		return
	}
}

func (p *Producer) Close() {
	err := p.w.Close()
	if err != nil {
		p.l.Error(fmt.Sprintf("close kafka writer: %s", err))
	}
}

type infoLogger struct {
	l *slog.Logger
}

func (i *infoLogger) Printf(format string, args ...any) {
	i.l.Debug(fmt.Sprintf(format, args...))
}

type errorLogger struct {
	l *slog.Logger
}

func (e *errorLogger) Printf(format string, args ...any) {
	e.l.Error(fmt.Sprintf(format, args...))
}
