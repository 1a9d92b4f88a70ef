package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/muhammadolammi/resumestatus/internal/database"
	"github.com/muhammadolammi/resumestatus/internal/review"
	"github.com/streadway/amqp"
)

// Sink receives accepted resubmissions from the dispatcher.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, ev review.Resubmission) error
}

// journalSink keeps a row per resubmission in postgres.
type journalSink struct {
	DB *database.Queries
}

func (j journalSink) Name() string { return "journal" }

func (j journalSink) Deliver(ctx context.Context, ev review.Resubmission) error {
	return j.DB.CreateResubmission(ctx, database.CreateResubmissionParams{
		ID:           ev.ID,
		StudentCode:  ev.StudentCode,
		PreviousLink: ev.PreviousLink,
		NewLink:      ev.NewLink,
		Feedback:     ev.Feedback,
		Backend:      ev.Backend,
		CreatedAt:    ev.At,
	})
}

// brokerSink publishes resubmissions on the resume_updates topic exchange so
// graders can pick them up.
type brokerSink struct {
	RabbitConn *amqp.Connection
}

func newBrokerSink(rabbitmqUrl string) (*brokerSink, error) {
	conn, err := amqp.Dial(rabbitmqUrl)
	if err != nil {
		return nil, fmt.Errorf("error connecting to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("error opening rabbitmq channel: %w", err)
	}
	defer ch.Close()

	err = ch.ExchangeDeclare(
		resumeUpdatesExchange, // name
		"topic",               // kind
		true,                  // durable
		false,                 // auto-delete
		false,                 // internal
		false,                 // no-wait
		nil,                   // arguments
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}
	return &brokerSink{RabbitConn: conn}, nil
}

func (b *brokerSink) Name() string { return "broker" }

func (b *brokerSink) Deliver(ctx context.Context, ev review.Resubmission) error {
	ch, err := b.RabbitConn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	return publishResubmission(ch, ev)
}

func (b *brokerSink) Close() error {
	return b.RabbitConn.Close()
}

// archiveSink stores a JSON receipt of each resubmission in R2.
type archiveSink struct {
	Client objectPutter
	Bucket string
}

func (a archiveSink) Name() string { return "archive" }

func (a archiveSink) Deliver(ctx context.Context, ev review.Resubmission) error {
	body, err := json.MarshalIndent(ev, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal receipt: %w", err)
	}
	return UploadToR2(ctx, a.Client, a.Bucket, receiptKey(ev), body)
}
