package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/muhammadolammi/resumestatus/internal/review"
	"github.com/streadway/amqp"
)

// retryDelay is the base wait between attempts; attempt i waits i*retryDelay.
var retryDelay = 500 * time.Millisecond

// retry retries a function up to `attempts` times with a growing pause
func retry[T any](attempts int, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if i < attempts-1 {
			time.Sleep(time.Duration(i+1) * retryDelay)
		}
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}

// --- R2 archive ---

func newR2Client(ctx context.Context, r2 *R2Config) (*s3.Client, error) {
	awsConfig, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(r2.AccessKey, r2.SecretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("error creating aws config: %w", err)
	}
	return s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r2.AccountID))
	}), nil
}

// objectPutter is the part of *s3.Client used for archiving.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

func UploadToR2(ctx context.Context, client objectPutter, bucket, key string, body []byte) error {
	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to put object: %w", err)
	}
	return nil
}

func receiptKey(ev review.Resubmission) string {
	return fmt.Sprintf("resubmissions/%s/%s.json", ev.StudentCode, ev.ID)
}

// --- broker ---

const resumeUpdatesExchange = "resume_updates"

// amqpPublisher is the part of *amqp.Channel used for publishing.
type amqpPublisher interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

func publishResubmission(ch amqpPublisher, ev review.Resubmission) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	routingKey := fmt.Sprintf("resume.%s", ev.StudentCode)

	return ch.Publish(
		resumeUpdatesExchange, // exchange
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			MessageId:   ev.ID.String(),
			Timestamp:   ev.At,
			Body:        body,
		},
	)
}
