// Package audit appends an immutable record of every processed webhook
// event to DynamoDB. Writes are conditional on the provider event id not
// being present yet, so a redelivered event is detected instead of
// silently overwriting its own record. Audit logging is best-effort: a
// failed write is logged and swallowed, never escalated into the
// delivery path.
package audit

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/jon-the-dev/aws-album-manager-sls/internal/logging"
)

// DefaultTable is the webhook audit table name.
const DefaultTable = "PayPalWebhooks"

// DynamoAPI is the subset of the DynamoDB client used by the Recorder.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// Record is one processed webhook event. Data holds the raw payload
// snapshot exactly as received.
type Record struct {
	OrderID   string `dynamodbav:"order_id"`
	EventType string `dynamodbav:"event_type"`
	Timestamp int64  `dynamodbav:"timestamp"`
	Data      string `dynamodbav:"data"`
}

// Recorder writes audit records.
type Recorder struct {
	client DynamoAPI
	table  string
	logger logging.Logger
	now    func() time.Time
}

type RecorderOption func(*Recorder)

// WithClock injects a clock for tests.
func WithClock(now func() time.Time) RecorderOption {
	return func(r *Recorder) { r.now = now }
}

func NewRecorder(client DynamoAPI, table string, logger logging.Logger, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		client: client,
		table:  table,
		logger: logger.With("module", "audit"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record persists one webhook event keyed by eventID and reports whether
// the id was already recorded, so the caller can suppress duplicate side
// effects for a redelivered event. An empty eventID gets a random one so
// the snapshot is still kept. Write failures are logged and swallowed,
// and report the event as new.
func (r *Recorder) Record(ctx context.Context, eventID, eventType string, rawPayload []byte) (replayed bool) {
	if eventID == "" {
		eventID = uuid.NewString()
	}

	rec := Record{
		OrderID:   eventID,
		EventType: eventType,
		Timestamp: r.now().Unix(),
		Data:      string(rawPayload),
	}

	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		r.logger.Warn(ctx, "audit record marshal failed", "event_id", eventID, "error", err.Error())
		return false
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(order_id)"),
	})
	if err != nil {
		var cond *types.ConditionalCheckFailedException
		if errors.As(err, &cond) {
			r.logger.Info(ctx, "webhook event already recorded", "event_id", eventID)
			return true
		}
		r.logger.Warn(ctx, "audit record write failed", "event_id", eventID, "error", err.Error())
	}
	return false
}
