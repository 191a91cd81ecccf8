// Package records persists client and album delivery records in DynamoDB.
// Client records are created by the management layer; the delivery core
// writes one AlbumDelivery per successful bundle and otherwise treats the
// tables as read-only.
package records

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/jon-the-dev/aws-album-manager-sls/internal/common"
)

// Default table names.
const (
	DefaultClientsTable    = "Clients"
	DefaultDeliveriesTable = "AlbumDetails"
)

// DynamoAPI is the subset of the DynamoDB client used by the Store.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// Client is a registered customer.
type Client struct {
	ClientID   string `dynamodbav:"clientID"`
	ClientName string `dynamodbav:"clientName"`
	Email      string `dynamodbav:"email"`
	CreatedAt  int64  `dynamodbav:"createdAt"`
}

// AlbumDelivery records one successful album bundle: the object key, the
// issued link, and its expiry mirroring the link TTL.
type AlbumDelivery struct {
	AlbumID      string `dynamodbav:"albumID"`
	ClientName   string `dynamodbav:"clientName"`
	AlbumName    string `dynamodbav:"albumName"`
	ZipFileKey   string `dynamodbav:"zipFileKey"`
	Email        string `dynamodbav:"email"`
	DownloadLink string `dynamodbav:"downloadLink"`
	CreatedAt    int64  `dynamodbav:"createdAt"`
	ExpiresAt    int64  `dynamodbav:"expiresAt"`
}

// Store reads and writes record tables.
type Store struct {
	client          DynamoAPI
	clientsTable    string
	deliveriesTable string
	now             func() time.Time
}

type StoreOption func(*Store)

// WithClock injects a clock for tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

func NewStore(client DynamoAPI, clientsTable, deliveriesTable string, opts ...StoreOption) *Store {
	s := &Store{
		client:          client,
		clientsTable:    clientsTable,
		deliveriesTable: deliveriesTable,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateClient registers a new client with a generated UUIDv4 id.
func (s *Store) CreateClient(ctx context.Context, name, email string) (*Client, error) {
	if name == "" || email == "" {
		return nil, fmt.Errorf("client name and email are required: %w", common.ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email %q: %w", email, common.ErrValidation)
	}

	c := &Client{
		ClientID:   uuid.NewString(),
		ClientName: name,
		Email:      email,
		CreatedAt:  s.now().Unix(),
	}

	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return nil, fmt.Errorf("marshal client: %w", err)
	}

	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.clientsTable),
		Item:      item,
	}); err != nil {
		return nil, fmt.Errorf("put client: %w", errors.Join(common.ErrStorage, err))
	}

	return c, nil
}

// GetClient returns a client by id.
func (s *Store) GetClient(ctx context.Context, id string) (*Client, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.clientsTable),
		Key: map[string]types.AttributeValue{
			"clientID": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get client %s: %w", id, errors.Join(common.ErrStorage, err))
	}
	if out.Item == nil {
		return nil, fmt.Errorf("client %s: %w", id, common.ErrNotFound)
	}

	var c Client
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		return nil, fmt.Errorf("unmarshal client %s: %w", id, err)
	}
	return &c, nil
}

// PutDelivery writes the delivery record for a bundled album. The expiry
// mirrors the download link TTL.
func (s *Store) PutDelivery(ctx context.Context, d *AlbumDelivery, ttl time.Duration) error {
	if d.AlbumID == "" {
		d.AlbumID = uuid.NewString()
	}
	now := s.now()
	d.CreatedAt = now.Unix()
	d.ExpiresAt = now.Add(ttl).Unix()

	item, err := attributevalue.MarshalMap(d)
	if err != nil {
		return fmt.Errorf("marshal delivery: %w", err)
	}

	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.deliveriesTable),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("put delivery: %w", errors.Join(common.ErrStorage, err))
	}

	return nil
}
