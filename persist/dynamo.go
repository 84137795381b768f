package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoAPI is the subset of the DynamoDB client the store uses.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// DynamoStore keeps one item per key in a DynamoDB table. The blob's version
// is stored as a top-level attribute so that stream consumers can inspect it
// without decoding the state.
type DynamoStore struct {
	client DynamoAPI
	table  string
}

// dynamoItem is the table shape: pk is the partition key.
type dynamoItem struct {
	PK        string `dynamodbav:"pk"`
	Version   string `dynamodbav:"version,omitempty"`
	State     []byte `dynamodbav:"state"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// NewDynamoStore creates a store over the given table.
func NewDynamoStore(client DynamoAPI, table string) *DynamoStore {
	return &DynamoStore{client: client, table: table}
}

// Table returns the table name backing the store.
func (s *DynamoStore) Table() string { return s.table }

// Write persists the blob under key, replacing any previous item.
func (s *DynamoStore) Write(ctx context.Context, key string, blob Blob) error {
	item, err := attributevalue.MarshalMap(dynamoItem{
		PK:        key,
		Version:   blob.Version,
		State:     blob.Data,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("strata: marshal item %q: %w", key, err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("strata: write %q: %w", key, err)
	}
	return nil
}

// Read returns the blob stored under key.
func (s *DynamoStore) Read(ctx context.Context, key string) (Blob, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"pk": &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		return Blob{}, fmt.Errorf("strata: read %q: %w", key, err)
	}
	if result.Item == nil {
		return Blob{}, fmt.Errorf("%w: %q", ErrNotFound, key)
	}

	var item dynamoItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return Blob{}, fmt.Errorf("strata: unmarshal item %q: %w", key, err)
	}
	return Blob{Version: item.Version, Data: item.State}, nil
}
