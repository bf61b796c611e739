// Package dynamo adapts a DynamoDB table to the kv.Store contract.
//
// Records live in one table: partition key "pk" (string), payload "v"
// (binary), and an optional numeric "ttl" attribute holding the epoch
// expiry second. DynamoDB removes expired items asynchronously, so Get
// and conditional Sets additionally filter on "ttl" to never observe a
// value past its deadline.
package dynamo

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/lattice/kv"
)

var _ kv.Store = (*Store)(nil)

// api is the subset of the DynamoDB client the Store uses.
type api interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// Store persists records in a single DynamoDB table.
type Store struct {
	client api
	config Config
}

// item is the table's row shape.
type item struct {
	PK  string `dynamodbav:"pk"`
	V   []byte `dynamodbav:"v"`
	TTL int64  `dynamodbav:"ttl,omitempty"`
}

// New creates a Store over a DynamoDB client.
func New(client *dynamodb.Client, config Config) *Store {
	config.validate()
	return &Store{client: client, config: config}
}

// Get returns the live value under key, or kv.ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.config.Table),
		Key: map[string]types.AttributeValue{
			"pk": &types.AttributeValueMemberS{Value: key},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if result.Item == nil {
		return nil, kv.ErrNotFound
	}

	var it item
	if err := attributevalue.UnmarshalMap(result.Item, &it); err != nil {
		return nil, err
	}

	// TTL removal is asynchronous; treat expired items as absent.
	if it.TTL != 0 && it.TTL <= time.Now().Unix() {
		return nil, kv.ErrNotFound
	}

	return it.V, nil
}

// Set stores value under key. Conditional options become condition
// expressions on the put, evaluated server-side.
func (s *Store) Set(ctx context.Context, key string, value []byte, opts kv.SetOptions) error {
	if opts.IfNotExists && opts.IfExists {
		return kv.ErrConditionFailed
	}

	it := item{PK: key, V: value}
	if opts.TTL > 0 {
		it.TTL = time.Now().Add(opts.TTL).Unix()
	}

	attrs, err := attributevalue.MarshalMap(it)
	if err != nil {
		return err
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(s.config.Table),
		Item:      attrs,
	}

	// Items whose ttl has passed but that DynamoDB has not yet removed
	// count as absent for both conditions.
	switch {
	case opts.IfNotExists:
		input.ConditionExpression = aws.String("attribute_not_exists(pk) OR #ttl <= :now")
		input.ExpressionAttributeNames = map[string]string{"#ttl": "ttl"}
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":now": &types.AttributeValueMemberN{
				Value: strconv.FormatInt(time.Now().Unix(), 10),
			},
		}
	case opts.IfExists:
		input.ConditionExpression = aws.String("attribute_exists(pk) AND (attribute_not_exists(#ttl) OR #ttl > :now)")
		input.ExpressionAttributeNames = map[string]string{"#ttl": "ttl"}
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":now": &types.AttributeValueMemberN{
				Value: strconv.FormatInt(time.Now().Unix(), 10),
			},
		}
	}

	_, err = s.client.PutItem(ctx, input)
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return kv.ErrConditionFailed
		}
		return err
	}
	return nil
}

// Delete removes key. Deleting an absent key succeeds.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.config.Table),
		Key: map[string]types.AttributeValue{
			"pk": &types.AttributeValueMemberS{Value: key},
		},
	})
	return err
}
