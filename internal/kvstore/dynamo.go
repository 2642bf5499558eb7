package kvstore

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Dynamo keeps one item per key in a DynamoDB table with partition key
// entry_key. Useful when several storefront instances share a ledger.
type Dynamo struct {
	client    *dynamodb.Client
	tableName string
}

type dynamoEntry struct {
	Key   string `dynamodbav:"entry_key"`
	Value string `dynamodbav:"entry_value"`
}

func NewDynamo(client *dynamodb.Client, tableName string) *Dynamo {
	return &Dynamo{client: client, tableName: tableName}
}

// OpenDynamo builds a client from the default AWS config chain.
func OpenDynamo(ctx context.Context, tableName string) (*Dynamo, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load aws config: %v", ErrStorage, err)
	}
	return NewDynamo(dynamodb.NewFromConfig(cfg), tableName), nil
}

func (d *Dynamo) Get(ctx context.Context, key string) (string, bool, error) {
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.tableName),
		Key: map[string]types.AttributeValue{
			"entry_key": &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		return "", false, fmt.Errorf("%w: get %q: %v", ErrStorage, key, err)
	}
	if out.Item == nil {
		return "", false, nil
	}

	var entry dynamoEntry
	if err := attributevalue.UnmarshalMap(out.Item, &entry); err != nil {
		return "", false, fmt.Errorf("%w: unmarshal %q: %v", ErrStorage, key, err)
	}
	return entry.Value, true, nil
}

func (d *Dynamo) Set(ctx context.Context, key, value string) error {
	item, err := attributevalue.MarshalMap(dynamoEntry{Key: key, Value: value})
	if err != nil {
		return fmt.Errorf("%w: marshal %q: %v", ErrStorage, key, err)
	}

	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("%w: put %q: %v", ErrStorage, key, err)
	}
	return nil
}

func (d *Dynamo) Delete(ctx context.Context, key string) error {
	_, err := d.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(d.tableName),
		Key: map[string]types.AttributeValue{
			"entry_key": &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: delete %q: %v", ErrStorage, key, err)
	}
	return nil
}

func (d *Dynamo) Keys(ctx context.Context) ([]string, error) {
	var keys []string

	paginator := dynamodb.NewScanPaginator(d.client, &dynamodb.ScanInput{
		TableName:            aws.String(d.tableName),
		ProjectionExpression: aws.String("entry_key"),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: scan keys: %v", ErrStorage, err)
		}
		for _, item := range page.Items {
			var entry dynamoEntry
			if err := attributevalue.UnmarshalMap(item, &entry); err != nil {
				return nil, fmt.Errorf("%w: unmarshal key: %v", ErrStorage, err)
			}
			keys = append(keys, entry.Key)
		}
	}
	return keys, nil
}
