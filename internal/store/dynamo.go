package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ast-fleet-console-api-server/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Dynamo implements Store on top of DynamoDB.
type Dynamo struct {
	Client *dynamodb.Client
}

func NewDynamo(ctx context.Context, cfg config.AWSConfig) (*Dynamo, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	// Explicit credentials when configured, otherwise the default
	// chain (env vars, shared profile, instance role).
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	sdkConfig, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := dynamodb.NewFromConfig(sdkConfig, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return &Dynamo{Client: client}, nil
}

func (k Key) attributeValues() map[string]types.AttributeValue {
	av := make(map[string]types.AttributeValue, len(k))
	for name, value := range k {
		av[name] = &types.AttributeValueMemberS{Value: value}
	}
	return av
}

func (d *Dynamo) Get(ctx context.Context, table string, key Key, out any) error {
	resp, err := d.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       key.attributeValues(),
	})
	if err != nil {
		return fmt.Errorf("get from %s: %w", table, err)
	}
	if resp.Item == nil {
		return ErrNotFound
	}
	if err := attributevalue.UnmarshalMap(resp.Item, out); err != nil {
		return fmt.Errorf("decode item from %s: %w", table, err)
	}
	return nil
}

func (d *Dynamo) Put(ctx context.Context, table string, item any) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("encode item for %s: %w", table, err)
	}
	_, err = d.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("put into %s: %w", table, err)
	}
	return nil
}

// Update sets exactly the named fields through the expression builder.
// The update syntax is never assembled from strings.
func (d *Dynamo) Update(ctx context.Context, table string, key Key, changes map[string]any) error {
	if len(changes) == 0 {
		return nil
	}

	expr, err := buildUpdateExpression(changes)
	if err != nil {
		return fmt.Errorf("build update for %s: %w", table, err)
	}

	_, err = d.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(table),
		Key:                       key.attributeValues(),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return fmt.Errorf("update in %s: %w", table, err)
	}
	return nil
}

func buildUpdateExpression(changes map[string]any) (expression.Expression, error) {
	var upd expression.UpdateBuilder
	for field, value := range changes {
		upd = upd.Set(expression.Name(field), expression.Value(value))
	}
	return expression.NewBuilder().WithUpdate(upd).Build()
}

func (d *Dynamo) Delete(ctx context.Context, table string, key Key) error {
	_, err := d.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(table),
		Key:       key.attributeValues(),
	})
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	return nil
}

func (d *Dynamo) Scan(ctx context.Context, table string, out any) error {
	resp, err := d.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(table),
	})
	if err != nil {
		return fmt.Errorf("scan %s: %w", table, err)
	}
	if err := attributevalue.UnmarshalListOfMaps(resp.Items, out); err != nil {
		return fmt.Errorf("decode items from %s: %w", table, err)
	}
	return nil
}

// EnsureTables creates any missing table from the given name -> hash
// key mapping and waits until it is ready to serve.
func (d *Dynamo) EnsureTables(ctx context.Context, tables map[string]string) error {
	for table, hashKey := range tables {
		_, err := d.Client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
			TableName: aws.String(table),
		})
		if err == nil {
			continue
		}
		var notFound *types.ResourceNotFoundException
		if !errors.As(err, &notFound) {
			return fmt.Errorf("describe table %s: %w", table, err)
		}

		_, err = d.Client.CreateTable(ctx, &dynamodb.CreateTableInput{
			TableName: aws.String(table),
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String(hashKey), KeyType: types.KeyTypeHash},
			},
			AttributeDefinitions: []types.AttributeDefinition{
				{AttributeName: aws.String(hashKey), AttributeType: types.ScalarAttributeTypeS},
			},
			ProvisionedThroughput: &types.ProvisionedThroughput{
				ReadCapacityUnits:  aws.Int64(5),
				WriteCapacityUnits: aws.Int64(5),
			},
		})
		if err != nil {
			return fmt.Errorf("create table %s: %w", table, err)
		}

		waiter := dynamodb.NewTableExistsWaiter(d.Client)
		if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{
			TableName: aws.String(table),
		}, 2*time.Minute); err != nil {
			return fmt.Errorf("wait for table %s: %w", table, err)
		}
	}
	return nil
}

// EnableTTL turns on DynamoDB item expiry for an attribute holding an
// epoch-seconds deadline. Already-enabled is not an error; enabling
// twice is.
func (d *Dynamo) EnableTTL(ctx context.Context, table, attribute string) error {
	desc, err := d.Client.DescribeTimeToLive(ctx, &dynamodb.DescribeTimeToLiveInput{
		TableName: aws.String(table),
	})
	if err != nil {
		return fmt.Errorf("describe ttl on %s: %w", table, err)
	}
	if desc.TimeToLiveDescription != nil {
		switch desc.TimeToLiveDescription.TimeToLiveStatus {
		case types.TimeToLiveStatusEnabled, types.TimeToLiveStatusEnabling:
			return nil
		}
	}

	_, err = d.Client.UpdateTimeToLive(ctx, &dynamodb.UpdateTimeToLiveInput{
		TableName: aws.String(table),
		TimeToLiveSpecification: &types.TimeToLiveSpecification{
			AttributeName: aws.String(attribute),
			Enabled:       aws.Bool(true),
		},
	})
	if err != nil {
		return fmt.Errorf("enable ttl on %s: %w", table, err)
	}
	return nil
}
