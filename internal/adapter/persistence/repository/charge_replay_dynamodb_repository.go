package repository

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"pix_checkout/internal/domain/entities"
	"pix_checkout/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultChargeReplayTableName = "charge_requests"

// dynamoItemAPI is the part of *dynamodb.Client the replay store calls.
type dynamoItemAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// ChargeReplayDynamoRepository persists replay entries in DynamoDB.
//
// Table requirements:
//   - PK: idempotency_key (string)
//   - TTL attribute: expires_at (epoch seconds)

type ChargeReplayDynamoRepository struct {
	ddb       dynamoItemAPI
	tableName string
	now       func() time.Time
}

var _ interfaces.IChargeReplayStore = (*ChargeReplayDynamoRepository)(nil)

func NewChargeReplayDynamoRepository(ddb dynamoItemAPI, tableName string) *ChargeReplayDynamoRepository {
	if tableName == "" {
		tableName = defaultChargeReplayTableName
	}
	return &ChargeReplayDynamoRepository{
		ddb:       ddb,
		tableName: tableName,
		now:       time.Now,
	}
}

func (r *ChargeReplayDynamoRepository) Get(ctx context.Context, key string) (entities.Charge, bool, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"idempotency_key": &types.AttributeValueMemberS{Value: key},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Charge{}, false, err
	}
	if len(out.Item) == 0 {
		return entities.Charge{}, false, nil
	}

	var it chargeReplayItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Charge{}, false, err
	}
	// DynamoDB TTL deletion is lazy.
	if it.ExpiresAt <= r.now().Unix() {
		return entities.Charge{}, false, nil
	}
	return fromChargeReplayItem(it), true, nil
}

func (r *ChargeReplayDynamoRepository) Save(ctx context.Context, key string, charge entities.Charge, ttl time.Duration) error {
	now := r.now()
	av, err := attributevalue.MarshalMap(toChargeReplayItem(key, charge, now.Add(ttl)))
	if err != nil {
		return err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#k) OR #exp <= :now"),
		ExpressionAttributeNames: map[string]string{
			"#k":   "idempotency_key",
			"#exp": "expires_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":now": &types.AttributeValueMemberN{Value: strconv.FormatInt(now.Unix(), 10)},
		},
	})

	var conflict *types.ConditionalCheckFailedException
	if errors.As(err, &conflict) {
		log.Printf("[charge][replay] entry already stored key=%s", key)
		return nil
	}
	return err
}
