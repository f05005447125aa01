package repository

import (
	"context"
	"errors"
	"time"

	"settlement_service/internal/domain/entities"
	"settlement_service/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultWebhookEventsTableName = "webhook_events"

type webhookEventItem struct {
	ID         string `dynamodbav:"id"`
	EventUUID  string `dynamodbav:"event_uuid"`
	Provider   string `dynamodbav:"provider"`
	EventID    string `dynamodbav:"event_id"`
	Payload    []byte `dynamodbav:"payload"`
	ReceivedAt string `dynamodbav:"received_at"`
}

// WebhookEventDynamoRepository is the provider event ledger in DynamoDB.
//
// Table requirements:
//   - PK: id (string), formatted as <provider>#<event_id>

type WebhookEventDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IWebhookEventRepository = (*WebhookEventDynamoRepository)(nil)

func NewWebhookEventDynamoRepository(ddb DynamoAPI, tableName string) *WebhookEventDynamoRepository {
	if tableName == "" {
		tableName = defaultWebhookEventsTableName
	}
	return &WebhookEventDynamoRepository{ddb: ddb, tableName: tableName}
}

// RecordIfNew is a conditional put: the losing writer gets ConditionalCheckFailed.
func (r *WebhookEventDynamoRepository) RecordIfNew(ctx context.Context, e entities.WebhookEvent) (bool, error) {
	av, err := attributevalue.MarshalMap(toWebhookEventItem(e))
	if err != nil {
		return false, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *WebhookEventDynamoRepository) Get(ctx context.Context, provider entities.Provider, eventID string) (entities.WebhookEvent, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            keyOf(webhookEventKey(provider, eventID)),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.WebhookEvent{}, err
	}
	if len(out.Item) == 0 {
		return entities.WebhookEvent{}, nil
	}

	var it webhookEventItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.WebhookEvent{}, err
	}
	return fromWebhookEventItem(it), nil
}

func (r *WebhookEventDynamoRepository) Release(ctx context.Context, provider entities.Provider, eventID string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       keyOf(webhookEventKey(provider, eventID)),
	})
	return err
}

func toWebhookEventItem(e entities.WebhookEvent) webhookEventItem {
	return webhookEventItem{
		ID:         webhookEventKey(e.Provider, e.EventID),
		EventUUID:  e.ID,
		Provider:   string(e.Provider),
		EventID:    e.EventID,
		Payload:    e.Payload,
		ReceivedAt: formatTime(e.ReceivedAt),
	}
}

func fromWebhookEventItem(it webhookEventItem) entities.WebhookEvent {
	receivedAt, _ := time.Parse(time.RFC3339Nano, it.ReceivedAt)
	return entities.WebhookEvent{
		ID:         it.EventUUID,
		Provider:   entities.Provider(it.Provider),
		EventID:    it.EventID,
		Payload:    it.Payload,
		ReceivedAt: receivedAt,
	}
}
