package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"settlement_service/internal/domain/entities"
	"settlement_service/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPaymentsTableName = "payments"

	itemTypePayment = "PAYMENT"
	itemTypeGuard   = "GUARD"

	conditionalCheckFailed  = "ConditionalCheckFailed"
	transactionConflictCode = "TransactionConflict"
)

// DynamoAPI is the subset of *dynamodb.Client used by the repositories.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

type paymentItem struct {
	ID                string `dynamodbav:"id"`
	ItemType          string `dynamodbav:"item_type"`
	OrderID           string `dynamodbav:"order_id"`
	Provider          string `dynamodbav:"provider"`
	ProviderSessionID string `dynamodbav:"provider_session_id,omitempty"`
	ProviderPaymentID string `dynamodbav:"provider_payment_id,omitempty"`
	CheckoutURL       string `dynamodbav:"checkout_url,omitempty"`
	Status            string `dynamodbav:"status"`
	CreatedAt         string `dynamodbav:"created_at"`
	UpdatedAt         string `dynamodbav:"updated_at"`
}

// guardItem points a unique key at the payment that owns it.
type guardItem struct {
	ID        string `dynamodbav:"id"`
	ItemType  string `dynamodbav:"item_type"`
	PaymentID string `dynamodbav:"payment_id"`
}

// PaymentDynamoRepository persists Payment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// One table holds payment items and guard items. Guards make every lookup a GetItem and
// enforce uniqueness inside TransactWriteItems:
//   - ORDER#<order_id>: the current payment of the order
//   - SESSION#<provider>#<session_id>
//   - CONFIRMATION#<provider>#<confirmation_id>

type PaymentDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
	now       func() time.Time
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb DynamoAPI, tableName string) *PaymentDynamoRepository {
	if tableName == "" {
		tableName = defaultPaymentsTableName
	}
	return &PaymentDynamoRepository{
		ddb:       ddb,
		tableName: tableName,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Create writes the payment and claims the order guard in one transaction. With
// supersedes set, the guard may be taken over from that payment only while it is FAILED.
func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.Payment, supersedes string) (entities.Payment, error) {
	av, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return entities.Payment{}, err
	}
	guard, err := attributevalue.MarshalMap(guardItem{ID: orderGuardKey(p.OrderID), ItemType: itemTypeGuard, PaymentID: p.ID})
	if err != nil {
		return entities.Payment{}, err
	}

	guardPut := &types.Put{
		TableName:                aws.String(r.tableName),
		Item:                     guard,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	}
	items := []types.TransactWriteItem{
		{Put: &types.Put{
			TableName:                aws.String(r.tableName),
			Item:                     av,
			ConditionExpression:      aws.String("attribute_not_exists(#id)"),
			ExpressionAttributeNames: map[string]string{"#id": "id"},
		}},
		{Put: guardPut},
	}
	if supersedes != "" {
		guardPut.ConditionExpression = aws.String("attribute_not_exists(#id) OR #payment_id = :superseded")
		guardPut.ExpressionAttributeNames["#payment_id"] = "payment_id"
		guardPut.ExpressionAttributeValues = map[string]types.AttributeValue{
			":superseded": &types.AttributeValueMemberS{Value: supersedes},
		}
		items = append(items, types.TransactWriteItem{ConditionCheck: &types.ConditionCheck{
			TableName:                aws.String(r.tableName),
			Key:                      keyOf(supersedes),
			ConditionExpression:      aws.String("#status = :failed"),
			ExpressionAttributeNames: map[string]string{"#status": "status"},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":failed": &types.AttributeValueMemberS{Value: string(entities.PaymentStatusFailed)},
			},
		}})
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		if failed := cancelledItems(err); len(failed) > 0 || transactionConflict(err) {
			return entities.Payment{}, interfaces.ErrActivePaymentExists
		}
		return entities.Payment{}, err
	}
	return p, nil
}

func (r *PaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	raw, err := r.getItem(ctx, id)
	if err != nil || len(raw) == 0 {
		return entities.Payment{}, err
	}
	var it paymentItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return entities.Payment{}, err
	}
	if it.ItemType != itemTypePayment {
		return entities.Payment{}, nil
	}
	return fromPaymentItem(it), nil
}

func (r *PaymentDynamoRepository) GetByOrderID(ctx context.Context, orderID string) (entities.Payment, error) {
	return r.getByGuard(ctx, orderGuardKey(orderID))
}

func (r *PaymentDynamoRepository) GetBySessionID(ctx context.Context, provider entities.Provider, sessionID string) (entities.Payment, error) {
	return r.getByGuard(ctx, sessionGuardKey(provider, sessionID))
}

func (r *PaymentDynamoRepository) GetByConfirmationID(ctx context.Context, provider entities.Provider, confirmationID string) (entities.Payment, error) {
	return r.getByGuard(ctx, confirmationGuardKey(provider, confirmationID))
}

func (r *PaymentDynamoRepository) AttachSession(ctx context.Context, id, sessionID, checkoutURL string) (entities.Payment, bool, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil || !current.Found() {
		return current, false, err
	}
	if current.Status != entities.PaymentStatusCreated {
		return current, false, nil
	}

	now := r.now()
	set := "SET #status = :pending, #provider_session_id = :session, #updated_at = :updated_at"
	values := map[string]types.AttributeValue{
		":pending":    &types.AttributeValueMemberS{Value: string(entities.PaymentStatusPending)},
		":created":    &types.AttributeValueMemberS{Value: string(entities.PaymentStatusCreated)},
		":session":    &types.AttributeValueMemberS{Value: sessionID},
		":updated_at": &types.AttributeValueMemberS{Value: formatTime(now)},
	}
	names := map[string]string{
		"#id":                  "id",
		"#status":              "status",
		"#provider_session_id": "provider_session_id",
		"#updated_at":          "updated_at",
	}
	if checkoutURL != "" {
		set += ", #checkout_url = :checkout_url"
		values[":checkout_url"] = &types.AttributeValueMemberS{Value: checkoutURL}
		names["#checkout_url"] = "checkout_url"
	}

	guard, err := r.guardPut(sessionGuardKey(current.Provider, sessionID), id)
	if err != nil {
		return entities.Payment{}, false, err
	}
	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: []types.TransactWriteItem{
		{Update: &types.Update{
			TableName:                 aws.String(r.tableName),
			Key:                       keyOf(id),
			UpdateExpression:          aws.String(set),
			ConditionExpression:       aws.String("attribute_exists(#id) AND #status = :created"),
			ExpressionAttributeNames:  names,
			ExpressionAttributeValues: values,
		}},
		{Put: guard},
	}})
	if err != nil {
		failed := cancelledItems(err)
		switch {
		case failed[0]:
			latest, getErr := r.GetByID(ctx, id)
			return latest, false, getErr
		case failed[1]:
			return entities.Payment{}, false, interfaces.ErrDuplicateSession
		case transactionConflict(err):
			return r.afterConflict(ctx, id, err, func(p entities.Payment) bool {
				return p.Status != entities.PaymentStatusCreated
			})
		}
		return entities.Payment{}, false, err
	}

	current.Status = entities.PaymentStatusPending
	current.ProviderSessionID = sessionID
	if checkoutURL != "" {
		current.CheckoutURL = checkoutURL
	}
	current.UpdatedAt = now
	return current, true, nil
}

// MarkPaid also repoints the order guard at the payment, so a late capture of a
// superseded attempt closes the order.
func (r *PaymentDynamoRepository) MarkPaid(ctx context.Context, id, confirmationID string) (entities.Payment, bool, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil || !current.Found() {
		return current, false, err
	}
	if current.Status == entities.PaymentStatusPaid {
		return current, false, nil
	}

	now := r.now()
	set := "SET #status = :paid, #updated_at = :updated_at"
	values := map[string]types.AttributeValue{
		":paid":       &types.AttributeValueMemberS{Value: string(entities.PaymentStatusPaid)},
		":updated_at": &types.AttributeValueMemberS{Value: formatTime(now)},
	}
	names := map[string]string{"#id": "id", "#status": "status", "#updated_at": "updated_at"}
	if confirmationID != "" {
		set += ", #provider_payment_id = :confirmation"
		values[":confirmation"] = &types.AttributeValueMemberS{Value: confirmationID}
		names["#provider_payment_id"] = "provider_payment_id"
	}
	orderGuard, err := attributevalue.MarshalMap(guardItem{ID: orderGuardKey(current.OrderID), ItemType: itemTypeGuard, PaymentID: id})
	if err != nil {
		return entities.Payment{}, false, err
	}
	items := []types.TransactWriteItem{
		{Update: &types.Update{
			TableName:                 aws.String(r.tableName),
			Key:                       keyOf(id),
			UpdateExpression:          aws.String(set),
			ConditionExpression:       aws.String("attribute_exists(#id) AND #status <> :paid"),
			ExpressionAttributeNames:  names,
			ExpressionAttributeValues: values,
		}},
		{Put: &types.Put{TableName: aws.String(r.tableName), Item: orderGuard}},
	}
	if confirmationID != "" {
		guard, err := r.guardPut(confirmationGuardKey(current.Provider, confirmationID), id)
		if err != nil {
			return entities.Payment{}, false, err
		}
		items = append(items, types.TransactWriteItem{Put: guard})
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		failed := cancelledItems(err)
		switch {
		case failed[0]:
			latest, getErr := r.GetByID(ctx, id)
			return latest, false, getErr
		case failed[2]:
			return entities.Payment{}, false, interfaces.ErrDuplicateConfirmation
		case transactionConflict(err):
			return r.afterConflict(ctx, id, err, func(p entities.Payment) bool {
				return p.Status == entities.PaymentStatusPaid
			})
		}
		return entities.Payment{}, false, err
	}

	current.Status = entities.PaymentStatusPaid
	if confirmationID != "" {
		current.ProviderPaymentID = confirmationID
	}
	current.UpdatedAt = now
	return current, true, nil
}

func (r *PaymentDynamoRepository) MarkFailed(ctx context.Context, id string) (entities.Payment, bool, error) {
	return r.conditionalUpdate(ctx, id, &types.Update{
		Key:              keyOf(id),
		UpdateExpression: aws.String("SET #status = :failed, #updated_at = :updated_at"),
		ConditionExpression: aws.String(
			"attribute_exists(#id) AND #status IN (:created, :pending)",
		),
		ExpressionAttributeNames: map[string]string{"#id": "id", "#status": "status", "#updated_at": "updated_at"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":failed":     &types.AttributeValueMemberS{Value: string(entities.PaymentStatusFailed)},
			":created":    &types.AttributeValueMemberS{Value: string(entities.PaymentStatusCreated)},
			":pending":    &types.AttributeValueMemberS{Value: string(entities.PaymentStatusPending)},
			":updated_at": &types.AttributeValueMemberS{Value: formatTime(r.now())},
		},
	})
}

// conditionalUpdate runs a single-item update. A failed condition is not an error: the
// current item is returned with applied=false.
func (r *PaymentDynamoRepository) conditionalUpdate(ctx context.Context, id string, u *types.Update) (entities.Payment, bool, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       u.Key,
		UpdateExpression:          u.UpdateExpression,
		ConditionExpression:       u.ConditionExpression,
		ExpressionAttributeNames:  u.ExpressionAttributeNames,
		ExpressionAttributeValues: u.ExpressionAttributeValues,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			latest, getErr := r.GetByID(ctx, id)
			return latest, false, getErr
		}
		return entities.Payment{}, false, err
	}
	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Payment{}, false, err
	}
	return fromPaymentItem(it), true, nil
}

func (r *PaymentDynamoRepository) getByGuard(ctx context.Context, guardKey string) (entities.Payment, error) {
	raw, err := r.getItem(ctx, guardKey)
	if err != nil || len(raw) == 0 {
		return entities.Payment{}, err
	}
	var g guardItem
	if err := attributevalue.UnmarshalMap(raw, &g); err != nil {
		return entities.Payment{}, err
	}
	if g.PaymentID == "" {
		return entities.Payment{}, fmt.Errorf("guard %s has no payment_id", guardKey)
	}
	return r.GetByID(ctx, g.PaymentID)
}

func (r *PaymentDynamoRepository) getItem(ctx context.Context, id string) (map[string]types.AttributeValue, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            keyOf(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	return out.Item, nil
}

// guardPut claims a guard for paymentID. Re-claiming one's own guard succeeds.
func (r *PaymentDynamoRepository) guardPut(guardKey, paymentID string) (*types.Put, error) {
	item, err := attributevalue.MarshalMap(guardItem{ID: guardKey, ItemType: itemTypeGuard, PaymentID: paymentID})
	if err != nil {
		return nil, err
	}
	return &types.Put{
		TableName:                aws.String(r.tableName),
		Item:                     item,
		ConditionExpression:      aws.String("attribute_not_exists(#id) OR #payment_id = :payment_id"),
		ExpressionAttributeNames: map[string]string{"#id": "id", "#payment_id": "payment_id"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":payment_id": &types.AttributeValueMemberS{Value: paymentID},
		},
	}, nil
}

// cancelledItems maps a TransactionCanceledException to the indexes of the transact
// items whose condition failed. Any other error yields an empty map.
func cancelledItems(err error) map[int]bool {
	failed := map[int]bool{}
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return failed
	}
	for i, reason := range tce.CancellationReasons {
		if aws.ToString(reason.Code) == conditionalCheckFailed {
			failed[i] = true
		}
	}
	return failed
}

// transactionConflict reports whether a transaction was cancelled because another
// transaction was writing one of its items.
func transactionConflict(err error) bool {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return false
	}
	for _, reason := range tce.CancellationReasons {
		if aws.ToString(reason.Code) == transactionConflictCode {
			return true
		}
	}
	return false
}

// afterConflict re-reads a payment whose transition lost a TransactionConflict. When
// done reports that the competing writer already made the transition, the current item
// is returned with applied=false. Otherwise the conflict is returned for a retry.
func (r *PaymentDynamoRepository) afterConflict(ctx context.Context, id string, conflict error, done func(entities.Payment) bool) (entities.Payment, bool, error) {
	latest, err := r.GetByID(ctx, id)
	if err != nil {
		return entities.Payment{}, false, err
	}
	if latest.Found() && done(latest) {
		return latest, false, nil
	}
	return entities.Payment{}, false, fmt.Errorf("payment %s: %w", id, conflict)
}

func keyOf(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func toPaymentItem(p entities.Payment) paymentItem {
	return paymentItem{
		ID:                p.ID,
		ItemType:          itemTypePayment,
		OrderID:           p.OrderID,
		Provider:          string(p.Provider),
		ProviderSessionID: p.ProviderSessionID,
		ProviderPaymentID: p.ProviderPaymentID,
		CheckoutURL:       p.CheckoutURL,
		Status:            string(p.Status),
		CreatedAt:         formatTime(p.CreatedAt),
		UpdatedAt:         formatTime(p.UpdatedAt),
	}
}

func fromPaymentItem(it paymentItem) entities.Payment {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return entities.Payment{
		ID:                it.ID,
		OrderID:           it.OrderID,
		Provider:          entities.Provider(it.Provider),
		ProviderSessionID: it.ProviderSessionID,
		ProviderPaymentID: it.ProviderPaymentID,
		CheckoutURL:       it.CheckoutURL,
		Status:            entities.PaymentStatus(it.Status),
		CreatedAt:         createdAt,
		UpdatedAt:         updatedAt,
	}
}
