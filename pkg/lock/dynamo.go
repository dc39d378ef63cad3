package lock

import (
	"context"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

const DefaultLease = 30 * time.Second

// Dynamo is a lease lock shared by every Lambda instance. A holder that dies
// without releasing blocks others for at most one lease.
type Dynamo struct {
	db        dynamodbiface.DynamoDBAPI
	tableName *string
	newOwner  func() string
	lease     time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

func NewDynamo(p client.ConfigProvider, tableName string, logger *zap.Logger) *Dynamo {
	return &Dynamo{
		db:        dynamodb.New(p),
		tableName: &tableName,
		newOwner:  uuid.NewString,
		lease:     DefaultLease,
		logger:    logger,
		now:       time.Now,
	}
}

func ms(t time.Time) *string {
	return aws.String(strconv.FormatInt(t.UnixNano()/int64(time.Millisecond), 10))
}

// acquire puts a lease owned by a fresh id, so a release can only delete the
// lease it took out.
func (d *Dynamo) acquire(ctx context.Context, name string) (string, bool, error) {
	now := d.now()
	owner := d.newOwner()
	_, err := d.db.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: d.tableName,
		Item: map[string]*dynamodb.AttributeValue{
			"name":     {S: aws.String(name)},
			"owner":    {S: aws.String(owner)},
			"expireAt": {N: ms(now.Add(d.lease))},
		},
		ConditionExpression:      aws.String("attribute_not_exists(#n) OR expireAt < :now"),
		ExpressionAttributeNames: map[string]*string{"#n": aws.String("name")},
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":now": {N: ms(now)},
		},
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == dynamodb.ErrCodeConditionalCheckFailedException {
			return "", false, nil
		}
		return "", false, xerrors.Errorf("获取锁 %s 失败: %w", name, err)
	}
	return owner, true, nil
}

func (d *Dynamo) release(name, owner string) func() {
	return func() {
		_, err := d.db.DeleteItem(&dynamodb.DeleteItemInput{
			TableName:           d.tableName,
			Key:                 map[string]*dynamodb.AttributeValue{"name": {S: aws.String(name)}},
			ConditionExpression: aws.String("#o = :owner"),
			ExpressionAttributeNames: map[string]*string{
				"#o": aws.String("owner"),
			},
			ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
				":owner": {S: aws.String(owner)},
			},
		})
		if err != nil {
			d.logger.Warn("释放锁失败", zap.String("lock", name), zap.Error(err))
		}
	}
}

func (d *Dynamo) TryLock(ctx context.Context, name string) (func(), bool, error) {
	owner, ok, err := d.acquire(ctx, name)
	if err != nil || !ok {
		return nil, false, err
	}
	return d.release(name, owner), true, nil
}

func (d *Dynamo) Lock(ctx context.Context, name string) (func(), error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 50 * time.Millisecond
	b.MaxInterval = time.Second
	b.MaxElapsedTime = 0
	var owner string
	err := backoff.Retry(func() error {
		o, ok, err := d.acquire(ctx, name)
		if err != nil {
			return backoff.Permanent(err)
		}
		if !ok {
			return ErrBusy
		}
		owner = o
		return nil
	}, backoff.WithContext(b, ctx))
	if err != nil {
		return nil, err
	}
	return d.release(name, owner), nil
}
