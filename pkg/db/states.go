package db

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jqs7/regex/pkg/model"
	"golang.org/x/xerrors"
)

// States keeps sessions and message records in one table keyed by chatID
// and a typed sort key. Expired items are filtered on read; the table's TTL
// attribute removes them eventually.
type States struct {
	db        dynamodbiface.DynamoDBAPI
	tableName *string
	now       func() time.Time
}

type stateItem struct {
	ChatID  int64          `dynamodbav:"chatID"`
	Key     string         `dynamodbav:"key"`
	TTL     int64          `dynamodbav:"ttl"`
	Session *model.Session `dynamodbav:"session,omitempty"`
	Record  *model.Record  `dynamodbav:"record,omitempty"`
}

func NewStates(p client.ConfigProvider, tableName string) *States {
	return &States{
		db:        dynamodb.New(p),
		tableName: &tableName,
		now:       time.Now,
	}
}

func sessionKey(adminID int, kind model.SessionKind) string {
	return fmt.Sprintf("session#%d#%s", adminID, kind)
}

func recordKey(msgID int) string {
	return "record#" + strconv.Itoa(msgID)
}

func (s States) indexKeys(chatID int64, key string) map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{
		"chatID": {N: aws.String(strconv.FormatInt(chatID, 10))},
		"key":    {S: aws.String(key)},
	}
}

func (s States) get(ctx context.Context, chatID int64, key string) (*stateItem, error) {
	result, err := s.db.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName:      s.tableName,
		Key:            s.indexKeys(chatID, key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, xerrors.Errorf("读取 %d %s 失败: %w", chatID, key, err)
	}
	if len(result.Item) == 0 {
		return nil, ErrNotFound
	}
	item := &stateItem{}
	if err := dynamodbattribute.UnmarshalMap(result.Item, item); err != nil {
		return nil, xerrors.Errorf("解码 %d %s 失败: %w", chatID, key, err)
	}
	if item.TTL > 0 && s.now().Unix() >= item.TTL {
		return nil, ErrNotFound
	}
	return item, nil
}

func (s States) put(ctx context.Context, item stateItem) error {
	av, err := dynamodbattribute.MarshalMap(item)
	if err != nil {
		return xerrors.Errorf("编码 %d %s 失败: %w", item.ChatID, item.Key, err)
	}
	_, err = s.db.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		Item:      av,
		TableName: s.tableName,
	})
	if err != nil {
		return xerrors.Errorf("保存 %d %s 失败: %w", item.ChatID, item.Key, err)
	}
	return nil
}

func ttl(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func (s States) GetSession(ctx context.Context, chatID int64, adminID int, kind model.SessionKind) (*model.Session, error) {
	item, err := s.get(ctx, chatID, sessionKey(adminID, kind))
	if err != nil {
		return nil, err
	}
	if item.Session == nil {
		return nil, ErrNotFound
	}
	return item.Session, nil
}

func (s States) PutSession(ctx context.Context, session model.Session) error {
	return s.put(ctx, stateItem{
		ChatID:  session.ChatID,
		Key:     sessionKey(session.AdminID, session.Kind),
		TTL:     ttl(session.ExpireAt),
		Session: &session,
	})
}

func (s States) DeleteSession(ctx context.Context, chatID int64, adminID int, kind model.SessionKind) error {
	_, err := s.db.DeleteItemWithContext(ctx, &dynamodb.DeleteItemInput{
		TableName: s.tableName,
		Key:       s.indexKeys(chatID, sessionKey(adminID, kind)),
	})
	if err != nil {
		return xerrors.Errorf("删除会话 %d %d 失败: %w", chatID, adminID, err)
	}
	return nil
}

func (s States) GetRecord(ctx context.Context, chatID int64, msgID int) (*model.Record, error) {
	item, err := s.get(ctx, chatID, recordKey(msgID))
	if err != nil {
		return nil, err
	}
	if item.Record == nil {
		return nil, ErrNotFound
	}
	return item.Record, nil
}

func (s States) PutRecord(ctx context.Context, record model.Record) error {
	return s.put(ctx, stateItem{
		ChatID: record.ChatID,
		Key:    recordKey(record.MsgID),
		TTL:    ttl(record.ExpireAt),
		Record: &record,
	})
}
