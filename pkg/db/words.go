package db

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jqs7/regex/pkg/model"
	"golang.org/x/xerrors"
)

type Words struct {
	db        dynamodbiface.DynamoDBAPI
	tableName *string
}

func NewWords(p client.ConfigProvider, tableName string) *Words {
	return &Words{
		db:        dynamodb.New(p),
		tableName: &tableName,
	}
}

func (w Words) keys(t model.WordType, pattern string) map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{
		"type":    {S: aws.String(string(t))},
		"pattern": {S: aws.String(pattern)},
	}
}

func (w Words) GetWord(ctx context.Context, t model.WordType, pattern string) (*model.Word, error) {
	result, err := w.db.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName:      w.tableName,
		Key:            w.keys(t, pattern),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, xerrors.Errorf("读取 %s %s 失败: %w", t, pattern, err)
	}
	if len(result.Item) == 0 {
		return nil, ErrNotFound
	}
	return w.unmarshal(result.Item)
}

func (w Words) ListWords(ctx context.Context, t model.WordType) ([]model.Word, error) {
	var (
		words   []model.Word
		pageErr error
	)
	err := w.db.QueryPagesWithContext(ctx, &dynamodb.QueryInput{
		TableName:                w.tableName,
		KeyConditionExpression:   aws.String("#t = :t"),
		ExpressionAttributeNames: map[string]*string{"#t": aws.String("type")},
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":t": {S: aws.String(string(t))},
		},
		ConsistentRead: aws.Bool(true),
	}, func(page *dynamodb.QueryOutput, lastPage bool) bool {
		for _, item := range page.Items {
			word, err := w.unmarshal(item)
			if err != nil {
				pageErr = err
				return false
			}
			words = append(words, *word)
		}
		return true
	})
	if err != nil {
		return nil, xerrors.Errorf("查询类别 %s 失败: %w", t, err)
	}
	if pageErr != nil {
		return nil, pageErr
	}
	sort.Slice(words, func(i, j int) bool { return words[i].Pattern < words[j].Pattern })
	return words, nil
}

func (w Words) PutWord(ctx context.Context, word model.Word) error {
	_, err := w.db.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		Item:      w.marshal(word),
		TableName: w.tableName,
	})
	if err != nil {
		return xerrors.Errorf("保存 %s %s 失败: %w", word.Type, word.Pattern, err)
	}
	return nil
}

func (w Words) DeleteWord(ctx context.Context, t model.WordType, pattern string) error {
	_, err := w.db.DeleteItemWithContext(ctx, &dynamodb.DeleteItemInput{
		TableName:                w.tableName,
		Key:                      w.keys(t, pattern),
		ConditionExpression:      aws.String("attribute_exists(#p)"),
		ExpressionAttributeNames: map[string]*string{"#p": aws.String("pattern")},
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == dynamodb.ErrCodeConditionalCheckFailedException {
			return ErrNotFound
		}
		return xerrors.Errorf("删除 %s %s 失败: %w", t, pattern, err)
	}
	return nil
}

func n(i int64) *dynamodb.AttributeValue {
	return &dynamodb.AttributeValue{N: aws.String(strconv.FormatInt(i, 10))}
}

func (w Words) marshal(word model.Word) map[string]*dynamodb.AttributeValue {
	item := w.keys(word.Type, word.Pattern)
	item["createdBy"] = n(int64(word.CreatedBy))
	item["createdAt"] = n(word.CreatedAt.UnixNano())
	item["today"] = n(int64(word.Status.Today))
	item["total"] = n(int64(word.Status.Total))
	item["average"] = &dynamodb.AttributeValue{N: aws.String(strconv.FormatFloat(word.Status.Average, 'f', -1, 64))}
	item["time"] = n(word.Status.Time.UnixNano())
	return item
}

func (w Words) unmarshal(item map[string]*dynamodb.AttributeValue) (*model.Word, error) {
	num := func(key string) (int64, error) {
		v, ok := item[key]
		if !ok || v.N == nil {
			return 0, nil
		}
		i, err := strconv.ParseInt(*v.N, 10, 64)
		if err != nil {
			return 0, xerrors.Errorf("convert %s %s to int64 failed: %w", key, *v.N, err)
		}
		return i, nil
	}
	word := &model.Word{
		Type:    model.WordType(aws.StringValue(item["type"].S)),
		Pattern: aws.StringValue(item["pattern"].S),
	}
	createdBy, err := num("createdBy")
	if err != nil {
		return nil, err
	}
	createdAt, err := num("createdAt")
	if err != nil {
		return nil, err
	}
	today, err := num("today")
	if err != nil {
		return nil, err
	}
	total, err := num("total")
	if err != nil {
		return nil, err
	}
	statusTime, err := num("time")
	if err != nil {
		return nil, err
	}
	if v, ok := item["average"]; ok && v.N != nil {
		if word.Status.Average, err = strconv.ParseFloat(*v.N, 64); err != nil {
			return nil, xerrors.Errorf("convert average %s to float failed: %w", *v.N, err)
		}
	}
	word.CreatedBy = int(createdBy)
	word.CreatedAt = time.Unix(0, createdAt)
	word.Status.Today = int(today)
	word.Status.Total = int(total)
	word.Status.Time = time.Unix(0, statusTime)
	return word, nil
}
