package db

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jqs7/regex/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
)

// fakeTable keeps items by their "chatID"/"key" or "type"/"pattern" pair.
type fakeTable struct {
	dynamodbiface.DynamoDBAPI
	items map[string]map[string]*dynamodb.AttributeValue
}

func newFakeTable() *fakeTable {
	return &fakeTable{items: map[string]map[string]*dynamodb.AttributeValue{}}
}

func itemID(item map[string]*dynamodb.AttributeValue) string {
	if v, ok := item["chatID"]; ok {
		return aws.StringValue(v.N) + "/" + aws.StringValue(item["key"].S)
	}
	return aws.StringValue(item["type"].S) + "/" + aws.StringValue(item["pattern"].S)
}

func (f *fakeTable) PutItemWithContext(_ aws.Context, in *dynamodb.PutItemInput, _ ...request.Option) (*dynamodb.PutItemOutput, error) {
	f.items[itemID(in.Item)] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeTable) GetItemWithContext(_ aws.Context, in *dynamodb.GetItemInput, _ ...request.Option) (*dynamodb.GetItemOutput, error) {
	return &dynamodb.GetItemOutput{Item: f.items[itemID(in.Key)]}, nil
}

func (f *fakeTable) DeleteItemWithContext(_ aws.Context, in *dynamodb.DeleteItemInput, _ ...request.Option) (*dynamodb.DeleteItemOutput, error) {
	id := itemID(in.Key)
	if _, ok := f.items[id]; !ok && in.ConditionExpression != nil {
		return nil, awserr.New(dynamodb.ErrCodeConditionalCheckFailedException, "condition failed", nil)
	}
	delete(f.items, id)
	return &dynamodb.DeleteItemOutput{}, nil
}

func TestWordsTable(t *testing.T) {
	ctx := context.Background()
	w := &Words{db: newFakeTable(), tableName: aws.String("words")}
	now := time.Unix(1580000000, 0)

	word := model.Word{
		Type:      model.TypeAd,
		Pattern:   "加微信",
		CreatedBy: 7,
		CreatedAt: now,
		Status:    model.WordStatus{Today: 1, Total: 3, Average: 1.5, Time: now},
	}
	require.NoError(t, w.PutWord(ctx, word))
	got, err := w.GetWord(ctx, model.TypeAd, "加微信")
	require.NoError(t, err)
	assert.Equal(t, word.Status.Total, got.Status.Total)
	assert.Equal(t, word.Status.Average, got.Status.Average)
	assert.True(t, word.CreatedAt.Equal(got.CreatedAt))

	_, err = w.GetWord(ctx, model.TypeAd, "nope")
	assert.True(t, xerrors.Is(err, ErrNotFound))

	require.NoError(t, w.DeleteWord(ctx, model.TypeAd, "加微信"))
	assert.True(t, xerrors.Is(w.DeleteWord(ctx, model.TypeAd, "加微信"), ErrNotFound))
}

func TestStatesTable(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1580000000, 0)
	s := &States{db: newFakeTable(), tableName: aws.String("states"), now: func() time.Time { return now }}

	session := model.Session{
		ChatID:    -1001,
		AdminID:   7,
		Kind:      model.SessionAsk,
		Key:       "k1",
		ExpireAt:  now.Add(time.Minute),
		Type:      model.TypeAd,
		Word:      "fo+",
		Conflicts: []string{"foo"},
	}
	require.NoError(t, s.PutSession(ctx, session))
	got, err := s.GetSession(ctx, -1001, 7, model.SessionAsk)
	require.NoError(t, err)
	assert.Equal(t, "k1", got.Key)
	assert.Equal(t, []string{"foo"}, got.Conflicts)

	_, err = s.GetSession(ctx, -1001, 7, model.SessionPage)
	assert.True(t, xerrors.Is(err, ErrNotFound))

	require.NoError(t, s.PutRecord(ctx, model.Record{ChatID: -1001, MsgID: 5, AdminID: 7, Kind: model.RecordAsk, Key: "k1"}))
	record, err := s.GetRecord(ctx, -1001, 5)
	require.NoError(t, err)
	assert.Equal(t, "k1", record.Key)

	now = now.Add(time.Hour)
	_, err = s.GetSession(ctx, -1001, 7, model.SessionAsk)
	assert.True(t, xerrors.Is(err, ErrNotFound), "expired sessions are hidden before the table's TTL sweep")

	require.NoError(t, s.DeleteSession(ctx, -1001, 7, model.SessionAsk))
}
