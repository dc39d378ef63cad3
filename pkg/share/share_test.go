package share

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/jqs7/regex/pkg/db"
	"github.com/jqs7/regex/pkg/lock"
	"github.com/jqs7/regex/pkg/model"
	"github.com/jqs7/regex/pkg/queue"
	"github.com/jqs7/regex/pkg/words"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const exchangeQueue = "Exchange"

var receivers = map[model.WordType][]string{
	model.TypeAd: {"NOSPAM", "CLEAN"},
	model.TypeNm: {"USER", "NOSPAM"},
}

func newTestSharer(q queue.Interface, store *db.Memory) *Sharer {
	w := words.NewManager(store, zap.NewNop())
	return NewSharer(q, exchangeQueue, receivers,
		[]model.WordType{model.TypeAd, model.TypeBan, model.TypeNm}, w, lock.NewLocal(), zap.NewNop())
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("推送单个类别", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		store := db.NewMemory()
		require.NoError(t, store.PutWord(ctx, model.Word{Type: model.TypeAd, Pattern: "b"}))
		require.NoError(t, store.PutWord(ctx, model.Word{Type: model.TypeAd, Pattern: "a"}))

		mockQueue := queue.NewMockInterface(ctrl)
		mockQueue.EXPECT().SendMsg(ctx, exchangeQueue, model.ShareData{
			From:       model.ShareSender,
			To:         []string{"NOSPAM", "CLEAN"},
			Action:     model.ActionRegex,
			ActionType: model.ActionTypeUpdate,
			Data:       model.WordsUpdate{Type: model.TypeAd, Words: []string{"a", "b"}},
		}, int64(0)).Times(1)

		assert.NoError(t, newTestSharer(mockQueue, store).Update(ctx, model.TypeAd))
	})

	t.Run("无接收者的类别不推送", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mockQueue := queue.NewMockInterface(ctrl)
		assert.NoError(t, newTestSharer(mockQueue, db.NewMemory()).Update(ctx, model.TypeBan))
	})

	t.Run("推送全部", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mockQueue := queue.NewMockInterface(ctrl)
		mockQueue.EXPECT().SendMsg(gomock.Any(), exchangeQueue, gomock.Any(), int64(0)).Times(2)
		assert.NoError(t, newTestSharer(mockQueue, db.NewMemory()).UpdateAll(ctx))
	})
}

func TestCount(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQueue := queue.NewMockInterface(ctrl)
	mockQueue.EXPECT().SendMsg(ctx, exchangeQueue, model.ShareData{
		From:       model.ShareSender,
		To:         []string{"CLEAN", "NOSPAM", "USER"},
		Action:     model.ActionRegex,
		ActionType: model.ActionTypeCount,
		Data:       model.CountAsk,
	}, int64(0)).Times(1)
	assert.NoError(t, newTestSharer(mockQueue, db.NewMemory()).Count(ctx))
}

func TestReceive(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := db.NewMemory()
	require.NoError(t, store.PutWord(ctx, model.Word{Type: model.TypeAd, Pattern: "x"}))
	s := newTestSharer(queue.NewMockInterface(ctrl), store)

	require.NoError(t, s.Receive(ctx, model.ShareData{
		From: "NOSPAM", To: []string{model.ShareSender},
		Action: model.ActionRegex, ActionType: model.ActionTypeCount,
		Data: map[string]interface{}{"ad": map[string]interface{}{"x": 3}, "zz": map[string]interface{}{"x": 1}},
	}))
	w, err := store.GetWord(ctx, model.TypeAd, "x")
	require.NoError(t, err)
	assert.Equal(t, 3, w.Status.Total)

	require.NoError(t, s.Receive(ctx, model.ShareData{
		From: "NOSPAM", To: []string{"CLEAN"},
		Action: model.ActionRegex, ActionType: model.ActionTypeCount,
		Data: map[string]interface{}{"ad": map[string]interface{}{"x": 3}},
	}))
	w, _ = store.GetWord(ctx, model.TypeAd, "x")
	assert.Equal(t, 3, w.Status.Total, "envelopes for other bots are ignored")

	assert.NoError(t, s.Receive(ctx, model.ShareData{
		From: "NOSPAM", To: []string{model.ShareSender},
		Action: model.ActionRegex, ActionType: model.ActionTypeCount, Data: "garbage",
	}))
}
