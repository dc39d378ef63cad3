package router

import (
	"context"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/golang/mock/gomock"
	"github.com/jqs7/regex/pkg/command"
	"github.com/jqs7/regex/pkg/model"
	"go.uber.org/zap"
)

func TestRoute(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1580000000, 0)
	group := &tgbotapi.Chat{ID: -1001, Type: "supergroup"}

	newRouter := func(ctrl *gomock.Controller) (*Router, *command.MockInterface) {
		handler := command.NewMockInterface(ctrl)
		r := New(handler, zap.NewNop())
		r.now = func() time.Time { return now }
		return r, handler
	}

	t.Run("群组消息", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		r, handler := newRouter(ctrl)

		handler.EXPECT().OnMessage(ctx, &model.Message{
			ChatID: -1001,
			MsgID:  5,
			FromID: 7,
			Text:   "/list ad",
			Date:   now.Add(-time.Minute),
			ReplyTo: &model.Message{
				ChatID:      -1001,
				MsgID:       4,
				FromID:      8,
				FromIsBot:   true,
				Text:        "caption",
				Date:        now.Add(-2 * time.Minute),
				ForwardName: "Channel",
				FileName:    "a.apk",
			},
		}).Times(1)
		r.Route(ctx, &tgbotapi.Update{Message: &tgbotapi.Message{
			MessageID: 5,
			From:      &tgbotapi.User{ID: 7},
			Chat:      group,
			Date:      int(now.Add(-time.Minute).Unix()),
			Text:      "/list ad",
			ReplyToMessage: &tgbotapi.Message{
				MessageID:       4,
				From:            &tgbotapi.User{ID: 8, IsBot: true},
				Chat:            group,
				Date:            int(now.Add(-2 * time.Minute).Unix()),
				Caption:         "caption",
				ForwardFromChat: &tgbotapi.Chat{Title: "Channel"},
				Document:        &tgbotapi.Document{FileName: "a.apk"},
			},
		}})
	})

	t.Run("过期与私聊消息丢弃", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		r, _ := newRouter(ctrl)

		r.Route(ctx, &tgbotapi.Update{Message: &tgbotapi.Message{
			MessageID: 5, From: &tgbotapi.User{ID: 7}, Chat: group,
			Date: int(now.Add(-2 * time.Hour).Unix()), Text: "/list ad",
		}})
		r.Route(ctx, &tgbotapi.Update{Message: &tgbotapi.Message{
			MessageID: 5, From: &tgbotapi.User{ID: 7}, Chat: &tgbotapi.Chat{ID: 7, Type: "private"},
			Date: int(now.Unix()), Text: "/list ad",
		}})
		r.Route(ctx, &tgbotapi.Update{})
		r.HandleBody(ctx, []byte("not json"))
	})

	t.Run("回调查询", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		r, handler := newRouter(ctrl)

		handler.EXPECT().OnCallbackQuery(ctx, int64(-1001), 9, 7, "cb", `{"a":"page","t":"next"}`).Times(1)
		r.HandleBody(ctx, []byte(`{"update_id":1,"callback_query":{"id":"cb","from":{"id":7},`+
			`"message":{"message_id":9,"date":0,"chat":{"id":-1001,"type":"supergroup"}},`+
			`"data":"{\"a\":\"page\",\"t\":\"next\"}"}}`))
	})
}
