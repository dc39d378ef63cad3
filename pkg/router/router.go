// Package router turns Telegram updates into command handler calls.
package router

import (
	"context"
	"encoding/json"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/jqs7/regex/pkg/bot"
	"github.com/jqs7/regex/pkg/command"
	"go.uber.org/zap"
)

// MaxAge is how old a message may be before it is dropped unhandled.
const MaxAge = time.Hour

type Router struct {
	handler command.Interface
	logger  *zap.Logger
	now     func() time.Time
}

func New(handler command.Interface, logger *zap.Logger) *Router {
	return &Router{
		handler: handler,
		logger:  logger,
		now:     time.Now,
	}
}

func isGroup(chat *tgbotapi.Chat) bool {
	return chat != nil && (chat.IsGroup() || chat.IsSuperGroup())
}

// HandleBody routes a raw webhook body. Undecodable bodies are dropped.
func (r *Router) HandleBody(ctx context.Context, body []byte) {
	update := &tgbotapi.Update{}
	if err := json.Unmarshal(body, update); err != nil {
		r.logger.Debug("drop undecodable update", zap.Error(err))
		return
	}
	r.Route(ctx, update)
}

func (r *Router) Route(ctx context.Context, update *tgbotapi.Update) {
	if cb := update.CallbackQuery; cb != nil {
		if cb.Message == nil || cb.From == nil || !isGroup(cb.Message.Chat) {
			return
		}
		r.handler.OnCallbackQuery(ctx,
			cb.Message.Chat.ID,
			cb.Message.MessageID,
			cb.From.ID,
			cb.ID,
			cb.Data,
		)
		return
	}

	m := update.Message
	if m == nil || !isGroup(m.Chat) {
		return
	}
	if r.now().Sub(m.Time()) > MaxAge {
		r.logger.Debug("drop stale message", zap.Int64("chat", m.Chat.ID), zap.Int("msg", m.MessageID))
		return
	}
	r.handler.OnMessage(ctx, bot.ToMessage(m))
}
