// Package command handles the admin commands of the regex group: word
// mutation under the regex lock, the add/ask confirmation handshake,
// paged listing and the maintenance commands.
package command

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jqs7/regex/pkg/bot"
	"github.com/jqs7/regex/pkg/config"
	"github.com/jqs7/regex/pkg/db"
	"github.com/jqs7/regex/pkg/lock"
	"github.com/jqs7/regex/pkg/model"
	"github.com/jqs7/regex/pkg/queue"
	"github.com/jqs7/regex/pkg/share"
	"github.com/jqs7/regex/pkg/words"
	"github.com/sqids/sqids-go"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

const recordTTL = 7 * 24 * time.Hour

//go:generate go run github.com/golang/mock/mockgen -source=command.go -package=command -destination=mock.go Interface
type Interface interface {
	OnMessage(ctx context.Context, msg *model.Message)
	OnCallbackQuery(ctx context.Context, chatID int64, msgID, fromUser int, callbackID, data string)
	OnExpire(ctx context.Context, msg model.ExpireMsg) error
}

type Handler struct {
	bot      bot.Interface
	lock     lock.Interface
	words    *words.Manager
	sharer   *share.Sharer
	sessions db.ISessions
	records  db.IRecords
	queue    queue.Interface
	cfg      *config.Config
	logger   *zap.Logger
	keys     *sqids.Sqids
	now      func() time.Time
}

type Deps struct {
	Bot      bot.Interface
	Lock     lock.Interface
	Words    *words.Manager
	Sharer   *share.Sharer
	Sessions db.ISessions
	Records  db.IRecords
	Queue    queue.Interface
	Config   *config.Config
	Logger   *zap.Logger
}

func NewHandler(d Deps) (*Handler, error) {
	keys, err := sqids.New()
	if err != nil {
		return nil, xerrors.Errorf("初始化会话编码失败: %w", err)
	}
	return &Handler{
		bot:      d.Bot,
		lock:     d.Lock,
		words:    d.Words,
		sharer:   d.Sharer,
		sessions: d.Sessions,
		records:  d.Records,
		queue:    d.Queue,
		cfg:      d.Config,
		logger:   d.Logger,
		keys:     keys,
		now:      time.Now,
	}, nil
}

// reply is a message to send once the lock is released.
type reply struct {
	text     string
	keyboard [][]model.KV
	share    []model.WordType
	after    func(msgID int)
}

func textReply(text string) reply {
	return reply{text: text}
}

func (h *Handler) OnMessage(ctx context.Context, msg *model.Message) {
	if msg == nil || msg.FromIsBot || msg.FromID == 0 {
		return
	}
	name, ok := parseCommand(msg.Text, h.cfg.Prefix)
	if !ok {
		return
	}
	logger := h.logger.With(zap.String("command", name), zap.Int64("chat", msg.ChatID), zap.Int("admin", msg.FromID))
	defer func() {
		if r := recover(); r != nil {
			logger.Error("command panicked", zap.Any("panic", r))
			h.send(logger, msg.ChatID, msg.MsgID, textReply(newReport(msg.FromID).fail("reason_error").String()))
		}
	}()

	if msg.ChatID == h.cfg.RegexGroupID && h.regexCommand(name) {
		if !h.bot.IsAdmin(msg.ChatID, msg.FromID) {
			logger.Debug("ignored non-admin command")
			return
		}
		if in(name, model.AddCommands) || in(name, model.RemoveCommands) {
			h.recordCommand(ctx, msg)
		}
		h.dispatchRegex(ctx, logger, name, msg)
		return
	}
	if msg.ChatID == h.cfg.TestGroupID {
		switch name {
		case "ping":
			h.send(logger, msg.ChatID, msg.MsgID, h.ping())
		case "version":
			h.send(logger, msg.ChatID, msg.MsgID, h.version(msg))
		case "t2t":
			h.send(logger, msg.ChatID, msg.MsgID, h.t2t(msg))
		}
	}
}

func (h *Handler) regexCommand(name string) bool {
	switch name {
	case "ask", "page", "push", "reset", "count":
		return true
	}
	return in(name, model.AddCommands) || in(name, model.RemoveCommands) || in(name, model.ListCommands) ||
		in(name, model.SearchCommands) || in(name, model.SameCommands)
}

func (h *Handler) dispatchRegex(ctx context.Context, logger *zap.Logger, name string, msg *model.Message) {
	var replies []reply
	switch {
	case in(name, model.AddCommands):
		replies = h.guard(ctx, logger, msg, true, func() []reply {
			typ, word := commandContext(msg.Text)
			return []reply{h.addWord(ctx, logger, msg.ChatID, msg.FromID, typ, word)}
		})
	case name == "ask":
		replies = h.guard(ctx, logger, msg, true, func() []reply {
			return []reply{h.ask(ctx, logger, msg)}
		})
	case name == "count":
		replies = h.guard(ctx, logger, msg, true, func() []reply {
			return []reply{h.count(ctx, logger, msg)}
		})
	case in(name, model.RemoveCommands):
		replies = h.guard(ctx, logger, msg, false, func() []reply {
			return []reply{h.remove(ctx, logger, msg)}
		})
	case in(name, model.SameCommands):
		replies = h.guard(ctx, logger, msg, false, func() []reply {
			return h.same(ctx, logger, msg)
		})
	case name == "push":
		replies = h.guard(ctx, logger, msg, false, func() []reply {
			return []reply{h.push(ctx, logger, msg)}
		})
	case name == "reset":
		replies = h.guard(ctx, logger, msg, false, func() []reply {
			return []reply{h.reset(ctx, logger, msg)}
		})
	case in(name, model.ListCommands):
		replies = []reply{h.list(ctx, logger, msg)}
	case in(name, model.SearchCommands):
		replies = []reply{h.search(ctx, logger, msg)}
	case name == "page":
		replies = []reply{h.page(ctx, logger, msg)}
	}
	for _, r := range replies {
		h.send(logger, msg.ChatID, msg.MsgID, r)
		h.share(ctx, logger, r.share)
	}
}

// guard runs fn under the regex lock. Blocking commands wait for the lock;
// the others are skipped with a busy reply when it is held.
func (h *Handler) guard(ctx context.Context, logger *zap.Logger, msg *model.Message, block bool, fn func() []reply) []reply {
	var (
		release func()
		err     error
	)
	if block {
		release, err = h.lock.Lock(ctx, lock.Regex)
	} else {
		var ok bool
		release, ok, err = h.lock.TryLock(ctx, lock.Regex)
		if err == nil && !ok {
			logger.Info("regex lock busy, command skipped")
			return []reply{textReply(newReport(msg.FromID).fail("reason_busy").String())}
		}
	}
	if err != nil {
		logger.Warn("acquire regex lock failed", zap.Error(err))
		return []reply{textReply(newReport(msg.FromID).fail("reason_error").String())}
	}
	defer release()
	return fn()
}

func (h *Handler) send(logger *zap.Logger, chatID int64, replyTo int, r reply) {
	if r.text == "" {
		return
	}
	msgID, err := h.bot.Reply(chatID, replyTo, r.text, r.keyboard)
	if err != nil {
		logger.Warn("send reply failed", zap.Error(err))
		return
	}
	if r.after != nil {
		r.after(msgID)
	}
}

func (h *Handler) share(ctx context.Context, logger *zap.Logger, types []model.WordType) {
	for _, t := range types {
		if err := h.sharer.Update(ctx, t); err != nil {
			logger.Warn("share update failed", zap.String("type", string(t)), zap.Error(err))
		}
	}
}

func (h *Handler) recordCommand(ctx context.Context, msg *model.Message) {
	record := model.Record{
		ChatID:   msg.ChatID,
		MsgID:    msg.MsgID,
		AdminID:  msg.FromID,
		Kind:     model.RecordCommand,
		Text:     msg.Text,
		ExpireAt: h.now().Add(recordTTL),
	}
	if msg.ReplyTo != nil {
		record.ReplyTo = msg.ReplyTo.MsgID
	}
	if err := h.records.PutRecord(ctx, record); err != nil {
		h.logger.Warn("record command failed", zap.Int64("chat", msg.ChatID), zap.Int("msg", msg.MsgID), zap.Error(err))
	}
}

func (h *Handler) newKey(adminID int) (string, error) {
	return h.keys.Encode([]uint64{uint64(adminID), uint64(h.now().UnixNano())})
}

// openSession stores a fresh session; the prompt message is bound to it by
// bindPrompt once it has been sent.
func (h *Handler) openSession(ctx context.Context, s model.Session) (model.Session, error) {
	key, err := h.newKey(s.AdminID)
	if err != nil {
		return s, xerrors.Errorf("生成会话编号失败: %w", err)
	}
	s.Key = key
	s.ExpireAt = h.now().Add(h.cfg.SessionTTL)
	if err := h.sessions.PutSession(ctx, s); err != nil {
		return s, err
	}
	return s, nil
}

func (h *Handler) bindPrompt(logger *zap.Logger, s model.Session, kind model.RecordKind, text string) func(int) {
	return func(msgID int) {
		ctx := context.Background()
		err := h.records.PutRecord(ctx, model.Record{
			ChatID:   s.ChatID,
			MsgID:    msgID,
			AdminID:  s.AdminID,
			Kind:     kind,
			Key:      s.Key,
			Text:     text,
			ExpireAt: h.now().Add(recordTTL),
		})
		if err != nil {
			logger.Warn("record prompt failed", zap.Int("msg", msgID), zap.Error(err))
			return
		}
		if h.cfg.SessionQueue == "" {
			return
		}
		err = h.queue.SendMsg(ctx, h.cfg.SessionQueue, model.ExpireMsg{
			ChatID:  s.ChatID,
			AdminID: s.AdminID,
			Kind:    s.Kind,
			Key:     s.Key,
			MsgID:   msgID,
		}, delaySeconds(s.ExpireAt.Sub(h.now())))
		if err != nil {
			logger.Warn("send expire msg failed", zap.Error(err))
		}
	}
}

func delaySeconds(d time.Duration) int64 {
	delay := int64((d + time.Second - 1) / time.Second)
	if delay > model.MaxQueueDelaySecond {
		delay = model.MaxQueueDelaySecond
	}
	if delay < 0 {
		delay = 0
	}
	return delay
}

func callbackData(a, t, d string) string {
	bs, _ := json.Marshal(model.Callback{A: a, T: t, D: d})
	return string(bs)
}

func (h *Handler) OnCallbackQuery(ctx context.Context, chatID int64, msgID, fromUser int, callbackID, data string) {
	logger := h.logger.With(zap.String("callback", data), zap.Int64("chat", chatID), zap.Int("admin", fromUser))
	cb := model.Callback{}
	if err := json.Unmarshal([]byte(data), &cb); err != nil {
		logger.Debug("unknown callback data")
		return
	}
	var reason string
	switch cb.A {
	case model.CallbackAsk:
		release, err := h.lock.Lock(ctx, lock.Regex)
		if err != nil {
			logger.Warn("acquire regex lock failed", zap.Error(err))
			h.bot.AnswerCallback(callbackID, model.L("reason_error"))
			return
		}
		var changed []model.WordType
		reason, changed = h.resolve(ctx, logger, chatID, msgID, fromUser, cb.T)
		release()
		h.share(ctx, logger, changed)
	case model.CallbackPage:
		reason = h.turnPage(ctx, logger, chatID, msgID, fromUser, cb.T)
	default:
		return
	}
	if reason != "" {
		h.bot.AnswerCallback(callbackID, model.L(reason))
		return
	}
	h.bot.AnswerCallback(callbackID, model.L("status_succeeded"))
}
