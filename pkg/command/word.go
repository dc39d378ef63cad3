package command

import (
	"context"
	"strings"

	"github.com/jqs7/regex/pkg/db"
	"github.com/jqs7/regex/pkg/model"
	"github.com/jqs7/regex/pkg/utils"
	"github.com/jqs7/regex/pkg/words"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

func (h *Handler) wordType(typ string) (model.WordType, bool) {
	t := model.WordType(typ)
	return t, t.Valid() && h.cfg.Enabled(t)
}

func (h *Handler) addWord(ctx context.Context, logger *zap.Logger, chatID int64, adminID int, typ, word string) reply {
	r := newReport(adminID).action("action_add")
	t, ok := h.wordType(typ)
	if !ok || word == "" {
		return textReply(r.code("type", typeName(typ)).fail("reason_usage").String())
	}
	r.code("type", t.Name()).code("word", word)

	conflicts, err := h.words.Add(ctx, t, word, adminID)
	switch {
	case xerrors.Is(err, words.ErrInvalid):
		return textReply(r.fail("reason_invalid").String())
	case xerrors.Is(err, words.ErrExists):
		return textReply(r.fail("reason_exists").String())
	case err != nil:
		logger.Warn("add word failed", zap.String("type", string(t)), zap.String("word", word), zap.Error(err))
		return textReply(r.fail("reason_error").String())
	case len(conflicts) > 0:
		return h.askPrompt(ctx, logger, model.Session{
			ChatID:    chatID,
			AdminID:   adminID,
			Kind:      model.SessionAsk,
			Type:      t,
			Word:      word,
			Conflicts: conflicts,
		})
	}
	logger.Info("word added", zap.String("type", string(t)), zap.String("word", word))
	return reply{text: r.status("status_added").String(), share: []model.WordType{t}}
}

func askBody(s model.Session) string {
	conflicts := make([]string, len(s.Conflicts))
	for i, c := range s.Conflicts {
		conflicts[i] = utils.Code(c)
	}
	return newReport(s.AdminID).
		action("action_add").
		code("type", s.Type.Name()).
		code("word", s.Word).
		line("conflicts", strings.Join(conflicts, " ")).
		String()
}

func (h *Handler) askPrompt(ctx context.Context, logger *zap.Logger, s model.Session) reply {
	s, err := h.openSession(ctx, s)
	if err != nil {
		logger.Warn("open ask session failed", zap.Error(err))
		return textReply(newReport(s.AdminID).action("action_add").fail("reason_error").String())
	}
	body := askBody(s)
	return reply{
		text: withStatus(body, "status_pending") + model.L("ask_hint"),
		keyboard: [][]model.KV{{
			{K: model.L("button_new"), V: callbackData(model.CallbackAsk, model.AskNew, s.Key)},
			{K: model.L("button_rpl"), V: callbackData(model.CallbackAsk, model.AskReplace, s.Key)},
			{K: model.L("button_cncl"), V: callbackData(model.CallbackAsk, model.AskCancel, s.Key)},
		}},
		after: h.bindPrompt(logger, s, model.RecordAsk, body),
	}
}

func (h *Handler) ask(ctx context.Context, logger *zap.Logger, msg *model.Message) reply {
	r := newReport(msg.FromID).action("action_ask")
	args := commandArgs(msg.Text)
	if len(args) == 0 {
		return textReply(r.fail("reason_usage").String())
	}
	answer := strings.ToLower(args[0])
	if answer != model.AskNew && answer != model.AskReplace && answer != model.AskCancel {
		return textReply(r.fail("reason_usage").String())
	}
	if msg.ReplyTo == nil || msg.ReplyTo.FromID != h.bot.ID() {
		return textReply(r.fail("reason_reply").String())
	}
	reason, changed := h.resolve(ctx, logger, msg.ChatID, msg.ReplyTo.MsgID, msg.FromID, answer)
	if reason != "" {
		return textReply(r.fail(reason).String())
	}
	r.status("status_succeeded").line("see", utils.MessageLink(msg.ChatID, msg.ReplyTo.MsgID))
	return reply{text: r.String(), share: changed}
}

// resolve settles the pending addition bound to the prompt msgID. It must be
// called with the regex lock held. A non-empty reason key means nothing was
// applied.
func (h *Handler) resolve(ctx context.Context, logger *zap.Logger, chatID int64, msgID, adminID int, answer string) (string, []model.WordType) {
	var status string
	switch answer {
	case model.AskNew:
		status = "status_added"
	case model.AskReplace:
		status = "status_replaced"
	case model.AskCancel:
		status = "status_cancelled"
	default:
		return "reason_usage", nil
	}

	record, err := h.records.GetRecord(ctx, chatID, msgID)
	if xerrors.Is(err, db.ErrNotFound) || (err == nil && record.Kind != model.RecordAsk) {
		return "reason_reply", nil
	}
	if err != nil {
		logger.Warn("get ask record failed", zap.Int("msg", msgID), zap.Error(err))
		return "reason_error", nil
	}
	if record.AdminID != adminID {
		return "reason_permission", nil
	}
	if record.Key == "" {
		return "reason_expired", nil
	}
	session, err := h.sessions.GetSession(ctx, chatID, adminID, model.SessionAsk)
	if xerrors.Is(err, db.ErrNotFound) || (err == nil && session.Key != record.Key) {
		return "reason_expired", nil
	}
	if err != nil {
		logger.Warn("get ask session failed", zap.Error(err))
		return "reason_error", nil
	}

	changed, err := h.words.Resolve(ctx, *session, answer)
	if xerrors.Is(err, words.ErrExists) {
		h.consumePrompt(ctx, logger, record, "status_failed")
		logger.Info("ask word already exists", zap.String("type", string(session.Type)), zap.String("word", session.Word))
		return "reason_exists", nil
	}
	if err != nil {
		logger.Warn("resolve ask failed", zap.String("answer", answer), zap.Error(err))
		return "reason_error", nil
	}
	h.consumePrompt(ctx, logger, record, status)
	logger.Info("ask resolved", zap.String("answer", answer), zap.String("type", string(session.Type)), zap.String("word", session.Word))
	if !changed {
		return "", nil
	}
	return "", []model.WordType{session.Type}
}

// consumePrompt closes the ask session of record and stamps the prompt with status.
func (h *Handler) consumePrompt(ctx context.Context, logger *zap.Logger, record *model.Record, status string) {
	if err := h.sessions.DeleteSession(ctx, record.ChatID, record.AdminID, model.SessionAsk); err != nil {
		logger.Warn("delete ask session failed", zap.Error(err))
	}
	record.Key = ""
	if err := h.records.PutRecord(ctx, *record); err != nil {
		logger.Warn("consume ask record failed", zap.Error(err))
	}
	h.bot.EditMsg(record.ChatID, record.MsgID, withStatus(record.Text, status), nil)
}

func (h *Handler) remove(ctx context.Context, logger *zap.Logger, msg *model.Message) reply {
	typ, word := commandContext(msg.Text)
	if typ == "" && msg.ReplyTo != nil {
		name, ok := parseCommand(msg.ReplyTo.Text, h.cfg.Prefix)
		if !ok || !in(name, model.AddCommands) {
			return textReply(newReport(msg.FromID).action("action_remove").fail("reason_reply").String())
		}
		typ, word = commandContext(msg.ReplyTo.Text)
	}
	return h.removeWord(ctx, logger, msg.FromID, typ, word)
}

func (h *Handler) removeWord(ctx context.Context, logger *zap.Logger, adminID int, typ, word string) reply {
	r := newReport(adminID).action("action_remove")
	t, ok := h.wordType(typ)
	if !ok || word == "" {
		return textReply(r.code("type", typeName(typ)).fail("reason_usage").String())
	}
	r.code("type", t.Name()).code("word", word)

	err := h.words.Remove(ctx, t, word)
	if xerrors.Is(err, db.ErrNotFound) {
		return textReply(r.fail("reason_none").String())
	}
	if err != nil {
		logger.Warn("remove word failed", zap.String("type", string(t)), zap.String("word", word), zap.Error(err))
		return textReply(r.fail("reason_error").String())
	}
	logger.Info("word removed", zap.String("type", string(t)), zap.String("word", word))
	return reply{text: r.status("status_removed").String(), share: []model.WordType{t}}
}

// same replays the admin's own add or remove command on other types. A bare
// remove that replied to an add command is followed one level further.
func (h *Handler) same(ctx context.Context, logger *zap.Logger, msg *model.Message) []reply {
	fail := func(reason string) []reply {
		return []reply{textReply(newReport(msg.FromID).action("action_same").fail(reason).String())}
	}

	args := commandArgs(msg.Text)
	if len(args) == 0 {
		return fail("reason_usage")
	}
	types := make([]string, len(args))
	for i, arg := range args {
		types[i] = strings.ToLower(arg)
		if _, ok := h.wordType(types[i]); !ok {
			return fail("reason_usage")
		}
	}

	source := msg.ReplyTo
	if source == nil {
		return fail("reason_reply")
	}
	if source.FromID != msg.FromID {
		return fail("reason_permission")
	}
	name, ok := parseCommand(source.Text, h.cfg.Prefix)
	if !ok {
		return fail("reason_reply")
	}
	_, word := commandContext(source.Text)

	var replies []reply
	switch {
	case word != "" && in(name, model.AddCommands):
		for _, t := range types {
			replies = append(replies, h.addWord(ctx, logger, msg.ChatID, msg.FromID, t, word))
		}
	case word != "" && in(name, model.RemoveCommands):
		for _, t := range types {
			replies = append(replies, h.removeWord(ctx, logger, msg.FromID, t, word))
		}
	case len(commandArgs(source.Text)) == 0 && in(name, model.RemoveCommands):
		origin, reason := h.sameOrigin(ctx, logger, msg.ChatID, source.MsgID, msg.FromID)
		if reason != "" {
			return fail(reason)
		}
		_, word = commandContext(origin.Text)
		for _, t := range types {
			replies = append(replies, h.removeWord(ctx, logger, msg.FromID, t, word))
		}
	default:
		return fail("reason_reply")
	}
	return replies
}

// sameOrigin finds the add command a bare remove command replied to.
func (h *Handler) sameOrigin(ctx context.Context, logger *zap.Logger, chatID int64, msgID, adminID int) (*model.Record, string) {
	removal, err := h.records.GetRecord(ctx, chatID, msgID)
	if err != nil {
		if !xerrors.Is(err, db.ErrNotFound) {
			logger.Warn("get remove record failed", zap.Error(err))
		}
		return nil, "reason_reply"
	}
	if removal.ReplyTo == 0 {
		return nil, "reason_reply"
	}
	origin, err := h.records.GetRecord(ctx, chatID, removal.ReplyTo)
	if err != nil {
		if !xerrors.Is(err, db.ErrNotFound) {
			logger.Warn("get add record failed", zap.Error(err))
		}
		return nil, "reason_source"
	}
	if origin.AdminID != adminID {
		return nil, "reason_permission"
	}
	name, ok := parseCommand(origin.Text, h.cfg.Prefix)
	if _, word := commandContext(origin.Text); !ok || !in(name, model.AddCommands) || word == "" {
		return nil, "reason_source"
	}
	return origin, ""
}
