package command

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jqs7/regex/pkg/db"
	"github.com/jqs7/regex/pkg/model"
	"github.com/jqs7/regex/pkg/utils"
	"github.com/jqs7/regex/pkg/words"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

func (h *Handler) list(ctx context.Context, logger *zap.Logger, msg *model.Message) reply {
	args := commandArgs(msg.Text)
	r := newReport(msg.FromID).action("action_list")
	if len(args) == 0 {
		return textReply(r.fail("reason_usage").String())
	}
	typ := strings.ToLower(args[0])
	t, ok := h.wordType(typ)
	if !ok {
		return textReply(r.code("type", typeName(typ)).fail("reason_usage").String())
	}
	return h.openPage(ctx, logger, model.Session{
		ChatID:  msg.ChatID,
		AdminID: msg.FromID,
		Kind:    model.SessionPage,
		Action:  model.ActionList,
		Types:   []model.WordType{t},
		Desc:    len(args) > 1 && strings.ToLower(args[1]) == "desc",
	})
}

func (h *Handler) search(ctx context.Context, logger *zap.Logger, msg *model.Message) reply {
	typ, query := commandContext(msg.Text)
	r := newReport(msg.FromID).action("action_search")
	var types []model.WordType
	if typ == model.TypeAll {
		types = h.cfg.Types
	} else if t, ok := h.wordType(typ); ok {
		types = []model.WordType{t}
	}
	if len(types) == 0 || query == "" {
		return textReply(r.code("type", typeName(typ)).fail("reason_usage").String())
	}
	return h.openPage(ctx, logger, model.Session{
		ChatID:  msg.ChatID,
		AdminID: msg.FromID,
		Kind:    model.SessionPage,
		Action:  model.ActionSearch,
		Types:   types,
		Query:   query,
	})
}

func (h *Handler) query(ctx context.Context, s model.Session) ([]model.Word, error) {
	if s.Action == model.ActionSearch {
		return h.words.Search(ctx, s.Types, s.Query)
	}
	if len(s.Types) != 1 {
		return nil, xerrors.Errorf("list session with %d types", len(s.Types))
	}
	return h.words.List(ctx, s.Types[0], s.Desc)
}

func pageHeader(s model.Session) *report {
	r := newReport(s.AdminID)
	if s.Action == model.ActionSearch {
		r.action("action_search")
	} else {
		r.action("action_list")
	}
	if len(s.Types) == 1 {
		r.code("type", s.Types[0].Name())
	} else {
		r.code("type", model.L("all"))
	}
	if s.Query != "" {
		r.code("query", s.Query)
	}
	return r
}

// openPage renders the first page of a listing and opens a page session for
// it, superseding the admin's previous listing.
func (h *Handler) openPage(ctx context.Context, logger *zap.Logger, s model.Session) reply {
	items, err := h.query(ctx, s)
	if err != nil {
		logger.Warn("query words failed", zap.Error(err))
		return textReply(pageHeader(s).fail("reason_error").String())
	}
	if len(items) == 0 {
		return textReply(pageHeader(s).fail("reason_none").String())
	}
	s, err = h.openSession(ctx, s)
	if err != nil {
		logger.Warn("open page session failed", zap.Error(err))
		return textReply(pageHeader(s).fail("reason_error").String())
	}
	text, keyboard := h.renderPage(s, items)
	return reply{
		text:     text,
		keyboard: keyboard,
		after:    h.bindPrompt(logger, s, model.RecordPage, text),
	}
}

// renderPage is a pure function of the session and the items, so a page
// always renders the same way for the same underlying list.
func (h *Handler) renderPage(s model.Session, items []model.Word) (string, [][]model.KV) {
	page, pages := words.Paginate(items, s.Page, h.cfg.PerPage)
	r := pageHeader(s).
		code("total", strconv.Itoa(len(items))).
		code("page", fmt.Sprintf("%d/%d", s.Page+1, pages)).
		line("result", strings.Repeat("-", 24)).
		raw("\n")
	for _, w := range page {
		switch {
		case s.Action == model.ActionSearch && len(s.Types) > 1:
			r.raw(w.Type.Name() + model.L("colon") + utils.Code(w.Pattern) + "\n")
		case s.Desc:
			r.raw(utils.Code(w.Pattern) + " " + utils.Bold(strconv.Itoa(w.Status.Total)) + "\n")
		default:
			r.raw(utils.Code(w.Pattern) + "\n")
		}
	}

	var buttons []model.KV
	if s.Page > 0 {
		buttons = append(buttons, model.KV{K: model.L("button_prev"), V: callbackData(model.CallbackPage, model.PagePrevious, "")})
	}
	if s.Page < pages-1 {
		buttons = append(buttons, model.KV{K: model.L("button_next"), V: callbackData(model.CallbackPage, model.PageNext, "")})
	}
	if len(buttons) == 0 {
		return r.String(), nil
	}
	return r.String(), [][]model.KV{buttons}
}

func (h *Handler) page(ctx context.Context, logger *zap.Logger, msg *model.Message) reply {
	r := newReport(msg.FromID).action("action_page")
	args := commandArgs(msg.Text)
	if len(args) == 0 {
		return textReply(r.fail("reason_usage").String())
	}
	direction := strings.ToLower(args[0])
	if direction != model.PagePrevious && direction != model.PageNext {
		return textReply(r.fail("reason_usage").String())
	}
	if msg.ReplyTo == nil || msg.ReplyTo.FromID != h.bot.ID() {
		return textReply(r.fail("reason_reply").String())
	}
	if reason := h.turnPage(ctx, logger, msg.ChatID, msg.ReplyTo.MsgID, msg.FromID, direction); reason != "" {
		return textReply(r.fail(reason).String())
	}
	return textReply(r.status("status_succeeded").line("see", utils.MessageLink(msg.ChatID, msg.ReplyTo.MsgID)).String())
}

// turnPage edits the paged message msgID to its adjacent page. A non-empty
// reason key means the message was left untouched.
func (h *Handler) turnPage(ctx context.Context, logger *zap.Logger, chatID int64, msgID, adminID int, direction string) string {
	step := 1
	switch direction {
	case model.PageNext:
	case model.PagePrevious:
		step = -1
	default:
		return "reason_usage"
	}

	record, err := h.records.GetRecord(ctx, chatID, msgID)
	if xerrors.Is(err, db.ErrNotFound) || (err == nil && record.Kind != model.RecordPage) {
		return "reason_reply"
	}
	if err != nil {
		logger.Warn("get page record failed", zap.Int("msg", msgID), zap.Error(err))
		return "reason_error"
	}
	if record.AdminID != adminID {
		return "reason_permission"
	}
	if record.Key == "" {
		return "reason_expired"
	}
	session, err := h.sessions.GetSession(ctx, chatID, adminID, model.SessionPage)
	if xerrors.Is(err, db.ErrNotFound) || (err == nil && session.Key != record.Key) {
		return "reason_expired"
	}
	if err != nil {
		logger.Warn("get page session failed", zap.Error(err))
		return "reason_error"
	}

	next := session.Page + step
	items, err := h.query(ctx, *session)
	if err != nil {
		logger.Warn("query words failed", zap.Error(err))
		return "reason_error"
	}
	if _, pages := words.Paginate(items, next, h.cfg.PerPage); next < 0 || next >= pages {
		return "reason_page"
	}

	session.Page = next
	session.ExpireAt = h.now().Add(h.cfg.SessionTTL)
	if err := h.sessions.PutSession(ctx, *session); err != nil {
		logger.Warn("put page session failed", zap.Error(err))
		return "reason_error"
	}
	text, keyboard := h.renderPage(*session, items)
	h.bot.EditMsg(chatID, msgID, text, keyboard)
	record.Text = text
	if err := h.records.PutRecord(ctx, *record); err != nil {
		logger.Warn("put page record failed", zap.Error(err))
	}
	return ""
}
