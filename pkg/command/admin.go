package command

import (
	"context"
	"strings"

	"github.com/jqs7/regex/pkg/model"
	"github.com/jqs7/regex/pkg/utils"
	"go.uber.org/zap"
)

// selectTypes resolves a "<type|all>" argument against the enabled types.
func (h *Handler) selectTypes(msg *model.Message) (string, []model.WordType) {
	args := commandArgs(msg.Text)
	if len(args) == 0 {
		return "", nil
	}
	typ := strings.ToLower(args[0])
	if typ == model.TypeAll {
		return typ, h.cfg.Types
	}
	if t, ok := h.wordType(typ); ok {
		return typ, []model.WordType{t}
	}
	return typ, nil
}

func (h *Handler) push(ctx context.Context, logger *zap.Logger, msg *model.Message) reply {
	r := newReport(msg.FromID).action("action_push")
	typ, types := h.selectTypes(msg)
	r.code("type", typeName(typ))
	if len(types) == 0 {
		return textReply(r.fail("reason_usage").String())
	}
	var err error
	if typ == model.TypeAll {
		err = h.sharer.UpdateAll(ctx)
	} else {
		err = h.sharer.Update(ctx, types[0])
	}
	if err != nil {
		logger.Warn("push words failed", zap.String("type", typ), zap.Error(err))
		return textReply(r.fail("reason_error").String())
	}
	return textReply(r.status("status_pushed").String())
}

func (h *Handler) reset(ctx context.Context, logger *zap.Logger, msg *model.Message) reply {
	r := newReport(msg.FromID).action("action_reset")
	typ, types := h.selectTypes(msg)
	r.code("type", typeName(typ))
	if len(types) == 0 {
		return textReply(r.fail("reason_usage").String())
	}
	for _, t := range types {
		if err := h.words.Reset(ctx, t); err != nil {
			logger.Warn("reset words failed", zap.String("type", string(t)), zap.Error(err))
			return textReply(r.fail("reason_error").String())
		}
	}
	return textReply(r.status("status_cleared").String())
}

func (h *Handler) count(ctx context.Context, logger *zap.Logger, msg *model.Message) reply {
	r := newReport(msg.FromID).action("action_count")
	if err := h.sharer.Count(ctx); err != nil {
		logger.Warn("count request failed", zap.Error(err))
		return textReply(r.fail("reason_error").String())
	}
	return textReply(r.status("status_succeeded").String())
}

func (h *Handler) ping() reply {
	return textReply(utils.Code("Pong!"))
}

func (h *Handler) version(msg *model.Message) reply {
	r := newReport(msg.FromID).raw("\n").line("version", utils.Bold(h.cfg.Version))
	return textReply(r.String())
}

// t2t echoes the forward source, file name and text of the replied message
// as plain text.
func (h *Handler) t2t(msg *model.Message) reply {
	r := newReport(msg.FromID).action("t2t")
	if msg.ReplyTo == nil {
		return textReply(r.fail("reason_usage").String())
	}
	var parts []string
	for _, s := range []string{msg.ReplyTo.ForwardName, msg.ReplyTo.FileName, msg.ReplyTo.Text} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return textReply(r.fail("reason_none").String())
	}
	r.line("result", strings.Repeat("-", 24)).raw("\n" + utils.CodeBlock(strings.Join(parts, "\n\n")) + "\n")
	return textReply(r.String())
}
