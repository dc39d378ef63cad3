package command

import (
	"context"

	"github.com/jqs7/regex/pkg/db"
	"github.com/jqs7/regex/pkg/lock"
	"github.com/jqs7/regex/pkg/model"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

// OnExpire closes the prompt of a session once it has timed out. While the
// session is still live the message is put back on the queue.
func (h *Handler) OnExpire(ctx context.Context, msg model.ExpireMsg) error {
	logger := h.logger.With(zap.Int64("chat", msg.ChatID), zap.Int("admin", msg.AdminID),
		zap.String("kind", string(msg.Kind)), zap.Int("msg", msg.MsgID))

	release, err := h.lock.Lock(ctx, lock.Regex)
	if err != nil {
		return err
	}
	defer release()

	record, err := h.records.GetRecord(ctx, msg.ChatID, msg.MsgID)
	if xerrors.Is(err, db.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if record.Key == "" || record.Key != msg.Key {
		logger.Debug("prompt already settled")
		return nil
	}

	session, err := h.sessions.GetSession(ctx, msg.ChatID, msg.AdminID, msg.Kind)
	if err != nil && !xerrors.Is(err, db.ErrNotFound) {
		return err
	}
	if err == nil && session.Key == msg.Key && !session.Expired(h.now()) {
		logger.Debug("session still live, requeue")
		return h.queue.SendMsg(ctx, h.cfg.SessionQueue, msg, delaySeconds(session.ExpireAt.Sub(h.now())))
	}

	h.bot.EditMsg(msg.ChatID, msg.MsgID, withStatus(record.Text, "status_expired"), nil)
	record.Key = ""
	if err := h.records.PutRecord(ctx, *record); err != nil {
		return err
	}
	logger.Info("session expired")
	return nil
}
