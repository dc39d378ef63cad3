//go:generate go run github.com/golang/mock/mockgen -source=bot.go -package=bot -destination=mock.go Interface
package bot

import (
	"github.com/jqs7/regex/pkg/model"
)

type Interface interface {
	ID() int
	Reply(chatID int64, replyTo int, msg string, keyboard [][]model.KV) (int, error)
	EditMsg(chatID int64, msgID int, msg string, keyboard [][]model.KV)
	SetWebhook(addr string) error
	AnswerCallback(callbackID, text string)
	IsAdmin(chatID int64, userID int) bool
}
