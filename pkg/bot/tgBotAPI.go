package bot

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/jqs7/regex/pkg/model"
	"github.com/jqs7/regex/pkg/utils"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

type TGBotAPI struct {
	bot    *tgbotapi.BotAPI
	logger *zap.Logger
}

func TransformKeyboard(keyboard [][]model.KV) tgbotapi.InlineKeyboardMarkup {
	inlineKeyboard := make([][]tgbotapi.InlineKeyboardButton, len(keyboard))
	for i, v := range keyboard {
		line := make([]tgbotapi.InlineKeyboardButton, len(v))
		for j, w := range v {
			line[j] = tgbotapi.NewInlineKeyboardButtonData(w.K, w.V)
		}
		inlineKeyboard[i] = line
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: inlineKeyboard}
}

func NewAPI(botToken string, logger *zap.Logger) (*TGBotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, xerrors.Errorf("初始化机器人失败: %w", err)
	}
	return &TGBotAPI{
		bot:    bot,
		logger: logger,
	}, nil
}

// Raw exposes the underlying client for long polling.
func (b TGBotAPI) Raw() *tgbotapi.BotAPI {
	return b.bot
}

func (b TGBotAPI) ID() int {
	return b.bot.Self.ID
}

func (b TGBotAPI) Reply(chatID int64, replyTo int, msg string, keyboard [][]model.KV) (int, error) {
	m := tgbotapi.NewMessage(chatID, msg)
	m.ParseMode = tgbotapi.ModeHTML
	m.DisableWebPagePreview = true
	m.ReplyToMessageID = replyTo
	if len(keyboard) > 0 {
		m.ReplyMarkup = TransformKeyboard(keyboard)
	}
	msgRst, err := b.bot.Send(m)
	if err != nil {
		return -1, xerrors.Errorf("发送消息 %s 至 %d 失败: %w", msg, chatID, err)
	}
	return msgRst.MessageID, nil
}

func (b TGBotAPI) EditMsg(chatID int64, msgID int, msg string, keyboard [][]model.KV) {
	editor := tgbotapi.NewEditMessageText(chatID, msgID, msg)
	editor.ParseMode = tgbotapi.ModeHTML
	editor.DisableWebPagePreview = true
	if len(keyboard) > 0 {
		markup := TransformKeyboard(keyboard)
		editor.ReplyMarkup = &markup
	}
	if _, err := b.bot.Send(editor); err != nil {
		b.logger.Warn("编辑消息失败", zap.Int64("chat", chatID), zap.Int("msg", msgID), zap.Error(err))
	}
}

func (b TGBotAPI) SetWebhook(addr string) error {
	_, err := b.bot.SetWebhook(tgbotapi.NewWebhook(addr))
	if err != nil {
		return xerrors.Errorf("设置 webhook: %s 失败: %w", addr, err)
	}
	return nil
}

func (b TGBotAPI) IsAdmin(chatID int64, userID int) bool {
	member, err := b.bot.GetChatMember(tgbotapi.ChatConfigWithUser{
		ChatID: chatID,
		UserID: userID,
	})
	if err != nil {
		return false
	}
	if !member.IsCreator() && !member.IsAdministrator() {
		b.logger.Debug("not admin", zap.Int64("chat", chatID), zap.Int("user", userID))
		return false
	}
	return true
}

func (b TGBotAPI) AnswerCallback(callbackID, text string) {
	_, err := b.bot.AnswerCallbackQuery(tgbotapi.NewCallback(callbackID, text))
	if err != nil {
		b.logger.Warn("发送回调响应失败", zap.Error(err))
	}
}

// ToMessage flattens a Telegram message into the fields the command handlers use.
func ToMessage(m *tgbotapi.Message) *model.Message {
	if m == nil {
		return nil
	}
	msg := &model.Message{
		MsgID: m.MessageID,
		Text:  m.Text,
		Date:  time.Unix(int64(m.Date), 0),
	}
	if msg.Text == "" {
		msg.Text = m.Caption
	}
	if m.Chat != nil {
		msg.ChatID = m.Chat.ID
	}
	if m.From != nil {
		msg.FromID = m.From.ID
		msg.FromIsBot = m.From.IsBot
	}
	switch {
	case m.ForwardFrom != nil:
		msg.ForwardName = utils.GetFullName(m.ForwardFrom.FirstName, m.ForwardFrom.LastName)
	case m.ForwardFromChat != nil:
		msg.ForwardName = m.ForwardFromChat.Title
	}
	if m.Document != nil {
		msg.FileName = m.Document.FileName
	}
	msg.ReplyTo = ToMessage(m.ReplyToMessage)
	return msg
}
