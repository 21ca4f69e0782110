package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/auslan-bot/internal/domain/entities"
)

// screen is one rendered view: MarkdownV2 text, optional media and keyboard.
// With media the text becomes the caption.
type screen struct {
	text     string
	mediaURL string
	keyboard *tgbotapi.InlineKeyboardMarkup
}

func (s screen) mediaKind() entities.MediaKind {
	return entities.Item{MediaURL: s.mediaURL}.MediaKind()
}

// message builds the Chattable that sends s as a new message.
func (s screen) message(chatID int64) tgbotapi.Chattable {
	switch s.mediaKind() {
	case entities.MediaVideo:
		v := tgbotapi.NewVideo(chatID, tgbotapi.FileURL(s.mediaURL))
		v.Caption = s.text
		v.ParseMode = tgbotapi.ModeMarkdownV2
		if s.keyboard != nil {
			v.ReplyMarkup = *s.keyboard
		}
		return v
	case entities.MediaImage:
		p := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(s.mediaURL))
		p.Caption = s.text
		p.ParseMode = tgbotapi.ModeMarkdownV2
		if s.keyboard != nil {
			p.ReplyMarkup = *s.keyboard
		}
		return p
	default:
		msg := newMessage(chatID, s.text)
		if s.keyboard != nil {
			msg.ReplyMarkup = *s.keyboard
		}
		return msg
	}
}

// edit builds the Chattable that rewrites an existing message in place. It
// only works when the message and s carry the same kind of media.
func (s screen) edit(chatID int64, messageID int) tgbotapi.Chattable {
	if s.mediaKind() != entities.MediaNone {
		e := tgbotapi.NewEditMessageCaption(chatID, messageID, s.text)
		e.ParseMode = tgbotapi.ModeMarkdownV2
		e.ReplyMarkup = s.keyboard
		return e
	}

	e := newEdit(chatID, messageID, s.text)
	e.ReplyMarkup = s.keyboard
	return e
}

// show sends s as a new message.
func (h *Handler) show(chatID int64, s screen) error {
	return h.send(s.message(chatID))
}

// replace deletes the message a callback came from and sends s instead.
// Media cannot be swapped by an edit, so navigation always replaces.
func (h *Handler) replace(cb *tgbotapi.CallbackQuery, s screen) error {
	chatID := cb.Message.Chat.ID
	if _, err := h.bot.Request(tgbotapi.NewDeleteMessage(chatID, cb.Message.MessageID)); err != nil {
		h.logger.Debug("failed to delete message", zap.Error(err))
	}
	return h.show(chatID, s)
}

// refresh rewrites the callback's message in place.
func (h *Handler) refresh(cb *tgbotapi.CallbackQuery, s screen) error {
	return h.send(s.edit(cb.Message.Chat.ID, cb.Message.MessageID))
}

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}
