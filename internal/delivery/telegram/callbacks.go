package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// callbackReply is shown to the user when the callback is answered.
type callbackReply struct {
	text  string
	alert bool
}

type callbackHandler func(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) (callbackReply, error)

func (h *Handler) callbackHandlers() map[string]callbackHandler {
	return map[string]callbackHandler{
		actionHome: func(ctx context.Context, cb *tgbotapi.CallbackQuery, _ callbackData) (callbackReply, error) {
			return callbackReply{}, h.replace(cb, h.homeScreen(""))
		},
		actionBrowse:     h.handleBrowseCallback,
		actionFlashcards: h.handleFlashcardsCallback,
		actionQuiz:       h.handleQuizCallback,
		actionProgress:   h.handleProgressCallback,
		actionReset:      h.handleResetCallback,
	}
}

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	var reply callbackReply
	defer func() { h.answerCallback(cb, reply) }()

	if cb.Message == nil {
		return
	}

	data := decodeCallback(cb.Data)
	handler, ok := h.callbackHandlers()[data.Action]
	if !ok {
		h.logger.Warn("unknown callback action", zap.String("data", cb.Data))
		return
	}

	_ = h.withErrorHandling(func(ctx context.Context, chatID int64) error {
		var err error
		reply, err = handler(ctx, cb, data)
		return err
	})(ctx, cb.Message.Chat.ID)
}
