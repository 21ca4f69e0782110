package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/auslan-bot/internal/domain/entities"
)

// progressScreen shows every module's learned count against its catalog.
// A module whose catalog cannot be loaded is reported without failing the view.
func (h *Handler) progressScreen(ctx context.Context, userID int64) screen {
	store := h.progressService.For(userID)

	var sb strings.Builder
	sb.WriteString(bold("📊 Your progress"))

	for _, m := range entities.Modules {
		sb.WriteString("\n\n")

		items, err := h.catalogService.Items(ctx, m)
		if err != nil {
			h.logger.Warn("catalog unavailable for progress",
				zap.String("module", string(m)),
				zap.Error(err),
			)
			sb.WriteString(bold(m.Title()))
			sb.WriteString("\n")
			sb.WriteString(italic("catalog unavailable"))
			continue
		}

		sb.WriteString(formatProgressLine(m.Title(), store.Progress(ctx, m, len(items))))
	}

	kb := buildProgressKeyboard()
	return screen{text: sb.String(), keyboard: &kb}
}

func resetScreen() screen {
	kb := buildResetKeyboard()
	return screen{
		text:     bold("🗑 Reset progress") + "\n\n" + md("This clears learned marks in every module. Continue?"),
		keyboard: &kb,
	}
}

// handleProgress displays user progress.
func (h *Handler) handleProgress(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.logger.Debug("rendering progress", zap.Int64("user_id", userID))
		return h.show(chatID, h.progressScreen(ctx, userID))
	}
}

func (h *Handler) handleReset() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.show(chatID, resetScreen())
	}
}

// prune drops learned marks for items no longer in any catalog.
func (h *Handler) prune(ctx context.Context, userID int64) (int, error) {
	store := h.progressService.For(userID)

	dropped := 0
	for _, m := range entities.Modules {
		items, err := h.catalogService.Items(ctx, m)
		if err != nil {
			return dropped, err
		}
		keys := make([]string, len(items))
		for i, it := range items {
			keys[i] = it.Key()
		}
		dropped += store.Prune(ctx, m, keys)
	}
	return dropped, nil
}

func (h *Handler) handleProgressCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) (callbackReply, error) {
	userID := cb.From.ID

	var reply callbackReply
	if data.param(0) == progressPrune {
		dropped, err := h.prune(ctx, userID)
		if err != nil {
			return callbackReply{}, err
		}
		h.logger.Info("learned sets pruned",
			zap.Int64("user_id", userID),
			zap.Int("dropped", dropped),
		)
		reply.text = formatPruneResult(dropped)
	}

	return reply, h.replace(cb, h.progressScreen(ctx, userID))
}

func (h *Handler) handleResetCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) (callbackReply, error) {
	userID := cb.From.ID

	switch data.param(0) {
	case resetAsk:
		return callbackReply{}, h.replace(cb, resetScreen())

	case resetConfirm:
		h.progressService.For(userID).Reset(ctx)
		if session, ok := h.quizStorage.Get(userID); ok {
			session.Exit()
			h.quizStorage.Delete(userID)
		}
		h.deckStorage.Delete(userID)

		h.logger.Info("progress reset", zap.Int64("user_id", userID))
		return callbackReply{text: msgResetDone}, h.replace(cb, h.homeScreen(msgResetDone))

	default:
		return callbackReply{text: msgResetCancelled}, h.replace(cb, h.homeScreen(""))
	}
}
