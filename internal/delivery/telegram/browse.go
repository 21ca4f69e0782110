package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/auslan-bot/internal/domain/entities"
	"github.com/aliskhannn/auslan-bot/internal/service"
)

// browseScreen renders item index of module with its learned toggle.
// An out of range index wraps around the catalog.
func (h *Handler) browseScreen(ctx context.Context, userID int64, module entities.ModuleKey, index int) (screen, error) {
	items, err := h.catalogService.Items(ctx, module)
	if err != nil {
		return screen{}, err
	}

	total := len(items)
	if total == 0 {
		return screen{}, service.ErrCatalogUnavailable
	}
	index = ((index % total) + total) % total
	item := items[index]

	store := h.progressService.For(userID)
	learned := store.IsLearned(ctx, module, item.Key())
	progress := store.Progress(ctx, module, total)

	kb := buildBrowseKeyboard(module, index, total, learned)
	return screen{
		text:     formatBrowseItem(item, index, total, learned, progress),
		mediaURL: item.MediaURL,
		keyboard: &kb,
	}, nil
}

// handleBrowse opens the first item of a module.
func (h *Handler) handleBrowse(userID int64, module entities.ModuleKey) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		s, err := h.browseScreen(ctx, userID, module, 0)
		if err != nil {
			return err
		}
		return h.show(chatID, s)
	}
}

// handleBrowseCallback navigates a browse view or toggles the learned mark.
func (h *Handler) handleBrowseCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) (callbackReply, error) {
	module, ok := moduleFromCode(data.param(0))
	index, okIndex := data.intParam(1)
	if !ok || !okIndex {
		h.logger.Warn("invalid browse callback", zap.String("data", data.Raw))
		return callbackReply{}, nil
	}

	if data.param(2) != browseToggle {
		s, err := h.browseScreen(ctx, cb.From.ID, module, index)
		if err != nil {
			return callbackReply{}, err
		}
		return callbackReply{}, h.replace(cb, s)
	}

	items, err := h.catalogService.Items(ctx, module)
	if err != nil {
		return callbackReply{}, err
	}
	if index < 0 || index >= len(items) {
		return callbackReply{text: msgStale}, nil
	}

	learned := h.progressService.For(cb.From.ID).Toggle(ctx, module, items[index].Key())
	h.logger.Debug("learned mark toggled",
		zap.Int64("user_id", cb.From.ID),
		zap.String("module", string(module)),
		zap.String("item", items[index].Key()),
		zap.Bool("learned", learned),
	)

	s, err := h.browseScreen(ctx, cb.From.ID, module, index)
	if err != nil {
		return callbackReply{}, err
	}

	reply := callbackReply{text: "Marked as not learned yet"}
	if learned {
		reply.text = "Marked as learned"
	}
	return reply, h.refresh(cb, s)
}
