package telegram

import (
	"context"
	"errors"
	"math/rand"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/auslan-bot/internal/domain/entities"
	"github.com/aliskhannn/auslan-bot/internal/service"
)

func flashcardsMenuScreen() screen {
	kb := buildFlashcardsMenuKeyboard()
	return screen{
		text:     bold("🃏 Flashcards") + "\n\n" + md("Watch the sign, guess the word, then reveal it. Cards you know are remembered separately from the word list."),
		keyboard: &kb,
	}
}

func flashcardScreen(deck *service.FlashcardDeck) screen {
	card, _ := deck.Current()
	kb := buildFlashcardKeyboard(deck.ID, deck.Revealed())
	return screen{
		text:     formatFlashcard(card, deck.Position(), deck.Len(), deck.Revealed()),
		mediaURL: card.MediaURL,
		keyboard: &kb,
	}
}

func deckFinishedScreen(deck *service.FlashcardDeck) screen {
	known, unknown := deck.Tally()
	kb := buildDeckFinishedKeyboard()
	return screen{
		text:     formatDeckSummary(known, unknown),
		keyboard: &kb,
	}
}

func (h *Handler) handleFlashcards() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.show(chatID, flashcardsMenuScreen())
	}
}

// newDeck shuffles a deck from the flashcards catalog. kind selects every
// word or only words missing from the flashcards learned set.
func (h *Handler) newDeck(ctx context.Context, userID int64, kind string) (*service.FlashcardDeck, error) {
	items, err := h.catalogService.Items(ctx, entities.ModuleFlashcards)
	if err != nil {
		return nil, err
	}

	filter := service.PoolFilter{Kind: service.PoolAll}
	if kind == deckUnlearned {
		filter.Kind = service.PoolUnlearned
	}
	learned := h.progressService.For(userID).Load(ctx, entities.ModuleFlashcards)
	pool := service.FilterPool(items, filter, learned)

	rng := rand.New(rand.NewSource(h.rng.Int63()))
	return service.NewFlashcardDeck(uuid.NewString(), pool, rng)
}

func (h *Handler) handleFlashcardsCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) (callbackReply, error) {
	userID := cb.From.ID

	switch data.param(0) {
	case flashcardsMenu:
		return callbackReply{}, h.replace(cb, flashcardsMenuScreen())

	case flashcardsNew:
		deck, err := h.newDeck(ctx, userID, data.param(1))
		if errors.Is(err, service.ErrEmptyPool) {
			return callbackReply{text: msgDeckEmpty, alert: true}, nil
		}
		if err != nil {
			return callbackReply{}, err
		}

		h.deckStorage.Store(userID, deck)
		h.logger.Debug("flashcard deck created",
			zap.Int64("user_id", userID),
			zap.Int("cards", deck.Len()),
		)
		return callbackReply{}, h.replace(cb, flashcardScreen(deck))
	}

	deck, ok := h.deckStorage.Get(userID)
	if !ok || sessionToken(deck.ID) != data.param(1) || deck.Done() {
		return callbackReply{text: msgStale}, nil
	}

	switch data.param(0) {
	case flashcardsReveal:
		deck.Reveal()
		return callbackReply{}, h.refresh(cb, flashcardScreen(deck))

	case flashcardsMark:
		if !deck.Revealed() {
			return callbackReply{text: msgStale}, nil
		}

		known := data.param(2) == "1"
		card, err := deck.Mark(known)
		if err != nil {
			return callbackReply{text: msgStale}, nil
		}

		store := h.progressService.For(userID)
		if known {
			store.MarkLearned(ctx, entities.ModuleFlashcards, card.Key())
		} else {
			store.MarkNotLearned(ctx, entities.ModuleFlashcards, card.Key())
		}

		if deck.Done() {
			h.deckStorage.Delete(userID)
			return callbackReply{}, h.replace(cb, deckFinishedScreen(deck))
		}
		return callbackReply{}, h.replace(cb, flashcardScreen(deck))
	}

	h.logger.Warn("invalid flashcards callback", zap.String("data", data.Raw))
	return callbackReply{}, nil
}
