package telegram

import (
	"context"
	"math/rand"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Options tunes the handler.
type Options struct {
	QuizLengths       []int // lengths offered after a pool is chosen
	DefaultQuizLength int
}

type Handler struct {
	bot             BotAPI
	logger          *zap.Logger
	userService     UserService
	catalogService  CatalogService
	progressService ProgressService
	quizFactory     QuizFactory
	quizStorage     QuizStorage
	deckStorage     DeckStorage
	opts            Options
	rng             *rand.Rand
}

func NewHandler(
	bot BotAPI,
	logger *zap.Logger,
	userService UserService,
	catalogService CatalogService,
	progressService ProgressService,
	quizFactory QuizFactory,
	quizStorage QuizStorage,
	deckStorage DeckStorage,
	opts Options,
) *Handler {
	if len(opts.QuizLengths) == 0 {
		opts.QuizLengths = []int{5, 10, 15, 20}
	}
	if opts.DefaultQuizLength <= 0 {
		opts.DefaultQuizLength = opts.QuizLengths[0]
	}

	return &Handler{
		bot:             bot,
		logger:          logger,
		userService:     userService,
		catalogService:  catalogService,
		progressService: progressService,
		quizFactory:     quizFactory,
		quizStorage:     quizStorage,
		deckStorage:     deckStorage,
		opts:            opts,
		rng:             rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run consumes updates until ctx is cancelled. Updates are handled one at a
// time, so per-user sessions are never mutated concurrently.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	from := update.Message.From
	chatID := update.Message.Chat.ID

	created, err := h.userService.EnsureUser(ctx, from.ID, chatID, from.FirstName, from.UserName)
	if err != nil {
		h.logger.Error("failed to ensure user",
			zap.Int64("user_id", from.ID),
			zap.Error(err),
		)
	} else if created {
		h.logger.Info("new learner", zap.Int64("user_id", from.ID))
	}

	if !update.Message.IsCommand() {
		_ = h.send(h.homeScreen(msgUnknownInput).message(chatID))
		return
	}

	h.handleCommand(ctx, update.Message.Command(), from.ID, chatID)
}

func (h *Handler) sendError(chatID int64, text string) {
	_ = h.send(newPlainMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}

// answerCallback removes the user's "clock" and optionally shows text.
func (h *Handler) answerCallback(cb *tgbotapi.CallbackQuery, reply callbackReply) {
	answer := tgbotapi.NewCallback(cb.ID, reply.text)
	if reply.alert {
		answer = tgbotapi.NewCallbackWithAlert(cb.ID, reply.text)
	}
	if _, err := h.bot.Request(answer); err != nil {
		h.logger.Warn("callback answer error", zap.Error(err))
	}
}
