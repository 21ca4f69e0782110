package telegram

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/auslan-bot/internal/domain/entities"
	"github.com/aliskhannn/auslan-bot/internal/service"
)

func quizHubScreen() screen {
	kb := buildQuizHubKeyboard()
	return screen{
		text:     bold("🎯 Quiz") + "\n\n" + md("Watch the sign and pick the matching answer. Which signs do you want to practise?"),
		keyboard: &kb,
	}
}

func (h *Handler) quizPoolScreen(ctx context.Context, userID int64, session *service.QuizSession) (screen, error) {
	items, err := h.catalogService.Items(ctx, session.Module)
	if err != nil {
		return screen{}, err
	}
	learned := h.progressService.For(userID).Load(ctx, session.Module)
	learnedCount := len(service.FilterPool(items, service.PoolFilter{Kind: service.PoolLearned}, learned))

	kb := buildQuizPoolKeyboard(session.ID, service.Categories(items))
	return screen{
		text:     formatPoolChoice(session.Module, len(items), learnedCount),
		keyboard: &kb,
	}, nil
}

func (h *Handler) quizLengthScreen(session *service.QuizSession) screen {
	kb := buildQuizLengthKeyboard(session.ID, h.opts.QuizLengths)
	return screen{
		text:     formatLengthChoice(session.Module, len(session.Pool())),
		keyboard: &kb,
	}
}

// quizQuestionScreen renders the current question, with feedback once answered.
func quizQuestionScreen(session *service.QuizSession) screen {
	q, _ := session.Current()
	index := session.CurrentIndex()
	text := formatQuizQuestion(q, index, session.Total())

	var kb tgbotapi.InlineKeyboardMarkup
	if _, answered := session.Selected(); answered {
		answers := session.AnswerLog()
		text += "\n\n" + formatAnswerFeedback(answers[len(answers)-1])
		kb = buildQuizFeedbackKeyboard(session.ID, index, index == session.Total()-1)
	} else {
		kb = buildQuizAnswerKeyboard(q, session.ID, index)
	}

	return screen{
		text:     text,
		mediaURL: q.MediaURL,
		keyboard: &kb,
	}
}

func quizResultScreen(session *service.QuizSession) (screen, error) {
	summary, err := session.Summary()
	if err != nil {
		return screen{}, err
	}
	kb := buildQuizResultKeyboard(session.ID)
	return screen{
		text:     formatQuizResult(session.Module, summary),
		keyboard: &kb,
	}, nil
}

func (h *Handler) handleQuizHub() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.show(chatID, quizHubScreen())
	}
}

// resolvePool applies the pool choice of a callback to the session's catalog.
func (h *Handler) resolvePool(ctx context.Context, userID int64, session *service.QuizSession, data callbackData) ([]entities.Item, bool, error) {
	items, err := h.catalogService.Items(ctx, session.Module)
	if err != nil {
		return nil, false, err
	}

	filter := service.PoolFilter{Kind: service.PoolKind(data.param(2))}
	switch filter.Kind {
	case service.PoolAll, service.PoolLearned:
	case service.PoolCategory:
		categories := service.Categories(items)
		i, ok := data.intParam(3)
		if !ok || i < 0 || i >= len(categories) {
			return nil, false, nil
		}
		filter.Category = categories[i]
	default:
		return nil, false, nil
	}

	learned := h.progressService.For(userID).Load(ctx, session.Module)
	return service.FilterPool(items, filter, learned), true, nil
}

// startWarning maps a refused start to the blocking warning shown to the learner.
func startWarning(err error) (string, bool) {
	switch {
	case errors.Is(err, service.ErrEmptyPool):
		return msgEmptyPool, true
	case errors.Is(err, service.ErrPoolTooSmall):
		return msgPoolTooSmall, true
	default:
		return "", false
	}
}

func (h *Handler) handleQuizCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) (callbackReply, error) {
	userID := cb.From.ID

	switch data.param(0) {
	case quizHub:
		return callbackReply{}, h.replace(cb, quizHubScreen())

	case quizModule:
		module, ok := moduleFromCode(data.param(1))
		if !ok || module == entities.ModuleFlashcards {
			h.logger.Warn("invalid quiz module", zap.String("data", data.Raw))
			return callbackReply{}, nil
		}

		if old, ok := h.quizStorage.Get(userID); ok {
			old.Exit()
		}
		session := h.quizFactory.NewSession(module)
		s, err := h.quizPoolScreen(ctx, userID, session)
		if err != nil {
			return callbackReply{}, err
		}
		h.quizStorage.Store(userID, session)
		return callbackReply{}, h.replace(cb, s)
	}

	session, ok := h.quizStorage.Get(userID)
	if !ok || sessionToken(session.ID) != data.param(1) {
		return callbackReply{text: msgStale}, nil
	}

	switch data.param(0) {
	case quizPool:
		if session.State() != service.QuizIdle && session.State() != service.QuizConfiguring {
			return callbackReply{text: msgStale}, nil
		}
		pool, ok, err := h.resolvePool(ctx, userID, session, data)
		if err != nil {
			return callbackReply{}, err
		}
		if !ok {
			h.logger.Warn("invalid quiz pool", zap.String("data", data.Raw))
			return callbackReply{text: msgStale}, nil
		}
		if err := session.Configure(pool, h.opts.DefaultQuizLength); err != nil {
			return callbackReply{text: msgStale}, nil
		}
		return callbackReply{}, h.refresh(cb, h.quizLengthScreen(session))

	case quizLength:
		n, ok := data.intParam(2)
		if !ok || session.State() != service.QuizConfiguring {
			return callbackReply{text: msgStale}, nil
		}

		err := session.Start(session.Pool(), n)
		if warning, refused := startWarning(err); refused {
			h.logger.Debug("quiz start refused",
				zap.Int64("user_id", userID),
				zap.Int("pool", len(session.Pool())),
				zap.Error(err),
			)
			s, err := h.quizPoolScreen(ctx, userID, session)
			if err != nil {
				return callbackReply{}, err
			}
			return callbackReply{text: warning, alert: true}, h.refresh(cb, s)
		}
		if err != nil {
			return callbackReply{}, fmt.Errorf("start quiz: %w", err)
		}

		h.logger.Info("quiz started",
			zap.Int64("user_id", userID),
			zap.String("module", string(session.Module)),
			zap.Int("questions", session.Total()),
		)
		return callbackReply{}, h.replace(cb, quizQuestionScreen(session))

	case quizAnswer:
		qi, okQ := data.intParam(2)
		oi, okO := data.intParam(3)
		if !okQ || !okO || session.State() != service.QuizActive || qi != session.CurrentIndex() {
			return callbackReply{text: msgStale}, nil
		}

		rec, recorded, err := session.AnswerIndex(oi)
		if errors.Is(err, service.ErrUnknownOption) {
			return callbackReply{text: msgStale}, nil
		}
		if err != nil {
			return callbackReply{}, err
		}
		if !recorded {
			return callbackReply{text: msgAlreadyAnswered}, nil
		}

		reply := callbackReply{text: "❌"}
		if rec.IsCorrect {
			reply.text = "✅"
		}
		return reply, h.refresh(cb, quizQuestionScreen(session))

	case quizNext:
		qi, ok := data.intParam(2)
		if !ok || session.State() != service.QuizActive || qi != session.CurrentIndex() {
			return callbackReply{text: msgStale}, nil
		}
		if _, answered := session.Selected(); !answered {
			return callbackReply{text: msgAnswerFirst}, nil
		}

		if err := session.Advance(); err != nil {
			return callbackReply{}, err
		}
		if session.State() == service.QuizActive {
			return callbackReply{}, h.replace(cb, quizQuestionScreen(session))
		}

		s, err := quizResultScreen(session)
		if err != nil {
			return callbackReply{}, err
		}
		h.logger.Info("quiz completed",
			zap.Int64("user_id", userID),
			zap.String("module", string(session.Module)),
			zap.Int("score", session.Score()),
			zap.Int("total", session.Total()),
		)
		return callbackReply{}, h.replace(cb, s)

	case quizRestart:
		if err := session.Restart(); err != nil {
			return callbackReply{text: msgStale}, nil
		}
		return callbackReply{}, h.replace(cb, h.quizLengthScreen(session))

	case quizExit:
		session.Exit()
		h.quizStorage.Delete(userID)
		return callbackReply{}, h.replace(cb, h.homeScreen(""))
	}

	h.logger.Warn("invalid quiz callback", zap.String("data", data.Raw))
	return callbackReply{}, nil
}
