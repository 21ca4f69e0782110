package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/auslan-bot/internal/domain/entities"
)

// Commands lists the bot commands registered with Telegram.
func Commands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "start", Description: "Main menu"},
		{Command: "letters", Description: "Letters and numbers"},
		{Command: "words", Description: "Basic words"},
		{Command: "flashcards", Description: "Flashcards"},
		{Command: "quiz", Description: "Take a quiz"},
		{Command: "progress", Description: "Your progress"},
		{Command: "reset", Description: "Clear your progress"},
		{Command: "help", Description: "How to use the bot"},
	}
}

// homeScreen renders the main menu. intro replaces the welcome line when set.
func (h *Handler) homeScreen(intro string) screen {
	if intro == "" {
		intro = welcomeText
	}
	kb := buildHomeKeyboard()
	return screen{
		text:     md(intro) + "\n\n" + md("What would you like to practise?"),
		keyboard: &kb,
	}
}

func (h *Handler) handleCommand(ctx context.Context, command string, userID, chatID int64) {
	var fn HandlerFunc

	switch command {
	case "start":
		fn = h.handleStart(userID)
	case "help":
		fn = h.handleHelp()
	case "letters":
		fn = h.handleBrowse(userID, entities.ModuleLettersNumbers)
	case "words":
		fn = h.handleBrowse(userID, entities.ModuleBasicWords)
	case "flashcards":
		fn = h.handleFlashcards()
	case "quiz":
		fn = h.handleQuizHub()
	case "progress":
		fn = h.handleProgress(userID)
	case "reset":
		fn = h.handleReset()
	default:
		fn = func(ctx context.Context, chatID int64) error {
			return h.show(chatID, h.homeScreen(msgUnknownCommand))
		}
	}

	_ = h.withErrorHandling(fn)(ctx, chatID)
}

// handleStart greets the learner by the name stored on first contact.
func (h *Handler) handleStart(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		name, err := h.userService.FirstName(ctx, userID)
		if err != nil {
			h.logger.Warn("failed to load learner",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
		}
		return h.show(chatID, h.homeScreen(greeting(name)))
	}
}

func (h *Handler) handleHelp() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		kb := buildHomeKeyboard()
		return h.show(chatID, screen{text: md(helpText), keyboard: &kb})
	}
}
