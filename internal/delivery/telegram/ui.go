package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/auslan-bot/internal/domain/entities"
	"github.com/aliskhannn/auslan-bot/internal/service"
)

const optionsPerRow = 2

func homeButtonRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🏠 Menu", buildHomeCallback()),
	)
}

// buildHomeKeyboard builds the main menu.
func buildHomeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔤 Letters & Numbers", buildBrowseCallback(entities.ModuleLettersNumbers, 0)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💬 Basic Words", buildBrowseCallback(entities.ModuleBasicWords, 0)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🃏 Flashcards", buildFlashcardsMenuCallback()),
			tgbotapi.NewInlineKeyboardButtonData("🎯 Quiz", buildQuizHubCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 My progress", buildProgressCallback()),
		),
	)
}

// buildBrowseKeyboard builds navigation for one item of a browse view.
// Navigation wraps around at both ends.
func buildBrowseKeyboard(module entities.ModuleKey, index, total int, learned bool) tgbotapi.InlineKeyboardMarkup {
	prev := (index - 1 + total) % total
	next := (index + 1) % total

	toggle := "✅ Mark as learned"
	if learned {
		toggle = "↩️ Mark as not yet"
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Previous", buildBrowseCallback(module, prev)),
			tgbotapi.NewInlineKeyboardButtonData("Next ▶️", buildBrowseCallback(module, next)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(toggle, buildBrowseToggleCallback(module, index)),
		),
		homeButtonRow(),
	)
}

// buildFlashcardsMenuKeyboard lets the learner pick a deck.
func buildFlashcardsMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🃏 All words", buildFlashcardsNewCallback(deckAll)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔁 Words I don't know yet", buildFlashcardsNewCallback(deckUnlearned)),
		),
		homeButtonRow(),
	)
}

func buildFlashcardKeyboard(deckID string, revealed bool) tgbotapi.InlineKeyboardMarkup {
	if !revealed {
		return tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("👀 Reveal", buildFlashcardsRevealCallback(deckID)),
			),
			homeButtonRow(),
		)
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Know it", buildFlashcardsMarkCallback(deckID, true)),
			tgbotapi.NewInlineKeyboardButtonData("🔁 Not yet", buildFlashcardsMarkCallback(deckID, false)),
		),
		homeButtonRow(),
	)
}

func buildDeckFinishedKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🃏 New deck", buildFlashcardsMenuCallback()),
		),
		homeButtonRow(),
	)
}

// buildQuizHubKeyboard lets the learner pick the quiz module.
func buildQuizHubKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔤 Letters & Numbers", buildQuizModuleCallback(entities.ModuleLettersNumbers)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💬 Basic Words", buildQuizModuleCallback(entities.ModuleBasicWords)),
		),
		homeButtonRow(),
	)
}

// buildQuizPoolKeyboard offers all items, learned items and every category.
func buildQuizPoolKeyboard(sessionID string, categories []string) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📚 All signs", buildQuizPoolCallback(sessionID, string(service.PoolAll), -1)),
			tgbotapi.NewInlineKeyboardButtonData("✅ Learned only", buildQuizPoolCallback(sessionID, string(service.PoolLearned), -1)),
		),
	}

	var row []tgbotapi.InlineKeyboardButton
	for i, c := range categories {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(c, buildQuizPoolCallback(sessionID, string(service.PoolCategory), i)))
		if len(row) == optionsPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("« Back", buildQuizHubCallback()),
		),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildQuizLengthKeyboard offers the configured quiz lengths.
func buildQuizLengthKeyboard(sessionID string, lengths []int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, n := range lengths {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%d questions", n), buildQuizLengthCallback(sessionID, n)))
		if len(row) == optionsPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✖️ Cancel", buildQuizExitCallback(sessionID)),
		),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildQuizAnswerKeyboard builds keyboard for quiz question.
func buildQuizAnswerKeyboard(q entities.Question, sessionID string, questionIndex int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for i, option := range q.Options {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(option, buildQuizAnswerCallback(sessionID, questionIndex, i)))
		if len(row) == optionsPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✖️ Exit quiz", buildQuizExitCallback(sessionID)),
		),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildQuizFeedbackKeyboard follows an answered question.
func buildQuizFeedbackKeyboard(sessionID string, questionIndex int, last bool) tgbotapi.InlineKeyboardMarkup {
	next := "Next ▶️"
	if last {
		next = "🏁 See results"
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(next, buildQuizNextCallback(sessionID, questionIndex)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✖️ Exit quiz", buildQuizExitCallback(sessionID)),
		),
	)
}

// buildQuizResultKeyboard builds keyboard for quiz results screen.
func buildQuizResultKeyboard(sessionID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Play again", buildQuizRestartCallback(sessionID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Other quiz", buildQuizHubCallback()),
			tgbotapi.NewInlineKeyboardButtonData("🏠 Menu", buildQuizExitCallback(sessionID)),
		),
	)
}

// buildProgressKeyboard builds keyboard for progress screen.
func buildProgressKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Refresh", buildProgressCallback()),
			tgbotapi.NewInlineKeyboardButtonData("🧹 Tidy up", buildProgressPruneCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Reset progress", buildResetAskCallback()),
		),
		homeButtonRow(),
	)
}

func buildResetKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Yes, clear everything", buildResetConfirmCallback()),
			tgbotapi.NewInlineKeyboardButtonData("Cancel", buildResetCancelCallback()),
		),
	)
}
