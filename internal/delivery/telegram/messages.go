// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	"github.com/aliskhannn/auslan-bot/internal/domain/entities"
	"github.com/aliskhannn/auslan-bot/internal/service"
)

// Error and notice messages. They are plain text unless passed through md.
const (
	msgCatalogUnavailable = "Sign videos could not be loaded right now. Please try again in a little while."
	msgInternalError      = "Something went wrong. Please try again later."
	msgUnknownInput       = "I only understand buttons and commands. Here is the menu."
	msgUnknownCommand     = "Unknown command. Here is the menu."
	msgStale              = "This screen is out of date. Open it again from the menu."
	msgAlreadyAnswered    = "You already answered this question."
	msgAnswerFirst        = "Pick an answer first."
	msgEmptyPool          = "There are no signs in this selection. Choose another pool."
	msgPoolTooSmall       = "This selection needs at least two different signs for a quiz. Choose another pool."
	msgDeckEmpty          = "Every word in this deck is already known. Try the full deck instead."
	msgResetDone          = "Your progress has been cleared."
	msgResetCancelled     = "Nothing was changed."
)

// greeting is the welcome line, addressed to firstName when known.
func greeting(firstName string) string {
	if firstName == "" {
		return welcomeText
	}
	return "Hi, " + firstName + "! " + welcomeText
}

const (
	welcomeText = "Welcome to the Auslan learning bot!"
	helpText    = "Learn Australian Sign Language one sign at a time.\n\n" +
		"/letters - fingerspelled letters and numbers\n" +
		"/words - everyday words\n" +
		"/flashcards - guess the word, then reveal it\n" +
		"/quiz - multiple choice quiz\n" +
		"/progress - what you have learned so far\n" +
		"/reset - clear all progress\n" +
		"/help - this message"
)

const (
	progressBarLength = 10
	maxMistakesShown  = 10
)

// buildProgressBar creates an ASCII progress bar.
func buildProgressBar(current, total, length int) string {
	filled := 0
	if total > 0 {
		filled = int(float64(current) / float64(total) * float64(length))
	}
	if filled > length {
		filled = length
	}
	if filled < 0 {
		filled = 0
	}

	empty := length - filled
	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	return fmt.Sprintf("[%s]", bar)
}

// formatProgressLine renders "title: bar count/total (percent%)" (MarkdownV2 safe).
func formatProgressLine(title string, p entities.Progress) string {
	return fmt.Sprintf(
		"%s\n%s",
		bold(title),
		md(fmt.Sprintf("%s %d/%d (%d%%)", buildProgressBar(p.Count, p.Total, progressBarLength), p.Count, p.Total, p.Percent)),
	)
}

// formatBrowseItem formats an item card in a browse view.
func formatBrowseItem(item entities.Item, index, total int, learned bool, p entities.Progress) string {
	status := "⬜ Not learned yet"
	if learned {
		status = "✅ Learned"
	}

	return fmt.Sprintf(
		"%s\n%s\n\n%s\n%s",
		bold(item.Title),
		italic(service.ByCategory(item)),
		md(fmt.Sprintf("%d of %d  •  %s", index+1, total, status)),
		md(fmt.Sprintf("Learned: %d/%d (%d%%)", p.Count, p.Total, p.Percent)),
	)
}

// formatFlashcard formats the current flashcard.
func formatFlashcard(item entities.Item, position, total int, revealed bool) string {
	header := md(fmt.Sprintf("Card %d of %d", position+1, total))
	if !revealed {
		text := header + "\n\n" + md("What is this sign?")
		if item.MediaURL == "" {
			text += "\n" + italic("(no video available, tap reveal)")
		}
		return text
	}
	return header + "\n\n" + md("This sign is: ") + bold(item.Title)
}

func formatDeckSummary(known, unknown int) string {
	return fmt.Sprintf(
		"%s\n\n%s\n%s",
		bold("🃏 Deck finished!"),
		md(fmt.Sprintf("✅ Known: %d", known)),
		md(fmt.Sprintf("🔁 Not yet: %d", unknown)),
	)
}

// formatQuizQuestion formats a quiz question (MarkdownV2 safe for question text).
func formatQuizQuestion(q entities.Question, index, total int) string {
	return fmt.Sprintf(
		"%s\n\n%s",
		md(fmt.Sprintf("Question %d of %d", index+1, total)),
		bold(q.Prompt),
	)
}

// formatAnswerFeedback formats feedback for a quiz answer (MarkdownV2 safe).
func formatAnswerFeedback(rec entities.AnswerRecord) string {
	if rec.IsCorrect {
		return md("✅ Correct! ") + bold(rec.Correct)
	}
	return fmt.Sprintf(
		"%s %s\n%s %s",
		md("❌ You chose"),
		bold(rec.Chosen),
		md("The answer is"),
		bold(rec.Correct),
	)
}

// formatQuizResult formats quiz results (MarkdownV2 safe).
func formatQuizResult(module entities.ModuleKey, summary entities.QuizSummary) string {
	emoji, message := "📚", "Keep practising, every sign counts!"
	switch {
	case summary.Percent >= 90:
		emoji, message = "🌟", "Outstanding result!"
	case summary.Percent >= 70:
		emoji, message = "👍", "Good result!"
	case summary.Percent >= 50:
		emoji, message = "💪", "Not bad, keep going!"
	}

	var sb strings.Builder
	sb.WriteString(md(emoji + " " + module.Title() + " quiz complete!"))
	sb.WriteString("\n\n")
	sb.WriteString(md("Result: "))
	sb.WriteString(bold(fmt.Sprintf("%d/%d (%d%%)", summary.Score, summary.Total, summary.Percent)))
	sb.WriteString("\n")
	sb.WriteString(md(buildProgressBar(summary.Score, summary.Total, progressBarLength)))
	sb.WriteString("\n\n")
	sb.WriteString(md(message))

	mistakes := summary.Mistakes()
	if len(mistakes) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(bold("To review:"))
		for i, m := range mistakes {
			if i == maxMistakesShown {
				sb.WriteString("\n")
				sb.WriteString(md(fmt.Sprintf("…and %d more", len(mistakes)-maxMistakesShown)))
				break
			}
			sb.WriteString("\n")
			sb.WriteString(md(fmt.Sprintf("• %s (you chose %s)", m.Correct, m.Chosen)))
		}
	}

	return sb.String()
}

// formatPoolChoice describes the pool menu of a quiz.
func formatPoolChoice(module entities.ModuleKey, total, learned int) string {
	return fmt.Sprintf(
		"%s\n\n%s",
		bold("🎯 "+module.Title()+" quiz"),
		md(fmt.Sprintf("Which signs should the quiz use? %d in total, %d learned.", total, learned)),
	)
}

// formatLengthChoice describes the length menu of a quiz.
func formatLengthChoice(module entities.ModuleKey, poolSize int) string {
	return fmt.Sprintf(
		"%s\n\n%s",
		bold("🎯 "+module.Title()+" quiz"),
		md(fmt.Sprintf("The selection has %d signs. How many questions?", poolSize)),
	)
}

// formatPruneResult reports how many stale entries were removed.
func formatPruneResult(dropped int) string {
	if dropped == 0 {
		return "Nothing to tidy up."
	}
	return fmt.Sprintf("Removed %d outdated entries.", dropped)
}
