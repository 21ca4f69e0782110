package telegram

import (
	"strconv"
	"strings"

	"github.com/aliskhannn/auslan-bot/internal/domain/entities"
)

// Callback action constants.
const (
	actionHome       = "home"
	actionBrowse     = "br"
	actionFlashcards = "fc"
	actionQuiz       = "qz"
	actionProgress   = "pg"
	actionReset      = "rs"
)

// Browse sub-actions.
const (
	browseToggle = "t"
)

// Flashcard sub-actions.
const (
	flashcardsMenu   = "menu"
	flashcardsNew    = "new"
	flashcardsReveal = "rev"
	flashcardsMark   = "mark"
)

// Flashcard deck kinds.
const (
	deckAll       = "all"
	deckUnlearned = "un"
)

// Quiz sub-actions.
const (
	quizHub     = "hub"
	quizModule  = "m"
	quizPool    = "p"
	quizLength  = "l"
	quizAnswer  = "a"
	quizNext    = "n"
	quizRestart = "r"
	quizExit    = "x"
)

const (
	progressPrune = "prune"
)

const (
	resetAsk     = "ask"
	resetConfirm = "ok"
	resetCancel  = "no"
)

// tokenLen is how much of a session ID travels in callback data. Telegram
// limits callback data to 64 bytes.
const tokenLen = 8

// moduleCodes keeps callback data short.
var moduleCodes = map[entities.ModuleKey]string{
	entities.ModuleLettersNumbers: "ln",
	entities.ModuleBasicWords:     "bw",
	entities.ModuleFlashcards:     "fc",
}

func moduleCode(m entities.ModuleKey) string {
	return moduleCodes[m]
}

func moduleFromCode(code string) (entities.ModuleKey, bool) {
	for m, c := range moduleCodes {
		if c == code {
			return m, true
		}
	}
	return "", false
}

// sessionToken shortens a session ID for callback data.
func sessionToken(id string) string {
	if len(id) <= tokenLen {
		return id
	}
	return id[:tokenLen]
}

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// param returns the i-th parameter or an empty string.
func (cd callbackData) param(i int) string {
	if i < 0 || i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

// intParam parses the i-th parameter as an integer.
func (cd callbackData) intParam(i int) (int, bool) {
	n, err := strconv.Atoi(cd.param(i))
	if err != nil {
		return 0, false
	}
	return n, true
}

func buildHomeCallback() string {
	return actionHome
}

// buildBrowseCallback opens item index of a module's catalog.
func buildBrowseCallback(module entities.ModuleKey, index int) string {
	return callbackData{
		Action: actionBrowse,
		Params: []string{moduleCode(module), strconv.Itoa(index)},
	}.encode()
}

// buildBrowseToggleCallback flips the learned mark of item index.
func buildBrowseToggleCallback(module entities.ModuleKey, index int) string {
	return callbackData{
		Action: actionBrowse,
		Params: []string{moduleCode(module), strconv.Itoa(index), browseToggle},
	}.encode()
}

func buildFlashcardsMenuCallback() string {
	return callbackData{Action: actionFlashcards, Params: []string{flashcardsMenu}}.encode()
}

func buildFlashcardsNewCallback(kind string) string {
	return callbackData{Action: actionFlashcards, Params: []string{flashcardsNew, kind}}.encode()
}

func buildFlashcardsRevealCallback(deckID string) string {
	return callbackData{
		Action: actionFlashcards,
		Params: []string{flashcardsReveal, sessionToken(deckID)},
	}.encode()
}

func buildFlashcardsMarkCallback(deckID string, known bool) string {
	v := "0"
	if known {
		v = "1"
	}
	return callbackData{
		Action: actionFlashcards,
		Params: []string{flashcardsMark, sessionToken(deckID), v},
	}.encode()
}

func buildQuizHubCallback() string {
	return callbackData{Action: actionQuiz, Params: []string{quizHub}}.encode()
}

func buildQuizModuleCallback(module entities.ModuleKey) string {
	return callbackData{Action: actionQuiz, Params: []string{quizModule, moduleCode(module)}}.encode()
}

// buildQuizPoolCallback selects a pool. categoryIndex is only sent for category pools.
func buildQuizPoolCallback(sessionID string, kind string, categoryIndex int) string {
	params := []string{quizPool, sessionToken(sessionID), kind}
	if categoryIndex >= 0 {
		params = append(params, strconv.Itoa(categoryIndex))
	}
	return callbackData{Action: actionQuiz, Params: params}.encode()
}

func buildQuizLengthCallback(sessionID string, length int) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizLength, sessionToken(sessionID), strconv.Itoa(length)},
	}.encode()
}

// buildQuizAnswerCallback builds callback data for answering a quiz question.
func buildQuizAnswerCallback(sessionID string, questionIndex, optionIndex int) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{
			quizAnswer,
			sessionToken(sessionID),
			strconv.Itoa(questionIndex),
			strconv.Itoa(optionIndex),
		},
	}.encode()
}

func buildQuizNextCallback(sessionID string, questionIndex int) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizNext, sessionToken(sessionID), strconv.Itoa(questionIndex)},
	}.encode()
}

func buildQuizRestartCallback(sessionID string) string {
	return callbackData{Action: actionQuiz, Params: []string{quizRestart, sessionToken(sessionID)}}.encode()
}

func buildQuizExitCallback(sessionID string) string {
	return callbackData{Action: actionQuiz, Params: []string{quizExit, sessionToken(sessionID)}}.encode()
}

// buildProgressCallback builds callback data for opening the progress view.
func buildProgressCallback() string {
	return actionProgress
}

func buildProgressPruneCallback() string {
	return callbackData{Action: actionProgress, Params: []string{progressPrune}}.encode()
}

func buildResetAskCallback() string {
	return callbackData{Action: actionReset, Params: []string{resetAsk}}.encode()
}

func buildResetConfirmCallback() string {
	return callbackData{Action: actionReset, Params: []string{resetConfirm}}.encode()
}

func buildResetCancelCallback() string {
	return callbackData{Action: actionReset, Params: []string{resetCancel}}.encode()
}
