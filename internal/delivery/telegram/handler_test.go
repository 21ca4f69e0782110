package telegram

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/auslan-bot/internal/domain/entities"
	"github.com/aliskhannn/auslan-bot/internal/repository"
	"github.com/aliskhannn/auslan-bot/internal/service"
	"github.com/aliskhannn/auslan-bot/internal/storage"
)

type fakeBot struct {
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.sent = append(b.sent, c)
	return tgbotapi.Message{}, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.requests = append(b.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (b *fakeBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return make(chan tgbotapi.Update)
}

// lastText returns the text or caption of the last sent chattable.
func (b *fakeBot) lastText(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, b.sent)

	switch c := b.sent[len(b.sent)-1].(type) {
	case tgbotapi.MessageConfig:
		return c.Text
	case tgbotapi.VideoConfig:
		return c.Caption
	case tgbotapi.PhotoConfig:
		return c.Caption
	case tgbotapi.EditMessageTextConfig:
		return c.Text
	case tgbotapi.EditMessageCaptionConfig:
		return c.Caption
	default:
		t.Fatalf("unexpected chattable %T", c)
		return ""
	}
}

// lastReply returns the last callback answer.
func (b *fakeBot) lastReply(t *testing.T) tgbotapi.CallbackConfig {
	t.Helper()
	for i := len(b.requests) - 1; i >= 0; i-- {
		if cfg, ok := b.requests[i].(tgbotapi.CallbackConfig); ok {
			return cfg
		}
	}
	t.Fatal("no callback answered")
	return tgbotapi.CallbackConfig{}
}

type fakeCatalog struct {
	items map[entities.ModuleKey][]entities.Item
	err   error
}

func (c *fakeCatalog) Items(_ context.Context, module entities.ModuleKey) ([]entities.Item, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.items[module.CatalogModule()], nil
}

type fakeUsers struct {
	names   map[int64]string
	nameErr error
}

func (u *fakeUsers) EnsureUser(_ context.Context, userID, _ int64, firstName, _ string) (bool, error) {
	_, seen := u.names[userID]
	if !seen {
		u.names[userID] = firstName
	}
	return !seen, nil
}

func (u *fakeUsers) FirstName(_ context.Context, userID int64) (string, error) {
	if u.nameErr != nil {
		return "", u.nameErr
	}
	return u.names[userID], nil
}

type testEnv struct {
	h        *Handler
	bot      *fakeBot
	catalog  *fakeCatalog
	users    *fakeUsers
	progress *service.ProgressService
	quizzes  *storage.QuizStorage
	decks    *storage.DeckStorage
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	letters := make([]entities.Item, 0, 6)
	for _, title := range []string{"A", "B", "C", "D", "E", "1"} {
		it := entities.Item{ID: title, Title: title, MediaURL: "https://cdn/" + title + ".mp4"}
		it.Category = service.LettersNumbersClassifier(it)
		letters = append(letters, it)
	}
	words := []entities.Item{
		{ID: "hello", Title: "Hello", Category: service.CategoryGreetings},
		{ID: "dog", Title: "Dog", Category: service.CategoryAnimals, MediaURL: "https://cdn/dog.gif"},
		{ID: "cat", Title: "Cat", Category: service.CategoryAnimals},
	}

	env := &testEnv{
		bot: &fakeBot{},
		catalog: &fakeCatalog{items: map[entities.ModuleKey][]entities.Item{
			entities.ModuleLettersNumbers: letters,
			entities.ModuleBasicWords:     words,
		}},
		users:    &fakeUsers{names: map[int64]string{}},
		progress: service.NewProgressService(repository.NewMemoryKV(), zap.NewNop(), 0),
		quizzes:  storage.NewQuizStorage(),
		decks:    storage.NewDeckStorage(),
	}
	env.h = NewHandler(
		env.bot,
		zap.NewNop(),
		env.users,
		env.catalog,
		env.progress,
		service.NewQuizFactory(rand.New(rand.NewSource(1))),
		env.quizzes,
		env.decks,
		Options{QuizLengths: []int{3, 10}, DefaultQuizLength: 3},
	)
	return env
}

const testUser int64 = 42

func (e *testEnv) command(cmd string) {
	text := "/" + cmd
	e.h.handleUpdate(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: testUser, FirstName: "Sam"},
		Chat:      &tgbotapi.Chat{ID: testUser},
		Text:      text,
		Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}},
	}})
}

func (e *testEnv) callback(data string) {
	e.h.handleUpdate(context.Background(), tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb",
		From:    &tgbotapi.User{ID: testUser},
		Data:    data,
		Message: &tgbotapi.Message{MessageID: 10, Chat: &tgbotapi.Chat{ID: testUser}},
	}})
}

func TestHandler_StartShowsMenu(t *testing.T) {
	env := newTestEnv(t)

	env.command("start")

	msg, ok := env.bot.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Contains(t, msg.Text, "Welcome")
	assert.Contains(t, msg.Text, "Hi, Sam")
	assert.Equal(t, buildHomeKeyboard(), msg.ReplyMarkup)
}

func TestHandler_StartWithoutStoredLearner(t *testing.T) {
	env := newTestEnv(t)
	env.users.nameErr = errors.New("db down")

	env.command("start")

	msg, ok := env.bot.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Contains(t, msg.Text, "Welcome")
	assert.NotContains(t, msg.Text, "Hi,")
}

func TestHandler_CatalogUnavailableIsNonBlocking(t *testing.T) {
	env := newTestEnv(t)
	env.catalog.err = service.ErrCatalogUnavailable

	env.command("letters")

	assert.Equal(t, msgCatalogUnavailable, env.bot.lastText(t))

	env.command("progress")
	assert.Contains(t, env.bot.lastText(t), "catalog unavailable")
}

func TestHandler_BrowseSendsVideoAndToggles(t *testing.T) {
	env := newTestEnv(t)

	env.command("letters")
	video, ok := env.bot.sent[0].(tgbotapi.VideoConfig)
	require.True(t, ok)
	assert.Contains(t, video.Caption, "1 of 6")

	env.callback(buildBrowseToggleCallback(entities.ModuleLettersNumbers, 1))

	store := env.progress.For(testUser)
	assert.True(t, store.IsLearned(context.Background(), entities.ModuleLettersNumbers, "B"))
	assert.Equal(t, "Marked as learned", env.bot.lastReply(t).Text)
	_, isEdit := env.bot.sent[len(env.bot.sent)-1].(tgbotapi.EditMessageCaptionConfig)
	assert.True(t, isEdit)

	env.callback(buildBrowseToggleCallback(entities.ModuleLettersNumbers, 1))
	assert.False(t, store.IsLearned(context.Background(), entities.ModuleLettersNumbers, "B"))
}

func TestHandler_BrowseWrapsAround(t *testing.T) {
	env := newTestEnv(t)

	env.callback(buildBrowseCallback(entities.ModuleBasicWords, -1))

	msg, ok := env.bot.sent[len(env.bot.sent)-1].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Contains(t, msg.Text, "Cat")
}

func TestHandler_QuizFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.command("quiz")
	env.callback(buildQuizModuleCallback(entities.ModuleLettersNumbers))

	session, ok := env.quizzes.Get(testUser)
	require.True(t, ok)
	assert.Equal(t, service.QuizIdle, session.State())

	env.callback(buildQuizPoolCallback(session.ID, string(service.PoolAll), -1))
	require.Equal(t, service.QuizConfiguring, session.State())
	assert.Len(t, session.Pool(), 6)

	env.callback(buildQuizLengthCallback(session.ID, 3))
	require.Equal(t, service.QuizActive, session.State())
	assert.Equal(t, 3, session.Total())

	for i := 0; i < 3; i++ {
		q, ok := session.Current()
		require.True(t, ok)

		env.callback(buildQuizAnswerCallback(session.ID, i, q.OptionIndex(q.CorrectAnswer)))
		assert.Equal(t, "✅", env.bot.lastReply(t).Text)

		env.callback(buildQuizAnswerCallback(session.ID, i, 0))
		assert.Equal(t, msgAlreadyAnswered, env.bot.lastReply(t).Text)

		env.callback(buildQuizNextCallback(session.ID, i))
	}

	assert.Equal(t, service.QuizComplete, session.State())
	assert.Contains(t, env.bot.lastText(t), "3/3")

	for _, m := range entities.Modules {
		assert.Equal(t, 0, env.progress.For(testUser).Load(ctx, m).Len(), "quiz must not touch learned sets")
	}

	env.callback(buildQuizRestartCallback(session.ID))
	assert.Equal(t, service.QuizConfiguring, session.State())
	assert.Empty(t, session.AnswerLog())

	env.callback(buildQuizExitCallback(session.ID))
	assert.Equal(t, service.QuizIdle, session.State())
	_, ok = env.quizzes.Get(testUser)
	assert.False(t, ok)
}

func TestHandler_QuizRefusesEmptyPool(t *testing.T) {
	env := newTestEnv(t)

	env.callback(buildQuizModuleCallback(entities.ModuleBasicWords))
	session, ok := env.quizzes.Get(testUser)
	require.True(t, ok)

	env.callback(buildQuizPoolCallback(session.ID, string(service.PoolLearned), -1))
	env.callback(buildQuizLengthCallback(session.ID, 3))

	reply := env.bot.lastReply(t)
	assert.Equal(t, msgEmptyPool, reply.Text)
	assert.True(t, reply.ShowAlert)
	assert.Equal(t, service.QuizConfiguring, session.State())
	assert.Equal(t, 0, session.Total())
}

func TestHandler_QuizStaleCallbacks(t *testing.T) {
	env := newTestEnv(t)

	env.callback(buildQuizAnswerCallback("deadbeef-0000", 0, 0))
	assert.Equal(t, msgStale, env.bot.lastReply(t).Text)

	env.callback(buildQuizModuleCallback(entities.ModuleLettersNumbers))
	session, _ := env.quizzes.Get(testUser)
	env.callback(buildQuizPoolCallback(session.ID, string(service.PoolAll), -1))
	env.callback(buildQuizLengthCallback(session.ID, 3))

	env.callback(buildQuizAnswerCallback(session.ID, 2, 0))
	assert.Equal(t, msgStale, env.bot.lastReply(t).Text)

	env.callback(buildQuizNextCallback(session.ID, 0))
	assert.Equal(t, msgAnswerFirst, env.bot.lastReply(t).Text)
	assert.Equal(t, 0, session.CurrentIndex())
}

func TestHandler_FlashcardsMarkKnown(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.callback(buildFlashcardsNewCallback(deckAll))
	deck, ok := env.decks.Get(testUser)
	require.True(t, ok)
	card, _ := deck.Current()

	env.callback(buildFlashcardsMarkCallback(deck.ID, true))
	assert.Equal(t, msgStale, env.bot.lastReply(t).Text, "marking before reveal")

	env.callback(buildFlashcardsRevealCallback(deck.ID))
	assert.Contains(t, env.bot.lastText(t), card.Title)

	env.callback(buildFlashcardsMarkCallback(deck.ID, true))

	store := env.progress.For(testUser)
	assert.True(t, store.IsLearned(ctx, entities.ModuleFlashcards, card.Key()))
	assert.False(t, store.IsLearned(ctx, entities.ModuleBasicWords, card.Key()))
	assert.Equal(t, 1, deck.Position())
}

func TestHandler_FlashcardsUnlearnedDeckEmpty(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	store := env.progress.For(testUser)
	for _, k := range []string{"hello", "dog", "cat"} {
		store.MarkLearned(ctx, entities.ModuleFlashcards, k)
	}

	env.callback(buildFlashcardsNewCallback(deckUnlearned))

	assert.Equal(t, msgDeckEmpty, env.bot.lastReply(t).Text)
	_, ok := env.decks.Get(testUser)
	assert.False(t, ok)
}

func TestHandler_ResetAndPrune(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	store := env.progress.For(testUser)

	store.MarkLearned(ctx, entities.ModuleBasicWords, "hello")
	store.MarkLearned(ctx, entities.ModuleBasicWords, "retired-word")

	env.callback(buildProgressPruneCallback())
	assert.Equal(t, formatPruneResult(1), env.bot.lastReply(t).Text)
	assert.Equal(t, []string{"hello"}, store.Load(ctx, entities.ModuleBasicWords).Members())

	env.callback(buildResetConfirmCallback())
	assert.Equal(t, msgResetDone, env.bot.lastReply(t).Text)
	assert.Equal(t, 0, store.Load(ctx, entities.ModuleBasicWords).Len())
}
