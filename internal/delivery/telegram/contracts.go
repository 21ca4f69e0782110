package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/auslan-bot/internal/domain/entities"
	"github.com/aliskhannn/auslan-bot/internal/service"
)

// BotAPI is the part of *tgbotapi.BotAPI the handler uses.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type UserService interface {
	EnsureUser(ctx context.Context, userID, chatID int64, firstName, username string) (bool, error)
	FirstName(ctx context.Context, userID int64) (string, error)
}

type CatalogService interface {
	Items(ctx context.Context, module entities.ModuleKey) ([]entities.Item, error)
}

type ProgressService interface {
	For(userID int64) *service.ProgressStore
}

type QuizFactory interface {
	NewSession(module entities.ModuleKey) *service.QuizSession
}

type QuizStorage interface {
	Store(userID int64, session *service.QuizSession)
	Get(userID int64) (*service.QuizSession, bool)
	Delete(userID int64)
}

type DeckStorage interface {
	Store(userID int64, deck *service.FlashcardDeck)
	Get(userID int64) (*service.FlashcardDeck, bool)
	Delete(userID int64)
}
