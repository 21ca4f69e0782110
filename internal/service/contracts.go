package service

import (
	"context"

	"github.com/aliskhannn/auslan-bot/internal/domain/entities"
)

type UserRepository interface {
	Save(ctx context.Context, user *entities.User) (bool, error)
	Exists(ctx context.Context, userID int64) (bool, error)
	GetByID(ctx context.Context, userID int64) (*entities.User, error)
}

// KVStorage is the durable key-value store behind learned sets.
// Get returns repository.ErrKeyNotFound for absent keys.
type KVStorage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// CatalogSource delivers raw catalog entries for a module.
type CatalogSource interface {
	Fetch(ctx context.Context, module entities.ModuleKey) ([]entities.CatalogEntry, error)
}

// CatalogCache keeps normalised catalogs between fetches.
type CatalogCache interface {
	Get(ctx context.Context, module entities.ModuleKey) ([]entities.Item, bool, error)
	Set(ctx context.Context, module entities.ModuleKey, items []entities.Item) error
}
