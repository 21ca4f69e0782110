package service

import (
	"context"
	"errors"
	"sync"

	"github.com/aliskhannn/auslan-bot/internal/domain/entities"
	"github.com/aliskhannn/auslan-bot/internal/repository"
)

var errStorageDown = errors.New("storage down")

// fakeKV is an in-memory KVStorage that can be told to fail.
type fakeKV struct {
	mu      sync.Mutex
	data    map[string]string
	failGet bool
	failSet bool
	sets    int
	deletes []string
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string]string)}
}

func (f *fakeKV) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet {
		return "", errStorageDown
	}
	v, ok := f.data[key]
	if !ok {
		return "", repository.ErrKeyNotFound
	}
	return v, nil
}

func (f *fakeKV) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	if f.failSet {
		return errStorageDown
	}
	f.data[key] = value
	return nil
}

func (f *fakeKV) Delete(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSet {
		return errStorageDown
	}
	for _, k := range keys {
		delete(f.data, k)
		f.deletes = append(f.deletes, k)
	}
	return nil
}

type fakeSource struct {
	mu      sync.Mutex
	entries map[entities.ModuleKey][]entities.CatalogEntry
	err     error
	calls   map[entities.ModuleKey]int
	release chan struct{}
}

func newFakeSource(entries map[entities.ModuleKey][]entities.CatalogEntry) *fakeSource {
	return &fakeSource{entries: entries, calls: make(map[entities.ModuleKey]int)}
}

func (f *fakeSource) Fetch(ctx context.Context, module entities.ModuleKey) ([]entities.CatalogEntry, error) {
	f.mu.Lock()
	f.calls[module]++
	release := f.release
	f.mu.Unlock()

	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if f.err != nil {
		return nil, f.err
	}
	return f.entries[module], nil
}

func (f *fakeSource) callCount(module entities.ModuleKey) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[module]
}

type fakeCache struct {
	mu      sync.Mutex
	items   map[entities.ModuleKey][]entities.Item
	failGet bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: make(map[entities.ModuleKey][]entities.Item)}
}

func (f *fakeCache) Get(_ context.Context, module entities.ModuleKey) ([]entities.Item, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet {
		return nil, false, errStorageDown
	}
	items, ok := f.items[module]
	return items, ok, nil
}

func (f *fakeCache) Set(_ context.Context, module entities.ModuleKey, items []entities.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[module] = items
	return nil
}

type fakeUsers struct {
	users     map[int64]*entities.User
	existsErr error
	getErr    error
	saves     int
}

func (f *fakeUsers) GetByID(_ context.Context, userID int64) (*entities.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.users[userID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) Save(_ context.Context, user *entities.User) (bool, error) {
	f.saves++
	_, existed := f.users[user.ID]
	f.users[user.ID] = user
	return !existed, nil
}

func (f *fakeUsers) Exists(_ context.Context, userID int64) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.users[userID]
	return ok, nil
}

func letterItems(titles ...string) []entities.Item {
	items := make([]entities.Item, len(titles))
	for i, t := range titles {
		items[i] = entities.Item{ID: t, Title: t}
		items[i].Category = LettersNumbersClassifier(items[i])
	}
	return items
}
