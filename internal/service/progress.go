package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/aliskhannn/auslan-bot/internal/domain/entities"
	"github.com/aliskhannn/auslan-bot/internal/repository"
)

// ProgressStore keeps one user's learned sets, one per module. The in-memory
// sets are authoritative for the life of the store: storage failures are
// logged and otherwise ignored.
type ProgressStore struct {
	userID int64
	kv     KVStorage
	logger *zap.Logger

	mu   sync.Mutex
	sets map[entities.ModuleKey]*entities.LearnedSet
}

func NewProgressStore(userID int64, kv KVStorage, logger *zap.Logger) *ProgressStore {
	return &ProgressStore{
		userID: userID,
		kv:     kv,
		logger: logger.With(zap.Int64("user_id", userID)),
		sets:   make(map[entities.ModuleKey]*entities.LearnedSet),
	}
}

// Load returns a copy of the learned set for module. The first call reads
// durable storage; an absent or unparsable value yields an empty set.
func (s *ProgressStore) Load(ctx context.Context, module entities.ModuleKey) *entities.LearnedSet {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx, module).Clone()
}

// MarkLearned adds key and persists the set. Adding a present key changes nothing.
func (s *ProgressStore) MarkLearned(ctx context.Context, module entities.ModuleKey, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.load(ctx, module)
	set.Add(key)
	s.persist(ctx, set)
}

// MarkNotLearned removes key if present and persists the set either way.
func (s *ProgressStore) MarkNotLearned(ctx context.Context, module entities.ModuleKey, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.load(ctx, module)
	set.Remove(key)
	s.persist(ctx, set)
}

// Toggle flips key and reports whether it is now learned.
func (s *ProgressStore) Toggle(ctx context.Context, module entities.ModuleKey, key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.load(ctx, module)
	learned := set.Add(key)
	if !learned {
		set.Remove(key)
	}
	s.persist(ctx, set)
	return learned
}

func (s *ProgressStore) IsLearned(ctx context.Context, module entities.ModuleKey, key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx, module).Has(key)
}

// Progress reports how much of a catalog of catalogSize items is learned.
func (s *ProgressStore) Progress(ctx context.Context, module entities.ModuleKey, catalogSize int) entities.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()

	return entities.NewProgress(s.load(ctx, module).Len(), catalogSize)
}

// Prune drops members that are not in validKeys and returns how many were dropped.
func (s *ProgressStore) Prune(ctx context.Context, module entities.ModuleKey, validKeys []string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	valid := make(map[string]struct{}, len(validKeys))
	for _, k := range validKeys {
		valid[k] = struct{}{}
	}

	set := s.load(ctx, module)
	dropped := set.Retain(valid)
	if dropped > 0 {
		s.persist(ctx, set)
	}
	return dropped
}

// Reset empties every module's learned set and removes the persisted values.
func (s *ProgressStore) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(entities.Modules))
	for _, m := range entities.Modules {
		s.sets[m] = entities.NewLearnedSet(m)
		keys = append(keys, m.StorageKey(s.userID))
	}

	if err := s.kv.Delete(ctx, keys...); err != nil {
		s.logger.Warn("failed to delete learned sets", zap.Error(err))
	}
}

func (s *ProgressStore) load(ctx context.Context, module entities.ModuleKey) *entities.LearnedSet {
	if set, ok := s.sets[module]; ok {
		return set
	}

	set := entities.NewLearnedSet(module)
	raw, err := s.kv.Get(ctx, module.StorageKey(s.userID))
	switch {
	case errors.Is(err, repository.ErrKeyNotFound):
	case err != nil:
		s.logger.Warn("failed to read learned set",
			zap.String("module", string(module)),
			zap.Error(err),
		)
	default:
		members, err := decodeMembers(raw)
		if err != nil {
			s.logger.Warn("ignoring corrupt learned set",
				zap.String("module", string(module)),
				zap.Error(err),
			)
			break
		}
		set = entities.NewLearnedSet(module, members...)
	}

	s.sets[module] = set
	return set
}

func (s *ProgressStore) persist(ctx context.Context, set *entities.LearnedSet) {
	raw, err := json.Marshal(set.Members())
	if err != nil {
		s.logger.Warn("failed to encode learned set", zap.Error(err))
		return
	}

	if err := s.kv.Set(ctx, set.Module.StorageKey(s.userID), string(raw)); err != nil {
		s.logger.Warn("failed to persist learned set",
			zap.String("module", string(set.Module)),
			zap.Error(err),
		)
	}
}

func decodeMembers(raw string) ([]string, error) {
	var members []string
	if err := json.Unmarshal([]byte(raw), &members); err != nil {
		return nil, fmt.Errorf("decode learned set: %w", err)
	}
	return members, nil
}

// DefaultMaxCachedLearners bounds ProgressService when no size is configured.
const DefaultMaxCachedLearners = 10000

// ProgressService hands out one ProgressStore per user. At most maxLearners
// stores are kept; the least recently used one is dropped and reloaded from
// storage on its next use.
type ProgressService struct {
	kv     KVStorage
	logger *zap.Logger

	mu     sync.Mutex
	stores *lru.Cache[int64, *ProgressStore]
}

func NewProgressService(kv KVStorage, logger *zap.Logger, maxLearners int) *ProgressService {
	if maxLearners <= 0 {
		maxLearners = DefaultMaxCachedLearners
	}
	// New only fails for a non-positive size.
	stores, _ := lru.New[int64, *ProgressStore](maxLearners)

	return &ProgressService{
		kv:     kv,
		logger: logger,
		stores: stores,
	}
}

// For returns the store of userID, creating it on first use.
func (s *ProgressService) For(userID int64) *ProgressStore {
	s.mu.Lock()
	defer s.mu.Unlock()

	if store, ok := s.stores.Get(userID); ok {
		return store
	}

	store := NewProgressStore(userID, s.kv, s.logger)
	s.stores.Add(userID, store)
	return store
}

// Cached reports how many stores are held in memory.
func (s *ProgressService) Cached() int {
	return s.stores.Len()
}
