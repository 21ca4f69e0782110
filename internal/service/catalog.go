package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/aliskhannn/auslan-bot/internal/domain/entities"
)

var ErrCatalogUnavailable = errors.New("catalog unavailable")

// PoolKind selects which catalog items are eligible for a quiz or deck.
type PoolKind string

const (
	PoolAll       PoolKind = "all"
	PoolLearned   PoolKind = "learned"
	PoolUnlearned PoolKind = "unlearned"
	PoolCategory  PoolKind = "category"
)

// PoolFilter narrows a catalog down to a pool.
type PoolFilter struct {
	Kind     PoolKind
	Category string
}

// CatalogService loads, classifies and caches module catalogs.
type CatalogService struct {
	source CatalogSource
	cache  CatalogCache
	logger *zap.Logger
	group  singleflight.Group
}

func NewCatalogService(source CatalogSource, cache CatalogCache, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		source: source,
		cache:  cache,
		logger: logger,
	}
}

// Items returns the catalog backing module. Concurrent callers for the same
// module share one fetch. A failed fetch yields ErrCatalogUnavailable.
func (s *CatalogService) Items(ctx context.Context, module entities.ModuleKey) ([]entities.Item, error) {
	catalog := module.CatalogModule()

	if items, ok := s.cached(ctx, catalog); ok {
		return items, nil
	}

	// The shared fetch outlives any one caller; the source applies its own timeout.
	fetchCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(string(catalog), func() (any, error) {
		entries, err := s.source.Fetch(fetchCtx, catalog)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
		}

		items := NormalizeEntries(entries, ClassifierFor(catalog))
		if len(items) == 0 {
			return nil, fmt.Errorf("%w: %s is empty", ErrCatalogUnavailable, catalog)
		}

		if err := s.cache.Set(fetchCtx, catalog, items); err != nil {
			s.logger.Warn("failed to cache catalog",
				zap.String("module", string(catalog)),
				zap.Error(err),
			)
		}

		s.logger.Info("catalog loaded",
			zap.String("module", string(catalog)),
			zap.Int("items", len(items)),
		)

		return items, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return cloneItems(res.Val.([]entities.Item)), nil
	}
}

func (s *CatalogService) cached(ctx context.Context, module entities.ModuleKey) ([]entities.Item, bool) {
	items, ok, err := s.cache.Get(ctx, module)
	if err != nil {
		s.logger.Warn("catalog cache read failed",
			zap.String("module", string(module)),
			zap.Error(err),
		)
		return nil, false
	}
	if !ok || len(items) == 0 {
		return nil, false
	}
	return items, true
}

// Warm loads every listed catalog in parallel.
func (s *CatalogService) Warm(ctx context.Context, modules ...entities.ModuleKey) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, m := range modules {
		m := m
		g.Go(func() error {
			_, err := s.Items(ctx, m)
			return err
		})
	}
	return g.Wait()
}

// Item looks an item up by key.
func (s *CatalogService) Item(ctx context.Context, module entities.ModuleKey, key string) (entities.Item, bool, error) {
	items, err := s.Items(ctx, module)
	if err != nil {
		return entities.Item{}, false, err
	}
	for _, it := range items {
		if it.Key() == key {
			return it, true, nil
		}
	}
	return entities.Item{}, false, nil
}

// NormalizeEntries turns raw entries into items. Missing titles fall back to
// the filename without extension and then to "Item <n>"; missing ids fall back
// to a composite of title and index.
func NormalizeEntries(entries []entities.CatalogEntry, classify Classifier) []entities.Item {
	items := make([]entities.Item, 0, len(entries))
	for i, e := range entries {
		title := strings.TrimSpace(e.Title)
		if title == "" && e.Filename != "" {
			base := path.Base(e.Filename)
			title = strings.TrimSpace(strings.TrimSuffix(base, path.Ext(base)))
		}
		if title == "" {
			title = "Item " + strconv.Itoa(i+1)
		}

		id := strings.TrimSpace(e.ID)
		if id == "" {
			id = title + "#" + strconv.Itoa(i)
		}

		item := entities.Item{
			ID:       id,
			Title:    title,
			MediaURL: strings.TrimSpace(e.MediaURL),
		}
		item.Category = classify(item)
		items = append(items, item)
	}
	return items
}

// FilterPool applies filter to items. learned may be nil for PoolAll and PoolCategory.
func FilterPool(items []entities.Item, filter PoolFilter, learned *entities.LearnedSet) []entities.Item {
	out := make([]entities.Item, 0, len(items))
	for _, it := range items {
		switch filter.Kind {
		case PoolLearned:
			if learned == nil || !learned.Has(it.Key()) {
				continue
			}
		case PoolUnlearned:
			if learned != nil && learned.Has(it.Key()) {
				continue
			}
		case PoolCategory:
			if it.Category != filter.Category {
				continue
			}
		}
		out = append(out, it)
	}
	return out
}

// Categories returns the distinct categories of items, sorted.
func Categories(items []entities.Item) []string {
	seen := make(map[string]struct{})
	for _, it := range items {
		seen[ByCategory(it)] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Keys returns the learned-set keys of items.
func Keys(items []entities.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Key()
	}
	return out
}

func cloneItems(items []entities.Item) []entities.Item {
	out := make([]entities.Item, len(items))
	copy(out, items)
	return out
}
