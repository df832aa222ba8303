package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	pkgcache "github.com/ghuser/indentd/pkg/cache"
	"github.com/ghuser/indentd/pkg/logger"
	indentdomain "github.com/ghuser/indentd/services/indent/domain"
	"github.com/ghuser/indentd/services/indent/domain/models"
	"github.com/ghuser/indentd/services/indent/domain/repositories"
)

// ReferenceService serves the read-only item reference dataset with bounded
// staleness: reads go through a Redis cache with a configured TTL and fall
// back to the store on miss. Lookups are case-insensitive; when the dataset
// carries the same name twice, the first occurrence wins.
type ReferenceService struct {
	repo  repositories.ReferenceRepo
	cache *pkgcache.ReferenceCache
	log   logger.Logger
}

// NewReferenceService returns a ReferenceService wired with the given
// repository and cache. The cache may be nil (tests).
func NewReferenceService(repo repositories.ReferenceRepo, cache *pkgcache.ReferenceCache, log logger.Logger) *ReferenceService {
	return &ReferenceService{repo: repo, cache: cache, log: log}
}

// Items returns the de-duplicated reference dataset. A store failure wraps
// ErrReferenceUnavailable; callers degrade to an empty list plus a reported
// error rather than failing the whole session.
func (s *ReferenceService) Items(ctx context.Context) ([]models.ReferenceItem, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx); err == nil {
			return fromCached(cached), nil
		} else if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "reference cache read failed, falling back to store", "error", err)
		}
	}

	raw, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", indentdomain.ErrReferenceUnavailable, err)
	}
	items := dedupe(raw)

	if s.cache != nil {
		go func() {
			if err := s.cache.Set(context.Background(), toCached(items)); err != nil {
				s.log.Warn("reference cache warm failed", "error", err)
			}
		}()
	}
	return items, nil
}

// Lookup resolves an item name against the dataset, case-insensitively.
// Returns ErrItemNotFound for unknown names.
func (s *ReferenceService) Lookup(ctx context.Context, name string) (*models.ReferenceItem, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return nil, err
	}
	want := strings.ToLower(strings.TrimSpace(name))
	for i := range items {
		if strings.ToLower(items[i].Name) == want {
			return &items[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", indentdomain.ErrItemNotFound, name)
}

// PermittedItems returns the items a department may request, sorted by name.
// An empty department returns the full dataset.
func (s *ReferenceService) PermittedItems(ctx context.Context, department string) ([]models.ReferenceItem, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return nil, err
	}
	if department == "" {
		return items, nil
	}
	permitted := make([]models.ReferenceItem, 0, len(items))
	for _, it := range items {
		if it.PermittedFor(department) {
			permitted = append(permitted, it)
		}
	}
	return permitted, nil
}

// Import replaces the dataset and invalidates the cache.
func (s *ReferenceService) Import(ctx context.Context, items []models.ReferenceItem) (int, error) {
	items = dedupe(items)
	if err := s.repo.ReplaceAll(ctx, items); err != nil {
		return 0, fmt.Errorf("replace reference data: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.WarnContext(ctx, "reference cache invalidate failed", "error", err)
		}
	}
	return len(items), nil
}

// dedupe drops case-insensitive repeats (first occurrence wins) and sorts by name.
func dedupe(items []models.ReferenceItem) []models.ReferenceItem {
	seen := make(map[string]struct{}, len(items))
	out := make([]models.ReferenceItem, 0, len(items))
	for _, it := range items {
		if it.Name == "" {
			continue
		}
		key := strings.ToLower(it.Name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func toCached(items []models.ReferenceItem) []pkgcache.CachedReferenceItem {
	out := make([]pkgcache.CachedReferenceItem, len(items))
	for i, it := range items {
		c := pkgcache.CachedReferenceItem{
			Name:        it.Name,
			Unit:        it.Unit,
			Category:    it.Category,
			SubCategory: it.SubCategory,
			Departments: it.Departments,
			BaseUnit:    it.BaseUnit,
		}
		if !it.ConversionFactor.IsZero() {
			c.ConversionFactor = it.ConversionFactor.String()
		}
		out[i] = c
	}
	return out
}

func fromCached(cached []pkgcache.CachedReferenceItem) []models.ReferenceItem {
	out := make([]models.ReferenceItem, len(cached))
	for i, c := range cached {
		it := models.ReferenceItem{
			Name:        c.Name,
			Unit:        c.Unit,
			Category:    c.Category,
			SubCategory: c.SubCategory,
			Departments: c.Departments,
			BaseUnit:    c.BaseUnit,
		}
		if c.ConversionFactor != "" {
			if f, err := decimal.NewFromString(c.ConversionFactor); err == nil {
				it.ConversionFactor = f
			}
		}
		out[i] = it
	}
	return out
}
