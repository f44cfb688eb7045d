package market

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	product "github.com/marcheplus/marcheplus-backend/internal/products"
	pkgdb "github.com/marcheplus/marcheplus-backend/pkg/db"
	pkgerrors "github.com/marcheplus/marcheplus-backend/pkg/errors"
	"github.com/marcheplus/marcheplus-backend/pkg/logger"
	pkgredis "github.com/marcheplus/marcheplus-backend/pkg/redis"
)

const statsCacheName = "market_stats"

// Service exposes the market intelligence reads.
type Service interface {
	Stats(ctx context.Context) ([]MarketStat, error)
	ProductDetail(ctx context.Context, productID uuid.UUID) (*ProductDetail, error)
	Alternatives(ctx context.Context, productID uuid.UUID) ([]Alternative, error)
	SupplierOtherProducts(ctx context.Context, productID uuid.UUID) ([]Alternative, error)
	Summaries(ctx context.Context) ([]Summary, error)
	InvalidateStats(ctx context.Context)
}

type productViewer interface {
	FindView(ctx context.Context, id uuid.UUID) (*product.ProductView, error)
}

// StatsCache is the subset of the redis client used to memoize stats.
type StatsCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CacheKey(name string) string
}

// Options configures optional collaborators.
type Options struct {
	Cache    StatsCache
	CacheTTL time.Duration
	Logger   *logger.Logger
}

type service struct {
	repo     Repository
	products productViewer
	cache    StatsCache
	cacheTTL time.Duration
	logg     *logger.Logger
}

// NewService wires the market service. A nil cache or zero TTL disables caching.
func NewService(repo Repository, products productViewer, opts Options) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "market repository required")
	}
	if products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "product reader required")
	}
	return &service{
		repo:     repo,
		products: products,
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
		logg:     opts.Logger,
	}, nil
}

// Stats returns per-category aggregates over available products only.
// Categories with no available product are omitted.
func (s *service) Stats(ctx context.Context) ([]MarketStat, error) {
	if cached, ok := s.cachedStats(ctx); ok {
		return cached, nil
	}

	rows, err := s.repo.CategoryStats(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "aggregate market stats")
	}
	unitRows, err := s.repo.CategoryUnits(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load market units")
	}

	units := make(map[uuid.UUID][]string, len(rows))
	for _, row := range unitRows {
		units[row.CategoryID] = append(units[row.CategoryID], row.Unit)
	}

	stats := make([]MarketStat, 0, len(rows))
	for _, row := range rows {
		if row.TotalProducts == 0 {
			continue
		}
		categoryUnits := units[row.CategoryID]
		sort.Strings(categoryUnits)
		if categoryUnits == nil {
			categoryUnits = []string{}
		}
		unit := product.DefaultUnit
		if len(categoryUnits) > 0 {
			unit = categoryUnits[0]
		}
		stats = append(stats, MarketStat{
			CategoryID:     row.CategoryID,
			CategoryName:   row.CategoryName,
			CategoryIcon:   row.CategoryIcon,
			AudioLabelFR:   row.AudioLabelFR,
			TotalProducts:  row.TotalProducts,
			TotalSuppliers: row.TotalSuppliers,
			MinPrice:       row.MinPrice,
			MaxPrice:       row.MaxPrice,
			AvgPrice:       averagePrice(row.SumPrice, row.TotalProducts),
			Unit:           unit,
			Units:          categoryUnits,
		})
	}

	s.storeStats(ctx, stats)
	return stats, nil
}

func averagePrice(sum decimal.Decimal, count int64) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(count)).Round(0)
}

func (s *service) cachedStats(ctx context.Context) ([]MarketStat, bool) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, s.cache.CacheKey(statsCacheName))
	if err != nil {
		if !pkgredis.IsNil(err) && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "cache", statsCacheName), "market.stats_cache_read_failed")
		}
		return nil, false
	}
	var stats []MarketStat
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		return nil, false
	}
	return stats, true
}

func (s *service) storeStats(ctx context.Context, stats []MarketStat) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	payload, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.CacheKey(statsCacheName), string(payload), s.cacheTTL); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "cache", statsCacheName), "market.stats_cache_write_failed")
	}
}

// InvalidateStats drops the memoized stats so the next read aggregates live rows.
func (s *service) InvalidateStats(ctx context.Context) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	if err := s.cache.Del(ctx, s.cache.CacheKey(statsCacheName)); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "cache", statsCacheName), "market.stats_cache_invalidate_failed")
	}
}

// ProductDetail returns the product with up to four other listings from its
// supplier and up to five alternatives in its category.
func (s *service) ProductDetail(ctx context.Context, productID uuid.UUID) (*ProductDetail, error) {
	view, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	supplierProducts, err := s.repo.SupplierProducts(ctx, view.SupplierID, view.ID, SupplierProductsLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list supplier products")
	}
	alternatives, err := s.repo.Alternatives(ctx, view.CategoryID, view.ID, AlternativesLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list alternatives")
	}

	return &ProductDetail{
		Product:          *view,
		SupplierProducts: nonNil(supplierProducts),
		Alternatives:     nonNil(alternatives),
	}, nil
}

// Alternatives lists the cheapest available products in the same category,
// excluding the reference product itself.
func (s *service) Alternatives(ctx context.Context, productID uuid.UUID) ([]Alternative, error) {
	view, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.Alternatives(ctx, view.CategoryID, view.ID, AlternativesLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list alternatives")
	}
	return nonNil(rows), nil
}

// SupplierOtherProducts lists other available products of the reference product's supplier.
func (s *service) SupplierOtherProducts(ctx context.Context, productID uuid.UUID) ([]Alternative, error) {
	view, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.SupplierProducts(ctx, view.SupplierID, view.ID, SupplierProductsLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list supplier products")
	}
	return nonNil(rows), nil
}

func (s *service) Summaries(ctx context.Context) ([]Summary, error) {
	rows, err := s.repo.Summaries(ctx, SummariesLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list market summaries")
	}
	if rows == nil {
		rows = []Summary{}
	}
	return rows, nil
}

func (s *service) findProduct(ctx context.Context, productID uuid.UUID) (*product.ProductView, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid id")
	}
	view, err := s.products.FindView(ctx, productID)
	if err != nil {
		if pkgdb.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	return view, nil
}

func nonNil(rows []Alternative) []Alternative {
	if rows == nil {
		return []Alternative{}
	}
	return rows
}
