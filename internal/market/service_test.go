package market

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	product "github.com/marcheplus/marcheplus-backend/internal/products"
	pkgerrors "github.com/marcheplus/marcheplus-backend/pkg/errors"
)

type stubRepo struct {
	statsFn   func(ctx context.Context) ([]statRow, error)
	unitsFn   func(ctx context.Context) ([]unitRow, error)
	altFn     func(ctx context.Context, categoryID, excludeID uuid.UUID, limit int) ([]Alternative, error)
	supplyFn  func(ctx context.Context, supplierID, excludeID uuid.UUID, limit int) ([]Alternative, error)
	summaryFn func(ctx context.Context, limit int) ([]Summary, error)
	statCalls int
}

func (s *stubRepo) CategoryStats(ctx context.Context) ([]statRow, error) {
	s.statCalls++
	if s.statsFn != nil {
		return s.statsFn(ctx)
	}
	return nil, nil
}

func (s *stubRepo) CategoryUnits(ctx context.Context) ([]unitRow, error) {
	if s.unitsFn != nil {
		return s.unitsFn(ctx)
	}
	return nil, nil
}

func (s *stubRepo) Alternatives(ctx context.Context, categoryID, excludeID uuid.UUID, limit int) ([]Alternative, error) {
	if s.altFn != nil {
		return s.altFn(ctx, categoryID, excludeID, limit)
	}
	return nil, nil
}

func (s *stubRepo) SupplierProducts(ctx context.Context, supplierID, excludeID uuid.UUID, limit int) ([]Alternative, error) {
	if s.supplyFn != nil {
		return s.supplyFn(ctx, supplierID, excludeID, limit)
	}
	return nil, nil
}

func (s *stubRepo) Summaries(ctx context.Context, limit int) ([]Summary, error) {
	if s.summaryFn != nil {
		return s.summaryFn(ctx, limit)
	}
	return nil, nil
}

type stubViewer struct {
	view *product.ProductView
	err  error
}

func (s stubViewer) FindView(context.Context, uuid.UUID) (*product.ProductView, error) {
	return s.view, s.err
}

type memoryCache struct {
	values map[string]string
	ttls   map[string]time.Duration
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryCache) Get(_ context.Context, key string) (string, error) {
	value, ok := m.values[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (m *memoryCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	m.values[key] = value.(string)
	m.ttls[key] = ttl
	return nil
}

func (m *memoryCache) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

func (m *memoryCache) CacheKey(name string) string {
	return "mp:cache:" + name
}

func cerealRow(id uuid.UUID) statRow {
	return statRow{
		CategoryID:     id,
		CategoryName:   "Céréales",
		TotalProducts:  3,
		TotalSuppliers: 2,
		MinPrice:       decimal.NewFromInt(100),
		MaxPrice:       decimal.NewFromInt(201),
		SumPrice:       decimal.NewFromInt(401),
	}
}

func TestStatsRoundsAverageAndPicksUnit(t *testing.T) {
	categoryID := uuid.New()
	repo := &stubRepo{
		statsFn: func(context.Context) ([]statRow, error) {
			return []statRow{cerealRow(categoryID), {CategoryID: uuid.New(), TotalProducts: 0}}, nil
		},
		unitsFn: func(context.Context) ([]unitRow, error) {
			return []unitRow{{CategoryID: categoryID, Unit: "sac"}, {CategoryID: categoryID, Unit: "kg"}}, nil
		},
	}
	svc, err := NewService(repo, stubViewer{}, Options{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("expected empty categories to be skipped, got %d rows", len(stats))
	}
	if got := stats[0].AvgPrice.String(); got != "134" {
		t.Fatalf("expected rounded average 134, got %s", got)
	}
	if stats[0].Unit != "kg" {
		t.Fatalf("expected smallest unit kg, got %s", stats[0].Unit)
	}
	if len(stats[0].Units) != 2 || stats[0].Units[1] != "sac" {
		t.Fatalf("unexpected units %v", stats[0].Units)
	}
}

func TestStatsUsesCacheWithinTTL(t *testing.T) {
	categoryID := uuid.New()
	repo := &stubRepo{
		statsFn: func(context.Context) ([]statRow, error) {
			return []statRow{cerealRow(categoryID)}, nil
		},
	}
	cache := newMemoryCache()
	svc, err := NewService(repo, stubViewer{}, Options{Cache: cache, CacheTTL: 30 * time.Second})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	for i := 0; i < 3; i++ {
		stats, err := svc.Stats(context.Background())
		if err != nil {
			t.Fatalf("stats: %v", err)
		}
		if len(stats) != 1 || stats[0].CategoryID != categoryID {
			t.Fatalf("unexpected stats %+v", stats)
		}
	}
	if repo.statCalls != 1 {
		t.Fatalf("expected a single aggregate query, got %d", repo.statCalls)
	}
	if cache.ttls["mp:cache:market_stats"] != 30*time.Second {
		t.Fatalf("expected ttl to be applied, got %v", cache.ttls)
	}
}

func TestStatsReflectNewProductAfterInvalidation(t *testing.T) {
	categoryID := uuid.New()
	row := cerealRow(categoryID)
	repo := &stubRepo{
		statsFn: func(context.Context) ([]statRow, error) {
			return []statRow{row}, nil
		},
	}
	svc, err := NewService(repo, stubViewer{}, Options{Cache: newMemoryCache(), CacheTTL: 30 * time.Second})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()

	before, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	// a supplier lists another product in the category
	row.TotalProducts++
	row.SumPrice = row.SumPrice.Add(decimal.NewFromInt(600))
	row.MaxPrice = decimal.NewFromInt(600)
	svc.InvalidateStats(ctx)

	after, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if after[0].TotalProducts != before[0].TotalProducts+1 {
		t.Fatalf("expected fresh total after invalidation, got %d then %d", before[0].TotalProducts, after[0].TotalProducts)
	}
	if !after[0].MaxPrice.Equal(decimal.NewFromInt(600)) {
		t.Fatalf("expected new max price 600, got %s", after[0].MaxPrice)
	}
	if repo.statCalls != 2 {
		t.Fatalf("expected a second aggregate query, got %d", repo.statCalls)
	}
}

func TestStatsCacheDisabledWithZeroTTL(t *testing.T) {
	repo := &stubRepo{}
	svc, err := NewService(repo, stubViewer{}, Options{Cache: newMemoryCache()})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := svc.Stats(context.Background()); err != nil {
			t.Fatalf("stats: %v", err)
		}
	}
	if repo.statCalls != 2 {
		t.Fatalf("expected uncached reads, got %d", repo.statCalls)
	}
}

func TestStatsWrapsStorageErrors(t *testing.T) {
	repo := &stubRepo{
		statsFn: func(context.Context) ([]statRow, error) { return nil, errors.New("boom") },
	}
	svc, _ := NewService(repo, stubViewer{}, Options{})
	_, err := svc.Stats(context.Background())
	if !pkgerrors.IsCode(err, pkgerrors.CodeInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestProductDetailNotFound(t *testing.T) {
	svc, _ := NewService(&stubRepo{}, stubViewer{err: gorm.ErrRecordNotFound}, Options{})
	_, err := svc.ProductDetail(context.Background(), uuid.New())
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAlternativesPassesReferenceScope(t *testing.T) {
	view := &product.ProductView{ID: uuid.New(), CategoryID: uuid.New(), SupplierID: uuid.New()}
	var gotCategory, gotExclude uuid.UUID
	var gotLimit int
	repo := &stubRepo{
		altFn: func(_ context.Context, categoryID, excludeID uuid.UUID, limit int) ([]Alternative, error) {
			gotCategory, gotExclude, gotLimit = categoryID, excludeID, limit
			return nil, nil
		},
	}
	svc, _ := NewService(repo, stubViewer{view: view}, Options{})

	rows, err := svc.Alternatives(context.Background(), view.ID)
	if err != nil {
		t.Fatalf("alternatives: %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", rows)
	}
	if gotCategory != view.CategoryID || gotExclude != view.ID || gotLimit != AlternativesLimit {
		t.Fatalf("unexpected scope category=%s exclude=%s limit=%d", gotCategory, gotExclude, gotLimit)
	}
}

func TestAlternativesRejectsNilID(t *testing.T) {
	svc, _ := NewService(&stubRepo{}, stubViewer{}, Options{})
	_, err := svc.Alternatives(context.Background(), uuid.Nil)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
