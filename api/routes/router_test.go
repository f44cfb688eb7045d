package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/marcheplus/marcheplus-backend/internal/admin"
	"github.com/marcheplus/marcheplus-backend/internal/auth"
	"github.com/marcheplus/marcheplus-backend/internal/favorites"
	"github.com/marcheplus/marcheplus-backend/internal/market"
	"github.com/marcheplus/marcheplus-backend/internal/notifications"
	product "github.com/marcheplus/marcheplus-backend/internal/products"
	"github.com/marcheplus/marcheplus-backend/internal/requests"
	"github.com/marcheplus/marcheplus-backend/internal/users"
	pkgAuth "github.com/marcheplus/marcheplus-backend/pkg/auth"
	"github.com/marcheplus/marcheplus-backend/pkg/config"
	"github.com/marcheplus/marcheplus-backend/pkg/db/models"
	"github.com/marcheplus/marcheplus-backend/pkg/enums"
	"github.com/marcheplus/marcheplus-backend/pkg/i18n"
	"github.com/marcheplus/marcheplus-backend/pkg/logger"
	"github.com/marcheplus/marcheplus-backend/pkg/metrics"
	"github.com/marcheplus/marcheplus-backend/pkg/pagination"
)

type stubSessions struct {
	revoked bool
}

func (s stubSessions) HasSession(ctx context.Context, accessID string) (bool, error) {
	return !s.revoked, nil
}

type stubAuthService struct{}

func (stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.AuthResponse, error) {
	return &auth.AuthResponse{Token: "token"}, nil
}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.AuthResponse, error) {
	return &auth.AuthResponse{Token: "token"}, nil
}

func (stubAuthService) Logout(ctx context.Context, accessID string) error {
	return nil
}

func (stubAuthService) Me(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	return &users.UserDTO{ID: userID}, nil
}

type stubRequestsService struct {
	mu      sync.Mutex
	created int
}

func (s *stubRequestsService) CreateRequest(ctx context.Context, principal pkgAuth.Principal, input requests.CreateRequestInput) (*models.PurchaseRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created++
	return &models.PurchaseRequest{ID: uuid.New(), MerchantID: principal.UserID, ProductID: input.ProductID}, nil
}

func (s *stubRequestsService) UpdateStatus(ctx context.Context, principal pkgAuth.Principal, requestID uuid.UUID, next enums.RequestStatus) (*models.PurchaseRequest, error) {
	return &models.PurchaseRequest{ID: requestID, Status: next}, nil
}

func (s *stubRequestsService) ListRequestsForUser(ctx context.Context, principal pkgAuth.Principal) ([]requests.RequestRecord, error) {
	return nil, nil
}

type stubProductsService struct {
	mineCalls int
}

func (s *stubProductsService) ListProducts(ctx context.Context, filters product.ListFilters, params pagination.Params) (*product.ProductList, error) {
	return &product.ProductList{Products: []product.ProductView{}}, nil
}

func (s *stubProductsService) ListMine(ctx context.Context, principal pkgAuth.Principal) ([]product.ProductView, error) {
	s.mineCalls++
	return []product.ProductView{}, nil
}

func (s *stubProductsService) CreateProduct(ctx context.Context, principal pkgAuth.Principal, input product.CreateProductInput) (*product.ProductView, error) {
	return &product.ProductView{}, nil
}

type stubMarketService struct {
	detailCalls int
}

func (s *stubMarketService) Stats(ctx context.Context) ([]market.MarketStat, error) {
	return []market.MarketStat{}, nil
}

func (s *stubMarketService) ProductDetail(ctx context.Context, productID uuid.UUID) (*market.ProductDetail, error) {
	s.detailCalls++
	return &market.ProductDetail{}, nil
}

func (s *stubMarketService) Alternatives(ctx context.Context, productID uuid.UUID) ([]market.Alternative, error) {
	return []market.Alternative{}, nil
}

func (s *stubMarketService) SupplierOtherProducts(ctx context.Context, productID uuid.UUID) ([]market.Alternative, error) {
	return []market.Alternative{}, nil
}

func (s *stubMarketService) Summaries(ctx context.Context) ([]market.Summary, error) {
	return []market.Summary{}, nil
}

func (s *stubMarketService) InvalidateStats(ctx context.Context) {}

type stubCategoriesService struct{}

func (stubCategoriesService) List(ctx context.Context) ([]models.Category, error) {
	return []models.Category{{ID: uuid.New(), Name: "Céréales"}}, nil
}

func (stubCategoriesService) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return true, nil
}

type stubNotificationsService struct{}

func (stubNotificationsService) List(ctx context.Context, userID uuid.UUID) (*notifications.ListResult, error) {
	return &notifications.ListResult{}, nil
}

func (stubNotificationsService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	return nil
}

func (stubNotificationsService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return 0, nil
}

type stubFavoritesService struct{}

func (stubFavoritesService) List(ctx context.Context, userID uuid.UUID) ([]favorites.FavoriteItem, error) {
	return nil, nil
}

func (stubFavoritesService) Add(ctx context.Context, userID, productID uuid.UUID) (*favorites.AddResult, error) {
	return &favorites.AddResult{ID: uuid.New(), Created: true}, nil
}

func (stubFavoritesService) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	return nil
}

type stubAdminService struct{}

func (stubAdminService) Dashboard(ctx context.Context, principal pkgAuth.Principal) (*admin.Dashboard, error) {
	return &admin.Dashboard{}, nil
}

func (stubAdminService) ListUsers(ctx context.Context, principal pkgAuth.Principal) ([]*users.UserDTO, error) {
	return nil, nil
}

// memoryRedis is an in-process stand-in for the redis idempotency and rate-limit surface.
type memoryRedis struct {
	mu     sync.Mutex
	values map[string]string
	counts map[string]int64
}

func newMemoryRedis() *memoryRedis {
	return &memoryRedis{values: map[string]string{}, counts: map[string]int64{}}
}

func (m *memoryRedis) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (m *memoryRedis) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value.(string)
	return nil
}

func (m *memoryRedis) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.values[key]; ok {
		return false, nil
	}
	m.values[key] = value.(string)
	return true, nil
}

func (m *memoryRedis) IdempotencyKey(scope, id string) string {
	return "idempotency:" + scope + ":" + id
}

func (m *memoryRedis) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

func (m *memoryRedis) RateLimitKey(scope string) string {
	return "rate_limit:" + scope
}

func (m *memoryRedis) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[key]++
	return m.counts[key], nil
}

type routerFixture struct {
	cfg      *config.Config
	handler  http.Handler
	requests *stubRequestsService
	products *stubProductsService
	market   *stubMarketService
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "marcheplus-test",
			ExpirationMinutes: 60,
		},
		AuthRateLimit: config.AuthRateLimitConfig{
			LoginWindow:  time.Minute,
			LoginIPLimit: 2,
		},
		Idempotency: config.IdempotencyConfig{TTL: time.Hour},
		CORS:        config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
}

func newTestRouter(t *testing.T, sessions stubSessions) routerFixture {
	t.Helper()
	cfg := testConfig()
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	reg := prometheus.NewRegistry()

	fx := routerFixture{
		cfg:      cfg,
		requests: &stubRequestsService{},
		products: &stubProductsService{},
		market:   &stubMarketService{},
	}
	fx.handler = NewRouter(cfg, logg, Infra{
		Sessions:    sessions,
		Redis:       newMemoryRedis(),
		Translator:  i18n.New("fr"),
		HTTPMetrics: metrics.NewHTTPMetrics(reg),
		Gatherer:    reg,
	}, Services{
		Auth:          stubAuthService{},
		Requests:      fx.requests,
		Products:      fx.products,
		Market:        fx.market,
		Categories:    stubCategoriesService{},
		Notifications: stubNotificationsService{},
		Favorites:     stubFavoritesService{},
		Admin:         stubAdminService{},
	})
	return fx
}

func buildToken(t *testing.T, cfg *config.Config, role enums.Role) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
		Name:   "Awa",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func do(fx routerFixture, method, target, body, token string, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp := httptest.NewRecorder()
	fx.handler.ServeHTTP(resp, req)
	return resp
}

func TestHealthLiveIsPublic(t *testing.T) {
	fx := newTestRouter(t, stubSessions{})
	resp := do(fx, http.MethodGet, "/health/live", "", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestPublicCatalogNeedsNoToken(t *testing.T) {
	fx := newTestRouter(t, stubSessions{})
	for _, target := range []string{
		"/api/v1/categories",
		"/api/v1/products",
		"/api/v1/market/stats",
		"/api/v1/market/summaries",
		"/api/v1/products/" + uuid.NewString(),
		"/api/v1/products/" + uuid.NewString() + "/alternatives",
		"/api/v1/products/" + uuid.NewString() + "/supplier-products",
	} {
		resp := do(fx, http.MethodGet, target, "", "", nil)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", target, resp.Code)
		}
	}
}

func TestPrivateRoutesRejectMissingJWT(t *testing.T) {
	fx := newTestRouter(t, stubSessions{})
	for _, target := range []string{"/api/v1/requests", "/api/v1/notifications", "/api/v1/favorites", "/api/v1/auth/me"} {
		resp := do(fx, http.MethodGet, target, "", "", nil)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 got %d", target, resp.Code)
		}
	}
}

func TestRevokedSessionIsRejected(t *testing.T) {
	fx := newTestRouter(t, stubSessions{revoked: true})
	resp := do(fx, http.MethodGet, "/api/v1/requests", "", buildToken(t, fx.cfg, enums.RoleMerchant), nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for revoked session got %d", resp.Code)
	}
}

func TestCreateRequestIsMerchantOnly(t *testing.T) {
	fx := newTestRouter(t, stubSessions{})
	body := `{"product_id":"` + uuid.NewString() + `","quantity":10}`

	resp := do(fx, http.MethodPost, "/api/v1/requests", body, buildToken(t, fx.cfg, enums.RoleSupplier), nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for supplier got %d", resp.Code)
	}

	resp = do(fx, http.MethodPost, "/api/v1/requests", body, buildToken(t, fx.cfg, enums.RoleMerchant), nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for merchant got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestCreateRequestReplaysIdempotentResponse(t *testing.T) {
	fx := newTestRouter(t, stubSessions{})
	token := buildToken(t, fx.cfg, enums.RoleMerchant)
	body := `{"product_id":"` + uuid.NewString() + `"}`
	headers := map[string]string{"Idempotency-Key": "key-1"}

	first := do(fx, http.MethodPost, "/api/v1/requests", body, token, headers)
	second := do(fx, http.MethodPost, "/api/v1/requests", body, token, headers)

	if first.Code != http.StatusCreated || second.Code != http.StatusCreated {
		t.Fatalf("expected 201 twice got %d and %d", first.Code, second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("expected replayed body, got %q and %q", first.Body.String(), second.Body.String())
	}
	if fx.requests.created != 1 {
		t.Fatalf("expected a single create, got %d", fx.requests.created)
	}

	conflict := do(fx, http.MethodPost, "/api/v1/requests", `{"product_id":"`+uuid.NewString()+`"}`, token, headers)
	if conflict.Code != http.StatusConflict {
		t.Fatalf("expected 409 for reused key got %d", conflict.Code)
	}
}

func TestUpdateStatusRejectsAdmin(t *testing.T) {
	fx := newTestRouter(t, stubSessions{})
	target := "/api/v1/requests/" + uuid.NewString()

	resp := do(fx, http.MethodPut, target, `{"status":"accepted"}`, buildToken(t, fx.cfg, enums.RoleAdmin), nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for admin got %d", resp.Code)
	}

	resp = do(fx, http.MethodPut, target, `{"status":"accepted"}`, buildToken(t, fx.cfg, enums.RoleSupplier), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for supplier got %d", resp.Code)
	}
}

func TestMyProductsIsNotShadowedByDetail(t *testing.T) {
	fx := newTestRouter(t, stubSessions{})

	resp := do(fx, http.MethodGet, "/api/v1/products/mine", "", buildToken(t, fx.cfg, enums.RoleSupplier), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if fx.products.mineCalls != 1 || fx.market.detailCalls != 0 {
		t.Fatalf("expected ListMine only, got mine=%d detail=%d", fx.products.mineCalls, fx.market.detailCalls)
	}

	resp = do(fx, http.MethodGet, "/api/v1/products/mine", "", buildToken(t, fx.cfg, enums.RoleMerchant), nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for merchant got %d", resp.Code)
	}
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	fx := newTestRouter(t, stubSessions{})

	resp := do(fx, http.MethodGet, "/api/admin/v1/stats", "", buildToken(t, fx.cfg, enums.RoleMerchant), nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for merchant got %d", resp.Code)
	}

	resp = do(fx, http.MethodGet, "/api/admin/v1/stats", "", buildToken(t, fx.cfg, enums.RoleAdmin), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}

func TestLoginIsRateLimitedPerIP(t *testing.T) {
	fx := newTestRouter(t, stubSessions{})
	body := `{"phone":"+22670000000","password":"secret1"}`

	var last int
	for i := 0; i < 3; i++ {
		last = do(fx, http.MethodPost, "/api/v1/auth/login", body, "", nil).Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after limit got %d", last)
	}
}

func TestMetricsEndpointIsExposed(t *testing.T) {
	fx := newTestRouter(t, stubSessions{})
	_ = do(fx, http.MethodGet, "/api/v1/categories", "", "", nil)

	resp := do(fx, http.MethodGet, "/metrics", "", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "http_requests_total") {
		t.Fatalf("expected http metrics in exposition")
	}
}
