// Package testdb opens an in-memory SQLite database with the same table
// shapes as the Postgres migrations, for repository tests.
package testdb

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/marcheplus/marcheplus-backend/pkg/db/models"
	"github.com/marcheplus/marcheplus-backend/pkg/enums"
)

var schema = []string{
	`CREATE TABLE users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT NOT NULL UNIQUE,
		email TEXT,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		business_name TEXT,
		location TEXT,
		verified BOOLEAN NOT NULL DEFAULT 0,
		last_login_at DATETIME,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE categories (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		icon TEXT NOT NULL DEFAULT '',
		audio_label_fr TEXT,
		sort_order INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE products (
		id TEXT PRIMARY KEY,
		supplier_id TEXT NOT NULL,
		category_id TEXT NOT NULL,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price NUMERIC NOT NULL CHECK (price >= 0),
		unit TEXT NOT NULL DEFAULT 'kg',
		image TEXT,
		available BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE purchase_requests (
		id TEXT PRIMARY KEY,
		merchant_id TEXT NOT NULL,
		product_id TEXT NOT NULL,
		supplier_id TEXT NOT NULL,
		quantity NUMERIC NOT NULL CHECK (quantity > 0),
		unit TEXT NOT NULL,
		message TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE notifications (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT 'info',
		title TEXT NOT NULL,
		message TEXT NOT NULL,
		read BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE favorites (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		product_id TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		CONSTRAINT favorites_user_product_key UNIQUE (user_id, product_id)
	)`,
	`CREATE TABLE market_summaries (
		id TEXT PRIMARY KEY,
		category_id TEXT,
		summary_text TEXT NOT NULL,
		date DATE NOT NULL
	)`,
}

// Open returns a fresh database private to the calling test.
func Open(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return db
}

// Clock hands out strictly increasing timestamps so ordering by created_at is deterministic.
type Clock struct {
	now time.Time
}

func NewClock() *Clock {
	return &Clock{now: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}
}

func (c *Clock) Next() time.Time {
	c.now = c.now.Add(time.Minute)
	return c.now
}

// Fixture inserts rows with sensible defaults.
type Fixture struct {
	t     *testing.T
	db    *gorm.DB
	clock *Clock
}

func NewFixture(t *testing.T, db *gorm.DB) *Fixture {
	return &Fixture{t: t, db: db, clock: NewClock()}
}

func (f *Fixture) Clock() *Clock {
	return f.clock
}

func (f *Fixture) User(role enums.Role, name string) *models.User {
	f.t.Helper()
	at := f.clock.Next()
	user := &models.User{
		ID:           uuid.New(),
		Name:         name,
		Phone:        "+225" + uuid.NewString()[:8],
		PasswordHash: "hash",
		Role:         role,
		Verified:     role != enums.RoleSupplier,
		CreatedAt:    at,
		UpdatedAt:    at,
	}
	if err := f.db.Create(user).Error; err != nil {
		f.t.Fatalf("create user: %v", err)
	}
	return user
}

func (f *Fixture) Category(name string, sortOrder int) *models.Category {
	f.t.Helper()
	category := &models.Category{
		ID:        uuid.New(),
		Name:      name,
		Icon:      "🌾",
		SortOrder: sortOrder,
	}
	if err := f.db.Create(category).Error; err != nil {
		f.t.Fatalf("create category: %v", err)
	}
	return category
}

// Product inserts an available product; mutate lets callers override fields before insert.
func (f *Fixture) Product(supplierID, categoryID uuid.UUID, name string, price int64, mutate ...func(*models.Product)) *models.Product {
	f.t.Helper()
	at := f.clock.Next()
	product := &models.Product{
		ID:         uuid.New(),
		SupplierID: supplierID,
		CategoryID: categoryID,
		Name:       name,
		Price:      decimal.NewFromInt(price),
		Unit:       "kg",
		Available:  true,
		CreatedAt:  at,
		UpdatedAt:  at,
	}
	for _, fn := range mutate {
		fn(product)
	}
	// gorm skips zero-value bools that carry a column default.
	if err := f.db.Create(product).Error; err != nil {
		f.t.Fatalf("create product: %v", err)
	}
	if !product.Available {
		if err := f.db.Model(product).Update("available", false).Error; err != nil {
			f.t.Fatalf("mark product unavailable: %v", err)
		}
	}
	return product
}

func (f *Fixture) Request(merchantID uuid.UUID, product *models.Product, status enums.RequestStatus) *models.PurchaseRequest {
	f.t.Helper()
	at := f.clock.Next()
	request := &models.PurchaseRequest{
		ID:         uuid.New(),
		MerchantID: merchantID,
		ProductID:  product.ID,
		SupplierID: product.SupplierID,
		Quantity:   decimal.NewFromInt(2),
		Unit:       product.Unit,
		Status:     status,
		CreatedAt:  at,
		UpdatedAt:  at,
	}
	if err := f.db.Create(request).Error; err != nil {
		f.t.Fatalf("create purchase request: %v", err)
	}
	return request
}

func (f *Fixture) Notification(userID uuid.UUID, title string, read bool) *models.Notification {
	f.t.Helper()
	n := &models.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      enums.NotificationTypeOrder,
		Title:     title,
		Message:   title,
		CreatedAt: f.clock.Next(),
	}
	if err := f.db.Create(n).Error; err != nil {
		f.t.Fatalf("create notification: %v", err)
	}
	if read {
		if err := f.db.Model(n).Update("read", true).Error; err != nil {
			f.t.Fatalf("mark notification read: %v", err)
		}
		n.Read = true
	}
	return n
}
