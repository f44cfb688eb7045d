// Package seed loads the demo catalog used for local development.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/marcheplus/marcheplus-backend/internal/users"
	"github.com/marcheplus/marcheplus-backend/pkg/config"
	"github.com/marcheplus/marcheplus-backend/pkg/db/models"
	"github.com/marcheplus/marcheplus-backend/pkg/enums"
	"github.com/marcheplus/marcheplus-backend/pkg/logger"
	"github.com/marcheplus/marcheplus-backend/pkg/security"
)

// DefaultPassword is shared by every demo account.
const DefaultPassword = "password123"

// Result reports what a run inserted.
type Result struct {
	Skipped    bool
	Categories int
	Users      int
	Products   int
	Summaries  int
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Seeder inserts the demo dataset in a single transaction.
type Seeder struct {
	tx       txRunner
	password string
	hashCfg  config.PasswordConfig
	logg     *logger.Logger
	now      func() time.Time
}

func New(tx txRunner, password string, hashCfg config.PasswordConfig, logg *logger.Logger) *Seeder {
	if password == "" {
		password = DefaultPassword
	}
	return &Seeder{tx: tx, password: password, hashCfg: hashCfg, logg: logg, now: time.Now}
}

// Run is a no-op when categories already exist.
func (s *Seeder) Run(ctx context.Context) (Result, error) {
	var result Result
	hash, err := security.HashPassword(s.password, s.hashCfg)
	if err != nil {
		return result, fmt.Errorf("hash demo password: %w", err)
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Category{}).Count(&existing).Error; err != nil {
			return fmt.Errorf("count categories: %w", err)
		}
		if existing > 0 {
			result.Skipped = true
			return nil
		}

		categoryIDs, err := seedCategories(tx)
		if err != nil {
			return err
		}
		result.Categories = len(categoryIDs)

		supplierIDs, count, err := seedUsers(ctx, tx, hash)
		if err != nil {
			return err
		}
		result.Users = count

		if result.Products, err = seedProducts(tx, categoryIDs, supplierIDs, s.now()); err != nil {
			return err
		}
		result.Summaries, err = seedSummaries(tx, categoryIDs, s.now())
		return err
	})
	if err != nil {
		return Result{}, err
	}

	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"skipped":    result.Skipped,
			"categories": result.Categories,
			"users":      result.Users,
			"products":   result.Products,
			"summaries":  result.Summaries,
		})
		s.logg.Info(logCtx, "seed.completed")
	}
	return result, nil
}

func seedCategories(tx *gorm.DB) (map[string]uuid.UUID, error) {
	ids := make(map[string]uuid.UUID, len(demoCategories))
	for _, c := range demoCategories {
		audio := c.audio
		row := models.Category{
			ID:           uuid.New(),
			Name:         c.name,
			Icon:         c.icon,
			AudioLabelFR: &audio,
			SortOrder:    c.sortOrder,
		}
		if err := tx.Create(&row).Error; err != nil {
			return nil, fmt.Errorf("create category %s: %w", c.name, err)
		}
		ids[c.name] = row.ID
	}
	return ids, nil
}

func seedUsers(ctx context.Context, tx *gorm.DB, hash string) ([]uuid.UUID, int, error) {
	repo := users.NewRepository(tx)
	var suppliers []uuid.UUID
	for _, u := range demoUsers {
		email, business, location := u.email, u.businessName, u.location
		created, err := repo.Create(ctx, users.CreateUserDTO{
			Name:         u.name,
			Phone:        u.phone,
			Email:        &email,
			PasswordHash: hash,
			Role:         u.role,
			BusinessName: &business,
			Location:     &location,
		})
		if err != nil {
			return nil, 0, fmt.Errorf("create user %s: %w", u.phone, err)
		}
		if u.role == enums.RoleSupplier {
			suppliers = append(suppliers, created.ID)
		}
	}
	// demo suppliers are pre-verified
	if err := repo.MarkVerified(ctx, suppliers...); err != nil {
		return nil, 0, fmt.Errorf("verify demo suppliers: %w", err)
	}
	return suppliers, len(demoUsers), nil
}

func seedProducts(tx *gorm.DB, categoryIDs map[string]uuid.UUID, supplierIDs []uuid.UUID, now time.Time) (int, error) {
	if len(supplierIDs) == 0 {
		return 0, fmt.Errorf("no demo suppliers")
	}
	for i, p := range demoProducts {
		supplierID := supplierIDs[0]
		if p.supplier < len(supplierIDs) {
			supplierID = supplierIDs[p.supplier]
		}
		at := now.Add(time.Duration(i) * time.Second).UTC()
		row := models.Product{
			ID:          uuid.New(),
			SupplierID:  supplierID,
			CategoryID:  categoryIDs[p.category],
			Name:        p.name,
			Description: p.description,
			Price:       decimal.NewFromInt(p.price),
			Unit:        p.unit,
			Available:   true,
			CreatedAt:   at,
			UpdatedAt:   at,
		}
		if err := tx.Create(&row).Error; err != nil {
			return 0, fmt.Errorf("create product %s: %w", p.name, err)
		}
	}
	return len(demoProducts), nil
}

func seedSummaries(tx *gorm.DB, categoryIDs map[string]uuid.UUID, now time.Time) (int, error) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for _, s := range demoSummaries {
		row := models.MarketSummary{
			ID:          uuid.New(),
			SummaryText: s.text,
			Date:        day,
		}
		if id, ok := categoryIDs[s.category]; ok {
			row.CategoryID = &id
		}
		if err := tx.Create(&row).Error; err != nil {
			return 0, fmt.Errorf("create market summary: %w", err)
		}
	}
	return len(demoSummaries), nil
}
