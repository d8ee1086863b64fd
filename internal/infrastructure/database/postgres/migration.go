// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db  *gorm.DB
	log *logrus.Logger
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, log *logrus.Logger) *Migration {
	return &Migration{db: db, log: log}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	m.log.Info("Running database auto-migrations")

	models := []interface{}{
		&product.Product{},
		&product.ProductImage{},
		&cartItemRow{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	m.log.Info("Database auto-migrations completed")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_active_created ON products(is_active, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_products_featured ON products(is_featured, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_price ON products(price)",
		"CREATE INDEX IF NOT EXISTS idx_product_images_product_primary ON product_images(product_id, is_primary)",
		"CREATE INDEX IF NOT EXISTS idx_cart_items_owner_position ON cart_items(owner, position)",
	}

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			m.log.WithError(err).Warn("failed to create index")
		}
	}
	return nil
}

// SeedDemoProducts inserts a small demo catalog for development environments.
// Existing rows are left alone so reseeding is safe.
func (m *Migration) SeedDemoProducts() error {
	var count int64
	if err := m.db.Model(&product.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	m.log.Info("Seeding demo products")

	products := []product.Product{
		{
			SKU:         "TEE-001",
			Name:        "Classic Cotton Tee",
			Slug:        "classic-cotton-tee",
			Description: "Everyday crew-neck t-shirt in heavyweight cotton",
			Price:       2500,
			SalePrice:   1900,
			Colors:      "black,white,navy",
			Sizes:       "S,M,L,XL",
			Stock:       120,
			TrackStock:  true,
			IsActive:    true,
			IsFeatured:  true,
			Images: []product.ProductImage{
				{URL: "https://cdn.example.com/products/tee-001-front.jpg", AltText: "Classic Cotton Tee", IsPrimary: true},
				{URL: "https://cdn.example.com/products/tee-001-back.jpg", AltText: "Classic Cotton Tee, back", SortOrder: 1},
			},
		},
		{
			SKU:         "HOODIE-014",
			Name:        "Fleece Zip Hoodie",
			Slug:        "fleece-zip-hoodie",
			Description: "Full-zip hoodie with brushed fleece lining",
			Price:       6900,
			Colors:      "charcoal,olive",
			Sizes:       "M,L,XL",
			Stock:       45,
			TrackStock:  true,
			IsActive:    true,
			Images: []product.ProductImage{
				{URL: "https://cdn.example.com/products/hoodie-014.jpg", AltText: "Fleece Zip Hoodie", IsPrimary: true},
			},
		},
		{
			SKU:         "MUG-201",
			Name:        "Stoneware Mug",
			Slug:        "stoneware-mug",
			Description: "12oz stoneware mug, dishwasher safe",
			Price:       1600,
			Stock:       300,
			TrackStock:  true,
			IsActive:    true,
			Images: []product.ProductImage{
				{URL: "https://cdn.example.com/products/mug-201.jpg", AltText: "Stoneware Mug", IsPrimary: true},
			},
		},
	}

	for i := range products {
		if err := m.db.Create(&products[i]).Error; err != nil {
			return fmt.Errorf("failed to seed product %s: %w", products[i].SKU, err)
		}
	}

	return nil
}
