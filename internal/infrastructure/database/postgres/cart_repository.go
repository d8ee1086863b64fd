// internal/infrastructure/database/postgres/cart_repository.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/your-org/storefront-backend/internal/domain/cart"
	"gorm.io/gorm"
)

// cartItemRow is the storage shape of one cart line. The position column
// preserves insertion order across the round trip; owner is the cart's
// opaque owner key ("user:42").
type cartItemRow struct {
	ID        uint   `gorm:"primaryKey"`
	Owner     string `gorm:"size:128;not null;uniqueIndex:idx_cart_items_identity,priority:1"`
	ProductID uint   `gorm:"not null;uniqueIndex:idx_cart_items_identity,priority:2"`
	Color     string `gorm:"size:64;not null;uniqueIndex:idx_cart_items_identity,priority:3"`
	Size      string `gorm:"size:64;not null;uniqueIndex:idx_cart_items_identity,priority:4"`
	Quantity  int    `gorm:"not null"`
	UnitPrice int64  `gorm:"not null"`
	Name      string `gorm:"size:255"`
	Image     string `gorm:"size:500"`
	Position  int    `gorm:"not null"`
	AddedAt   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name
func (cartItemRow) TableName() string {
	return "cart_items"
}

// CartRepository persists signed-in users' carts in Postgres.
type CartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a Postgres-backed cart repository.
func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// Load rebuilds the owner's cart from its rows, in insertion order.
// An owner with no rows gets an empty cart.
func (r *CartRepository) Load(ctx context.Context, owner string) (*cart.Cart, error) {
	var rows []cartItemRow
	err := r.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order("position ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load cart rows: %w", err)
	}

	c := cart.New()
	if len(rows) == 0 {
		return c, nil
	}

	c.CreatedAt = rows[0].CreatedAt
	items := make([]cart.CartItem, len(rows))
	for i, row := range rows {
		items[i] = cart.CartItem{
			ProductID: row.ProductID,
			Color:     row.Color,
			Size:      row.Size,
			Quantity:  row.Quantity,
			UnitPrice: row.UnitPrice,
			Name:      row.Name,
			Image:     row.Image,
			AddedAt:   row.AddedAt,
		}
		if row.UpdatedAt.After(c.UpdatedAt) {
			c.UpdatedAt = row.UpdatedAt
		}
	}
	c.Items = items
	return c, nil
}

// Save replaces the owner's rows with the cart's current lines in one
// transaction, numbering positions from the slice order.
func (r *CartRepository) Save(ctx context.Context, owner string, c *cart.Cart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner = ?", owner).Delete(&cartItemRow{}).Error; err != nil {
			return fmt.Errorf("failed to replace cart rows: %w", err)
		}
		if len(c.Items) == 0 {
			return nil
		}

		rows := make([]cartItemRow, len(c.Items))
		for i, item := range c.Items {
			rows[i] = cartItemRow{
				Owner:     owner,
				ProductID: item.ProductID,
				Color:     item.Color,
				Size:      item.Size,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				Name:      item.Name,
				Image:     item.Image,
				Position:  i,
				AddedAt:   item.AddedAt,
			}
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to insert cart rows: %w", err)
		}
		return nil
	})
}

// Delete drops all of the owner's rows.
func (r *CartRepository) Delete(ctx context.Context, owner string) error {
	err := r.db.WithContext(ctx).Where("owner = ?", owner).Delete(&cartItemRow{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete cart rows: %w", err)
	}
	return nil
}
