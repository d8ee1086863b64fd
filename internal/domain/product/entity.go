// internal/domain/product/entity.go
package product

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Product represents a catalog product as shown on the storefront
type Product struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	SKU         string         `gorm:"uniqueIndex;not null;size:100" json:"sku"`
	Name        string         `gorm:"not null;size:255" json:"name"`
	Slug        string         `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Description string         `gorm:"type:text" json:"description"`
	Price       int64          `gorm:"not null" json:"price"`      // list price in cents
	SalePrice   int64          `json:"sale_price"`                 // 0 when not on sale
	Colors      string         `gorm:"size:500" json:"colors"`     // comma-separated options
	Sizes       string         `gorm:"size:500" json:"sizes"`      // comma-separated options
	Stock       int            `gorm:"default:0" json:"stock"`
	TrackStock  bool           `gorm:"default:true" json:"track_stock"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	IsFeatured  bool           `gorm:"default:false" json:"is_featured"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Images []ProductImage `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"images,omitempty"`
}

// ProductImage represents product images
type ProductImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	URL       string    `gorm:"not null;size:500" json:"url"`
	AltText   string    `gorm:"size:255" json:"alt_text"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
	IsPrimary bool      `gorm:"default:false" json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides
func (Product) TableName() string      { return "products" }
func (ProductImage) TableName() string { return "product_images" }

// EffectiveUnitPrice is the price charged per unit when the product is added
// to a cart: the sale price when present and lower than the list price,
// otherwise the list price.
func (p *Product) EffectiveUnitPrice() int64 {
	if p.SalePrice > 0 && p.SalePrice < p.Price {
		return p.SalePrice
	}
	return p.Price
}

// OnSale reports whether the effective price is discounted.
func (p *Product) OnSale() bool {
	return p.SalePrice > 0 && p.SalePrice < p.Price
}

// DiscountPercentage returns the discount as a whole percentage, 0 when not on sale.
func (p *Product) DiscountPercentage() int {
	if !p.OnSale() {
		return 0
	}
	return int(((p.Price - p.SalePrice) * 100) / p.Price)
}

// IsInStock reports availability; products without stock tracking are always available.
func (p *Product) IsInStock() bool {
	return p.Stock > 0 || !p.TrackStock
}

// ColorOptions returns the selectable colors, nil when the product has none.
func (p *Product) ColorOptions() []string {
	return splitOptions(p.Colors)
}

// SizeOptions returns the selectable sizes, nil when the product has none.
func (p *Product) SizeOptions() []string {
	return splitOptions(p.Sizes)
}

// PrimaryImageURL returns the primary image, falling back to the first by sort order.
func (p *Product) PrimaryImageURL() string {
	if len(p.Images) == 0 {
		return ""
	}
	best := p.Images[0]
	for _, img := range p.Images {
		if img.IsPrimary {
			return img.URL
		}
		if img.SortOrder < best.SortOrder {
			best = img
		}
	}
	return best.URL
}

func splitOptions(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	options := make([]string, 0, len(parts))
	for _, part := range parts {
		if v := strings.TrimSpace(part); v != "" {
			options = append(options, v)
		}
	}
	if len(options) == 0 {
		return nil
	}
	return options
}
