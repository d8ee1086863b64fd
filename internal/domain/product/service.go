// internal/domain/product/service.go
package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/your-org/storefront-backend/internal/config"
	"gorm.io/gorm"
)

// Service exposes read access to the storefront catalog. The cart captures
// price and display metadata from here at add time; it never owns this data.
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ListRequest represents catalog listing query parameters
type ListRequest struct {
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
	Search    string `form:"search"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	OnSale    *bool  `form:"on_sale"`
	Featured  *bool  `form:"featured"`
}

// Pagination describes one page of a listing
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// ListResponse represents a page of catalog products
type ListResponse struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}

// FindProduct returns an active product by id, with images loaded.
func (s *Service) FindProduct(ctx context.Context, id uint) (*Product, error) {
	var p Product
	err := s.db.WithContext(ctx).
		Preload("Images").
		Where("id = ? AND is_active = ?", id, true).
		First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product %d not found or inactive", id)
		}
		return nil, fmt.Errorf("failed to load product %d: %w", id, err)
	}
	return &p, nil
}

// FindProductBySlug returns an active product by its storefront slug.
func (s *Service) FindProductBySlug(ctx context.Context, slug string) (*Product, error) {
	var p Product
	err := s.db.WithContext(ctx).
		Preload("Images").
		Where("slug = ? AND is_active = ?", slug, true).
		First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product %q not found or inactive", slug)
		}
		return nil, fmt.Errorf("failed to load product %q: %w", slug, err)
	}
	return &p, nil
}

// List returns one page of active products with optional search and sorting.
func (s *Service) List(ctx context.Context, req *ListRequest) (*ListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	query := s.db.WithContext(ctx).Model(&Product{}).Where("is_active = ?", true)

	if search := strings.TrimSpace(req.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}
	if req.OnSale != nil && *req.OnSale {
		query = query.Where("sale_price > 0 AND sale_price < price")
	}
	if req.Featured != nil {
		query = query.Where("is_featured = ?", *req.Featured)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	var products []Product
	err := query.
		Preload("Images").
		Order(s.orderClause(req)).
		Offset((req.Page - 1) * req.Limit).
		Limit(req.Limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))

	return &ListResponse{
		Products: products,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// orderClause whitelists sortable columns so request input never reaches SQL directly.
func (s *Service) orderClause(req *ListRequest) string {
	column := "created_at"
	switch req.SortBy {
	case "price":
		column = "price"
	case "name":
		column = "name"
	case "created_at", "":
	default:
	}

	direction := "DESC"
	if strings.EqualFold(req.SortOrder, "asc") {
		direction = "ASC"
	}

	return fmt.Sprintf("%s %s", column, direction)
}
