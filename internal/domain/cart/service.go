// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/pkg/notify"
)

// ErrInvalidRequest marks add-to-cart input rejected before any state changes.
var ErrInvalidRequest = errors.New("invalid cart request")

// ProductFinder supplies catalog data for addToCart; the cart never caches
// it beyond what it captures into a CartItem.
type ProductFinder interface {
	FindProduct(ctx context.Context, id uint) (*product.Product, error)
}

// Service is the single source of truth for cart contents. It is created once
// at startup and handed to every consumer; per-shopper state lives in the
// repositories, keyed by owner.
type Service struct {
	users    Repository
	guests   Repository
	catalog  ProductFinder
	notifier notify.Notifier
	config   *config.Config
	log      *logrus.Logger
}

// NewService creates a new cart service
func NewService(users, guests Repository, catalog ProductFinder, notifier notify.Notifier, cfg *config.Config, log *logrus.Logger) *Service {
	return &Service{
		users:    users,
		guests:   guests,
		catalog:  catalog,
		notifier: notifier,
		config:   cfg,
		log:      log,
	}
}

// AddToCartRequest represents add to cart input. Color and size default to
// "default" for products without variants.
type AddToCartRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

// Validate rejects malformed input before any state is touched.
func (r *AddToCartRequest) Validate() error {
	if r.ProductID == 0 {
		return fmt.Errorf("%w: product id is required", ErrInvalidRequest)
	}
	if r.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrInvalidRequest)
	}
	return nil
}

// UpdateQuantityRequest represents a quantity update for an existing line.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// ItemView is a cart line with its derived total.
type ItemView struct {
	CartItem
	LineTotal int64 `json:"line_total"`
}

// View is a cart with derived totals, ready for rendering.
type View struct {
	Items     []ItemView `json:"items"`
	Totals    Totals     `json:"totals"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Issue describes one problem found during pre-checkout validation.
type Issue struct {
	ProductID uint   `json:"product_id"`
	Reason    string `json:"reason"`
}

// GetCart returns the shopper's cart.
func (s *Service) GetCart(ctx context.Context, userID *uint, sessionID string) (*View, error) {
	repo, owner, err := s.route(userID, sessionID)
	if err != nil {
		return nil, err
	}
	c, err := repo.Load(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return viewOf(c), nil
}

// AddToCart inserts a line or merges into an existing one by composite key.
// The unit price is captured from the catalog at this moment and not
// re-derived later. Stock limits are the caller's concern; the cart itself
// enforces no upper bound.
func (s *Service) AddToCart(ctx context.Context, userID *uint, sessionID string, req *AddToCartRequest) (*View, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	repo, owner, err := s.route(userID, sessionID)
	if err != nil {
		return nil, err
	}

	p, err := s.catalog.FindProduct(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("product not found or inactive")
	}

	c, err := repo.Load(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	c.Add(CartItem{
		ProductID: p.ID,
		Color:     req.Color,
		Size:      req.Size,
		Quantity:  req.Quantity,
		UnitPrice: p.EffectiveUnitPrice(),
		Name:      p.Name,
		Image:     p.PrimaryImageURL(),
	})

	s.persist(ctx, repo, owner, c)
	return viewOf(c), nil
}

// UpdateQuantity sets the quantity of an existing line. Quantities below 1
// and unknown keys are silent no-ops; deletions go through RemoveFromCart.
func (s *Service) UpdateQuantity(ctx context.Context, userID *uint, sessionID string, key ItemKey, quantity int) (*View, error) {
	repo, owner, err := s.route(userID, sessionID)
	if err != nil {
		return nil, err
	}
	c, err := repo.Load(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	if c.SetQuantity(key, quantity) {
		s.persist(ctx, repo, owner, c)
	} else {
		s.log.WithField("key", key.String()).Debug("quantity update ignored")
	}
	return viewOf(c), nil
}

// RemoveFromCart deletes a line; removing an absent key is a no-op.
func (s *Service) RemoveFromCart(ctx context.Context, userID *uint, sessionID string, key ItemKey) (*View, error) {
	repo, owner, err := s.route(userID, sessionID)
	if err != nil {
		return nil, err
	}
	c, err := repo.Load(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	if c.Remove(key) {
		s.persist(ctx, repo, owner, c)
	}
	return viewOf(c), nil
}

// ClearCart empties the cart, used after order completion.
func (s *Service) ClearCart(ctx context.Context, userID *uint, sessionID string) error {
	repo, owner, err := s.route(userID, sessionID)
	if err != nil {
		return err
	}
	if err := repo.Delete(ctx, owner); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// ItemCount returns the sum of all quantities for the cart badge.
func (s *Service) ItemCount(ctx context.Context, userID *uint, sessionID string) (int, error) {
	repo, owner, err := s.route(userID, sessionID)
	if err != nil {
		return 0, err
	}
	c, err := repo.Load(ctx, owner)
	if err != nil {
		return 0, fmt.Errorf("failed to load cart: %w", err)
	}
	return c.ItemCount(), nil
}

// Contains reports whether the composite key is already in the cart.
func (s *Service) Contains(ctx context.Context, userID *uint, sessionID string, productID uint, color, size string) (bool, error) {
	repo, owner, err := s.route(userID, sessionID)
	if err != nil {
		return false, err
	}
	c, err := repo.Load(ctx, owner)
	if err != nil {
		return false, fmt.Errorf("failed to load cart: %w", err)
	}
	return c.Contains(productID, color, size), nil
}

// MergeGuestCart folds a guest session's cart into the user's cart on login.
// Lines merge by composite key; a line already in the user cart keeps its
// originally captured unit price. The guest cart is deleted afterwards.
func (s *Service) MergeGuestCart(ctx context.Context, userID uint, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	guestOwner := guestOwnerKey(sessionID)
	guest, err := s.guests.Load(ctx, guestOwner)
	if err != nil {
		return fmt.Errorf("failed to load guest cart: %w", err)
	}
	if guest.IsEmpty() {
		return nil
	}

	userOwner := userOwnerKey(userID)
	merged, err := s.users.Load(ctx, userOwner)
	if err != nil {
		return fmt.Errorf("failed to load user cart: %w", err)
	}
	for _, item := range guest.Items {
		merged.Add(item)
	}

	if err := s.users.Save(ctx, userOwner, merged); err != nil {
		return fmt.Errorf("failed to save merged cart: %w", err)
	}
	if err := s.guests.Delete(ctx, guestOwner); err != nil {
		s.log.WithError(err).WithField("session_id", sessionID).Warn("failed to drop guest cart after merge")
	}
	return nil
}

// HandleLogout applies the configured logout policy to the user's cart.
func (s *Service) HandleLogout(ctx context.Context, userID uint) error {
	if !s.config.Cart.ClearOnLogout {
		return nil
	}
	if err := s.users.Delete(ctx, userOwnerKey(userID)); err != nil {
		return fmt.Errorf("failed to clear cart on logout: %w", err)
	}
	return nil
}

// ValidateCart re-checks every line against the live catalog before checkout
// and reports availability and price drift. The cart itself is not modified.
func (s *Service) ValidateCart(ctx context.Context, userID *uint, sessionID string) (*View, []Issue, error) {
	repo, owner, err := s.route(userID, sessionID)
	if err != nil {
		return nil, nil, err
	}
	c, err := repo.Load(ctx, owner)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var issues []Issue
	for _, item := range c.Items {
		p, err := s.catalog.FindProduct(ctx, item.ProductID)
		if err != nil {
			issues = append(issues, Issue{ProductID: item.ProductID, Reason: "no longer available"})
			continue
		}
		if p.TrackStock && p.Stock < item.Quantity {
			issues = append(issues, Issue{
				ProductID: item.ProductID,
				Reason:    fmt.Sprintf("insufficient stock: available %d, requested %d", p.Stock, item.Quantity),
			})
		}
		if current := p.EffectiveUnitPrice(); current != item.UnitPrice {
			issues = append(issues, Issue{
				ProductID: item.ProductID,
				Reason:    fmt.Sprintf("price changed: cart %d, current %d", item.UnitPrice, current),
			})
		}
	}

	return viewOf(c), issues, nil
}

// persist writes the cart best-effort. The in-memory mutation has already
// taken effect and is returned to the caller either way; a failed save is
// reported once through the notifier and not retried.
func (s *Service) persist(ctx context.Context, repo Repository, owner string, c *Cart) {
	if err := repo.Save(ctx, owner, c); err != nil {
		s.log.WithError(err).WithField("owner", owner).Error("cart save failed")
		s.notifier.Notify(ctx, owner, notify.KindError,
			"We couldn't save your cart. Your changes are kept for this session.")
	}
}

func (s *Service) route(userID *uint, sessionID string) (Repository, string, error) {
	if userID != nil {
		return s.users, userOwnerKey(*userID), nil
	}
	if sessionID == "" {
		return nil, "", fmt.Errorf("session id required for guest cart")
	}
	return s.guests, guestOwnerKey(sessionID), nil
}

func userOwnerKey(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}

func guestOwnerKey(sessionID string) string {
	return "session:" + sessionID
}

func viewOf(c *Cart) *View {
	items := make([]ItemView, len(c.Items))
	for i, item := range c.Items {
		items[i] = ItemView{CartItem: item, LineTotal: item.LineTotal()}
	}
	return &View{
		Items:     items,
		Totals:    c.Totals(),
		UpdatedAt: c.UpdatedAt,
	}
}
