package services

import (
	"context"
	"errors"

	"github.com/Kariqs/littlelemon-api/apperr"
	"github.com/Kariqs/littlelemon-api/models"
	"github.com/Kariqs/littlelemon-api/policy"
	"github.com/Kariqs/littlelemon-api/repository"
)

type CartService struct {
	Carts   *repository.CartRepository
	Catalog CatalogLookup
}

func NewCartService(carts *repository.CartRepository, catalog CatalogLookup) *CartService {
	return &CartService{Carts: carts, Catalog: catalog}
}

// Lines returns the principal's cart and its subtotal.
func (s *CartService) Lines(ctx context.Context, p Principal) ([]models.CartLine, models.Money, error) {
	if err := p.decide(policy.List, policy.Cart).Err(); err != nil {
		return nil, models.Money{}, err
	}

	lines, err := s.Carts.Lines(ctx, p.UserID)
	if err != nil {
		return nil, models.Money{}, err
	}

	var subtotal models.Money
	for _, line := range lines {
		subtotal = subtotal.Add(line.Price)
	}
	return lines, subtotal, nil
}

// Add puts quantity of a menu item into the cart at its current price. It
// reports whether a new line was created or an existing one grew.
func (s *CartService) Add(ctx context.Context, p Principal, in models.CartLineInput) (*models.CartLine, bool, error) {
	if err := p.decide(policy.Create, policy.Cart).Err(); err != nil {
		return nil, false, err
	}
	if in.Quantity < 1 {
		return nil, false, apperr.Invalid("quantity", "ensure this value is greater than or equal to 1")
	}

	item, err := s.Catalog.MenuItemByID(ctx, in.MenuItemID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, false, apperr.Invalid("menuitem", "menu item %d does not exist", in.MenuItemID)
	}
	if err != nil {
		return nil, false, err
	}

	return s.Carts.Upsert(ctx, models.CartLine{
		UserID:     p.UserID,
		MenuItemID: item.ID,
		Quantity:   in.Quantity,
		UnitPrice:  item.Price,
	})
}

func (s *CartService) Remove(ctx context.Context, p Principal, menuItemID uint) error {
	if err := p.decide(policy.Delete, policy.Cart).Err(); err != nil {
		return err
	}
	return s.Carts.RemoveLine(ctx, p.UserID, menuItemID)
}

// Clear empties the cart and reports how many lines were removed.
func (s *CartService) Clear(ctx context.Context, p Principal) (int64, error) {
	if err := p.decide(policy.Delete, policy.Cart).Err(); err != nil {
		return 0, err
	}
	return s.Carts.Clear(s.Carts.DB.WithContext(ctx), p.UserID)
}
