package repository

import (
	"context"
	"errors"

	"github.com/Kariqs/littlelemon-api/apperr"
	"github.com/Kariqs/littlelemon-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxLineQuantity = 32767

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

func (r *CartRepository) Lines(ctx context.Context, userID uint) ([]models.CartLine, error) {
	var lines []models.CartLine
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&lines).Error
	return lines, err
}

// LockLines reads the user's cart inside tx and holds the rows until tx ends.
func (r *CartRepository) LockLines(tx *gorm.DB, userID uint) ([]models.CartLine, error) {
	var lines []models.CartLine
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		Order("id").
		Find(&lines).Error
	return lines, err
}

// Upsert adds line to the cart. When the user already has a line for the
// same menu item the quantities are summed and the unit price refreshed.
// The stored line is returned together with whether it was newly created.
func (r *CartRepository) Upsert(ctx context.Context, line models.CartLine) (*models.CartLine, bool, error) {
	var (
		saved   models.CartLine
		created bool
		err     error
	)
	for attempt := 0; attempt < 2; attempt++ {
		err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var txErr error
			saved, created, txErr = r.upsert(tx, line)
			return txErr
		})
		// a concurrent insert of the same line wins the unique index; the
		// second attempt merges into its row
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
	}
	if err != nil {
		return nil, false, err
	}
	return &saved, created, nil
}

func (r *CartRepository) upsert(tx *gorm.DB, line models.CartLine) (models.CartLine, bool, error) {
	var exist models.CartLine
	res := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND menu_item_id = ?", line.UserID, line.MenuItemID).
		Limit(1).
		Find(&exist)
	if res.Error != nil {
		return exist, false, res.Error
	}
	if res.RowsAffected > 0 {
		qty := exist.Quantity + line.Quantity
		if qty > maxLineQuantity {
			return exist, false, apperr.Invalid("quantity", "cart line cannot hold more than %d items", maxLineQuantity)
		}
		exist.Quantity = qty
		exist.UnitPrice = line.UnitPrice
		exist.Price = line.UnitPrice.Times(qty)
		return exist, false, tx.Omit(clause.Associations).Save(&exist).Error
	}

	line.ID = 0
	line.Price = line.UnitPrice.Times(line.Quantity)
	if err := tx.Omit(clause.Associations).Create(&line).Error; err != nil {
		return line, false, err
	}
	return line, true, nil
}

// Clear deletes every line of the user's cart and reports how many went.
func (r *CartRepository) Clear(tx *gorm.DB, userID uint) (int64, error) {
	res := tx.Where("user_id = ?", userID).Delete(&models.CartLine{})
	return res.RowsAffected, res.Error
}

func (r *CartRepository) RemoveLine(ctx context.Context, userID, menuItemID uint) error {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).
		Delete(&models.CartLine{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("cart line for menu item", menuItemID)
	}
	return nil
}
