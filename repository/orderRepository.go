package repository

import (
	"context"
	"errors"

	"github.com/Kariqs/littlelemon-api/apperr"
	"github.com/Kariqs/littlelemon-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository struct{ DB *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{DB: db} }

func (r *OrderRepository) Create(tx *gorm.DB, o *models.Order) error {
	return tx.Omit(clause.Associations).Create(o).Error
}

func (r *OrderRepository) CreateItem(tx *gorm.DB, item *models.OrderItem) error {
	return tx.Omit(clause.Associations).Create(item).Error
}

func (r *OrderRepository) SetTotal(tx *gorm.DB, orderID uint, total models.Money) error {
	return tx.Model(&models.Order{}).Where("id = ?", orderID).Update("total", total).Error
}

func (r *OrderRepository) ByID(ctx context.Context, id uint) (*models.Order, error) {
	var o models.Order
	err := r.DB.WithContext(ctx).
		Preload("OrderItems", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.id") }).
		First(&o, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order", id)
		}
		return nil, err
	}
	return &o, nil
}

// List returns one page of orders matching q and the number of matches
// across all pages.
func (r *OrderRepository) List(ctx context.Context, q OrderQuery) ([]models.Order, int64, error) {
	base := r.DB.WithContext(ctx).Model(&models.Order{}).
		Joins("JOIN users AS owner_user ON owner_user.id = orders.user_id").
		Joins("LEFT JOIN users AS crew_user ON crew_user.id = orders.delivery_crew_id")

	if q.ownerID != 0 {
		base = base.Where("orders.user_id = ?", q.ownerID)
	}
	if q.assigneeID != 0 {
		base = base.Where("orders.delivery_crew_id = ?", q.assigneeID)
	}
	if q.owner != "" {
		base = base.Where("owner_user.username = ?", q.owner)
	}
	if q.deliveryCrew != "" {
		base = base.Where("crew_user.username = ?", q.deliveryCrew)
	}
	if q.date != nil {
		base = base.Where("orders.date = ?", *q.date)
	}
	if q.total != nil {
		base = base.Where("orders.total = ?", *q.total)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	db := base.Select("orders.*").
		Preload("OrderItems", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.id") })
	db = applyPage(applySort(db, q.sort, "orders.id"), q.page)
	if err := db.Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// Update writes the mutable order columns, including zero values.
func (r *OrderRepository) Update(ctx context.Context, o *models.Order) error {
	return r.DB.WithContext(ctx).Model(o).
		Select("user_id", "delivery_crew_id", "status", "total", "date").
		Updates(o).Error
}

// Delete removes the order and its items in one transaction.
func (r *OrderRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Order{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("order", id)
		}
		return nil
	})
}
