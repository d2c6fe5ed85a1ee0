package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kariqs/littlelemon-api/apperr"
	"github.com/Kariqs/littlelemon-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CatalogRepository struct{ DB *gorm.DB }

func NewCatalogRepository(db *gorm.DB) *CatalogRepository { return &CatalogRepository{DB: db} }

func (r *CatalogRepository) ListCategories(ctx context.Context, q CategoryQuery) ([]models.Category, error) {
	db := r.DB.WithContext(ctx).Model(&models.Category{})
	if q.search != "" {
		db = db.Where("categories.slug LIKE ?", q.search+"%")
	}

	var categories []models.Category
	err := applySort(db, q.sort, "categories.id").Find(&categories).Error
	return categories, err
}

func (r *CatalogRepository) CategoryByID(ctx context.Context, id uint) (*models.Category, error) {
	var c models.Category
	if err := r.DB.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("category", id)
		}
		return nil, err
	}
	return &c, nil
}

func (r *CatalogRepository) CreateCategory(ctx context.Context, c *models.Category) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

// DeleteCategory refuses while any menu item still points at the category.
func (r *CatalogRepository) DeleteCategory(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.Category
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&c, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("category", id)
			}
			return err
		}

		var refs int64
		if err := tx.Model(&models.MenuItem{}).Where("category_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return referenced("category", refs)
		}

		if err := tx.Delete(&c).Error; err != nil {
			if errors.Is(err, gorm.ErrForeignKeyViolated) {
				return apperr.ErrReferentialIntegrity
			}
			return err
		}
		return nil
	})
}

func (r *CatalogRepository) ListMenuItems(ctx context.Context, q MenuItemQuery) ([]models.MenuItem, int64, error) {
	base := r.DB.WithContext(ctx).Model(&models.MenuItem{}).
		Joins("JOIN categories ON categories.id = menu_items.category_id")
	if q.categorySlug != "" {
		base = base.Where("categories.slug = ?", q.categorySlug)
	}
	if q.price != nil {
		base = base.Where("menu_items.price = ?", *q.price)
	}
	if q.search != "" {
		base = base.Where("categories.slug LIKE ?", q.search+"%")
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.MenuItem
	db := applySort(base.Select("menu_items.*").Preload("Category"), q.sort, "menu_items.id")
	if err := applyPage(db, q.page).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *CatalogRepository) MenuItemByID(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.DB.WithContext(ctx).Preload("Category").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("menu item", id)
		}
		return nil, err
	}
	return &item, nil
}

func (r *CatalogRepository) CreateMenuItem(ctx context.Context, item *models.MenuItem) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(item).Error
}

func (r *CatalogRepository) SaveMenuItem(ctx context.Context, item *models.MenuItem) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Save(item).Error
}

// DeleteMenuItem removes the item together with every cart line and order
// line that references it.
func (r *CatalogRepository) DeleteMenuItem(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_item_id = ?", id).Delete(&models.CartLine{}).Error; err != nil {
			return err
		}
		if err := tx.Where("menu_item_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.MenuItem{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("menu item", id)
		}
		return nil
	})
}

func referenced(kind string, refs int64) error {
	return fmt.Errorf("%w: %s is used by %d menu item(s)", apperr.ErrReferentialIntegrity, kind, refs)
}
