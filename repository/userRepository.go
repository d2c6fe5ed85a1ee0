package repository

import (
	"context"
	"errors"

	"github.com/Kariqs/littlelemon-api/apperr"
	"github.com/Kariqs/littlelemon-api/models"
	"github.com/Kariqs/littlelemon-api/policy"
	"gorm.io/gorm"
)

type UserRepository struct{ DB *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{DB: db} }

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if err := r.DB.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Invalid("username", "a user with that username already exists")
		}
		return err
	}
	return nil
}

func (r *UserRepository) ByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) ByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// RolesOf reads the named groups the user belongs to.
func (r *UserRepository) RolesOf(ctx context.Context, userID uint) (policy.RoleSet, error) {
	var names []string
	err := r.DB.WithContext(ctx).Table("auth_groups").
		Joins("JOIN user_groups ON user_groups.group_id = auth_groups.id").
		Where("user_groups.user_id = ?", userID).
		Pluck("auth_groups.name", &names).Error
	if err != nil {
		return nil, err
	}
	return policy.NewRoleSet(names...), nil
}

func (r *UserRepository) Members(ctx context.Context, role policy.Role) ([]models.User, error) {
	var users []models.User
	err := r.DB.WithContext(ctx).
		Joins("JOIN user_groups ON user_groups.user_id = users.id").
		Joins("JOIN auth_groups ON auth_groups.id = user_groups.group_id").
		Where("auth_groups.name = ?", string(role)).
		Order("users.id").
		Find(&users).Error
	return users, err
}

// AddToGroup makes the user a member of role. It reports false when the
// user already was one.
func (r *UserRepository) AddToGroup(ctx context.Context, userID uint, role policy.Role) (bool, error) {
	var added bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		group, err := groupByName(tx, role)
		if err != nil {
			return err
		}

		var n int64
		if err := tx.Table("user_groups").
			Where("user_id = ? AND group_id = ?", userID, group.ID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		if err := tx.Exec("INSERT INTO user_groups (user_id, group_id) VALUES (?, ?)", userID, group.ID).Error; err != nil {
			return err
		}
		added = true
		return nil
	})
	return added, err
}

// RemoveFromGroup drops the membership, failing with ErrNotAMember when
// there was none.
func (r *UserRepository) RemoveFromGroup(ctx context.Context, userID uint, role policy.Role) error {
	group, err := groupByName(r.DB.WithContext(ctx), role)
	if err != nil {
		return err
	}
	res := r.DB.WithContext(ctx).
		Exec("DELETE FROM user_groups WHERE user_id = ? AND group_id = ?", userID, group.ID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotAMember
	}
	return nil
}

// Delete removes the user and everything that hangs off them: their orders
// with the order items, their cart and their memberships. Orders the user
// was delivering lose their assignee.
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&models.Order{}).Select("id").Where("user_id = ?", id)
		if err := tx.Where("order_id IN (?)", owned).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Order{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Order{}).
			Where("delivery_crew_id = ?", id).
			Update("delivery_crew_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.CartLine{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM user_groups WHERE user_id = ?", id).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.ErrUserNotFound
		}
		return nil
	})
}

func groupByName(db *gorm.DB, role policy.Role) (*models.Group, error) {
	var g models.Group
	if err := db.Where("name = ?", string(role)).First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("group", string(role))
		}
		return nil, err
	}
	return &g, nil
}
