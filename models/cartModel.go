package models

// CartLine is one menu item waiting in a user's cart. A user holds at most
// one line per menu item.
type CartLine struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	UserID     uint     `gorm:"not null;uniqueIndex:idx_cart_user_menuitem" json:"-"`
	User       User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	MenuItemID uint     `gorm:"not null;uniqueIndex:idx_cart_user_menuitem" json:"menuitem"`
	MenuItem   MenuItem `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Quantity   int      `gorm:"type:smallint;not null" json:"quantity"`
	UnitPrice  Money    `gorm:"type:decimal(6,2);not null" json:"unit_price"`
	Price      Money    `gorm:"type:decimal(12,2);not null" json:"price"`
}

func (CartLine) TableName() string { return "cart_lines" }

type CartLineInput struct {
	MenuItemID uint `json:"menuitem" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,min=1,max=32767"`
}
