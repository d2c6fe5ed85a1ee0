package models

import "time"

type Order struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	UserID         uint        `gorm:"not null;index" json:"user"`
	User           User        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	DeliveryCrewID *uint       `gorm:"index" json:"delivery_crew"`
	DeliveryCrew   *User       `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Status         OrderStatus `gorm:"not null;default:0;index" json:"status"`
	Total          Money       `gorm:"type:decimal(12,2);not null;index" json:"total"`
	Date           OrderDate   `gorm:"not null;index" json:"date"`
	OrderItems     []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"order_items"`
	CreatedAt      time.Time   `json:"-"`
	UpdatedAt      time.Time   `json:"-"`
}

// OrderItem is the snapshot of a cart line taken when the order was placed.
type OrderItem struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	OrderID    uint     `gorm:"not null;uniqueIndex:idx_order_menuitem" json:"-"`
	MenuItemID uint     `gorm:"not null;uniqueIndex:idx_order_menuitem" json:"menuitem"`
	MenuItem   MenuItem `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Quantity   int      `gorm:"type:smallint;not null" json:"quantity"`
	UnitPrice  Money    `gorm:"type:decimal(6,2);not null" json:"unit_price"`
	Price      Money    `gorm:"type:decimal(12,2);not null" json:"price"`
}
