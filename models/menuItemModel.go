package models

type MenuItem struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	Title      string   `gorm:"size:255;index;not null" json:"title"`
	Price      Money    `gorm:"type:decimal(6,2);index;not null" json:"price"`
	Featured   bool     `gorm:"index;not null;default:false" json:"featured"`
	CategoryID uint     `gorm:"not null" json:"category_id"`
	Category   Category `gorm:"constraint:OnDelete:RESTRICT" json:"category"`
	ImageURL   string   `gorm:"size:1024" json:"image_url,omitempty"`
}

// MenuItemInput is the writable part of a menu item. Pointers tell a
// partial update which fields were sent.
type MenuItemInput struct {
	Title      *string `json:"title" binding:"omitempty,max=255"`
	Price      *Money  `json:"price"`
	Featured   *bool   `json:"featured"`
	CategoryID *uint   `json:"category_id"`
}
