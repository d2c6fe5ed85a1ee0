package models

type Category struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Slug  string `gorm:"size:50;index;not null" json:"slug" binding:"required,max=50"`
	Title string `gorm:"size:255;index;not null" json:"title" binding:"required,max=255"`
}
