package model

import "time"

// Product is a catalog item. The image reference is the filename of an
// uploaded file; it is set at creation and never changed by updates.
type Product struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"column:product_name;not null;size:100"`
	Quantity  int     `gorm:"not null"`
	Price     float64 `gorm:"not null"`
	Image     string  `gorm:"not null"` // Filename under public/images, set at creation only
	CreatedAt time.Time
	UpdatedAt time.Time
}
