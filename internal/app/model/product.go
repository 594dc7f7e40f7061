package model

import (
	"time"

	"gorm.io/gorm"
)

// Product is a read-only catalog entity. The storefront never mutates
// products; they are seeded once and served from an in-memory snapshot.
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Price       float64        `gorm:"not null" json:"price"`
	OldPrice    *float64       `json:"old_price,omitempty"` // previous price, for discount display
	Category    string         `gorm:"type:varchar(50);index" json:"category,omitempty"`
	Brand       string         `gorm:"type:varchar(100);index" json:"brand,omitempty"`
	Rating      *float64       `json:"rating,omitempty"` // average rating, 0-5
	ReviewCount *int           `json:"review_count,omitempty"`
	Sold        *int           `json:"sold,omitempty"`
	Sizes       []string       `gorm:"serializer:json" json:"sizes,omitempty"`
	Images      []string       `gorm:"serializer:json" json:"images,omitempty"`
	CreatedAt   *time.Time     `json:"created_at,omitempty"`
	UpdatedAt   time.Time      `json:"-"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// RatingOrZero treats an absent rating as zero for filtering and sorting.
func (p Product) RatingOrZero() float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

// SoldOrZero treats an absent units-sold counter as zero.
func (p Product) SoldOrZero() int {
	if p.Sold == nil {
		return 0
	}
	return *p.Sold
}
