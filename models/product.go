package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a catalog record. The order flow only reads price/stock and
// mutates stock through atomic conditional updates; stock never goes
// negative.
type Product struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"type:varchar(100);not null" json:"name"`
	Description string         `gorm:"type:varchar(2000)" json:"description"`
	Price       float64        `gorm:"not null" json:"price"`
	Category    string         `gorm:"type:varchar(50);index" json:"category"`
	Stock       int            `gorm:"not null;default:0" json:"stock"`
	IsAvailable bool           `gorm:"not null;default:true" json:"is_available"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// OrderCounter backs the human-readable per-day order number sequence.
// Seq is advanced with an atomic upsert so concurrent checkouts on the same
// calendar day never hand out the same number.
type OrderCounter struct {
	Date string `gorm:"type:varchar(8);primaryKey" json:"date"` // YYYYMMDD
	Seq  int    `gorm:"not null" json:"seq"`
}
