package models

import "time"

type TableType string

const (
	TableTypeRegular TableType = "regular"
	TableTypePrivate TableType = "private"
	TableTypeCounter TableType = "counter"
	TableTypeTerrace TableType = "terrace"
)

// Table adalah konfigurasi meja milik satu cabang. Meja tidak pernah
// dihapus permanen, hanya dinonaktifkan (IsActive=false).
type Table struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	BranchCode  string    `gorm:"type:varchar(50);not null;index" json:"branch_code"`
	TableNumber string    `gorm:"type:varchar(10);not null" json:"table_number"` // "A1", "B2", "VIP1"
	Name        string    `gorm:"type:varchar(100)" json:"name"`
	MinCapacity int       `gorm:"not null;default:1" json:"min_capacity"`
	MaxCapacity int       `gorm:"not null" json:"max_capacity"`
	TableType   TableType `gorm:"type:varchar(20);not null;default:'regular'" json:"table_type"`
	Zone        string    `gorm:"type:varchar(50)" json:"zone"`
	HasWindow   bool      `gorm:"not null;default:false" json:"has_window"`
	Priority    int       `gorm:"not null;default:0" json:"priority"` // bobot prioritas saat scoring
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	Notes       string    `gorm:"type:varchar(500)" json:"notes,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
