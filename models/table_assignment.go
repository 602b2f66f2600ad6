package models

import "time"

// TableAssignment menautkan satu booking ke satu meja. Reassign
// mengganti record lama secara utuh, tidak di-update in place.
type TableAssignment struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	BookingID  uint       `gorm:"not null;index" json:"booking_id"`
	Booking    Booking    `gorm:"foreignKey:BookingID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	TableID    uint       `gorm:"not null;index" json:"table_id"`
	Table      Table      `gorm:"foreignKey:TableID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	AssignedAt time.Time  `gorm:"not null" json:"assigned_at"`
	SeatedAt   *time.Time `json:"seated_at,omitempty"`
	ClearedAt  *time.Time `json:"cleared_at,omitempty"`
	Notes      string     `gorm:"type:varchar(500)" json:"notes,omitempty"`
}
