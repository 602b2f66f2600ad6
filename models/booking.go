package models

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusNoShow    BookingStatus = "no_show"
)

// ActiveBookingStatuses adalah status yang menahan meja pada slotnya.
var ActiveBookingStatuses = []string{
	string(BookingStatusPending),
	string(BookingStatusConfirmed),
}

// Booking merupakan reservasi dari flow booking. Engine alokasi meja
// hanya membaca entitas ini; perubahan status dilakukan flow lain.
type Booking struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	Reference  string        `gorm:"type:varchar(36);uniqueIndex;not null" json:"reference"`
	BranchCode string        `gorm:"type:varchar(50);not null;index" json:"branch_code"`
	Date       string        `gorm:"type:varchar(10);not null;index" json:"date"` // "2026-01-31"
	Time       string        `gorm:"type:varchar(5);not null" json:"time"`        // label slot "18:00"
	Guests     int           `gorm:"not null" json:"guests"`
	GuestName  string        `gorm:"type:varchar(255)" json:"guest_name"`
	GuestPhone string        `gorm:"type:varchar(20)" json:"guest_phone"`
	Status     BookingStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Note       string        `gorm:"type:varchar(1000)" json:"note,omitempty"`
	Source     string        `gorm:"type:varchar(50);not null;default:'web'" json:"source"` // 'web', 'phone', 'walk_in'
	CreatedAt  time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time     `gorm:"not null" json:"updated_at"`

	TableAssignments []TableAssignment `gorm:"foreignKey:BookingID" json:"table_assignments,omitempty"`
}
