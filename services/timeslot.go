package services

import (
	"fmt"
	"strconv"
	"strings"
)

// SlotDurationMinutes adalah granularitas grid waktu reservasi.
const SlotDurationMinutes = 30

// OperatingHours adalah satu-satunya sumber jam operasional. Semua
// grid slot (pencarian, analitik, gantt) diturunkan dari nilai ini.
type OperatingHours struct {
	OpenHour      int // jam buka, slot pertama yang bisa dipesan
	LastOrderHour int // slot terakhir yang bisa dipesan (last order)
	CloseHour     int // jam tutup, batas akhir grid tampilan
}

var DefaultOperatingHours = OperatingHours{
	OpenHour:      17,
	LastOrderHour: 22,
	CloseHour:     23,
}

// BookableSlots menghasilkan semua slot yang bisa dipesan, tiap 30
// menit dari jam buka sampai last order ("17:00" ... "22:00").
func (oh OperatingHours) BookableSlots() []string {
	var slots []string
	for h := oh.OpenHour; h <= oh.LastOrderHour; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00", h))
		if h < oh.LastOrderHour {
			slots = append(slots, fmt.Sprintf("%02d:30", h))
		}
	}
	return slots
}

// DisplaySlots menghasilkan header grid untuk visualisasi. Grid
// tampilan memanjang setengah jam melewati last order supaya blok
// booking terakhir tetap punya ruang render.
func (oh OperatingHours) DisplaySlots() []string {
	var slots []string
	for h := oh.OpenHour; h < oh.CloseHour; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00", h), fmt.Sprintf("%02d:30", h))
	}
	return slots
}

// SlotMinutes mengubah label "HH:MM" menjadi menit sejak tengah malam.
func SlotMinutes(slot string) (int, error) {
	parts := strings.SplitN(slot, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time slot %q", slot)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time slot %q", slot)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time slot %q", slot)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid time slot %q", slot)
	}
	return hour*60 + minute, nil
}
