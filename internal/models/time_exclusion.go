package models

import "time"

// TimeExclusion is a recurring block such as a lunch break. A nil DayOfWeek
// (ISO 1..7) applies to every day.
type TimeExclusion struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProviderID uint `gorm:"index;not null" json:"provider_id"`

	Name      string `gorm:"size:100" json:"name"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`
	DayOfWeek *int   `json:"day_of_week"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
