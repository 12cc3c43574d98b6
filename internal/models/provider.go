package models

import "time"

type Provider struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name   string `gorm:"size:100;not null" json:"name"`
	Phone  string `gorm:"size:20" json:"phone"`
	LinkID string `gorm:"size:36;uniqueIndex;not null" json:"link_id"`

	WorkingHoursStart int    `gorm:"not null;default:8" json:"working_hours_start"`
	WorkingHoursEnd   int    `gorm:"not null;default:18" json:"working_hours_end"`
	WorkingDays       string `gorm:"size:20" json:"working_days"`
	Timezone          string `gorm:"size:64;default:'America/Sao_Paulo'" json:"timezone"`
	MinAdvanceMinutes int    `gorm:"default:0" json:"min_advance_minutes"`
	PixEnabled        bool   `gorm:"default:false" json:"pix_enabled"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
