package models

import "time"

// Employee belongs to a company account and is bookable on its own.
type Employee struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	CompanyUserID uint `gorm:"index;not null" json:"company_user_id"`

	Name            string `gorm:"size:100;not null" json:"name"`
	Specialty       string `gorm:"size:100" json:"specialty"`
	LunchBreakStart string `gorm:"size:5" json:"lunch_break_start"`
	LunchBreakEnd   string `gorm:"size:5" json:"lunch_break_end"`
	Active          bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
