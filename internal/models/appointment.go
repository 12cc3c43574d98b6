package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProviderID uint     `gorm:"index:idx_appointments_provider_start,priority:1;not null" json:"provider_id"`
	Provider   Provider `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	EmployeeID *uint     `json:"employee_id"`
	Employee   *Employee `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"employee,omitempty"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ServiceID uint     `json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service,omitempty"`

	StartTime time.Time `gorm:"index:idx_appointments_provider_start,priority:2;not null" json:"date"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	PublicToken string `gorm:"size:36;uniqueIndex" json:"public_token"`

	Status          string `gorm:"size:20;not null;default:'pending'" json:"status"`
	Notes           string `gorm:"size:255" json:"notes"`
	RescheduleCount int    `gorm:"default:0" json:"reschedule_count"`

	PaymentStatus   string `gorm:"size:20" json:"payment_status"`
	PaymentMethod   string `gorm:"size:20" json:"payment_method"`
	PaymentID       string `gorm:"size:64;index" json:"payment_id"`
	PixQRCode       string `gorm:"type:text" json:"pix_qr_code,omitempty"`
	PixQRCodeBase64 string `gorm:"type:text" json:"pix_qr_code_base64,omitempty"`
	PixTicketURL    string `gorm:"size:255" json:"pix_ticket_url,omitempty"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
