package dto

import "time"

// PublicAppointmentDTO is what a client sees about their own booking.
type PublicAppointmentDTO struct {
	Token           string    `json:"token"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	Status          string    `json:"status"`
	ServiceName     string    `json:"service_name"`
	EmployeeName    string    `json:"employee_name,omitempty"`
	RescheduleCount int       `json:"reschedule_count"`

	PaymentStatus   string `json:"payment_status,omitempty"`
	PixQRCode       string `json:"pix_qr_code,omitempty"`
	PixQRCodeBase64 string `json:"pix_qr_code_base64,omitempty"`
	PixTicketURL    string `json:"pix_ticket_url,omitempty"`
}
