package dto

import (
	"time"

	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
)

func AppointmentList(ap models.Appointment, loc *time.Location) AppointmentListDTO {
	out := AppointmentListDTO{
		ID:            ap.ID,
		StartTime:     ap.StartTime.In(loc),
		EndTime:       ap.EndTime.In(loc),
		Status:        ap.Status,
		ClientName:    ap.Client.Name,
		ClientPhone:   ap.Client.Phone,
		EmployeeID:    ap.EmployeeID,
		PaymentStatus: ap.PaymentStatus,
	}
	if ap.Service != nil {
		out.ServiceName = ap.Service.Name
	}
	if ap.Employee != nil {
		out.EmployeeName = ap.Employee.Name
	}
	return out
}

func PublicAppointment(ap *models.Appointment, loc *time.Location) PublicAppointmentDTO {
	out := PublicAppointmentDTO{
		Token:           ap.PublicToken,
		StartTime:       ap.StartTime.In(loc),
		EndTime:         ap.EndTime.In(loc),
		Status:          ap.Status,
		RescheduleCount: ap.RescheduleCount,
		PaymentStatus:   ap.PaymentStatus,
		PixQRCode:       ap.PixQRCode,
		PixQRCodeBase64: ap.PixQRCodeBase64,
		PixTicketURL:    ap.PixTicketURL,
	}
	if ap.Service != nil {
		out.ServiceName = ap.Service.Name
	}
	if ap.Employee != nil {
		out.EmployeeName = ap.Employee.Name
	}
	return out
}
