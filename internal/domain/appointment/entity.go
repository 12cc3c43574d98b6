package appointment

import (
	"time"

	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(ap *models.Appointment) error {
	if err := CanConfirm(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// Reschedule moves the booking to [start, end). Availability must already
// have been checked with the appointment itself excluded.
func Reschedule(ap *models.Appointment, start, end time.Time) error {
	if err := CanReschedule(Status(ap.Status), ap.RescheduleCount); err != nil {
		return err
	}

	ap.StartTime = start.UTC()
	ap.EndTime = end.UTC()
	ap.RescheduleCount++
	return nil
}

// ApplyPayment records a gateway result. An approved payment confirms a
// pending booking; a failed one leaves the booking status alone.
func ApplyPayment(ap *models.Appointment, status PaymentStatus) {
	ap.PaymentStatus = string(status)
	if status == PaymentPaid && Status(ap.Status) == StatusPending {
		ap.Status = string(StatusConfirmed)
	}
}
