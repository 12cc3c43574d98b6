package models

// All lists every model in migration order.
func All() []any {
	return []any{
		&User{},
		&Provider{},
		&Service{},
		&Employee{},
		&TimeExclusion{},
		&Client{},
		&Appointment{},
		&AuditLog{},
	}
}
