package models

import "time"

const (
	AccountIndividual = "individual"
	AccountCompany    = "company"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'provider'" json:"role"`
	AccountType  string `gorm:"size:20;not null;default:'individual'" json:"account_type"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsCompany() bool {
	return u.AccountType == AccountCompany
}
