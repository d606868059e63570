package models

import "time"

// Patient has no scheduling-relevant attributes beyond identity;
// the remaining fields are master data carried for listings.
type Patient struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string     `gorm:"size:100;not null" json:"name"`
	DateOfBirth *time.Time `gorm:"type:date" json:"date_of_birth"`
	ContactInfo string     `gorm:"size:120" json:"contact_info"`
	Address     string     `gorm:"size:200" json:"address"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
