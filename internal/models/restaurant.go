package models

import "strings"

// Restaurant matches the restaurants collection. PasswordHash is stored in the
// "password" column and never leaves the service.
type Restaurant struct {
	ID           int64  `gorm:"column:restaurant_id;primaryKey;autoIncrement" json:"restaurant_id"`
	Name         string `gorm:"column:restaurant_name;type:text;not null" json:"restaurant_name"`
	Address      string `gorm:"type:text" json:"address"`
	Contact      string `gorm:"type:text" json:"contact"`
	Email        string `gorm:"type:text;not null;uniqueIndex" json:"email"`
	PasswordHash string `gorm:"column:password;type:text;not null" json:"-"`
}

func (Restaurant) TableName() string {
	return "restaurants"
}

func (r *Restaurant) Prepare() {
	r.Name = strings.TrimSpace(r.Name)
	r.Address = strings.TrimSpace(r.Address)
	r.Contact = strings.TrimSpace(r.Contact)
	r.Email = NormalizeEmail(r.Email)
}

// NormalizeEmail is the form new signups are stored in. Older rows keep the
// address exactly as it was typed.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
