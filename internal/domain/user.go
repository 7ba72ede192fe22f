package domain

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleOwner Role = "OWNER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID              string `gorm:"primaryKey"`
	Email           string `gorm:"uniqueIndex"`
	PasswordHash    string
	FullName        string
	Level           string // Başlangıç|Orta|İleri, free-form
	ProfileImageURL string
	Role            Role `gorm:"index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
