package domain

import "time"

type CourtType string

const (
	CourtPadel      CourtType = "padel"
	CourtPickleball CourtType = "pickleball"
)

func (t CourtType) Valid() bool {
	return t == CourtPadel || t == CourtPickleball
}

type Court struct {
	ID           string    `gorm:"primaryKey"`
	Name         string    `gorm:"index"`
	Type         CourtType `gorm:"index"`
	PricePerHour int64
	ImageURL     string
	Rating       float64
	Location     string
	OwnerID      string // from JWT (role OWNER/ADMIN)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
