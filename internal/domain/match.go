package domain

import "time"

type MatchStatus string

const (
	MatchPending   MatchStatus = "pending"
	MatchConfirmed MatchStatus = "confirmed"
	MatchCompleted MatchStatus = "completed"
)

type MatchResult string

const (
	MatchWin  MatchResult = "win"
	MatchLoss MatchResult = "loss"
)

type Team string

const (
	TeamHome Team = "home"
	TeamAway Team = "away"
)

const MaxMatchPlayers = 4

type Match struct {
	ID        string      `gorm:"primaryKey"`
	BookingID string      `gorm:"index"`
	Status    MatchStatus `gorm:"index"`
	Result    *MatchResult
	CreatedAt time.Time
	UpdatedAt time.Time
}

type MatchPlayer struct {
	ID        string `gorm:"primaryKey"`
	MatchID   string `gorm:"index"`
	UserID    string `gorm:"index"`
	Team      Team
	CreatedAt time.Time
}
