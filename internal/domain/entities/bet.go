package entities

import (
	"strings"
	"time"
)

// BetStatus represents the lifecycle state of a top-3 bet
type BetStatus string

const (
	BetStatusPending  BetStatus = "pendiente"
	BetStatusActive   BetStatus = "activa"
	BetStatusRejected BetStatus = "rechazada"
)

var betStatusAliases = map[string]BetStatus{
	"pendiente": BetStatusPending,
	"pending":   BetStatusPending,
	"activa":    BetStatusActive,
	"active":    BetStatusActive,
	"rechazada": BetStatusRejected,
	"rejected":  BetStatusRejected,
}

// ParseBetStatus normalizes user input, case-insensitive, English aliases accepted
func ParseBetStatus(s string) (BetStatus, bool) {
	status, ok := betStatusAliases[strings.ToLower(strings.TrimSpace(s))]
	return status, ok
}

// Terminal reports whether no further transitions leave the status
func (s BetStatus) Terminal() bool {
	return s == BetStatusActive || s == BetStatusRejected
}

// CanTransitionTo allows pending to move anywhere and any status to stay put
func (s BetStatus) CanTransitionTo(next BetStatus) bool {
	return s == next || !s.Terminal()
}

// Picks holds the first, second and third place driver ids
type Picks struct {
	Top1 int64
	Top2 int64
	Top3 int64
}

// IDs returns the picks in finishing order
func (p Picks) IDs() []int64 {
	return []int64{p.Top1, p.Top2, p.Top3}
}

// Distinct reports whether the three picks are pairwise different
func (p Picks) Distinct() bool {
	return p.Top1 != p.Top2 && p.Top1 != p.Top3 && p.Top2 != p.Top3
}

// Positive reports whether every pick is a plausible id
func (p Picks) Positive() bool {
	return p.Top1 > 0 && p.Top2 > 0 && p.Top3 > 0
}

// Bet represents a user's top-3 prediction with resolved driver names
type Bet struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Top1DriverID int64     `json:"top1_driver_id"`
	Top2DriverID int64     `json:"top2_driver_id"`
	Top3DriverID int64     `json:"top3_driver_id"`
	Top1         string    `json:"top1"`
	Top2         string    `json:"top2"`
	Top3         string    `json:"top3"`
	Status       BetStatus `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// OwnedBy reports whether userID placed the bet
func (b *Bet) OwnedBy(userID int64) bool {
	return b != nil && b.UserID == userID
}
