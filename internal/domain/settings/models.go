package settings

import (
	"time"

	"taqyim/internal/domain/evaluation"
)

type CategorySetting struct {
	CategoryID string             `json:"categoryId"`
	Section    evaluation.Section `json:"section"`
	Label      string             `json:"label"`
	Weight     int                `json:"weight"`
	Active     bool               `json:"active"`
	Position   int                `json:"position"`
}

type UserRecord struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Status    string     `json:"status"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)
