package models

import (
	"time"
)

// ClickEvent is one recorded resolution of a ShortLink. Rows are append-only.
type ClickEvent struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	ShortLinkID string    `json:"short_link_id" gorm:"index;not null;size:36"`
	ClickedAt   time.Time `json:"clicked_at"`
	UserAgent   string    `json:"user_agent"`
	Referer     string    `json:"referer"`
}
