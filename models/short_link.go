package models

import (
	"time"
)

type ShortLink struct {
	ID             string    `json:"id" gorm:"primaryKey;size:36"`
	Slug           string    `json:"slug" gorm:"uniqueIndex;not null"`
	DestinationURL string    `json:"destination_url" gorm:"not null"`
	OwnerID        string    `json:"owner_id" gorm:"index;not null;size:36"`
	ClickCount     int       `json:"click_count" gorm:"not null;default:0"`
	CreatedAt      time.Time `json:"created_at"`

	ClickEvents []ClickEvent `json:"click_events,omitempty" gorm:"foreignKey:ShortLinkID"`
}
