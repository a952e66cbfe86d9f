package post

import (
	"time"

	"github.com/ArthurDelaporte/PostPlanner-Back/internal/user"
)

type Post struct {
	ID            uint         `gorm:"primaryKey"`
	UserID        uint         `gorm:"not null;index"`
	User          *user.User   `gorm:"constraint:OnDelete:CASCADE"`
	Caption       string       `gorm:"type:text;not null"`
	Hashtags      string       `gorm:"type:text;not null"`
	Platform      string       `gorm:"size:20;not null;index"`
	Status        string       `gorm:"size:20;not null;index"`
	ScheduledTime *time.Time
	ImagePrompt   *ImagePrompt `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time    `gorm:"index"`
	UpdatedAt     time.Time
}

// ImagePrompt est la note de génération d'image rattachée à un post (1:1)
type ImagePrompt struct {
	ID         uint   `gorm:"primaryKey"`
	PostID     uint   `gorm:"uniqueIndex;not null"`
	PromptText string `gorm:"type:text;not null"`
	CreatedAt  time.Time
}
