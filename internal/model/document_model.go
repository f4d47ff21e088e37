package model

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Filename           string    `gorm:"type:varchar(255);not null"`
	Status             string    `gorm:"type:varchar(32);not null;index"`
	ProcessingProgress int       `gorm:"not null;default:0"`
	TotalChunks        int       `gorm:"not null;default:0"`
	ApprovedChunks     int       `gorm:"not null;default:0"`
	RejectedChunks     int       `gorm:"not null;default:0"`
	ExtractedText      *string   `gorm:"type:text"`
	CreatedAt          time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime"`
}

func (Document) TableName() string {
	return "documents"
}
