package domain

import "time"

type ApiKeys struct {
	Model
	Key        string `gorm:"size:64;uniqueIndex;not null"`
	Name       string `gorm:"size:100"`
	IsActive   bool   `gorm:"not null;default:true"`
	LastUsedAt *time.Time
}
