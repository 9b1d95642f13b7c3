package domain

import "time"

type Model struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
}
