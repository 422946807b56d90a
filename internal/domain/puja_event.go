package domain

import "time"

type PujaEvent struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Date        string    `json:"date" gorm:"type:varchar(10);index;not null"` // YYYY-MM-DD
	Time        string    `json:"time" gorm:"type:varchar(20);not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (PujaEvent) TableName() string { return "puja_events" }
