package domain

import "time"

// TempleSettings is a singleton row (ID is always 1).
type TempleSettings struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	TempleEmail string    `json:"temple_email"`
	TemplePhone string    `json:"temple_phone"`
	UPIID       string    `json:"upi_id" gorm:"column:upi_id"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (TempleSettings) TableName() string { return "settings" }
