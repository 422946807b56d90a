package domain

import "time"

// Donor is the identity a donation belongs to. UserID is null for offline
// donations recorded by an admin.
type Donor struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    *int64    `json:"user_id,omitempty" gorm:"index"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Phone     string    `json:"phone,omitempty"`
	Verified  bool      `json:"verified" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Donor) TableName() string { return "donors" }
