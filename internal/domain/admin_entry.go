package domain

import "time"

// AdminEntry grants admin privileges to an email+phone pair. The designated
// operator identities from config are privileged even without a row here.
type AdminEntry struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"index;not null"`
	Phone     string    `json:"phone" gorm:"index;not null"`
	Role      string    `json:"role" gorm:"type:varchar(20);default:'admin'"`
	CreatedAt time.Time `json:"created_at"`
}

func (AdminEntry) TableName() string { return "admins" }
