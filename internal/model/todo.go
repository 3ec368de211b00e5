package model

import "time"

// Todo is a single medical task. OwnerID is optional; when set it references
// an existing user.
type Todo struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Task      string    `json:"task" gorm:"size:200;not null"`
	Done      bool      `json:"done" gorm:"default:false"`
	OwnerID   *uint     `json:"owner_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
}
