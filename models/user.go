package models

// User is a registered account. HasStation is set true exactly once, when
// the user's first station is created, and is never reset.
type User struct {
	ID         uint   `json:"user_id" gorm:"primaryKey"`
	Email      string `json:"email" gorm:"uniqueIndex;not null"`
	Username   string `json:"username" gorm:"uniqueIndex;not null"`
	Password   string `json:"-" gorm:"not null"` // Store hashed password
	FullName   string `json:"full_name" gorm:"not null"`
	HasStation bool   `json:"has_station" gorm:"not null;default:false"`
}
