package users

import "time"

// User is the ledger row of a customer. Ids are issued by the identity
// service and stored as given.
type User struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Email       string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null" validate:"required,email,max=255"`
	DisplayName string    `json:"display_name" gorm:"type:varchar(255);not null" validate:"notblank,max=255"`
	TimeZone    string    `json:"time_zone" gorm:"type:varchar(64);not null;default:'UTC'" validate:"omitempty,timezone"`
	Balance     float64   `json:"balance" gorm:"type:decimal(12,2);not null;default:0"`
	Version     int64     `json:"version" gorm:"not null;default:1"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	Email       string `json:"email" binding:"required"`
	DisplayName string `json:"display_name" binding:"required"`
	TimeZone    string `json:"time_zone"`
}

type DepositRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}
