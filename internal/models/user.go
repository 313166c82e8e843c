package models

import "time"

type User struct {
	BaseModelWithDeleted
	Email        string     `gorm:"uniqueIndex;not null"`
	PasswordHash string     `gorm:"not null"`
	FullName     string     `gorm:"type:varchar(120)"`
	Role         UserRole   `gorm:"type:varchar(20);not null;default:'user'"`
	Status       UserStatus `gorm:"type:varchar(20);default:'active'"`
	Plan         PlanType   `gorm:"type:varchar(20);not null;default:'FREE'"`

	// CreditBalance is authoritative for metered plans and never goes
	// negative: the debit path decrements it with a conditional UPDATE.
	CreditBalance  int `gorm:"not null;default:0"`
	LifetimeEarned int `gorm:"not null;default:0"`
	LifetimeUsed   int `gorm:"not null;default:0"`

	ReferralCode string `gorm:"type:varchar(16);uniqueIndex"`
	ReferredBy   string `gorm:"type:uuid"`

	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}
