package models

import "time"

const (
	DefaultCycleLength  = 28
	DefaultPeriodLength = 5
)

type User struct {
	ID                 uint       `gorm:"primaryKey"`
	Email              string     `gorm:"uniqueIndex;not null"`
	PasswordHash       string     `gorm:"not null"`
	MustChangePassword bool       `gorm:"not null;default:false"`
	CycleLength        int        `gorm:"not null;default:28"`
	PeriodLength       int        `gorm:"not null;default:5"`
	LastPeriodStart    *time.Time `gorm:"type:date"`
	TelegramChatID     int64      `gorm:"not null;default:0"`
	CreatedAt          time.Time  `gorm:"not null"`
}

func (user *User) HasCycleProfile() bool {
	return user != nil && user.LastPeriodStart != nil && !user.LastPeriodStart.IsZero()
}
