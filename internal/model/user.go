package model

import "time"

// MinSignupAge 可独立授予数据同意的法定最低年龄
const MinSignupAge = 15

const (
	RoleUser  = 0
	RoleAdmin = 1
)

type User struct {
	ID              uint64    `gorm:"primaryKey" json:"id"`
	Username        string    `gorm:"uniqueIndex;size:32;not null" json:"username"`
	Password        string    `gorm:"size:255;not null" json:"-"`
	Email           string    `gorm:"uniqueIndex;size:64;not null" json:"email"`
	Age             int       `gorm:"not null" json:"age"`
	CanBeContacted  bool      `gorm:"not null;default:false" json:"can_be_contacted"`
	CanDataBeShared bool      `gorm:"not null;default:false" json:"can_data_be_shared"`
	Role            int       `gorm:"default:0" json:"-"`
	CreatedAt       time.Time `json:"created_time"`
	UpdatedAt       time.Time `json:"-"`
}

func (u *User) HasMinimumAge() bool {
	return u.Age >= MinSignupAge
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
