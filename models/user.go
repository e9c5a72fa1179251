package models

import (
	"time"
)

// User 用户模型
type User struct {
	ID         string     `gorm:"type:varchar(50);primaryKey" json:"id"`
	Username   string     `gorm:"type:varchar(100)" json:"username"`
	Email      string     `gorm:"type:varchar(100)" json:"email"`
	CreatedAt  time.Time  `json:"createdAt"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
	DeviceID   string     `gorm:"type:varchar(100);index" json:"deviceId"`
	IsTestUser bool       `gorm:"default:false" json:"isTestUser"`
	Energy     int        `gorm:"default:20" json:"energy"` // 用户能量值，AI陪伴回复消耗，默认20
}

func (u *User) GetDisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}
