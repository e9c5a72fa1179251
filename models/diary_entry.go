package models

import "time"

// DiaryEntry 日记条目模型，Content 在落库前已加密
type DiaryEntry struct {
	ID           string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	Content      string    `gorm:"type:text" json:"content"`
	WordCount    int       `json:"wordCount"`
	Status       int       `gorm:"type:int;default:0" json:"status"` // 0: 正常 1: 删除
	EntryDate    time.Time `json:"entryDate"`
	UserID       string    `gorm:"type:varchar(50);index" json:"user_id"`
	CreatedAt    time.Time `json:"createdAt"`
	LastModified time.Time `json:"lastModified"`
}
