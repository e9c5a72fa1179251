package models

import "time"

// Conversation 会话模型，归档而非删除
type Conversation struct {
	ID           string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	UserID       string    `gorm:"type:varchar(50);index" json:"user_id"`
	Title        string    `gorm:"type:varchar(100)" json:"title"`
	Status       int       `gorm:"type:int;default:0" json:"status"` // 0: 活跃 1: 归档
	CreatedAt    time.Time `json:"createdAt"`
	LastModified time.Time `json:"lastModified"`
}

// ConversationMessage 会话消息模型
type ConversationMessage struct {
	ID             string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	ConversationID string    `gorm:"type:varchar(50);index" json:"conversationId"`
	UserID         string    `gorm:"type:varchar(50)" json:"user_id"`
	Role           string    `gorm:"type:varchar(20)" json:"role"` // user, companion
	Content        string    `gorm:"type:text" json:"content"`
	Intent         string    `gorm:"type:varchar(30)" json:"intent"`
	Confidence     float64   `json:"confidence"`
	Source         string    `gorm:"type:varchar(20)" json:"source"`     // external, fallback
	SafetyFlag     string    `gorm:"type:varchar(20)" json:"safetyFlag"` // 触发安全替换时记录风险等级
	CreatedAt      time.Time `json:"createdAt"`
}
