package models

import (
	"fmt"
	"time"
)

// SyncEntriesRequest 日记条目同步请求结构体
type SyncEntriesRequest struct {
	ID           string    `json:"id"`
	Content      string    `json:"content"`
	EntryDate    time.Time `json:"entryDate"`
	Status       int       `json:"status"`
	LastModified time.Time `json:"lastModified"`
}

// 添加时区转换方法
func (r *SyncEntriesRequest) ConvertToUTC() {
	r.EntryDate = r.EntryDate.UTC()
	r.LastModified = r.LastModified.UTC()
}

// ChatRequest 陪伴聊天请求结构体
type ChatRequest struct {
	Message        string `json:"message" binding:"required"`
	ConversationID string `json:"conversationId"`
}

// PreferencesRequest 偏好设置更新请求结构体
type PreferencesRequest struct {
	CommunicationStyle string   `json:"communicationStyle"`
	ResponseLength     string   `json:"responseLength"`
	EmpathyStyle       string   `json:"empathyStyle"`
	Humor              *float64 `json:"humor"`
	Directness         *float64 `json:"directness"`
	TopicSensitivities []string `json:"topicSensitivities"`
	CrisisIntervention *bool    `json:"crisisIntervention"`
	DataRetentionDays  *int     `json:"dataRetentionDays"`
}

func (r *PreferencesRequest) Validate() error {
	validLengths := map[string]bool{"": true, "brief": true, "moderate": true, "detailed": true}
	if !validLengths[r.ResponseLength] {
		return fmt.Errorf("invalid responseLength, must be one of: brief, moderate, detailed")
	}
	if r.Humor != nil && (*r.Humor < 0 || *r.Humor > 10) {
		return fmt.Errorf("humor must be between 0 and 10")
	}
	if r.Directness != nil && (*r.Directness < 0 || *r.Directness > 10) {
		return fmt.Errorf("directness must be between 0 and 10")
	}
	if r.DataRetentionDays != nil && *r.DataRetentionDays < 1 {
		return fmt.Errorf("dataRetentionDays must be positive")
	}
	return nil
}

// FeedbackRequest 陪伴回复反馈请求结构体，用于偏好自适应调整
type FeedbackRequest struct {
	MessageID string `json:"messageId" binding:"required"`
	Helpful   bool   `json:"helpful"`
	TooDirect bool   `json:"tooDirect"`
	TooSoft   bool   `json:"tooSoft"`
}

// RedeemRequest 兑换码请求结构体
type RedeemRequest struct {
	Code string `json:"code" binding:"required"`
}
