package models

import "time"

// SyncUpdatesResponse 同步更新响应结构体
type SyncUpdatesResponse struct {
	Entries  []EntryResponse    `json:"entries"`
	Analyses []AnalysisResponse `json:"analyses"`
}

// EntryResponse 日记条目响应结构体，Content 为解密后的明文
type EntryResponse struct {
	ID           string    `json:"id"`
	Content      string    `json:"content"`
	WordCount    int       `json:"wordCount"`
	EntryDate    time.Time `json:"entryDate"`
	LastModified time.Time `json:"lastModified"`
}

// AnalysisResponse 情绪分析响应结构体
type AnalysisResponse struct {
	ID                 string         `json:"id"`
	EntryID            string         `json:"entryId"`
	Emotions           []Emotion      `json:"emotions"`
	Sentiment          SentimentScore `json:"sentiment"`
	OverallIntensity   float64        `json:"overallIntensity"`
	Themes             []string       `json:"themes"`
	Concerns           []ConcernLevel `json:"concerns"`
	PositiveIndicators []string       `json:"positiveIndicators"`
	CopingMechanisms   []string       `json:"copingMechanisms"`
	Confidence         float64        `json:"confidence"`
	CreatedAt          time.Time      `json:"createdAt"`
}

// NewAnalysisResponse 由分析记录组装响应
func NewAnalysisResponse(a EmotionalAnalysis) AnalysisResponse {
	return AnalysisResponse{
		ID:                 a.ID,
		EntryID:            a.EntryID,
		Emotions:           a.Emotions,
		Sentiment:          a.Sentiment(),
		OverallIntensity:   a.OverallIntensity,
		Themes:             a.Themes,
		Concerns:           a.Concerns,
		PositiveIndicators: a.PositiveIndicators,
		CopingMechanisms:   a.CopingMechanisms,
		Confidence:         a.Confidence,
		CreatedAt:          a.CreatedAt,
	}
}

// ConversationResponse 会话响应结构体
type ConversationResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Status       int       `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	LastModified time.Time `json:"lastModified"`
}

// UserResponse 用户响应结构体
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Energy   int    `json:"energy"`
}
