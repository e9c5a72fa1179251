package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Emotion 单个检测到的情绪
type Emotion struct {
	Name      string  `json:"name"`
	Intensity float64 `json:"intensity"` // 1-10
	Category  string  `json:"category"`  // positive, negative, neutral
}

// SentimentScore 情感倾向评分
type SentimentScore struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
	Compound float64 `json:"compound"` // [-1, 1]
}

// ConcernLevel 关注点记录
type ConcernLevel struct {
	Type       string   `json:"type"`     // anxiety, depression, stress, isolation, crisis, other
	Severity   string   `json:"severity"` // low, moderate, high, critical
	Indicators []string `json:"indicators"`
	Confidence float64  `json:"confidence"` // [0, 1]
}

// EmotionList 情绪列表，JSON形式入库
type EmotionList []Emotion

func (l EmotionList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *EmotionList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// ConcernList 关注点列表，JSON形式入库
type ConcernList []ConcernLevel

func (l ConcernList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *ConcernList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// StringList 字符串列表，JSON形式入库
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

func scanJSON(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("不支持的列类型: %T", value)
	}
}

// EmotionalAnalysis 单次情绪分析结果，创建后不再修改（重新分析会新增记录）
type EmotionalAnalysis struct {
	ID                 string      `gorm:"type:varchar(50);primaryKey" json:"id"`
	EntryID            string      `gorm:"type:varchar(50);index" json:"entryId"`
	UserID             string      `gorm:"type:varchar(50);index" json:"user_id"`
	Emotions           EmotionList `gorm:"type:text" json:"emotions"`
	SentimentPositive  float64     `json:"sentimentPositive"`
	SentimentNegative  float64     `json:"sentimentNegative"`
	SentimentNeutral   float64     `json:"sentimentNeutral"`
	SentimentCompound  float64     `json:"sentimentCompound"`
	OverallIntensity   float64     `json:"overallIntensity"` // [0, 10]
	Themes             StringList  `gorm:"type:text" json:"themes"`
	Concerns           ConcernList `gorm:"type:text" json:"concerns"`
	PositiveIndicators StringList  `gorm:"type:text" json:"positiveIndicators"`
	CopingMechanisms   StringList  `gorm:"type:text" json:"copingMechanisms"`
	Confidence         float64     `json:"confidence"` // [0, 1]
	CreatedAt          time.Time   `json:"createdAt"`
}

// Sentiment 组装情感倾向评分
func (a *EmotionalAnalysis) Sentiment() SentimentScore {
	return SentimentScore{
		Positive: a.SentimentPositive,
		Negative: a.SentimentNegative,
		Neutral:  a.SentimentNeutral,
		Compound: a.SentimentCompound,
	}
}
