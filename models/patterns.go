package models

import "time"

// TrendPoint 某次分析中某情绪的观测点
type TrendPoint struct {
	Date      time.Time `json:"date"`
	Intensity float64   `json:"intensity"`
}

// EmotionalTrend 单个情绪的变化趋势
type EmotionalTrend struct {
	Emotion   string       `json:"emotion"`
	Direction string       `json:"direction"` // increasing, decreasing, stable
	Strength  float64      `json:"strength"`  // [0, 1]
	Points    []TrendPoint `json:"points"`
}

// EmotionalTrigger 情绪触发主题
type EmotionalTrigger struct {
	Theme              string    `json:"theme"`
	AssociatedEmotions []string  `json:"associatedEmotions"`
	Frequency          int       `json:"frequency"`
	AverageIntensity   float64   `json:"averageIntensity"`
	LastSeen           time.Time `json:"lastSeen"`
}

// ResilienceMetrics 心理韧性指标，四项各自独立的启发式评分（0-10）
type ResilienceMetrics struct {
	RecoverySpeed       float64 `json:"recoverySpeed"`
	CopingEffectiveness float64 `json:"copingEffectiveness"`
	EmotionalRange      float64 `json:"emotionalRange"`
	Stability           float64 `json:"stability"`
}

// GrowthIndicators 成长指标
type GrowthIndicators struct {
	SelfAwareness       float64  `json:"selfAwareness"`       // 0-10
	EmotionalVocabulary float64  `json:"emotionalVocabulary"` // 0-10
	PositivePatterns    []string `json:"positivePatterns"`
	ImprovementAreas    []string `json:"improvementAreas"`
}

// EmotionalPatterns 用户级情绪模式聚合，每次整体重算并覆盖上一份
type EmotionalPatterns struct {
	UserID      string             `json:"userId"`
	Trends      []EmotionalTrend   `json:"trends"`
	Triggers    []EmotionalTrigger `json:"triggers"`
	Resilience  ResilienceMetrics  `json:"resilience"`
	Growth      GrowthIndicators   `json:"growth"`
	EntryCount  int                `json:"entryCount"`
	GeneratedAt time.Time          `json:"generatedAt"`
}
