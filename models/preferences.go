package models

import "time"

// CompanionPreferences AI陪伴偏好设置
type CompanionPreferences struct {
	ID                 string     `gorm:"type:varchar(50);primaryKey" json:"id"`
	UserID             string     `gorm:"type:varchar(50);uniqueIndex" json:"user_id"`
	CommunicationStyle string     `gorm:"type:varchar(30)" json:"communicationStyle"` // gentle, direct, playful
	ResponseLength     string     `gorm:"type:varchar(20)" json:"responseLength"`     // brief, moderate, detailed
	EmpathyStyle       string     `gorm:"type:varchar(30)" json:"empathyStyle"`       // validating, solution_focused
	Humor              float64    `json:"humor"`      // 0-10
	Directness         float64    `json:"directness"` // 0-10
	TopicSensitivities StringList `gorm:"type:text" json:"topicSensitivities"`
	CrisisIntervention bool       `gorm:"default:true" json:"crisisIntervention"`
	DataRetentionDays  int        `gorm:"default:365" json:"dataRetentionDays"`
	LastModified       time.Time  `json:"lastModified"`
}

// DefaultPreferences 首次使用时的默认偏好
func DefaultPreferences(id, userID string) CompanionPreferences {
	return CompanionPreferences{
		ID:                 id,
		UserID:             userID,
		CommunicationStyle: "gentle",
		ResponseLength:     "moderate",
		EmpathyStyle:       "validating",
		Humor:              5,
		Directness:         5,
		TopicSensitivities: StringList{},
		CrisisIntervention: true,
		DataRetentionDays:  365,
		LastModified:       time.Now(),
	}
}
