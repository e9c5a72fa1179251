package models

// 风险等级，按严重程度递增
const (
	RiskLow      = "low"
	RiskModerate = "moderate"
	RiskHigh     = "high"
	RiskCritical = "critical"
)

// RiskIndicator 单个风险指征
type RiskIndicator struct {
	Type        string  `json:"type"` // crisis, hopelessness, distress, urgency
	Description string  `json:"description"`
	Severity    float64 `json:"severity"`   // [0, 10]
	Confidence  float64 `json:"confidence"` // [0, 1]
}

// CrisisResource 危机求助资源，静态表数据
type CrisisResource struct {
	Name        string `json:"name"`
	Contact     string `json:"contact"`
	Type        string `json:"type"` // hotline, text_line, emergency
	Description string `json:"description"`
}

// RiskAssessment 风险评估结果，不单独落库，随消息的SafetyFlag留痕
type RiskAssessment struct {
	Level      string           `json:"level"`
	Indicators []RiskIndicator  `json:"indicators"`
	Message    string           `json:"message"`
	Resources  []CrisisResource `json:"resources"`
	Actions    []string         `json:"actions"`
	Monitoring []string         `json:"monitoring"`
}

// AtOrAbove 判断风险等级是否达到给定等级
func (r *RiskAssessment) AtOrAbove(level string) bool {
	return riskRank(r.Level) >= riskRank(level)
}

func riskRank(level string) int {
	switch level {
	case RiskModerate:
		return 1
	case RiskHigh:
		return 2
	case RiskCritical:
		return 3
	default:
		return 0
	}
}
