package services

import (
	"strings"

	"IntrovirghtGo/models"
)

// 扫描窗口只取最近几条消息
const recentMessageWindow = 3

// riskTier 风险关键词层级
type riskTier struct {
	level    string
	rank     int
	indType  string
	severity float64
	conf     float64
	keywords []string
}

// CrisisDetector 基于关键词分层的危机风险评估器
type CrisisDetector struct {
	tiers      []riskTier
	urgency    []string
	protective []string
	resources  []models.CrisisResource
}

func NewCrisisDetector() *CrisisDetector {
	return &CrisisDetector{
		// 按严重程度从高到低排列
		tiers: []riskTier{
			{
				level: models.RiskCritical, rank: 3, indType: "crisis", severity: 9.5, conf: 0.9,
				keywords: []string{
					"kill myself", "end my life", "suicide", "suicidal", "want to die",
					"better off dead", "hurt myself", "self-harm", "end it all",
				},
			},
			{
				level: models.RiskHigh, rank: 2, indType: "hopelessness", severity: 7.5, conf: 0.8,
				keywords: []string{
					"can't go on", "no reason to live", "nothing matters anymore",
					"no way out", "unbearable", "give up on everything",
				},
			},
			{
				level: models.RiskModerate, rank: 1, indType: "distress", severity: 5, conf: 0.6,
				keywords: []string{
					"hopeless", "worthless", "hate myself", "can't cope",
					"falling apart", "completely alone",
				},
			},
		},
		urgency: []string{
			"tonight", "right now", "have a plan", "this is goodbye", "one last time",
		},
		protective: []string{
			"getting help", "my therapist", "family needs me", "my kids need me",
			"reasons to stay", "not going to act", "staying safe", "support group",
		},
		resources: []models.CrisisResource{
			{Name: "988 Suicide & Crisis Lifeline", Contact: "Call or text 988", Type: "hotline",
				Description: "Free, confidential support 24/7"},
			{Name: "Crisis Text Line", Contact: "Text HOME to 741741", Type: "text_line",
				Description: "Text with a trained crisis counselor"},
			{Name: "Emergency Services", Contact: "Call 911", Type: "emergency",
				Description: "If you are in immediate danger"},
		},
	}
}

// AssessRisk 评估当前消息与近期消息的危机风险
// 时间紧迫短语只能在已有层级命中时升级一级，不能单独定级
// 保护性因素≥2个时降级一级，但危机层级命中时不降级
func (d *CrisisDetector) AssessRisk(current string, recent []string) models.RiskAssessment {
	scanned := d.buildWindow(current, recent)

	assessment := models.RiskAssessment{Level: models.RiskLow}
	rank := 0
	criticalMatched := false

	for _, tier := range d.tiers {
		matched := matchAny(scanned, tier.keywords)
		if len(matched) == 0 {
			continue
		}
		if tier.rank > rank {
			rank = tier.rank
		}
		if tier.level == models.RiskCritical {
			criticalMatched = true
		}
		for _, keyword := range matched {
			assessment.Indicators = append(assessment.Indicators, models.RiskIndicator{
				Type:        tier.indType,
				Description: keyword,
				Severity:    tier.severity,
				Confidence:  tier.conf,
			})
		}
	}

	// 紧迫短语仅升级，不独立定级
	if rank > 0 {
		if urgent := matchAny(scanned, d.urgency); len(urgent) > 0 {
			if rank < 3 {
				rank++
			}
			for _, keyword := range urgent {
				assessment.Indicators = append(assessment.Indicators, models.RiskIndicator{
					Type:        "urgency",
					Description: keyword,
					Severity:    8,
					Confidence:  0.7,
				})
			}
		}
	}

	// 保护性因素降级，危机指征在场时不降
	if !criticalMatched && rank > 0 {
		if protective := matchAny(scanned, d.protective); len(protective) >= 2 {
			rank--
		}
	}

	assessment.Level = rankLevel(rank)
	assessment.Message = d.levelMessage(assessment.Level)
	assessment.Actions = d.levelActions(assessment.Level)
	assessment.Monitoring = d.levelMonitoring(assessment.Level)
	if rank >= 2 {
		assessment.Resources = d.resources
	}

	return assessment
}

// Resources 返回静态危机资源列表
func (d *CrisisDetector) Resources() []models.CrisisResource {
	return d.resources
}

func (d *CrisisDetector) buildWindow(current string, recent []string) string {
	parts := []string{strings.ToLower(current)}
	start := len(recent) - recentMessageWindow
	if start < 0 {
		start = 0
	}
	for _, msg := range recent[start:] {
		parts = append(parts, strings.ToLower(msg))
	}
	return strings.Join(parts, "\n")
}

func rankLevel(rank int) string {
	switch rank {
	case 3:
		return models.RiskCritical
	case 2:
		return models.RiskHigh
	case 1:
		return models.RiskModerate
	default:
		return models.RiskLow
	}
}

// 各等级的固定回复模板，不走模型生成
func (d *CrisisDetector) levelMessage(level string) string {
	switch level {
	case models.RiskCritical:
		return "I'm really concerned about what you just shared. You don't have to face this alone — please reach out to a crisis counselor right now. If you are in immediate danger, call 911. The 988 Lifeline is available 24/7 by calling or texting 988."
	case models.RiskHigh:
		return "It sounds like you're carrying something very heavy right now. Please consider talking to someone who is trained to help — the 988 Lifeline (call or text 988) is free and confidential, any time."
	case models.RiskModerate:
		return "I hear how hard things feel right now. These feelings are worth taking seriously — talking to someone you trust, or a counselor, can genuinely help."
	default:
		return ""
	}
}

func (d *CrisisDetector) levelActions(level string) []string {
	switch level {
	case models.RiskCritical:
		return []string{
			"Contact a crisis line immediately (call or text 988)",
			"Do not stay alone — reach out to someone nearby",
			"Remove access to anything you could use to hurt yourself",
		}
	case models.RiskHigh:
		return []string{
			"Reach out to a crisis line or a mental health professional",
			"Tell a trusted person how you are feeling",
		}
	case models.RiskModerate:
		return []string{
			"Consider talking to a counselor or someone you trust",
			"Keep writing about how you feel",
		}
	default:
		return nil
	}
}

func (d *CrisisDetector) levelMonitoring(level string) []string {
	switch level {
	case models.RiskCritical:
		return []string{"Check in with a support person today", "Follow up with a professional within 24 hours"}
	case models.RiskHigh:
		return []string{"Check in daily with someone you trust"}
	case models.RiskModerate:
		return []string{"Notice whether these feelings persist over the next few days"}
	default:
		return nil
	}
}
