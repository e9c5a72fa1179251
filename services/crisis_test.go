package services

import (
	"testing"

	"IntrovirghtGo/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessRiskCriticalKeywordAlwaysCritical(t *testing.T) {
	detector := NewCrisisDetector()

	// 保护性因素在场也不能降低危机指征定下的等级
	assessment := detector.AssessRisk(
		"I want to kill myself, even though I am getting help and my family needs me", nil)

	assert.Equal(t, models.RiskCritical, assessment.Level)
	assert.NotEmpty(t, assessment.Indicators)
	assert.NotEmpty(t, assessment.Resources)
	assert.NotEmpty(t, assessment.Message)
}

func TestAssessRiskModerateNeverCritical(t *testing.T) {
	detector := NewCrisisDetector()

	assessment := detector.AssessRisk("I feel hopeless", nil)

	assert.Equal(t, models.RiskModerate, assessment.Level)
	assert.NotEqual(t, models.RiskCritical, assessment.Level)
}

func TestAssessRiskHighTierPhrases(t *testing.T) {
	detector := NewCrisisDetector()

	assessment := detector.AssessRisk("I can't go on, nothing matters anymore", nil)

	assert.True(t, assessment.AtOrAbove(models.RiskHigh))
	assert.NotEmpty(t, assessment.Resources)
}

func TestAssessRiskBareUrgencyIsNotCritical(t *testing.T) {
	detector := NewCrisisDetector()

	// 紧迫词单独出现不构成风险定级
	assessment := detector.AssessRisk("See you at the party tonight!", nil)

	assert.Equal(t, models.RiskLow, assessment.Level)
	assert.Empty(t, assessment.Indicators)
}

func TestAssessRiskUrgencyEscalatesExistingTier(t *testing.T) {
	detector := NewCrisisDetector()

	without := detector.AssessRisk("I feel hopeless", nil)
	with := detector.AssessRisk("I feel hopeless tonight", nil)

	require.Equal(t, models.RiskModerate, without.Level)
	assert.Equal(t, models.RiskHigh, with.Level)

	var foundUrgency bool
	for _, indicator := range with.Indicators {
		if indicator.Type == "urgency" {
			foundUrgency = true
		}
	}
	assert.True(t, foundUrgency)
}

func TestAssessRiskProtectiveFactorsDeEscalate(t *testing.T) {
	detector := NewCrisisDetector()

	// 两个不同的保护性短语可以降一级
	assessment := detector.AssessRisk(
		"I can't go on, but I am getting help and my support group meets this week", nil)

	assert.Equal(t, models.RiskModerate, assessment.Level)
}

func TestAssessRiskSingleProtectiveFactorDoesNotDeEscalate(t *testing.T) {
	detector := NewCrisisDetector()

	assessment := detector.AssessRisk("I can't go on, but I am getting help", nil)

	assert.Equal(t, models.RiskHigh, assessment.Level)
}

func TestAssessRiskScansRecentMessages(t *testing.T) {
	detector := NewCrisisDetector()

	assessment := detector.AssessRisk("I'm okay today", []string{
		"just a normal message",
		"I want to kill myself",
	})

	assert.Equal(t, models.RiskCritical, assessment.Level)
}

func TestAssessRiskRecentWindowIsBounded(t *testing.T) {
	detector := NewCrisisDetector()

	// 窗口外的旧消息不参与评估
	assessment := detector.AssessRisk("I'm okay today", []string{
		"I want to kill myself",
		"later message one",
		"later message two",
		"later message three",
	})

	assert.Equal(t, models.RiskLow, assessment.Level)
}

func TestAssessRiskIndicatorBounds(t *testing.T) {
	detector := NewCrisisDetector()

	assessment := detector.AssessRisk("I feel worthless and hopeless tonight, no way out", nil)

	require.NotEmpty(t, assessment.Indicators)
	for _, indicator := range assessment.Indicators {
		assert.GreaterOrEqual(t, indicator.Severity, 0.0)
		assert.LessOrEqual(t, indicator.Severity, 10.0)
		assert.GreaterOrEqual(t, indicator.Confidence, 0.0)
		assert.LessOrEqual(t, indicator.Confidence, 1.0)
	}
}
