package services

import (
	"testing"
	"time"

	"IntrovirghtGo/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analysisAt(day int, emotion string, intensity, compound float64) models.EmotionalAnalysis {
	return models.EmotionalAnalysis{
		Emotions:          models.EmotionList{{Name: emotion, Intensity: intensity, Category: "negative"}},
		SentimentCompound: compound,
		OverallIntensity:  intensity,
		CreatedAt:         time.Date(2025, 1, day, 12, 0, 0, 0, time.UTC),
	}
}

func TestAggregateEmptyHistory(t *testing.T) {
	aggregator := NewPatternAggregator()

	patterns := aggregator.Aggregate("u1", nil)

	assert.Equal(t, "u1", patterns.UserID)
	assert.Zero(t, patterns.EntryCount)
	assert.Empty(t, patterns.Trends)
}

func TestTrendStableWithSingleObservation(t *testing.T) {
	aggregator := NewPatternAggregator()

	patterns := aggregator.Aggregate("u1", []models.EmotionalAnalysis{
		analysisAt(1, "sadness", 5, -0.4),
	})

	require.Len(t, patterns.Trends, 1)
	assert.Equal(t, "stable", patterns.Trends[0].Direction)
}

func TestTrendIncreasing(t *testing.T) {
	aggregator := NewPatternAggregator()

	patterns := aggregator.Aggregate("u1", []models.EmotionalAnalysis{
		analysisAt(1, "anxiety", 2, -0.2),
		analysisAt(2, "anxiety", 2, -0.2),
		analysisAt(3, "anxiety", 6, -0.5),
		analysisAt(4, "anxiety", 7, -0.6),
	})

	require.Len(t, patterns.Trends, 1)
	trend := patterns.Trends[0]
	assert.Equal(t, "anxiety", trend.Emotion)
	assert.Equal(t, "increasing", trend.Direction)
	assert.Len(t, trend.Points, 4)
}

func TestTrendDecreasing(t *testing.T) {
	aggregator := NewPatternAggregator()

	patterns := aggregator.Aggregate("u1", []models.EmotionalAnalysis{
		analysisAt(1, "sadness", 8, -0.7),
		analysisAt(2, "sadness", 7, -0.6),
		analysisAt(3, "sadness", 3, -0.2),
		analysisAt(4, "sadness", 2, -0.1),
	})

	require.Len(t, patterns.Trends, 1)
	assert.Equal(t, "decreasing", patterns.Trends[0].Direction)
}

func TestTrendStableWhenFlat(t *testing.T) {
	aggregator := NewPatternAggregator()

	patterns := aggregator.Aggregate("u1", []models.EmotionalAnalysis{
		analysisAt(1, "calm", 5, 0.2),
		analysisAt(2, "calm", 5.2, 0.2),
		analysisAt(3, "calm", 5.1, 0.2),
		analysisAt(4, "calm", 5.3, 0.2),
	})

	require.Len(t, patterns.Trends, 1)
	assert.Equal(t, "stable", patterns.Trends[0].Direction)
}

func TestTrendStrengthBounds(t *testing.T) {
	aggregator := NewPatternAggregator()

	patterns := aggregator.Aggregate("u1", []models.EmotionalAnalysis{
		analysisAt(1, "anger", 1, -0.9),
		analysisAt(2, "anger", 10, 0.9),
		analysisAt(3, "anger", 1, -0.9),
		analysisAt(4, "anger", 10, 0.9),
	})

	require.Len(t, patterns.Trends, 1)
	assert.GreaterOrEqual(t, patterns.Trends[0].Strength, 0.0)
	assert.LessOrEqual(t, patterns.Trends[0].Strength, 1.0)
}

func TestTriggerAggregation(t *testing.T) {
	aggregator := NewPatternAggregator()

	first := analysisAt(1, "anxiety", 6, -0.5)
	first.Themes = models.StringList{"work"}
	second := analysisAt(5, "anger", 8, -0.6)
	second.Themes = models.StringList{"work"}

	patterns := aggregator.Aggregate("u1", []models.EmotionalAnalysis{first, second})

	require.Len(t, patterns.Triggers, 1)
	trigger := patterns.Triggers[0]
	assert.Equal(t, "work", trigger.Theme)
	assert.Equal(t, 2, trigger.Frequency)
	assert.InDelta(t, 7.0, trigger.AverageIntensity, 1e-9)
	assert.Equal(t, second.CreatedAt, trigger.LastSeen)
	assert.ElementsMatch(t, []string{"anxiety", "anger"}, trigger.AssociatedEmotions)
}

func TestResilienceMetricsBounds(t *testing.T) {
	aggregator := NewPatternAggregator()

	analyses := []models.EmotionalAnalysis{
		analysisAt(1, "sadness", 7, -0.8),
		analysisAt(2, "joy", 6, 0.6),
		analysisAt(3, "anxiety", 5, -0.5),
		analysisAt(4, "calm", 4, 0.3),
	}
	analyses[1].CopingMechanisms = models.StringList{"went for a walk"}

	patterns := aggregator.Aggregate("u1", analyses)

	metrics := patterns.Resilience
	for _, v := range []float64{metrics.RecoverySpeed, metrics.CopingEffectiveness, metrics.EmotionalRange, metrics.Stability} {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 10.0)
	}

	// 两次低谷都在两条内回正
	assert.InDelta(t, 10.0, metrics.RecoverySpeed, 1e-9)
}

func TestGrowthRepeatedPatterns(t *testing.T) {
	aggregator := NewPatternAggregator()

	first := analysisAt(1, "sadness", 5, -0.4)
	first.PositiveIndicators = models.StringList{"made progress"}
	first.Concerns = models.ConcernList{{Type: "stress", Severity: "moderate"}}
	second := analysisAt(2, "sadness", 5, -0.4)
	second.PositiveIndicators = models.StringList{"made progress"}
	second.Concerns = models.ConcernList{{Type: "stress", Severity: "moderate"}}
	third := analysisAt(3, "joy", 6, 0.5)
	third.Concerns = models.ConcernList{{Type: "anxiety", Severity: "moderate"}}

	patterns := aggregator.Aggregate("u1", []models.EmotionalAnalysis{first, second, third})

	// 只出现一次的不算模式
	assert.Contains(t, patterns.Growth.PositivePatterns, "made progress")
	assert.Contains(t, patterns.Growth.ImprovementAreas, "stress")
	assert.NotContains(t, patterns.Growth.ImprovementAreas, "anxiety")
}
