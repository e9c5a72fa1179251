package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeEmptyText(t *testing.T) {
	analyzer := NewEmotionAnalyzer(nil)

	for _, text := range []string{"", "   ", "\n\t"} {
		result := analyzer.Analyze(text)
		assert.Empty(t, result.Emotions)
		assert.Zero(t, result.Sentiment.Compound)
		assert.Zero(t, result.Sentiment.Positive)
		assert.Zero(t, result.Sentiment.Negative)
		assert.Zero(t, result.Confidence)
	}
}

func TestAnalyzeBoundsHold(t *testing.T) {
	analyzer := NewEmotionAnalyzer(nil)

	texts := []string{
		"I am so incredibly happy and grateful today",
		"Everything is terrible, I am sad and anxious and angry",
		"Just a normal day, nothing special",
		"I am happy but also sad and worried about work",
		"so so so very extremely happy happy happy",
	}

	for _, text := range texts {
		result := analyzer.Analyze(text)
		assert.GreaterOrEqual(t, result.Sentiment.Compound, -1.0, "text: %s", text)
		assert.LessOrEqual(t, result.Sentiment.Compound, 1.0, "text: %s", text)
		assert.GreaterOrEqual(t, result.OverallIntensity, 0.0, "text: %s", text)
		assert.LessOrEqual(t, result.OverallIntensity, 10.0, "text: %s", text)
		assert.GreaterOrEqual(t, result.Confidence, 0.0, "text: %s", text)
		assert.LessOrEqual(t, result.Confidence, 1.0, "text: %s", text)
		for _, emotion := range result.Emotions {
			assert.GreaterOrEqual(t, emotion.Intensity, 1.0)
			assert.LessOrEqual(t, emotion.Intensity, 10.0)
		}
	}
}

func TestAnalyzeGratefulText(t *testing.T) {
	analyzer := NewEmotionAnalyzer(nil)

	result := analyzer.Analyze("I am so grateful and happy today, thank you")

	assert.Greater(t, result.Sentiment.Compound, 0.3)

	names := make([]string, 0, len(result.Emotions))
	for _, emotion := range result.Emotions {
		names = append(names, emotion.Name)
	}
	found := false
	for _, name := range names {
		if name == "joy" || name == "gratitude" {
			found = true
		}
	}
	assert.True(t, found, "expected joy or gratitude in %v", names)
}

func TestAnalyzeIntensifierRaisesIntensity(t *testing.T) {
	analyzer := NewEmotionAnalyzer(nil)

	boosted := analyzer.Analyze("I am so very happy")
	plain := analyzer.Analyze("I am happy")
	softened := analyzer.Analyze("I am slightly happy")

	require.NotEmpty(t, boosted.Emotions)
	require.NotEmpty(t, plain.Emotions)
	require.NotEmpty(t, softened.Emotions)

	assert.Greater(t, boosted.Emotions[0].Intensity, plain.Emotions[0].Intensity)
	assert.Less(t, softened.Emotions[0].Intensity, plain.Emotions[0].Intensity)
}

func TestAnalyzeTopFiveEmotions(t *testing.T) {
	analyzer := NewEmotionAnalyzer(nil)

	result := analyzer.Analyze("happy grateful calm hopeful sad anxious angry scared lonely ashamed surprised")
	assert.LessOrEqual(t, len(result.Emotions), 5)

	// 排序应为强度降序
	for i := 1; i < len(result.Emotions); i++ {
		assert.GreaterOrEqual(t, result.Emotions[i-1].Intensity, result.Emotions[i].Intensity)
	}
}

func TestAnalyzeThemesAndConcerns(t *testing.T) {
	analyzer := NewEmotionAnalyzer(nil)

	result := analyzer.Analyze("My boss at work keeps piling on deadlines, I feel empty inside and have no energy")

	assert.Contains(t, result.Themes, "work")

	require.NotEmpty(t, result.Concerns)
	var foundDepression bool
	for _, concern := range result.Concerns {
		if concern.Type == "depression" {
			foundDepression = true
			assert.Equal(t, "high", concern.Severity)
			assert.NotEmpty(t, concern.Indicators)
			assert.GreaterOrEqual(t, concern.Confidence, 0.0)
			assert.LessOrEqual(t, concern.Confidence, 1.0)
		}
	}
	assert.True(t, foundDepression)
}

func TestAnalyzeCopingAndPositiveIndicators(t *testing.T) {
	analyzer := NewEmotionAnalyzer(nil)

	result := analyzer.Analyze("I went for a walk and took a deep breath, proud of myself for it")

	assert.Contains(t, result.CopingMechanisms, "went for a walk")
	assert.Contains(t, result.CopingMechanisms, "deep breath")
	assert.Contains(t, result.PositiveIndicators, "proud of myself")
}

func TestAnalyzeSentimentSharesSumToOne(t *testing.T) {
	analyzer := NewEmotionAnalyzer(nil)

	result := analyzer.Analyze("I am happy but also sad today")
	sum := result.Sentiment.Positive + result.Sentiment.Negative + result.Sentiment.Neutral
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestLoadLexiconDefaultsWhenPathEmpty(t *testing.T) {
	lexicon, err := LoadLexicon("")
	require.NoError(t, err)
	assert.NotEmpty(t, lexicon.Emotions)
	assert.NotEmpty(t, lexicon.Intensifiers)
}

func TestLoadLexiconMissingFile(t *testing.T) {
	_, err := LoadLexicon("/nonexistent/lexicon.json")
	assert.Error(t, err)
}
