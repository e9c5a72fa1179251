package services

import (
	"math"
	"sort"
	"strings"

	"IntrovirghtGo/models"
)

const (
	baseIntensity    = 5.0
	modifierWindow   = 50 // 匹配位置前后各50字符内查找程度副词
	modifierDelta    = 2.0
	maxTopEmotions   = 5
	confidencePerHit = 0.2
	confidenceLength = 500.0
)

// EmotionAnalyzer 基于词典的情绪内容分析器
type EmotionAnalyzer struct {
	lexicon *Lexicon
}

func NewEmotionAnalyzer(lexicon *Lexicon) *EmotionAnalyzer {
	if lexicon == nil {
		lexicon = DefaultLexicon()
	}
	return &EmotionAnalyzer{lexicon: lexicon}
}

// AnalysisResult 一次文本分析的完整结果
type AnalysisResult struct {
	Emotions           []models.Emotion
	Sentiment          models.SentimentScore
	OverallIntensity   float64
	Themes             []string
	Concerns           []models.ConcernLevel
	PositiveIndicators []string
	CopingMechanisms   []string
	Confidence         float64
}

// Analyze 对自由文本做情绪与情感倾向分析
// 空文本或无命中时返回零信号结果，不报错
func (a *EmotionAnalyzer) Analyze(text string) AnalysisResult {
	lowered := strings.ToLower(text)

	var result AnalysisResult
	if strings.TrimSpace(lowered) == "" {
		return result
	}

	var positiveHits, negativeHits, totalHits int

	// 逐类别扫描词典，统计命中并按程度副词调整强度
	for _, category := range a.lexicon.Emotions {
		var sum float64
		var count int
		for _, keyword := range category.Keywords {
			for _, pos := range matchPositions(lowered, keyword) {
				adjusted := baseIntensity + a.modifierAdjustment(lowered, pos, len(keyword))
				sum += adjusted
				count++
			}
		}
		if count == 0 {
			continue
		}

		totalHits += count
		switch category.Polarity {
		case "positive":
			positiveHits += count
		case "negative":
			negativeHits += count
		}

		result.Emotions = append(result.Emotions, models.Emotion{
			Name:      category.Name,
			Intensity: clamp(sum/float64(count), 1, 10),
			Category:  category.Polarity,
		})
	}

	// 按强度降序取前5
	sort.SliceStable(result.Emotions, func(i, j int) bool {
		return result.Emotions[i].Intensity > result.Emotions[j].Intensity
	})
	if len(result.Emotions) > maxTopEmotions {
		result.Emotions = result.Emotions[:maxTopEmotions]
	}

	// 情感倾向：命中占比，无命中时全为0
	if totalHits > 0 {
		result.Sentiment.Positive = float64(positiveHits) / float64(totalHits)
		result.Sentiment.Negative = float64(negativeHits) / float64(totalHits)
		result.Sentiment.Neutral = 1 - result.Sentiment.Positive - result.Sentiment.Negative
		result.Sentiment.Compound = clamp(result.Sentiment.Positive-result.Sentiment.Negative, -1, 1)
	}

	// 整体强度：情绪强度与情感强度的折中
	if len(result.Emotions) > 0 {
		vals := make([]float64, 0, len(result.Emotions)+1)
		for _, e := range result.Emotions {
			vals = append(vals, e.Intensity)
		}
		vals = append(vals, math.Abs(result.Sentiment.Compound)*10)
		result.OverallIntensity = clamp(math.Round(average(vals)/2), 0, 10)
	}

	result.Themes = a.extractThemes(lowered)
	result.Concerns = a.extractConcerns(lowered)
	result.PositiveIndicators = matchAny(lowered, a.lexicon.PositiveIndicators)
	result.CopingMechanisms = matchAny(lowered, a.lexicon.CopingMechanisms)

	// 置信度为粗略启发式：命中数量与文本长度的均值
	result.Confidence = average([]float64{
		math.Min(1, float64(totalHits)*confidencePerHit),
		math.Min(1, float64(len(text))/confidenceLength),
	})

	return result
}

// modifierAdjustment 统计匹配位置窗口内的程度副词，每个±2
func (a *EmotionAnalyzer) modifierAdjustment(lowered string, pos, keywordLen int) float64 {
	start := pos - modifierWindow
	if start < 0 {
		start = 0
	}
	end := pos + keywordLen + modifierWindow
	if end > len(lowered) {
		end = len(lowered)
	}
	window := lowered[start:end]

	var delta float64
	for _, w := range a.lexicon.Intensifiers {
		delta += modifierDelta * float64(countWord(window, w))
	}
	for _, w := range a.lexicon.Diminishers {
		delta -= modifierDelta * float64(countWord(window, w))
	}
	return delta
}

func (a *EmotionAnalyzer) extractThemes(lowered string) []string {
	var themes []string
	for _, theme := range a.lexicon.Themes {
		for _, keyword := range theme.Keywords {
			if strings.Contains(lowered, keyword) {
				themes = append(themes, theme.Name)
				break
			}
		}
	}
	return themes
}

func (a *EmotionAnalyzer) extractConcerns(lowered string) []models.ConcernLevel {
	var concerns []models.ConcernLevel
	for _, category := range a.lexicon.Concerns {
		matched := matchAny(lowered, category.Keywords)
		if len(matched) == 0 {
			continue
		}
		concerns = append(concerns, models.ConcernLevel{
			Type:       category.Type,
			Severity:   category.Severity,
			Indicators: matched,
			Confidence: math.Min(1, 0.5+0.15*float64(len(matched)-1)),
		})
	}
	return concerns
}

// matchPositions 返回keyword在文本中的所有起始位置
func matchPositions(lowered, keyword string) []int {
	var positions []int
	offset := 0
	for {
		i := strings.Index(lowered[offset:], keyword)
		if i < 0 {
			break
		}
		positions = append(positions, offset+i)
		offset += i + len(keyword)
	}
	return positions
}

// countWord 统计独立单词出现次数，避免"so"误中"sorry"之类
// 多词短语（如"a bit"）退化为子串计数
func countWord(window, word string) int {
	if strings.Contains(word, " ") {
		return strings.Count(window, word)
	}
	count := 0
	for _, f := range strings.FieldsFunc(window, func(r rune) bool {
		return r == ' ' || r == ',' || r == '.' || r == '!' || r == '?' || r == '\n' || r == ';' || r == ':'
	}) {
		if f == word {
			count++
		}
	}
	return count
}

func matchAny(lowered string, keywords []string) []string {
	var matched []string
	for _, keyword := range keywords {
		if strings.Contains(lowered, keyword) {
			matched = append(matched, keyword)
		}
	}
	return matched
}

func average(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
