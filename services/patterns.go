package services

import (
	"math"
	"sort"
	"time"

	"IntrovirghtGo/models"
)

const trendStableThreshold = 0.5

// PatternAggregator 情绪模式聚合器，每次从全量分析历史整体重算
type PatternAggregator struct{}

func NewPatternAggregator() *PatternAggregator {
	return &PatternAggregator{}
}

// Aggregate 从一组分析记录计算用户级情绪模式
func (p *PatternAggregator) Aggregate(userID string, analyses []models.EmotionalAnalysis) models.EmotionalPatterns {
	patterns := models.EmotionalPatterns{
		UserID:      userID,
		EntryCount:  len(analyses),
		GeneratedAt: time.Now(),
	}
	if len(analyses) == 0 {
		return patterns
	}

	// 按时间排序后再分桶
	sorted := make([]models.EmotionalAnalysis, len(analyses))
	copy(sorted, analyses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	patterns.Trends = p.computeTrends(sorted)
	patterns.Triggers = p.computeTriggers(sorted)
	patterns.Resilience = p.computeResilience(sorted)
	patterns.Growth = p.computeGrowth(sorted)
	return patterns
}

// computeTrends 对每个情绪做前后半段均值比较
func (p *PatternAggregator) computeTrends(sorted []models.EmotionalAnalysis) []models.EmotionalTrend {
	observations := make(map[string][]models.TrendPoint)
	var order []string
	for _, analysis := range sorted {
		for _, emotion := range analysis.Emotions {
			if _, seen := observations[emotion.Name]; !seen {
				order = append(order, emotion.Name)
			}
			observations[emotion.Name] = append(observations[emotion.Name], models.TrendPoint{
				Date:      analysis.CreatedAt,
				Intensity: emotion.Intensity,
			})
		}
	}

	trends := make([]models.EmotionalTrend, 0, len(order))
	for _, name := range order {
		points := observations[name]
		trends = append(trends, models.EmotionalTrend{
			Emotion:   name,
			Direction: trendDirection(points),
			Strength:  trendStrength(points),
			Points:    points,
		})
	}
	return trends
}

// trendDirection 不足2个观测点时一律stable
func trendDirection(points []models.TrendPoint) string {
	if len(points) < 2 {
		return "stable"
	}

	half := len(points) / 2
	first := make([]float64, 0, half)
	second := make([]float64, 0, len(points)-half)
	for i, pt := range points {
		if i < half {
			first = append(first, pt.Intensity)
		} else {
			second = append(second, pt.Intensity)
		}
	}

	diff := average(second) - average(first)
	if math.Abs(diff) < trendStableThreshold {
		return "stable"
	}
	if diff > 0 {
		return "increasing"
	}
	return "decreasing"
}

// trendStrength 归一化方差，不是统计学标定
func trendStrength(points []models.TrendPoint) float64 {
	vals := make([]float64, len(points))
	for i, pt := range points {
		vals[i] = pt.Intensity
	}
	return math.Min(1, variance(vals)/10)
}

// computeTriggers 主题与情绪的共现统计
func (p *PatternAggregator) computeTriggers(sorted []models.EmotionalAnalysis) []models.EmotionalTrigger {
	type acc struct {
		frequency int
		sum       float64
		lastSeen  time.Time
		emotions  map[string]bool
	}
	byTheme := make(map[string]*acc)
	var order []string

	for _, analysis := range sorted {
		for _, theme := range analysis.Themes {
			entry, ok := byTheme[theme]
			if !ok {
				entry = &acc{emotions: make(map[string]bool)}
				byTheme[theme] = entry
				order = append(order, theme)
			}
			entry.frequency++
			entry.sum += analysis.OverallIntensity
			entry.lastSeen = analysis.CreatedAt
			for _, emotion := range analysis.Emotions {
				entry.emotions[emotion.Name] = true
			}
		}
	}

	triggers := make([]models.EmotionalTrigger, 0, len(order))
	for _, theme := range order {
		entry := byTheme[theme]
		names := make([]string, 0, len(entry.emotions))
		for name := range entry.emotions {
			names = append(names, name)
		}
		sort.Strings(names)
		triggers = append(triggers, models.EmotionalTrigger{
			Theme:              theme,
			AssociatedEmotions: names,
			Frequency:          entry.frequency,
			AverageIntensity:   entry.sum / float64(entry.frequency),
			LastSeen:           entry.lastSeen,
		})
	}

	sort.SliceStable(triggers, func(i, j int) bool {
		return triggers[i].Frequency > triggers[j].Frequency
	})
	return triggers
}

// computeResilience 四项各自独立的启发式，互相之间没有数学关系
func (p *PatternAggregator) computeResilience(sorted []models.EmotionalAnalysis) models.ResilienceMetrics {
	var metrics models.ResilienceMetrics

	// 恢复速度：低谷后两条记录内回正的比例
	var lows, recovered int
	for i, analysis := range sorted {
		if analysis.SentimentCompound >= -0.3 {
			continue
		}
		lows++
		for j := i + 1; j < len(sorted) && j <= i+2; j++ {
			if sorted[j].SentimentCompound > 0 {
				recovered++
				break
			}
		}
	}
	if lows == 0 {
		metrics.RecoverySpeed = 7 // 没有观测到低谷，给中高默认值
	} else {
		metrics.RecoverySpeed = clamp(10*float64(recovered)/float64(lows), 0, 10)
	}

	// 应对有效性：人均应对方式提及量
	var copingMentions int
	for _, analysis := range sorted {
		copingMentions += len(analysis.CopingMechanisms)
	}
	metrics.CopingEffectiveness = clamp(10*float64(copingMentions)/float64(len(sorted)), 0, 10)

	// 情绪广度：出现过的不同情绪数量
	distinct := make(map[string]bool)
	for _, analysis := range sorted {
		for _, emotion := range analysis.Emotions {
			distinct[emotion.Name] = true
		}
	}
	metrics.EmotionalRange = clamp(float64(len(distinct)), 0, 10)

	// 稳定性：compound方差越大越不稳定
	compounds := make([]float64, len(sorted))
	for i, analysis := range sorted {
		compounds[i] = analysis.SentimentCompound
	}
	metrics.Stability = clamp(10-variance(compounds)*25, 0, 10)

	return metrics
}

func (p *PatternAggregator) computeGrowth(sorted []models.EmotionalAnalysis) models.GrowthIndicators {
	var growth models.GrowthIndicators

	var confidenceSum float64
	distinct := make(map[string]bool)
	positiveCounts := make(map[string]int)
	concernCounts := make(map[string]int)
	var positiveOrder, concernOrder []string

	for _, analysis := range sorted {
		confidenceSum += analysis.Confidence
		for _, emotion := range analysis.Emotions {
			distinct[emotion.Name] = true
		}
		for _, indicator := range analysis.PositiveIndicators {
			if positiveCounts[indicator] == 0 {
				positiveOrder = append(positiveOrder, indicator)
			}
			positiveCounts[indicator]++
		}
		for _, mechanism := range analysis.CopingMechanisms {
			if positiveCounts[mechanism] == 0 {
				positiveOrder = append(positiveOrder, mechanism)
			}
			positiveCounts[mechanism]++
		}
		for _, concern := range analysis.Concerns {
			if concernCounts[concern.Type] == 0 {
				concernOrder = append(concernOrder, concern.Type)
			}
			concernCounts[concern.Type]++
		}
	}

	growth.SelfAwareness = clamp(10*confidenceSum/float64(len(sorted)), 0, 10)
	growth.EmotionalVocabulary = clamp(float64(len(distinct)), 0, 10)

	// 反复出现（≥2次）的才算模式
	for _, indicator := range positiveOrder {
		if positiveCounts[indicator] >= 2 {
			growth.PositivePatterns = append(growth.PositivePatterns, indicator)
		}
	}
	for _, concern := range concernOrder {
		if concernCounts[concern] >= 2 {
			growth.ImprovementAreas = append(growth.ImprovementAreas, concern)
		}
	}

	return growth
}

func variance(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	mean := average(vals)
	var sum float64
	for _, v := range vals {
		sum += (v - mean) * (v - mean)
	}
	return sum / float64(len(vals))
}
