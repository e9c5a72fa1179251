package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"IntrovirghtGo/config"
	"IntrovirghtGo/models"
	"IntrovirghtGo/services"
	"github.com/gin-gonic/gin"
)

const patternsCacheTTL = 10 * time.Minute

// PatternsController 情绪模式聚合控制器
type PatternsController struct {
	aggregator *services.PatternAggregator
}

func NewPatternsController(aggregator *services.PatternAggregator) *PatternsController {
	return &PatternsController{aggregator: aggregator}
}

// GetPatterns 获取用户情绪模式，全量重算，结果短暂缓存在Redis
func (pc *PatternsController) GetPatterns(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	cacheKey := "patterns_" + uid.(string)

	// 先查缓存，解析失败按无缓存处理
	if cached, err := config.RedisClient.Get(c, cacheKey).Result(); err == nil {
		var patterns models.EmotionalPatterns
		if err := json.Unmarshal([]byte(cached), &patterns); err == nil {
			c.JSON(http.StatusOK, gin.H{"data": patterns, "cached": true})
			return
		}
		config.Logger.Errorw("模式缓存解析失败，重新计算", "uid", uid)
	}

	// 全量拉取分析历史后整体重算
	var analyses []models.EmotionalAnalysis
	if err := config.DB.Where("user_id = ?", uid).
		Order("created_at asc").Find(&analyses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取分析记录失败"})
		return
	}

	patterns := pc.aggregator.Aggregate(uid.(string), analyses)

	// 新结果覆盖旧缓存
	if data, err := json.Marshal(patterns); err == nil {
		if err := config.RedisClient.Set(c, cacheKey, data, patternsCacheTTL).Err(); err != nil {
			config.Logger.Errorw("模式缓存写入失败", "error", err, "uid", uid)
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": patterns, "cached": false})
}
