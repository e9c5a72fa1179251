package controllers

import (
	"net/http"
	"strings"
	"time"

	"IntrovirghtGo/config"
	"IntrovirghtGo/models"
	"IntrovirghtGo/services"
	"IntrovirghtGo/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// EntryController 日记条目控制器
type EntryController struct {
	analyzer      *services.EmotionAnalyzer
	encryptionKey string
	minLength     int
}

func NewEntryController(analyzer *services.EmotionAnalyzer, encryptionKey string, minLength int) *EntryController {
	return &EntryController{
		analyzer:      analyzer,
		encryptionKey: encryptionKey,
		minLength:     minLength,
	}
}

// SyncEntries 处理日记条目同步，内容加密后落库
// 条目达到最小长度时生成情绪分析记录，重新分析会新增记录而不是覆盖
func (ec *EntryController) SyncEntries(c *gin.Context) {
	var entries []models.SyncEntriesRequest
	if err := c.ShouldBindJSON(&entries); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 获取用户ID
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	// 开启事务
	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// 更新或创建日记条目
	for _, entryReq := range entries {
		entryReq.ConvertToUTC()

		encrypted, err := utils.EncryptContent(entryReq.Content, ec.encryptionKey)
		if err != nil {
			tx.Rollback()
			config.Logger.Errorw("日记内容加密失败", "error", err, "entryID", entryReq.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "日记条目同步失败"})
			return
		}

		entry := models.DiaryEntry{
			ID:           entryReq.ID,
			Content:      encrypted,
			WordCount:    len(strings.Fields(entryReq.Content)),
			Status:       entryReq.Status,
			EntryDate:    entryReq.EntryDate,
			LastModified: entryReq.LastModified,
			UserID:       uid.(string),
		}

		// 检查是否存在同ID条目
		var existing models.DiaryEntry
		changed := false
		if err := tx.Where("id = ?", entry.ID).First(&existing).Error; err == nil {
			// 如果存在，比较 lastModified 时间戳
			if entry.LastModified.After(existing.LastModified) {
				entry.CreatedAt = existing.CreatedAt
				entry.LastModified = time.Now()
				if err := tx.Save(&entry).Error; err != nil {
					tx.Rollback()
					c.JSON(http.StatusInternalServerError, gin.H{"error": "日记条目同步失败"})
					return
				}
				changed = true
			}
		} else {
			// 如果不存在，创建新条目
			entry.CreatedAt = time.Now()
			entry.LastModified = time.Now()
			if err := tx.Create(&entry).Error; err != nil {
				tx.Rollback()
				c.JSON(http.StatusInternalServerError, gin.H{"error": "日记条目同步失败"})
				return
			}
			changed = true
		}

		// 内容达到最小长度才值得分析，删除状态不分析
		if changed && entry.Status == 0 && len(entryReq.Content) >= ec.minLength {
			if err := ec.createAnalysis(tx, uid.(string), entry.ID, entryReq.Content); err != nil {
				tx.Rollback()
				config.Logger.Errorw("情绪分析落库失败", "error", err, "entryID", entry.ID)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "日记条目同步失败"})
				return
			}
		}
	}

	// 提交事务
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "日记条目同步失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "日记条目同步成功"})
}

// createAnalysis 对明文内容运行分析器并新增分析记录
func (ec *EntryController) createAnalysis(tx *gorm.DB, uid, entryID, content string) error {
	result := ec.analyzer.Analyze(content)

	analysis := models.EmotionalAnalysis{
		ID:                 utils.GenerateID(),
		EntryID:            entryID,
		UserID:             uid,
		Emotions:           result.Emotions,
		SentimentPositive:  result.Sentiment.Positive,
		SentimentNegative:  result.Sentiment.Negative,
		SentimentNeutral:   result.Sentiment.Neutral,
		SentimentCompound:  result.Sentiment.Compound,
		OverallIntensity:   result.OverallIntensity,
		Themes:             result.Themes,
		Concerns:           result.Concerns,
		PositiveIndicators: result.PositiveIndicators,
		CopingMechanisms:   result.CopingMechanisms,
		Confidence:         result.Confidence,
		CreatedAt:          time.Now(),
	}

	return tx.Create(&analysis).Error
}

// GetEntryAnalyses 获取单个条目的分析记录，按时间倒序
func (ec *EntryController) GetEntryAnalyses(c *gin.Context) {
	uid := c.GetString("uid")
	entryID := c.Param("id")

	// 校验条目归属
	var entry models.DiaryEntry
	if err := config.DB.Where("id = ? AND user_id = ?", entryID, uid).First(&entry).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "未找到日记条目"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "获取日记条目失败"})
		}
		return
	}

	var analyses []models.EmotionalAnalysis
	if err := config.DB.Where("entry_id = ? AND user_id = ?", entryID, uid).
		Order("created_at desc").Find(&analyses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取分析记录失败"})
		return
	}

	responses := make([]models.AnalysisResponse, len(analyses))
	for i, analysis := range analyses {
		responses[i] = models.NewAnalysisResponse(analysis)
	}

	c.JSON(http.StatusOK, gin.H{"data": responses})
}
