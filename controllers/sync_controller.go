package controllers

import (
	"net/http"
	"time"

	"IntrovirghtGo/config"
	"IntrovirghtGo/models"
	"IntrovirghtGo/utils"
	"github.com/gin-gonic/gin"
)

// SyncController 增量同步控制器
type SyncController struct {
	encryptionKey string
}

func NewSyncController(encryptionKey string) *SyncController {
	return &SyncController{encryptionKey: encryptionKey}
}

// GetUpdates 获取自上次同步以来的更新
// 解密失败的条目按"无数据"处理，跳过而不报错
func (sc *SyncController) GetUpdates(c *gin.Context) {
	// 获取用户ID
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	// 获取上次同步时间
	lastSyncDateStr := c.Query("lastSyncDate")
	var lastSyncDate time.Time
	var err error

	if lastSyncDateStr != "" {
		lastSyncDate, err = time.Parse(time.RFC3339, lastSyncDateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的时间格式"})
			return
		}
	} else {
		// 如果没有提供上次同步时间，则使用很久以前的时间
		lastSyncDate = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	}

	// 查询日记条目更新
	var entries []models.DiaryEntry
	if err := config.DB.Where("user_id = ? AND last_modified > ? AND status = 0",
		uid, lastSyncDate).Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取日记条目更新失败"})
		return
	}

	entryResponses := make([]models.EntryResponse, 0, len(entries))
	for _, entry := range entries {
		content, err := utils.DecryptContent(entry.Content, sc.encryptionKey)
		if err != nil {
			config.Logger.Errorw("日记内容解密失败，跳过该条目",
				"error", err,
				"entryID", entry.ID,
			)
			continue
		}
		entryResponses = append(entryResponses, models.EntryResponse{
			ID:           entry.ID,
			Content:      content,
			WordCount:    entry.WordCount,
			EntryDate:    entry.EntryDate,
			LastModified: entry.LastModified,
		})
	}

	// 查询分析记录更新
	var analyses []models.EmotionalAnalysis
	if err := config.DB.Where("user_id = ? AND created_at > ?",
		uid, lastSyncDate).Find(&analyses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取分析记录更新失败"})
		return
	}

	analysisResponses := make([]models.AnalysisResponse, len(analyses))
	for i, analysis := range analyses {
		analysisResponses[i] = models.NewAnalysisResponse(analysis)
	}

	// 返回响应
	c.JSON(http.StatusOK, models.SyncUpdatesResponse{
		Entries:  entryResponses,
		Analyses: analysisResponses,
	})
}
