package controllers

import (
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"IntrovirghtGo/config"
	"IntrovirghtGo/models"
	"IntrovirghtGo/services"
	"IntrovirghtGo/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ChatController AI陪伴聊天控制器
type ChatController struct {
	conversationService *services.ConversationService
	wg                  sync.WaitGroup
}

func NewChatController(conversationService *services.ConversationService) *ChatController {
	return &ChatController{
		conversationService: conversationService,
	}
}

// SendMessage 处理陪伴聊天请求
// 所有消息先过危机安全门禁；高风险时无条件替换为危机模板（除非用户提前关闭了干预）
// 危机路径不扣能量值
func (cc *ChatController) SendMessage(ctx *gin.Context) {
	// 获取用户信息
	uid, exists := ctx.Get("uid")
	if !exists {
		config.Logger.Errorw("未获取到用户ID")
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	var chatRequest models.ChatRequest
	if err := ctx.ShouldBindJSON(&chatRequest); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	prefs := cc.loadPreferences(uid.(string))
	conversation, err := cc.findOrCreateConversation(uid.(string), chatRequest.ConversationID, chatRequest.Message)
	if err != nil {
		config.Logger.Errorw("获取会话失败", "error", err, "uid", uid)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "获取会话失败"})
		return
	}

	// 取最近的用户消息作为风险评估上下文
	recent := cc.recentUserMessages(conversation.ID, uid.(string))

	// 安全门禁
	assessment := cc.conversationService.Detector().AssessRisk(chatRequest.Message, recent)
	if assessment.AtOrAbove(models.RiskHigh) && prefs.CrisisIntervention {
		cc.persistTurn(conversation, uid.(string), chatRequest.Message, assessment.Message, persistMeta{
			intent:     string(services.IntentCrisisHelp),
			confidence: 0.9,
			source:     services.SourceFallback,
			safetyFlag: assessment.Level,
		})

		config.Logger.Infow("危机安全替换触发",
			"uid", uid,
			"level", assessment.Level,
			"indicators", len(assessment.Indicators),
		)

		ctx.JSON(http.StatusOK, gin.H{
			"message":    assessment.Message,
			"resources":  assessment.Resources,
			"actions":    assessment.Actions,
			"monitoring": assessment.Monitoring,
			"safetyFlag": assessment.Level,
		})
		return
	}

	// 检查用户能量值
	var user models.User
	if err := config.DB.Where("id = ?", uid).First(&user).Error; err != nil {
		config.Logger.Errorw("获取用户信息失败", "error", err, "uid", uid)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "获取用户信息失败"})
		return
	}

	if user.Energy < 1 {
		ctx.JSON(http.StatusForbidden, gin.H{
			"error":           "能量值不足，请兑换",
			"remainingEnergy": user.Energy,
		})
		return
	}

	// 扣除能量值
	if err := config.DB.Model(&user).Update("energy", user.Energy-1).Error; err != nil {
		config.Logger.Errorw("扣除能量值失败", "error", err, "uid", uid)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "扣除能量值失败"})
		return
	}

	intent, confidence := cc.conversationService.RouteIntent(chatRequest.Message)

	// 生成会话 ID
	sessionID := fmt.Sprintf("%s_%s", uid, conversation.ID)

	// 从 Redis 中获取对话历史总结
	historySummary, err := config.RedisClient.Get(ctx, sessionID).Result()
	if err != nil {
		config.Logger.Debugw("未获取到对话历史总结",
			"sessionID", sessionID,
			"uid", uid,
		)
	}

	// 设置流式响应头
	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")
	ctx.Header("Access-Control-Allow-Origin", "*")
	ctx.Header("X-Accel-Buffering", "no") // 禁用 Nginx 缓冲

	stream, result := cc.conversationService.GenerateCompanionResponse(
		ctx, chatRequest.Message, intent, historySummary, prefs,
	)

	// 发送流式响应
	for chunk := range stream {
		_, err := ctx.Writer.Write([]byte(chunk))
		if err != nil {
			log.Printf("Write error: %v", err)
			return
		}
		ctx.Writer.Flush() // 确保每个块都被立即发送
	}

	reply := <-result

	cc.persistTurn(conversation, uid.(string), chatRequest.Message, reply.FullText, persistMeta{
		intent:     string(intent),
		confidence: confidence,
		source:     reply.Source,
	})

	// 在协程中更新滚动摘要
	cc.wg.Add(1)
	go func() {
		defer cc.wg.Done()

		dialogue := fmt.Sprintf("user: %s\ncompanion: %s", chatRequest.Message, reply.FullText)
		summary, err := cc.conversationService.GenerateSummary(ctx, dialogue, historySummary)
		if err != nil {
			config.Logger.Errorw("生成对话摘要失败", "error", err, "sessionID", sessionID)
			return
		}
		if err := config.RedisClient.Set(ctx, sessionID, summary, 30*24*time.Hour).Err(); err != nil {
			config.Logger.Errorw("保存对话摘要失败", "error", err, "sessionID", sessionID)
		}
	}()
}

type persistMeta struct {
	intent     string
	confidence float64
	source     string
	safetyFlag string
}

// persistTurn 持久化一轮对话（用户消息+陪伴回复）
func (cc *ChatController) persistTurn(conversation *models.Conversation, uid, userMessage, companionReply string, meta persistMeta) {
	now := time.Now()

	userMsg := models.ConversationMessage{
		ID:             utils.GenerateID(),
		ConversationID: conversation.ID,
		UserID:         uid,
		Role:           "user",
		Content:        userMessage,
		SafetyFlag:     meta.safetyFlag,
		CreatedAt:      now,
	}
	companionMsg := models.ConversationMessage{
		ID:             utils.GenerateID(),
		ConversationID: conversation.ID,
		UserID:         uid,
		Role:           "companion",
		Content:        companionReply,
		Intent:         meta.intent,
		Confidence:     meta.confidence,
		Source:         meta.source,
		SafetyFlag:     meta.safetyFlag,
		CreatedAt:      now.Add(time.Millisecond),
	}

	if err := config.DB.Create(&userMsg).Error; err != nil {
		config.Logger.Errorw("保存用户消息失败", "error", err, "conversationID", conversation.ID)
	}
	if err := config.DB.Create(&companionMsg).Error; err != nil {
		config.Logger.Errorw("保存陪伴回复失败", "error", err, "conversationID", conversation.ID)
	}
	if err := config.DB.Model(conversation).Update("last_modified", now).Error; err != nil {
		config.Logger.Errorw("更新会话时间失败", "error", err, "conversationID", conversation.ID)
	}
}

// findOrCreateConversation 查找会话，不存在时以首条消息创建
func (cc *ChatController) findOrCreateConversation(uid, conversationID, firstMessage string) (*models.Conversation, error) {
	if conversationID != "" {
		var conversation models.Conversation
		err := config.DB.Where("id = ? AND user_id = ?", conversationID, uid).First(&conversation).Error
		if err == nil {
			return &conversation, nil
		}
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	}

	conversation := models.Conversation{
		ID:           utils.GenerateID(),
		UserID:       uid,
		Title:        truncateTitle(firstMessage),
		CreatedAt:    time.Now(),
		LastModified: time.Now(),
	}
	if err := config.DB.Create(&conversation).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

// truncateTitle 按rune截断，字节截断会产生半个多字节字符导致写库失败
func truncateTitle(message string) string {
	runes := []rune(message)
	if len(runes) > 50 {
		return string(runes[:50])
	}
	return message
}

// recentUserMessages 取会话内最近的用户消息，时间正序返回
func (cc *ChatController) recentUserMessages(conversationID, uid string) []string {
	var messages []models.ConversationMessage
	if err := config.DB.Where("conversation_id = ? AND user_id = ? AND role = ?",
		conversationID, uid, "user").
		Order("created_at desc").Limit(3).Find(&messages).Error; err != nil {
		config.Logger.Errorw("获取近期消息失败", "error", err, "conversationID", conversationID)
		return nil
	}

	recent := make([]string, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		recent = append(recent, messages[i].Content)
	}
	return recent
}

// loadPreferences 偏好读取：进程内缓存 → 数据库 → 默认值
func (cc *ChatController) loadPreferences(uid string) models.CompanionPreferences {
	if prefs, ok := cc.conversationService.CachedPreferences(uid); ok {
		return prefs
	}

	var prefs models.CompanionPreferences
	if err := config.DB.Where("user_id = ?", uid).First(&prefs).Error; err != nil {
		prefs = models.DefaultPreferences(utils.GenerateID(), uid)
	}
	cc.conversationService.CachePreferences(prefs)
	return prefs
}

// GetConversations 获取用户会话列表
func (cc *ChatController) GetConversations(ctx *gin.Context) {
	uid := ctx.GetString("uid")

	var conversations []models.Conversation
	if err := config.DB.Where("user_id = ?", uid).
		Order("last_modified desc").Find(&conversations).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "获取会话列表失败"})
		return
	}

	responses := make([]models.ConversationResponse, len(conversations))
	for i, conversation := range conversations {
		responses[i] = models.ConversationResponse{
			ID:           conversation.ID,
			Title:        conversation.Title,
			Status:       conversation.Status,
			CreatedAt:    conversation.CreatedAt,
			LastModified: conversation.LastModified,
		}
	}

	ctx.JSON(http.StatusOK, gin.H{"data": responses})
}

// GetConversationMessages 获取会话消息，按时间正序
func (cc *ChatController) GetConversationMessages(ctx *gin.Context) {
	uid := ctx.GetString("uid")
	conversationID := ctx.Param("id")

	var conversation models.Conversation
	if err := config.DB.Where("id = ? AND user_id = ?", conversationID, uid).First(&conversation).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "未找到会话"})
		return
	}

	var messages []models.ConversationMessage
	if err := config.DB.Where("conversation_id = ?", conversationID).
		Order("created_at asc").Find(&messages).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "获取会话消息失败"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"data": messages})
}

// ArchiveConversation 归档会话（不删除）
func (cc *ChatController) ArchiveConversation(ctx *gin.Context) {
	uid := ctx.GetString("uid")
	conversationID := ctx.Param("id")

	var conversation models.Conversation
	if err := config.DB.Where("id = ? AND user_id = ?", conversationID, uid).First(&conversation).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "未找到会话"})
		return
	}

	if err := config.DB.Model(&conversation).Update("status", 1).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "归档会话失败"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "会话已归档"})
}

// 添加 Wait 方法用于优雅关闭
func (cc *ChatController) Wait() {
	cc.wg.Wait()
}
