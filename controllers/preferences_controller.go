package controllers

import (
	"net/http"
	"time"

	"IntrovirghtGo/config"
	"IntrovirghtGo/models"
	"IntrovirghtGo/services"
	"IntrovirghtGo/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PreferencesController 陪伴偏好设置控制器
type PreferencesController struct {
	conversationService *services.ConversationService
}

func NewPreferencesController(conversationService *services.ConversationService) *PreferencesController {
	return &PreferencesController{conversationService: conversationService}
}

// GetPreferences 获取偏好设置，首次使用时创建默认值
func (pc *PreferencesController) GetPreferences(c *gin.Context) {
	uid := c.GetString("uid")

	prefs, err := pc.findOrCreate(uid)
	if err != nil {
		config.Logger.Errorw("获取偏好设置失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取偏好设置失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": prefs})
}

// UpdatePreferences 显式更新偏好设置
func (pc *PreferencesController) UpdatePreferences(c *gin.Context) {
	uid := c.GetString("uid")

	var req models.PreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prefs, err := pc.findOrCreate(uid)
	if err != nil {
		config.Logger.Errorw("获取偏好设置失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取偏好设置失败"})
		return
	}

	if req.CommunicationStyle != "" {
		prefs.CommunicationStyle = req.CommunicationStyle
	}
	if req.ResponseLength != "" {
		prefs.ResponseLength = req.ResponseLength
	}
	if req.EmpathyStyle != "" {
		prefs.EmpathyStyle = req.EmpathyStyle
	}
	if req.Humor != nil {
		prefs.Humor = *req.Humor
	}
	if req.Directness != nil {
		prefs.Directness = *req.Directness
	}
	if req.TopicSensitivities != nil {
		prefs.TopicSensitivities = req.TopicSensitivities
	}
	if req.CrisisIntervention != nil {
		prefs.CrisisIntervention = *req.CrisisIntervention
	}
	if req.DataRetentionDays != nil {
		prefs.DataRetentionDays = *req.DataRetentionDays
	}
	prefs.LastModified = time.Now()

	if err := config.DB.Save(&prefs).Error; err != nil {
		config.Logger.Errorw("保存偏好设置失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存偏好设置失败"})
		return
	}

	// 更新后的偏好写回缓存
	pc.conversationService.CachePreferences(prefs)

	c.JSON(http.StatusOK, gin.H{"data": prefs})
}

// SubmitFeedback 回复反馈，驱动偏好自适应微调
func (pc *PreferencesController) SubmitFeedback(c *gin.Context) {
	uid := c.GetString("uid")

	var req models.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 反馈必须针对自己的陪伴回复
	var message models.ConversationMessage
	if err := config.DB.Where("id = ? AND user_id = ? AND role = ?",
		req.MessageID, uid, "companion").First(&message).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "未找到对应的回复"})
		return
	}

	prefs, err := pc.findOrCreate(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取偏好设置失败"})
		return
	}

	pc.conversationService.AdjustPreferences(&prefs, req)

	if err := config.DB.Save(&prefs).Error; err != nil {
		config.Logger.Errorw("保存偏好设置失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存偏好设置失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "反馈已记录", "data": prefs})
}

func (pc *PreferencesController) findOrCreate(uid string) (models.CompanionPreferences, error) {
	var prefs models.CompanionPreferences
	err := config.DB.Where("user_id = ?", uid).First(&prefs).Error
	if err == nil {
		return prefs, nil
	}
	if err != gorm.ErrRecordNotFound {
		return prefs, err
	}

	prefs = models.DefaultPreferences(utils.GenerateID(), uid)
	if err := config.DB.Create(&prefs).Error; err != nil {
		return prefs, err
	}
	return prefs, nil
}
