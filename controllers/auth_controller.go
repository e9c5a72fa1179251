package controllers

import (
	"IntrovirghtGo/config"
	"IntrovirghtGo/models"
	"IntrovirghtGo/utils"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// AuthController 认证控制器
type AuthController struct{}

// DeviceLoginRequest 设备登录请求结构体
type DeviceLoginRequest struct {
	DeviceID string `json:"device_id" binding:"required"`
	Username string `json:"username"`
}

// DeviceLogin 设备登录，按设备ID查找或创建用户
func (ac *AuthController) DeviceLogin(c *gin.Context) {
	var req DeviceLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 查找或创建用户
	var user models.User
	result := config.DB.Where("device_id = ?", req.DeviceID).First(&user)
	if result.Error != nil {
		user = models.User{
			ID:        utils.GenerateID(),
			DeviceID:  req.DeviceID,
			Username:  req.Username,
			CreatedAt: time.Now(),
			Energy:    20, // 默认20点能量值
		}
		if err := config.DB.Create(&user).Error; err != nil {
			config.Logger.Errorw("用户创建失败",
				"error", err,
				"deviceID", req.DeviceID,
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "用户创建失败"})
			return
		}
		config.Logger.Infow("用户创建成功",
			"userID", user.ID,
			"deviceID", req.DeviceID,
		)
	} else {
		now := time.Now()
		config.DB.Model(&user).Update("last_login", &now)
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "令牌生成失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.GetDisplayName(),
			"energy":   user.Energy,
		},
	})
}

// CreateTestUser 创建测试用户
func (ac *AuthController) CreateTestUser(c *gin.Context) {
	testUser := models.User{
		ID:         utils.GenerateID(),
		Username:   "test_user_1",
		Email:      "test_1@example.com",
		IsTestUser: true,
	}

	if err := config.DB.Create(&testUser).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建测试用户失败"})
		return
	}

	// 生成 JWT
	token, err := utils.GenerateToken(testUser.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "令牌生成失败"})
		return
	}

	config.Logger.Infow("创建测试用户",
		"userID", testUser.ID,
		"username", testUser.Username,
	)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       testUser.ID,
			"username": testUser.Username,
			"email":    testUser.Email,
		},
	})
}
