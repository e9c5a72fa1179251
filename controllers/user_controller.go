package controllers

import (
	"net/http"
	"strconv"

	"IntrovirghtGo/config"
	"IntrovirghtGo/models"
	"github.com/gin-gonic/gin"
)

type UserController struct{}

// GetUser 获取当前用户信息
func (uc *UserController) GetUser(c *gin.Context) {
	uid := c.GetString("uid")

	var user models.User
	if err := config.DB.Where("id = ?", uid).First(&user).Error; err != nil {
		config.Logger.Errorw("获取用户信息失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取用户信息失败"})
		return
	}

	c.JSON(http.StatusOK, models.UserResponse{
		ID:       user.ID,
		Username: user.GetDisplayName(),
		Email:    user.Email,
		Energy:   user.Energy,
	})
}

// GetEnergy 获取当前用户能量值
func (uc *UserController) GetEnergy(c *gin.Context) {
	uid := c.GetString("uid")

	var user models.User
	if err := config.DB.Where("id = ?", uid).First(&user).Error; err != nil {
		config.Logger.Errorw("获取用户信息失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取用户信息失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"energy": user.Energy})
}

// AddEnergy 内部接口：增加能量值
func (uc *UserController) AddEnergy(c *gin.Context) {
	// 记录内部接口调用
	config.Logger.Infow("内部接口调用：增加能量值",
		"sourceIP", c.ClientIP(),
		"userAgent", c.Request.UserAgent(),
	)

	uid := c.Query("uid")
	amountStr := c.Query("amount")

	// 转换amount为整数
	amount, err := strconv.Atoi(amountStr)
	if err != nil || amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的能量值"})
		return
	}

	var user models.User
	if err := config.DB.Where("id = ?", uid).First(&user).Error; err != nil {
		config.Logger.Errorw("获取用户信息失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取用户信息失败"})
		return
	}

	if err := config.DB.Model(&user).Update("energy", user.Energy+amount).Error; err != nil {
		config.Logger.Errorw("增加能量值失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "增加能量值失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "能量值增加成功",
		"newEnergy": user.Energy + amount,
	})
}
